package bench

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"dsbench/internal/adapter"
	"dsbench/internal/artifact"
	"dsbench/internal/dass"
	"dsbench/internal/observ"
)

// Options configures a benchmark run.
type Options struct {
	Adapter    string
	Iterations int
	Alphas     []float64
	Jobs       int
	Cache      *artifact.Cache
}

// Scenario pairs a name with its DASS document.
type Scenario struct {
	Name string
	Path string
	Doc  *dass.Document
}

// Event reports progress of a suite run. Done counts finished
// scenarios, including failed ones.
type Event struct {
	Scenario string
	Done     int
	Total    int
	Cached   bool
	Err      error
}

// ScenarioResult is the full outcome for one scenario: the stage
// outputs of the first iteration plus timing statistics over all
// iterations.
type ScenarioResult struct {
	Scenario   string              `json:"scenario"`
	Adapter    string              `json:"adapter"`
	Iterations int                 `json:"iterations"`
	Steps      []StepResult        `json:"steps"`
	Timings    []observ.Report     `json:"timings"`
	Stats      []observ.PhaseStats `json:"stats"`
	Cached     bool                `json:"cached,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// SuiteResult aggregates all scenario results of one run, sorted by
// scenario name for stable output.
type SuiteResult struct {
	Adapter   string           `json:"adapter"`
	Scenarios []ScenarioResult `json:"scenarios"`
}

// RunScenario loads one scenario through the adapter and runs the
// requested number of iterations.
func RunScenario(ctx context.Context, a adapter.Adapter, sc Scenario, opts Options) (*ScenarioResult, error) {
	res := &ScenarioResult{Scenario: sc.Name, Adapter: a.Name(), Iterations: opts.Iterations}
	frame, mfs, err := a.Load(sc.Doc)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", sc.Name, err)
	}
	iters := opts.Iterations
	if iters < 1 {
		iters = 1
	}
	res.Iterations = iters
	for i := 0; i < iters; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		iter := RunIteration(a, frame, mfs, opts.Alphas)
		if i == 0 {
			res.Steps = iter.Steps
		}
		res.Timings = append(res.Timings, iter.Timing)
	}
	res.Stats = observ.Aggregate(res.Timings)
	return res, nil
}

// RunSuite runs all scenarios, sharded over a bounded worker pool.
// Scenario failures are recorded in the result rather than failing the
// suite; events, when non-nil, receive one message per finished
// scenario.
func RunSuite(ctx context.Context, scenarios []Scenario, opts Options, events chan<- Event) (*SuiteResult, error) {
	a, err := adapter.Get(opts.Adapter)
	if err != nil {
		return nil, err
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	var (
		mu      sync.Mutex
		done    int
		results = make([]ScenarioResult, len(scenarios))
	)
	finish := func(i int, r ScenarioResult, cached bool, err error) {
		mu.Lock()
		results[i] = r
		done++
		d := done
		mu.Unlock()
		if events != nil {
			events <- Event{Scenario: r.Scenario, Done: d, Total: len(scenarios), Cached: cached, Err: err}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(scenarios), 1)))
	for i, sc := range scenarios {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			if cached, ok := fromCache(sc, opts); ok {
				finish(i, *cached, true, nil)
				return nil
			}
			res, err := RunScenario(gctx, a, sc, opts)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				finish(i, ScenarioResult{Scenario: sc.Name, Adapter: opts.Adapter, Error: err.Error()}, false, err)
				return nil
			}
			toCache(sc, opts, res)
			finish(i, *res, false, nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Scenario < results[j].Scenario })
	return &SuiteResult{Adapter: opts.Adapter, Scenarios: results}, nil
}

// cacheKey derives the cache digest for a scenario under opts. Timing
// varies between runs, so only result-shaping parameters participate.
func cacheKey(sc Scenario, opts Options) (artifact.Digest, bool) {
	if opts.Cache == nil {
		return artifact.Digest{}, false
	}
	key, err := artifact.DocumentDigest(sc.Doc,
		"adapter="+opts.Adapter,
		fmt.Sprintf("alphas=%v", opts.Alphas),
	)
	if err != nil {
		return artifact.Digest{}, false
	}
	return key, true
}

func fromCache(sc Scenario, opts Options) (*ScenarioResult, bool) {
	key, ok := cacheKey(sc, opts)
	if !ok {
		return nil, false
	}
	var entry artifact.Entry
	hit, err := opts.Cache.Get(key, &entry)
	if err != nil || !hit {
		return nil, false
	}
	var res ScenarioResult
	if err := json.Unmarshal(entry.Results, &res); err != nil {
		return nil, false
	}
	res.Cached = true
	return &res, true
}

func toCache(sc Scenario, opts Options, res *ScenarioResult) {
	key, ok := cacheKey(sc, opts)
	if !ok {
		return
	}
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	// Cache failures are not fatal, the run already has its results.
	_ = opts.Cache.Put(key, &artifact.Entry{Scenario: sc.Name, Results: data})
}
