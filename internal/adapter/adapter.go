// Package adapter defines the contract a belief-function backend must
// satisfy to be benchmarked, and a registry the runner resolves
// backends from by name. Every adapter must implement the operations
// identically so cross-backend comparisons stay meaningful; the native
// adapter backed by internal/ds is registered by default.
package adapter

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"dsbench/internal/dass"
	"dsbench/internal/ds"
)

// ErrUnknownAdapter is returned when a name resolves to no registered
// adapter.
var ErrUnknownAdapter = errors.New("unknown adapter")

// Adapter is the engine-neutral benchmark contract.
type Adapter interface {
	// Name is the canonical adapter name used in configs and result
	// directories.
	Name() string

	// Load converts a DASS document into the adapter's mass
	// functions, one per source, over the document's frame.
	Load(doc *dass.Document) (*ds.Frame, []*ds.MassFunction, error)

	// Belief evaluates Bel(h) on a loaded mass function.
	Belief(mf *ds.MassFunction, h ds.Hypothesis) float64

	// Plausibility evaluates Pl(h) on a loaded mass function.
	Plausibility(mf *ds.MassFunction, h ds.Hypothesis) float64

	// Combine fuses the mass functions under the named rule.
	Combine(mfs []*ds.MassFunction, rule string) (*ds.MassFunction, error)

	// Discount applies classical discounting with reliability alpha.
	Discount(mf *ds.MassFunction, alpha float64) (*ds.MassFunction, error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Adapter)
)

// Register adds an adapter to the global registry. Registering two
// adapters under one name is a programming error.
func Register(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	name := a.Name()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("adapter %q registered twice", name))
	}
	registry[name] = a
}

// Get resolves an adapter by name.
func Get(name string) (Adapter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownAdapter, name, names())
	}
	return a, nil
}

// Names lists the registered adapter names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return names()
}

func names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
