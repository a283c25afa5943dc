package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"dsbench/internal/bench"
	"dsbench/internal/ui"
)

type suiteOutcome struct {
	result *bench.SuiteResult
	err    error
}

// runSuiteWithUI drives the suite in a goroutine and renders its
// progress events with Bubble Tea until the event channel closes.
func runSuiteWithUI(ctx context.Context, title string, scenarios []bench.Scenario, opts bench.Options) (*bench.SuiteResult, error) {
	events := make(chan bench.Event, 256)
	outcomeCh := make(chan suiteOutcome, 1)

	go func() {
		res, err := bench.RunSuite(ctx, scenarios, opts, events)
		outcomeCh <- suiteOutcome{result: res, err: err}
		close(events)
	}()

	names := make([]string, len(scenarios))
	for i, sc := range scenarios {
		names[i] = sc.Name
	}
	model := ui.NewProgressModel(title, names, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

// runSuitePlain drives the suite without the interactive display,
// logging one line per finished scenario unless quiet.
func runSuitePlain(ctx context.Context, scenarios []bench.Scenario, opts bench.Options, quiet bool) (*bench.SuiteResult, error) {
	events := make(chan bench.Event, 256)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			if quiet {
				continue
			}
			switch {
			case ev.Err != nil:
				fmt.Fprintf(os.Stderr, "[%d/%d] %s: %v\n", ev.Done, ev.Total, ev.Scenario, ev.Err)
			case ev.Cached:
				fmt.Fprintf(os.Stderr, "[%d/%d] %s (cached)\n", ev.Done, ev.Total, ev.Scenario)
			default:
				fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", ev.Done, ev.Total, ev.Scenario)
			}
		}
	}()
	res, err := bench.RunSuite(ctx, scenarios, opts, events)
	close(events)
	<-done
	return res, err
}
