package main

import (
	"fmt"
	"io"

	"dsbench/internal/bench"
)

// printSuiteTimings renders per-stage timing statistics for every
// scenario that produced them.
func printSuiteTimings(out io.Writer, result *bench.SuiteResult) {
	if out == nil || result == nil {
		return
	}
	for _, sc := range result.Scenarios {
		if len(sc.Stats) == 0 {
			continue
		}
		var printErr error
		_, printErr = fmt.Fprintf(out, "%s (%d iterations):\n", sc.Scenario, sc.Iterations)
		if printErr != nil {
			panic(printErr)
		}
		for _, st := range sc.Stats {
			_, printErr = fmt.Fprintf(out, "  %-26s min %8.3f ms  mean %8.3f ms  max %8.3f ms\n",
				st.Name, st.MinMS, st.MeanMS, st.MaxMS)
			if printErr != nil {
				panic(printErr)
			}
		}
	}
}
