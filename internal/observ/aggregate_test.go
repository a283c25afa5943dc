package observ_test

import (
	"math"
	"testing"
	"time"

	"dsbench/internal/observ"
)

func TestTimerReport(t *testing.T) {
	timer := observ.NewTimer()
	idx := timer.Begin("load")
	time.Sleep(time.Millisecond)
	timer.End(idx, "2 sources")

	report := timer.Report()
	if len(report.Phases) != 1 {
		t.Fatalf("report has %d phases, want 1", len(report.Phases))
	}
	p := report.Phases[0]
	if p.Name != "load" || p.Note != "2 sources" {
		t.Errorf("phase = %+v", p)
	}
	if p.DurationMS <= 0 {
		t.Errorf("duration %.3f ms, want > 0", p.DurationMS)
	}
	if report.TotalMS < p.DurationMS {
		t.Errorf("total %.3f < phase %.3f", report.TotalMS, p.DurationMS)
	}
}

func TestTimerEndOutOfRangeIsIgnored(t *testing.T) {
	timer := observ.NewTimer()
	timer.End(3, "nope")
	if got := timer.Report(); len(got.Phases) != 0 {
		t.Errorf("report = %+v, want empty", got)
	}
}

func TestAggregate(t *testing.T) {
	reports := []observ.Report{
		{Phases: []observ.PhaseReport{{Name: "step1", DurationMS: 1}, {Name: "step2", DurationMS: 10}}},
		{Phases: []observ.PhaseReport{{Name: "step1", DurationMS: 3}, {Name: "step2", DurationMS: 20}}},
		{Phases: []observ.PhaseReport{{Name: "step1", DurationMS: 2}, {Name: "step2", DurationMS: 30}}},
	}
	stats := observ.Aggregate(reports)
	if len(stats) != 2 {
		t.Fatalf("aggregated %d phases, want 2", len(stats))
	}
	s1 := stats[0]
	if s1.Name != "step1" || s1.Count != 3 {
		t.Fatalf("first phase = %+v, want step1 with count 3", s1)
	}
	if s1.MinMS != 1 || s1.MaxMS != 3 || math.Abs(s1.MeanMS-2) > 1e-12 {
		t.Errorf("step1 stats = %+v, want min 1 mean 2 max 3", s1)
	}
}
