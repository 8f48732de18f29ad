package observ

import (
	"sync"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.Measure("parse", func() string { return "lines=12" })
	tm.Measure("sema", func() string { return "" })

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %d", len(r.Phases))
	}
	if r.Phases[0].Name != "parse" || r.Phases[0].Note != "lines=12" || r.Phases[1].Name != "sema" {
		t.Errorf("report = %+v", r)
	}
	if r.TotalMS < r.Phases[0].DurationMS {
		t.Errorf("total %.3f below phase %.3f", r.TotalMS, r.Phases[0].DurationMS)
	}
}

func TestNilTimerStillRuns(t *testing.T) {
	var tm *Timer
	ran := false
	tm.Measure("parse", func() string { ran = true; return "" })
	if !ran {
		t.Fatal("measured function skipped")
	}
	if r := tm.Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Errorf("nil report = %+v", r)
	}
}

func TestTimerEmpty(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Errorf("empty report = %+v", r)
	}
}

func TestTimerConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Measure("file", func() string { return "" })
		}()
	}
	wg.Wait()
	if got := len(tm.Report().Phases); got != 8 {
		t.Errorf("phases = %d, want 8", got)
	}
}
