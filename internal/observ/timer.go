package observ

import (
	"sync"
	"time"
)

// Phase is one measured step of checking a file: cache lookup, parse or
// sema.
type Phase struct {
	Name string
	Dur  time.Duration
	Note string
}

// Timer collects phases in the order they ran. A nil *Timer is valid: it
// still runs measured functions but records nothing, so callers need no
// --timings checks around each phase.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 3)} }

// Measure runs fn and records its duration as phase name. fn returns a
// short note such as "lines=12".
func (t *Timer) Measure(name string, fn func() string) {
	if t == nil {
		fn()
		return
	}
	start := time.Now()
	note := fn()
	dur := time.Since(start)

	t.mu.Lock()
	t.phases = append(t.phases, Phase{Name: name, Dur: dur, Note: note})
	t.mu.Unlock()
}

// PhaseReport is the serialised form of a Phase, carried in OBS6001
// diagnostics and the disk cache.
type PhaseReport struct {
	Name       string  `json:"name" msgpack:"name"`
	DurationMS float64 `json:"duration_ms" msgpack:"duration_ms"`
	Note       string  `json:"note,omitempty" msgpack:"note,omitempty"`
}

// Report sums the phases of one file.
type Report struct {
	TotalMS float64       `json:"total_ms" msgpack:"total_ms"`
	Phases  []PhaseReport `json:"phases" msgpack:"phases"`
}

// Report returns the recorded phases; the zero Report when none were.
func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	var r Report
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
		r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: millis(p.Dur), Note: p.Note})
	}
	r.TotalMS = millis(total)
	return r
}

func millis(d time.Duration) float64 {
	return d.Seconds() * 1000
}
