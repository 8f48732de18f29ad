package trace

import (
	"io"
	"sync"
)

const defaultRingSize = 4096

// RingTracer keeps the most recent events in memory. It is dumped when the
// command exits, so a failing directory check can be inspected without
// streaming every line of every file.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	total uint64 // events ever stored; buf[total%len] is the next slot
	level Level
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{buf: make([]Event, 0, capacity), level: level}
}

func (t *RingTracer) keeps(ev *Event) bool {
	return ev.Kind == KindHeartbeat || t.level.records(ev.Scope)
}

// Emit stores a copy of ev, overwriting the oldest event once full.
func (t *RingTracer) Emit(ev *Event) {
	if !t.keeps(ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	stored := *ev
	stored.Seq = nextSeq()
	if n := cap(t.buf); len(t.buf) < n {
		t.buf = append(t.buf, stored)
	} else {
		t.buf[t.total%uint64(n)] = stored
	}
	t.total++
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Event, 0, len(t.buf))
	if len(t.buf) < cap(t.buf) {
		return append(out, t.buf...)
	}
	split := int(t.total % uint64(len(t.buf)))
	out = append(out, t.buf[split:]...)
	return append(out, t.buf[:split]...)
}

// File returns the stored events that belong to path, oldest first.
func (t *RingTracer) File(path string) []Event {
	var out []Event
	for _, ev := range t.Snapshot() {
		if ev.File == path {
			out = append(out, ev)
		}
	}
	return out
}

// Dump writes the stored events to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	return WriteEvents(w, t.Snapshot(), format)
}

// Failed returns the files whose span ended with OutcomeFailed, in the
// order they finished.
func (t *RingTracer) Failed() []string {
	var out []string
	for _, ev := range t.Snapshot() {
		if ev.Kind == KindSpanEnd && ev.Scope == ScopeFile && ev.Detail == OutcomeFailed {
			out = append(out, ev.File)
		}
	}
	return out
}

// WriteEvents formats events to w one per line.
func WriteEvents(w io.Writer, events []Event, format Format) error {
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
