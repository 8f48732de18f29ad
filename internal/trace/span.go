package trace

import (
	"sync/atomic"
	"time"
)

var (
	lastSeq    atomic.Uint64
	lastSpanID atomic.Uint64

	// files opened and finished through StartFile, for heartbeats
	filesOpen atomic.Int64
	filesDone atomic.Uint64
)

// End details of a file span.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

func nextSeq() uint64 { return lastSeq.Add(1) }

// origin ties events to the file being checked. Children inherit it.
type origin struct {
	job  uint32
	file string
}

// Span is an open begin/end pair. A span that is not recorded (tracing off
// or scope filtered out) has ID 0 and all its methods are no-ops, but its
// children may still be recorded at a finer level.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	origin  origin
	started time.Time
	extra   map[string]string
	isFile  bool
}

// Begin starts a span under parent (0 for a root) and emits its begin event.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	return begin(t, scope, name, parent, origin{})
}

func begin(t Tracer, scope Scope, name string, parent uint64, o origin) *Span {
	if t == nil {
		t = Nop
	}
	s := &Span{tracer: t, parent: parent, scope: scope, name: name, origin: o}
	if !t.Enabled() || !t.Level().records(scope) {
		return s
	}
	s.id = lastSpanID.Add(1)
	s.started = time.Now()
	t.Emit(s.event(KindSpanBegin, s.started, ""))
	return s
}

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	return &Event{
		Time:     at,
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Job:      s.origin.job,
		File:     s.origin.file,
		Name:     s.name,
		Detail:   detail,
	}
}

// End emits the end event and returns how long the span was open.
func (s *Span) End(detail string) time.Duration {
	if s == nil {
		return 0
	}
	if s.isFile {
		filesOpen.Add(-1)
		filesDone.Add(1)
	}
	if s.id == 0 {
		return 0
	}
	now := time.Now()
	ev := s.event(KindSpanEnd, now, detail)
	ev.Extra = s.extra
	s.tracer.Emit(ev)
	return now.Sub(s.started)
}

// WithExtra attaches a key-value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.id == 0 {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID, 0 for spans that are not recorded.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// anchor is the ID children hang off: the span itself, or its own parent
// when the span was filtered out.
func (s *Span) anchor() uint64 {
	if s.id != 0 {
		return s.id
	}
	return s.parent
}

// Child starts a span below s, carrying the same file.
func (s *Span) Child(scope Scope, name string) *Span {
	if s == nil {
		return Begin(Nop, scope, name, 0)
	}
	return begin(s.tracer, scope, name, s.anchor(), s.origin)
}

// Lines reports whether Mark would record anything. Callers use it to skip
// building per-line details.
func (s *Span) Lines() bool {
	return s != nil && s.tracer.Enabled() && s.tracer.Level().records(ScopeLine)
}

// Mark records how one source line of the span's file was handled.
func (s *Span) Mark(line uint32, name, detail string) {
	if !s.Lines() {
		return
	}
	s.tracer.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    ScopeLine,
		ParentID: s.anchor(),
		Job:      s.origin.job,
		File:     s.origin.file,
		Line:     line,
		Name:     name,
		Detail:   detail,
	})
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Enabled() || !t.Level().records(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		Name:     name,
		Detail:   detail,
	})
}
