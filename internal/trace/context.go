package trace

import (
	"context"

	"fortio.org/safecast"
)

type (
	tracerKey struct{}
	spanKey   struct{}
	jobKey    struct{}
)

// FromContext extracts the Tracer from context, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches a Tracer to context.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// SpanFromContext returns the innermost span started with Start, or nil.
func SpanFromContext(ctx context.Context) *Span {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(spanKey{}).(*Span)
	return s
}

// WithJob tags spans started from ctx with the 1-based index of the file
// a directory check is working on.
func WithJob(ctx context.Context, job int) context.Context {
	j, err := safecast.Conv[uint32](job)
	if err != nil {
		j = 0
	}
	return context.WithValue(ctx, jobKey{}, j)
}

func jobFrom(ctx context.Context) uint32 {
	j, _ := ctx.Value(jobKey{}).(uint32)
	return j
}

// Start begins a span below the one carried by ctx and returns a context
// carrying the new span.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	return start(ctx, scope, name, "")
}

// StartFile opens the span for one checked file. Every span and line mark
// below it carries path.
func StartFile(ctx context.Context, name, path string) (context.Context, *Span) {
	ctx, s := start(ctx, ScopeFile, name, path)
	s.isFile = true
	filesOpen.Add(1)
	return ctx, s
}

func start(ctx context.Context, scope Scope, name, path string) (context.Context, *Span) {
	var (
		parent uint64
		o      origin
	)
	if p := SpanFromContext(ctx); p != nil {
		parent, o = p.anchor(), p.origin
	}
	if j := jobFrom(ctx); j != 0 {
		o.job = j
	}
	if path != "" {
		o.file = path
	}
	s := begin(FromContext(ctx), scope, name, parent, o)
	return context.WithValue(ctx, spanKey{}, s), s
}
