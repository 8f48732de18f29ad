// Package trace is the checker's logging and tracing layer.
//
// A run is a tree of spans: the command, the directory walk, one span per
// checked file, then parse and sema below it. Validation opens a span per
// method and the parser marks every classified line, so a trace at debug
// level replays how a file was read.
//
// # Usage
//
//	sjavac check --trace=- --trace-level=detail src/
//	sjavac check --trace=run.ndjson --trace-mode=both --trace-level=debug a.sjava
//
// # Tracers
//
//   - Nop: used when tracing is off.
//   - StreamTracer: writes every event immediately (text or NDJSON).
//   - RingTracer: keeps the last N events; dumped when the command exits.
//     At the error level only the events of failed files are dumped.
//   - --trace-mode=both streams and keeps at the same time.
//
// # Levels and scopes
//
// phase shows driver and pass boundaries, detail adds one span per file,
// debug adds method spans and line marks. Events below a file span carry
// the file path and, inside a directory check, the job number.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.StartFile(ctx, "check", path)
//	defer span.End("")
//	span.Child(trace.ScopeMethod, "method:foo").End("")
package trace
