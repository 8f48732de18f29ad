// Package diag defines the diagnostic model shared by the parser, the
// semantic validator and the driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: compact numeric identifier with a stable string form (codes.go).
//     Ranges map to phases: SYN2xxx for structural errors found while
//     parsing, SEM3xxx for semantic errors, IO4xxx for loading problems and
//     OBS6xxx for informational timing output.
//   - Message: short human oriented text naming the offending line or name.
//   - Primary: the source.Span the message points at.
//   - Notes: optional secondary spans ("method declared here").
//
// # Emitting diagnostics
//
// Phases report through a Reporter so emission stays decoupled from storage.
// ReportError and ReportInfo return a ReportBuilder that can
// collect notes before Emit. BagReporter stores into a Bag;
// FirstErrorReporter additionally remembers the first error so callers that
// want a plain Go error can get one via Err.
//
// Error wraps a Diagnostic as a Go error. IsSyntax and IsSemantic tell the
// two failure categories apart, which the CLI maps onto exit codes.
//
// Package diag does no formatting beyond the one-line short/golden form;
// rendering lives in internal/diagfmt.
package diag
