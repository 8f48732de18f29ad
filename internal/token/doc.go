// Package token defines the kinds the line classifier assigns.
// Invariants:
//   - Every non-blank line gets exactly one LineKind; LineInvalid when no
//     shape matches the whole line.
//   - Every value text (literal or name) gets exactly one ValueKind;
//     boolean literals win over identifiers.
//   - Line.Text is exactly the source text covered by Line.Span, without
//     the trailing newline.
package token
