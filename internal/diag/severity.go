package diag

import "strings"

// Severity orders diagnostics. Syntax, semantic and IO problems are errors;
// SevInfo is left for observability reports such as per-phase timings and
// never fails a check.
type Severity uint8

const (
	SevInfo Severity = iota
	SevError
)

var severityNames = [...]string{
	SevInfo:  "INFO",
	SevError: "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// Label is the lower-case form used by the short and golden outputs.
func (s Severity) Label() string {
	return strings.ToLower(s.String())
}

// Fails reports whether a diagnostic of this severity fails the check.
func (s Severity) Fails() bool {
	return s >= SevError
}
