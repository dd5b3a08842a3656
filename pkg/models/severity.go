package models

import "fmt"

// Severity is the reporting level attached to violations.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ParseSeverity converts a configuration value to a Severity. Unrecognized
// values are a configuration error, not a default.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityWarning:
		return SeverityWarning, nil
	case SeverityError:
		return SeverityError, nil
	default:
		return "", fmt.Errorf("unrecognized severity %q (expected %q or %q)", s, SeverityWarning, SeverityError)
	}
}
