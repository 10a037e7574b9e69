package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostics collects the findings of one profile check.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic is a single finding.
type Diagnostic struct {
	Severity Severity
	// Code is a stable identifier, e.g. "unknown_style".
	Code    string
	Message string
	// Source names the profile file, if known.
	Source string
	// Key is the dotted profile key, e.g. "fields.i".
	Key string
}

// Severity of a Diagnostic. Errors make a profile unusable.
type Severity int

const (
	SeverityWarning Severity = iota + 1
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// AddError records an error.
func (d *Diagnostics) AddError(code, message, source, key string) {
	d.Errors = append(d.Errors, newDiagnostic(SeverityError, code, message, source, key))
}

// AddWarning records a warning.
func (d *Diagnostics) AddWarning(code, message, source, key string) {
	d.Warnings = append(d.Warnings, newDiagnostic(SeverityWarning, code, message, source, key))
}

func newDiagnostic(sev Severity, code, message, source, key string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Message: message, Source: source, Key: key}
}

// HasErrors reports whether any error was recorded.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// All returns errors followed by warnings.
func (d *Diagnostics) All() []Diagnostic {
	return append(append(make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)), d.Errors...), d.Warnings...)
}

// Error joins the errors into one, or returns nil when there are none.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, len(d.Errors))
	for i, e := range d.Errors {
		parts[i] = e.String()
	}

	return errors.New(strings.Join(parts, "; "))
}

// String formats the diagnostic as "[source] key: [code] message", leaving
// out empty parts.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	var where []string
	if d.Source != "" {
		where = append(where, "["+d.Source+"]")
	}

	if d.Key != "" {
		where = append(where, d.Key)
	}

	if len(where) == 0 {
		return msg
	}

	return strings.Join(where, " ") + ": " + msg
}
