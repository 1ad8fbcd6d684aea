package types

import (
	"errors"
	"fmt"
	"strings"
)

// Severity classifies a collected problem.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Problem is one non-fatal issue collected during a rebuild: an
// unsupported type shape, a partial module enumeration, a membership
// cycle. Problems never abort the rebuild; they are reported together
// after it completes.
type Problem struct {
	Severity Severity
	Subject  string // type or module name the problem concerns
	Err      error
}

// Error implements the error interface.
func (p Problem) Error() string {
	return fmt.Sprintf("%s: %s: %v", p.Severity, p.Subject, p.Err)
}

// Unwrap exposes the underlying sentinel for errors.Is checks.
func (p Problem) Unwrap() error {
	return p.Err
}

// Report accumulates the problems of one rebuild.
type Report struct {
	Problems []Problem
}

// Warnf records a warning.
func (r *Report) Warnf(subject string, err error) {
	r.Problems = append(r.Problems, Problem{Severity: SeverityWarning, Subject: subject, Err: err})
}

// Errorf records a non-fatal configuration error.
func (r *Report) Errorf(subject string, err error) {
	r.Problems = append(r.Problems, Problem{Severity: SeverityError, Subject: subject, Err: err})
}

// HasErrors reports whether any collected problem has error severity.
func (r *Report) HasErrors() bool {
	for _, p := range r.Problems {
		if p.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Contains reports whether any collected problem wraps target.
func (r *Report) Contains(target error) bool {
	for _, p := range r.Problems {
		if errors.Is(p.Err, target) {
			return true
		}
	}
	return false
}

// String renders the report one problem per line.
func (r *Report) String() string {
	if len(r.Problems) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Problems {
		b.WriteString(p.Error())
		b.WriteByte('\n')
	}
	return b.String()
}
