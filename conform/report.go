// Package conform verifies outgoing messages against the formatting
// conventions: structured-container flag present, mention parsing
// suppressed, no legacy rich-content mixing, the two-flag ephemeral
// combination, and category tone/symbol pairs drawn from the fixed table.
package conform

import (
	"errors"
	"fmt"
	"strings"
)

// Severity ranks a violation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Violation describes a single convention breach.
type Violation struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Path     string   `json:"path,omitempty"`
	Message  string   `json:"message"`
}

func (v Violation) String() string {
	if v.Path == "" {
		return fmt.Sprintf("%s: %s", v.Rule, v.Message)
	}
	return fmt.Sprintf("%s (%s): %s", v.Rule, v.Path, v.Message)
}

// Report aggregates the violations found on one or more messages.
type Report struct {
	Violations []Violation `json:"violations"`
}

// OK reports whether no error-level violations were found.
func (r Report) OK() bool {
	for _, violation := range r.Violations {
		if violation.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Empty reports whether the report contains no violations of any severity.
func (r Report) Empty() bool {
	return len(r.Violations) == 0
}

// Merge appends the violations from another report.
func (r Report) Merge(other Report) Report {
	r.Violations = append(r.Violations, other.Violations...)
	return r
}

// Err returns nil for a clean report, otherwise a NonConformantError
// wrapping every violation.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	return &NonConformantError{Report: r}
}

// ErrNotConformant is the sentinel every conformance failure unwraps to.
var ErrNotConformant = errors.New("conform: message violates formatting conventions")

// NonConformantError carries the full report for callers that want to
// surface individual violations.
type NonConformantError struct {
	Report Report
}

func (e *NonConformantError) Error() string {
	if e == nil || len(e.Report.Violations) == 0 {
		return ErrNotConformant.Error()
	}
	parts := make([]string, 0, len(e.Report.Violations))
	for _, violation := range e.Report.Violations {
		if violation.Severity != SeverityError {
			continue
		}
		parts = append(parts, violation.String())
	}
	return fmt.Sprintf("%s: %s", ErrNotConformant.Error(), strings.Join(parts, "; "))
}

func (e *NonConformantError) Unwrap() error {
	return ErrNotConformant
}
