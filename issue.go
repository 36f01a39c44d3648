package keyrule

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodePattern       = "pattern"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodeNotMultiple   = "not_multiple"
	CodeNotUnique     = "not_unique"
	// Schema-side problems (syntax checking)
	CodeBadSchema = "bad_schema"
	// Input-boundary problems (decoding, misconfiguration)
	CodeParseError      = "parse_error"
	CodeUnsupportedType = "unsupported_type"
)

// Issue represents a single validation diagnostic.
type Issue struct {
	Keyword      string // Keyword that produced the diagnostic ("" for non-keyword issues).
	Code         string // One of the codes listed above.
	Message      string
	SchemaPath   string // JSON Pointer into the schema (for example: /minItems).
	InstancePath string // JSON Pointer into the instance (for example: /items/2).
	// Params carries structured parameters (e.g., {"min":2, "got":1}) for
	// i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation diagnostics that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. minItems: too_short at /items
		if it.Keyword != "" {
			fmt.Fprintf(b, "%s: %s at %s", it.Keyword, it.Code, it.InstancePath)
		} else {
			fmt.Fprintf(b, "%s at %s", it.Code, it.InstancePath)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Report is the outcome of one validation step: a success flag expressed as the
// absence of issues, plus the ordered diagnostics. The zero Report is the
// canonical success value.
type Report struct {
	issues Issues
}

// ReportOK is the shared success report returned by short-circuit paths.
var ReportOK = Report{}

// OK reports whether the validation succeeded.
func (r Report) OK() bool { return len(r.issues) == 0 }

// Issues returns the ordered diagnostics (nil on success).
func (r Report) Issues() Issues { return r.issues }

// Fail returns the report with the issue appended.
func (r Report) Fail(iss Issue) Report {
	r.issues = append(r.issues, iss)
	return r
}

// Merge returns the report with every diagnostic of other appended, preserving
// order. Merging never drops diagnostics.
func (r Report) Merge(other Report) Report {
	if len(other.issues) == 0 {
		return r
	}
	r.issues = append(r.issues, other.issues...)
	return r
}

// Err converts the report to an error: nil on success, Issues otherwise.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	return r.issues
}

// FailWith builds a single-issue failure report.
func FailWith(iss Issue) Report { return Report{issues: Issues{iss}} }
