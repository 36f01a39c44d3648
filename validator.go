package keyrule

// Validator is a compiled unit of instance validation. Implementations must be
// safe for concurrent use; the engine caches and shares them across calls.
type Validator interface {
	Validate(c *Context, instance any) Report
}

// AlwaysTrue is the shared validator used when no constraint applies. The
// engine returns it for schema fragments with zero applicable keywords and for
// unknown formats.
var AlwaysTrue Validator = alwaysTrue{}

type alwaysTrue struct{}

func (alwaysTrue) Validate(*Context, any) Report { return ReportOK }

// keywordValidator wraps exactly one keyword checker. It is the collapse
// target for the single-checker case so the common path pays no composite
// overhead.
type keywordValidator struct {
	keyword string
	checker KeywordChecker
}

func (v *keywordValidator) Validate(c *Context, instance any) Report {
	return v.checker.CheckInstance(c, instance)
}

// matchAll is the conjunctive composite: it succeeds iff every child succeeds
// and aggregates every failure diagnostic rather than short-circuiting, unless
// the context selects fail-fast mode. The engine never builds a matchAll with
// fewer than two children.
type matchAll struct {
	children []Validator
}

func (v *matchAll) Validate(c *Context, instance any) Report {
	report := ReportOK
	for _, child := range v.children {
		report = report.Merge(child.Validate(c, instance))
		if c.FailFast && !report.OK() {
			return report
		}
	}
	return report
}
