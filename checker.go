package keyrule

// KeywordChecker validates an instance against one keyword of the current
// schema fragment. Expected failures are reported, never returned as errors.
type KeywordChecker interface {
	CheckInstance(c *Context, instance any) Report
}

// KeywordCheckerFunc adapts a function to KeywordChecker.
type KeywordCheckerFunc func(c *Context, instance any) Report

func (f KeywordCheckerFunc) CheckInstance(c *Context, instance any) Report { return f(c, instance) }

// SyntaxChecker validates the schema's own use of one keyword (shape
// correctness), independent of any instance.
type SyntaxChecker interface {
	CheckSyntax(c *Context) Report
}

// SyntaxCheckerFunc adapts a function to SyntaxChecker.
type SyntaxCheckerFunc func(c *Context) Report

func (f SyntaxCheckerFunc) CheckSyntax(c *Context) Report { return f(c) }

// FormatChecker validates string content against one named format.
type FormatChecker interface {
	CheckFormat(c *Context, value string) Report
}

// FormatCheckerFunc adapts a function to FormatChecker.
type FormatCheckerFunc func(c *Context, value string) Report

func (f FormatCheckerFunc) CheckFormat(c *Context, value string) Report { return f(c, value) }
