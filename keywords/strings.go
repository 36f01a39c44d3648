package keywords

import (
	"unicode/utf8"

	keyrule "github.com/keyrulehq/keyrule"
	"github.com/keyrulehq/keyrule/i18n"
)

type minLengthKeyword struct{}

func (minLengthKeyword) CheckSyntax(c *keyrule.Context) keyrule.Report {
	return countSyntax(c, "minLength")
}

func (minLengthKeyword) CheckInstance(c *keyrule.Context, instance any) keyrule.Report {
	min, _ := intOf(value(c, "minLength"))
	s, ok := instance.(string)
	if !ok || int64(utf8.RuneCountInString(s)) >= min {
		return keyrule.ReportOK
	}
	return keyrule.FailWith(c.Issue("minLength", keyrule.CodeTooShort,
		i18n.T(keyrule.CodeTooShort, nil), "min", min, "got", utf8.RuneCountInString(s)))
}

type maxLengthKeyword struct{}

func (maxLengthKeyword) CheckSyntax(c *keyrule.Context) keyrule.Report {
	return countSyntax(c, "maxLength")
}

func (maxLengthKeyword) CheckInstance(c *keyrule.Context, instance any) keyrule.Report {
	max, _ := intOf(value(c, "maxLength"))
	s, ok := instance.(string)
	if !ok || int64(utf8.RuneCountInString(s)) <= max {
		return keyrule.ReportOK
	}
	return keyrule.FailWith(c.Issue("maxLength", keyrule.CodeTooLong,
		i18n.T(keyrule.CodeTooLong, nil), "max", max, "got", utf8.RuneCountInString(s)))
}

type patternKeyword struct{}

func (patternKeyword) CheckSyntax(c *keyrule.Context) keyrule.Report {
	s, ok := value(c, "pattern").(string)
	if !ok {
		return badSchema(c, "pattern", "pattern must be a string")
	}
	if _, err := compilePattern(s); err != nil {
		return badSchema(c, "pattern", "pattern is not a valid regular expression")
	}
	return keyrule.ReportOK
}

func (patternKeyword) CheckInstance(c *keyrule.Context, instance any) keyrule.Report {
	pat, _ := value(c, "pattern").(string)
	s, ok := instance.(string)
	if !ok {
		return keyrule.ReportOK
	}
	re, err := compilePattern(pat)
	if err != nil {
		// The syntax checker reports malformed patterns; nothing to add here.
		return keyrule.ReportOK
	}
	if re.MatchString(s) {
		return keyrule.ReportOK
	}
	return keyrule.FailWith(c.Issue("pattern", keyrule.CodePattern,
		i18n.T(keyrule.CodePattern, nil), "pattern", pat))
}

// formatKeyword delegates to the engine's format registry; the format
// vocabulary is open, and unknown names are permissive by default.
type formatKeyword struct{}

func (formatKeyword) CheckSyntax(c *keyrule.Context) keyrule.Report {
	if _, ok := value(c, "format").(string); !ok {
		return badSchema(c, "format", "format must be a string")
	}
	return keyrule.ReportOK
}

func (formatKeyword) CheckInstance(c *keyrule.Context, instance any) keyrule.Report {
	name, _ := value(c, "format").(string)
	return c.Engine().FormatValidator(c, name).Validate(c, instance)
}
