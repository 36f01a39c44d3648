package keywords

import (
	keyrule "github.com/keyrulehq/keyrule"
	"github.com/keyrulehq/keyrule/i18n"
)

type requiredKeyword struct{}

func (requiredKeyword) CheckSyntax(c *keyrule.Context) keyrule.Report {
	arr, ok := value(c, "required").([]any)
	if !ok {
		return badSchema(c, "required", "required must be an array of property names")
	}
	if len(arr) == 0 {
		return badSchema(c, "required", "required must not be empty")
	}
	seen := map[string]bool{}
	for _, el := range arr {
		name, ok := el.(string)
		if !ok {
			return badSchema(c, "required", "required elements must be strings")
		}
		if seen[name] {
			return badSchema(c, "required", "required names must be unique")
		}
		seen[name] = true
	}
	return keyrule.ReportOK
}

func (requiredKeyword) CheckInstance(c *keyrule.Context, instance any) keyrule.Report {
	arr, _ := value(c, "required").([]any)
	obj, ok := instance.(map[string]any)
	if !ok {
		return keyrule.ReportOK
	}
	report := keyrule.ReportOK
	for _, el := range arr {
		name, ok := el.(string)
		if !ok {
			continue
		}
		if _, present := obj[name]; !present {
			report = report.Merge(keyrule.FailWith(c.Issue("required", keyrule.CodeRequired,
				i18n.T(keyrule.CodeRequired, nil), "property", name)))
			if c.FailFast {
				return report
			}
		}
	}
	return report
}

type minPropertiesKeyword struct{}

func (minPropertiesKeyword) CheckSyntax(c *keyrule.Context) keyrule.Report {
	return countSyntax(c, "minProperties")
}

func (minPropertiesKeyword) CheckInstance(c *keyrule.Context, instance any) keyrule.Report {
	min, _ := intOf(value(c, "minProperties"))
	obj, ok := instance.(map[string]any)
	if !ok || int64(len(obj)) >= min {
		return keyrule.ReportOK
	}
	return keyrule.FailWith(c.Issue("minProperties", keyrule.CodeTooShort,
		i18n.T(keyrule.CodeTooShort, nil), "min", min, "got", len(obj)))
}

type maxPropertiesKeyword struct{}

func (maxPropertiesKeyword) CheckSyntax(c *keyrule.Context) keyrule.Report {
	return countSyntax(c, "maxProperties")
}

func (maxPropertiesKeyword) CheckInstance(c *keyrule.Context, instance any) keyrule.Report {
	max, _ := intOf(value(c, "maxProperties"))
	obj, ok := instance.(map[string]any)
	if !ok || int64(len(obj)) <= max {
		return keyrule.ReportOK
	}
	return keyrule.FailWith(c.Issue("maxProperties", keyrule.CodeTooLong,
		i18n.T(keyrule.CodeTooLong, nil), "max", max, "got", len(obj)))
}
