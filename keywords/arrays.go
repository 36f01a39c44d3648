package keywords

import (
	keyrule "github.com/keyrulehq/keyrule"
	"github.com/keyrulehq/keyrule/i18n"
)

type minItemsKeyword struct{}

func (minItemsKeyword) CheckSyntax(c *keyrule.Context) keyrule.Report {
	return countSyntax(c, "minItems")
}

func (minItemsKeyword) CheckInstance(c *keyrule.Context, instance any) keyrule.Report {
	min, _ := intOf(value(c, "minItems"))
	arr, ok := instance.([]any)
	if !ok || int64(len(arr)) >= min {
		return keyrule.ReportOK
	}
	return keyrule.FailWith(c.Issue("minItems", keyrule.CodeTooShort,
		i18n.T(keyrule.CodeTooShort, nil), "min", min, "got", len(arr)))
}

type maxItemsKeyword struct{}

func (maxItemsKeyword) CheckSyntax(c *keyrule.Context) keyrule.Report {
	return countSyntax(c, "maxItems")
}

func (maxItemsKeyword) CheckInstance(c *keyrule.Context, instance any) keyrule.Report {
	max, _ := intOf(value(c, "maxItems"))
	arr, ok := instance.([]any)
	if !ok || int64(len(arr)) <= max {
		return keyrule.ReportOK
	}
	return keyrule.FailWith(c.Issue("maxItems", keyrule.CodeTooLong,
		i18n.T(keyrule.CodeTooLong, nil), "max", max, "got", len(arr)))
}

type uniqueItemsKeyword struct{}

func (uniqueItemsKeyword) CheckSyntax(c *keyrule.Context) keyrule.Report {
	if _, ok := value(c, "uniqueItems").(bool); !ok {
		return badSchema(c, "uniqueItems", "uniqueItems must be a boolean")
	}
	return keyrule.ReportOK
}

func (uniqueItemsKeyword) CheckInstance(c *keyrule.Context, instance any) keyrule.Report {
	on, _ := value(c, "uniqueItems").(bool)
	arr, ok := instance.([]any)
	if !on || !ok {
		return keyrule.ReportOK
	}
	report := keyrule.ReportOK
	for i, el := range arr {
		for j, other := range arr[:i] {
			if equalValue(el, other) {
				report = report.Merge(keyrule.FailWith(c.Issue("uniqueItems", keyrule.CodeNotUnique,
					i18n.T(keyrule.CodeNotUnique, nil), "first", j, "dup", i)))
				if c.FailFast {
					return report
				}
				break
			}
		}
	}
	return report
}
