package keywords

import (
	keyrule "github.com/keyrulehq/keyrule"
	"github.com/keyrulehq/keyrule/i18n"
)

type enumKeyword struct{}

func (enumKeyword) CheckSyntax(c *keyrule.Context) keyrule.Report {
	arr, ok := value(c, "enum").([]any)
	if !ok {
		return badSchema(c, "enum", "enum must be an array")
	}
	if len(arr) == 0 {
		return badSchema(c, "enum", "enum must not be empty")
	}
	for i, el := range arr {
		for _, other := range arr[:i] {
			if equalValue(el, other) {
				return badSchema(c, "enum", "enum elements must be unique")
			}
		}
	}
	return keyrule.ReportOK
}

func (enumKeyword) CheckInstance(c *keyrule.Context, instance any) keyrule.Report {
	arr, _ := value(c, "enum").([]any)
	for _, el := range arr {
		if equalValue(el, instance) {
			return keyrule.ReportOK
		}
	}
	return keyrule.FailWith(c.Issue("enum", keyrule.CodeInvalidEnum,
		i18n.T(keyrule.CodeInvalidEnum, nil)))
}

type constKeyword struct{}

func (constKeyword) CheckSyntax(c *keyrule.Context) keyrule.Report {
	// Any value is a legal const, including null.
	return keyrule.ReportOK
}

func (constKeyword) CheckInstance(c *keyrule.Context, instance any) keyrule.Report {
	if equalValue(value(c, "const"), instance) {
		return keyrule.ReportOK
	}
	return keyrule.FailWith(c.Issue("const", keyrule.CodeInvalidEnum,
		i18n.T(keyrule.CodeInvalidEnum, nil)))
}
