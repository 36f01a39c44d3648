package keywords

import (
	"math/big"

	keyrule "github.com/keyrulehq/keyrule"
	"github.com/keyrulehq/keyrule/i18n"
)

type minimumKeyword struct{}

func (minimumKeyword) CheckSyntax(c *keyrule.Context) keyrule.Report {
	return boundSyntax(c, "minimum")
}

func (minimumKeyword) CheckInstance(c *keyrule.Context, instance any) keyrule.Report {
	bound, _ := ratOf(value(c, "minimum"))
	got, ok := ratOf(instance)
	if !ok || bound == nil || got.Cmp(bound) >= 0 {
		return keyrule.ReportOK
	}
	return keyrule.FailWith(c.Issue("minimum", keyrule.CodeTooSmall,
		i18n.T(keyrule.CodeTooSmall, nil), "min", value(c, "minimum")))
}

type maximumKeyword struct{}

func (maximumKeyword) CheckSyntax(c *keyrule.Context) keyrule.Report {
	return boundSyntax(c, "maximum")
}

func (maximumKeyword) CheckInstance(c *keyrule.Context, instance any) keyrule.Report {
	bound, _ := ratOf(value(c, "maximum"))
	got, ok := ratOf(instance)
	if !ok || bound == nil || got.Cmp(bound) <= 0 {
		return keyrule.ReportOK
	}
	return keyrule.FailWith(c.Issue("maximum", keyrule.CodeTooBig,
		i18n.T(keyrule.CodeTooBig, nil), "max", value(c, "maximum")))
}

type exclusiveMinimumKeyword struct{}

func (exclusiveMinimumKeyword) CheckSyntax(c *keyrule.Context) keyrule.Report {
	return boundSyntax(c, "exclusiveMinimum")
}

func (exclusiveMinimumKeyword) CheckInstance(c *keyrule.Context, instance any) keyrule.Report {
	bound, _ := ratOf(value(c, "exclusiveMinimum"))
	got, ok := ratOf(instance)
	if !ok || bound == nil || got.Cmp(bound) > 0 {
		return keyrule.ReportOK
	}
	return keyrule.FailWith(c.Issue("exclusiveMinimum", keyrule.CodeTooSmall,
		i18n.T(keyrule.CodeTooSmall, nil), "min", value(c, "exclusiveMinimum")))
}

type exclusiveMaximumKeyword struct{}

func (exclusiveMaximumKeyword) CheckSyntax(c *keyrule.Context) keyrule.Report {
	return boundSyntax(c, "exclusiveMaximum")
}

func (exclusiveMaximumKeyword) CheckInstance(c *keyrule.Context, instance any) keyrule.Report {
	bound, _ := ratOf(value(c, "exclusiveMaximum"))
	got, ok := ratOf(instance)
	if !ok || bound == nil || got.Cmp(bound) < 0 {
		return keyrule.ReportOK
	}
	return keyrule.FailWith(c.Issue("exclusiveMaximum", keyrule.CodeTooBig,
		i18n.T(keyrule.CodeTooBig, nil), "max", value(c, "exclusiveMaximum")))
}

type multipleOfKeyword struct{}

func (multipleOfKeyword) CheckSyntax(c *keyrule.Context) keyrule.Report {
	r, ok := ratOf(value(c, "multipleOf"))
	if !ok || r.Sign() <= 0 {
		return badSchema(c, "multipleOf", "multipleOf must be a number greater than zero")
	}
	return keyrule.ReportOK
}

func (multipleOfKeyword) CheckInstance(c *keyrule.Context, instance any) keyrule.Report {
	div, _ := ratOf(value(c, "multipleOf"))
	got, ok := ratOf(instance)
	if !ok || div == nil || div.Sign() == 0 {
		return keyrule.ReportOK
	}
	if new(big.Rat).Quo(got, div).IsInt() {
		return keyrule.ReportOK
	}
	return keyrule.FailWith(c.Issue("multipleOf", keyrule.CodeNotMultiple,
		i18n.T(keyrule.CodeNotMultiple, nil), "divisor", value(c, "multipleOf")))
}
