package keywords

import (
	keyrule "github.com/keyrulehq/keyrule"
	"github.com/keyrulehq/keyrule/i18n"
)

// typeNames maps the names usable in a "type" value to the kinds they accept.
// "number" accepts integer instances because Integer refines Number.
var typeNames = map[string]keyrule.KindSet{
	"null":    keyrule.KindsOf(keyrule.KindNull),
	"boolean": keyrule.KindsOf(keyrule.KindBoolean),
	"integer": keyrule.KindsOf(keyrule.KindInteger),
	"number":  keyrule.NumericKinds,
	"string":  keyrule.KindsOf(keyrule.KindString),
	"array":   keyrule.KindsOf(keyrule.KindArray),
	"object":  keyrule.KindsOf(keyrule.KindObject),
}

type typeKeyword struct{}

func (typeKeyword) CheckSyntax(c *keyrule.Context) keyrule.Report {
	switch v := value(c, "type").(type) {
	case string:
		if _, ok := typeNames[v]; !ok {
			return badSchema(c, "type", "unknown type name "+v)
		}
		return keyrule.ReportOK
	case []any:
		if len(v) == 0 {
			return badSchema(c, "type", "type array must not be empty")
		}
		seen := map[string]bool{}
		report := keyrule.ReportOK
		for _, el := range v {
			name, ok := el.(string)
			if !ok {
				report = report.Merge(badSchema(c, "type", "type array elements must be strings"))
				continue
			}
			if _, ok := typeNames[name]; !ok {
				report = report.Merge(badSchema(c, "type", "unknown type name "+name))
			}
			if seen[name] {
				report = report.Merge(badSchema(c, "type", "duplicate type name "+name))
			}
			seen[name] = true
		}
		return report
	default:
		return badSchema(c, "type", "type must be a string or an array of strings")
	}
}

func (typeKeyword) CheckInstance(c *keyrule.Context, instance any) keyrule.Report {
	allowed := keyrule.KindSet(0)
	switch v := value(c, "type").(type) {
	case string:
		allowed = typeNames[v]
	case []any:
		for _, el := range v {
			if name, ok := el.(string); ok {
				allowed = allowed.Union(typeNames[name])
			}
		}
	}
	kind := keyrule.KindOf(instance)
	if allowed.Has(kind) {
		return keyrule.ReportOK
	}
	return keyrule.FailWith(c.Issue("type", keyrule.CodeInvalidType,
		i18n.T(keyrule.CodeInvalidType, nil), "expected", value(c, "type"), "got", kind.String()))
}
