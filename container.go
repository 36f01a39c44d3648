package keyrule

import (
	"regexp"
	"sort"
	"sync"
)

var regexpCache sync.Map // pattern string -> *regexp.Regexp

// compileRegexp memoizes compiled patternProperties expressions; the same
// pattern is re-applied for every member of every matching object.
func compileRegexp(pat string) (*regexp.Regexp, error) {
	if re, ok := regexpCache.Load(pat); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return nil, err
	}
	regexpCache.Store(pat, re)
	return re, nil
}

// Container wrappers run the wrapped validator for the container's own
// keywords, then descend into children with sub-schemas derived from the
// fragment, recursing through the engine. Scalar kinds never recurse, so only
// array and object validators exist.

type arrayValidator struct {
	schema  map[string]any
	wrapped Validator
}

func (v *arrayValidator) Validate(c *Context, instance any) Report {
	report := v.wrapped.Validate(c, instance)
	if c.FailFast && !report.OK() {
		return report
	}

	arr, ok := instance.([]any)
	if !ok {
		return report
	}
	for i, elem := range arr {
		sub, sp, ok := v.elementSchema(c, i)
		if !ok {
			continue
		}
		child := *c
		child.Schema = sub
		child.SchemaPath = sp
		child.InstancePath = c.InstancePath.Index(i)
		report = report.Merge(c.engine.validate(&child, elem))
		if c.FailFast && !report.OK() {
			return report
		}
	}
	return report
}

// elementSchema resolves the sub-schema governing element i: a single "items"
// object applies to every element; an "items" tuple applies positionally with
// "additionalItems" covering the overflow.
func (v *arrayValidator) elementSchema(c *Context, i int) (any, Pointer, bool) {
	switch items := v.schema["items"].(type) {
	case map[string]any:
		return items, c.SchemaPath.Field("items"), true
	case []any:
		if i < len(items) {
			if m, ok := items[i].(map[string]any); ok {
				return m, c.SchemaPath.Field("items").Index(i), true
			}
			return nil, Pointer{}, false
		}
		if add, ok := v.schema["additionalItems"].(map[string]any); ok {
			return add, c.SchemaPath.Field("additionalItems"), true
		}
	}
	return nil, Pointer{}, false
}

type objectValidator struct {
	schema  map[string]any
	wrapped Validator
}

func (v *objectValidator) Validate(c *Context, instance any) Report {
	report := v.wrapped.Validate(c, instance)
	if c.FailFast && !report.OK() {
		return report
	}

	obj, ok := instance.(map[string]any)
	if !ok {
		return report
	}
	// Deterministic diagnostic order: members are visited sorted by name.
	names := make([]string, 0, len(obj))
	for name := range obj {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, ms := range v.memberSchemas(c, name) {
			child := *c
			child.Schema = ms.schema
			child.SchemaPath = ms.path
			child.InstancePath = c.InstancePath.Field(name)
			report = report.Merge(c.engine.validate(&child, obj[name]))
			if c.FailFast && !report.OK() {
				return report
			}
		}
	}
	return report
}

type memberSchema struct {
	schema any
	path   Pointer
}

// memberSchemas resolves every sub-schema governing member name: the matching
// "properties" entry, every "patternProperties" entry whose pattern matches,
// and "additionalProperties" as the fallback when nothing else matched.
func (v *objectValidator) memberSchemas(c *Context, name string) []memberSchema {
	var out []memberSchema

	if props, ok := v.schema["properties"].(map[string]any); ok {
		if sub, ok := props[name].(map[string]any); ok {
			out = append(out, memberSchema{sub, c.SchemaPath.Field("properties").Field(name)})
		}
	}
	if patterns, ok := v.schema["patternProperties"].(map[string]any); ok {
		keys := make([]string, 0, len(patterns))
		for pat := range patterns {
			keys = append(keys, pat)
		}
		sort.Strings(keys)
		for _, pat := range keys {
			sub, ok := patterns[pat].(map[string]any)
			if !ok {
				continue
			}
			// Malformed patterns are the syntax checker's problem; skip here.
			re, err := compileRegexp(pat)
			if err != nil || !re.MatchString(name) {
				continue
			}
			out = append(out, memberSchema{sub, c.SchemaPath.Field("patternProperties").Field(pat)})
		}
	}
	if len(out) == 0 {
		if add, ok := v.schema["additionalProperties"].(map[string]any); ok {
			out = append(out, memberSchema{add, c.SchemaPath.Field("additionalProperties")})
		}
	}
	return out
}
