// Package keywords provides the standard keyword vocabulary for the keyrule
// engine: type, enum, const, the numeric bounds, string, array, and object
// constraints. Every checker is registered through the public engine API, the
// same way user-defined keywords are.
package keywords

import (
	keyrule "github.com/keyrulehq/keyrule"
)

// checker is the union implemented by every built-in keyword: each validates
// both the schema's use of the keyword and instances against it.
type checker interface {
	keyrule.SyntaxChecker
	keyrule.KeywordChecker
}

type entry struct {
	name  string
	impl  checker
	kinds []keyrule.Kind
}

func numeric() []keyrule.Kind { return keyrule.NumericKinds.Kinds() }

// standard lists the built-in keywords in their canonical registration order.
var standard = []entry{
	{"type", typeKeyword{}, keyrule.AllKinds.Kinds()},
	{"enum", enumKeyword{}, keyrule.AllKinds.Kinds()},
	{"const", constKeyword{}, keyrule.AllKinds.Kinds()},
	{"minimum", minimumKeyword{}, numeric()},
	{"maximum", maximumKeyword{}, numeric()},
	{"exclusiveMinimum", exclusiveMinimumKeyword{}, numeric()},
	{"exclusiveMaximum", exclusiveMaximumKeyword{}, numeric()},
	{"multipleOf", multipleOfKeyword{}, numeric()},
	{"minLength", minLengthKeyword{}, []keyrule.Kind{keyrule.KindString}},
	{"maxLength", maxLengthKeyword{}, []keyrule.Kind{keyrule.KindString}},
	{"pattern", patternKeyword{}, []keyrule.Kind{keyrule.KindString}},
	{"format", formatKeyword{}, []keyrule.Kind{keyrule.KindString}},
	{"minItems", minItemsKeyword{}, []keyrule.Kind{keyrule.KindArray}},
	{"maxItems", maxItemsKeyword{}, []keyrule.Kind{keyrule.KindArray}},
	{"uniqueItems", uniqueItemsKeyword{}, []keyrule.Kind{keyrule.KindArray}},
	{"required", requiredKeyword{}, []keyrule.Kind{keyrule.KindObject}},
	{"minProperties", minPropertiesKeyword{}, []keyrule.Kind{keyrule.KindObject}},
	{"maxProperties", maxPropertiesKeyword{}, []keyrule.Kind{keyrule.KindObject}},
}

// Register installs the standard vocabulary into e. It fails with
// keyrule.ErrKeywordRegistered if any of the names is already taken.
func Register(e *keyrule.Engine) error {
	for _, ent := range standard {
		if err := e.RegisterKeyword(ent.name, ent.impl, ent.impl, ent.kinds...); err != nil {
			return err
		}
	}
	return nil
}

// NewEngine returns an engine with the standard vocabulary pre-registered.
func NewEngine(opts ...keyrule.Option) *keyrule.Engine {
	e := keyrule.New(opts...)
	// Registration into a fresh engine cannot collide.
	if err := Register(e); err != nil {
		panic(err)
	}
	return e
}
