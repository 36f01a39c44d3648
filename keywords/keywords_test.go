package keywords_test

import (
	"context"
	"testing"

	keyrule "github.com/keyrulehq/keyrule"
	"github.com/keyrulehq/keyrule/i18n"
	"github.com/keyrulehq/keyrule/keywords"
)

func mustJSON(t *testing.T, src string) any {
	t.Helper()
	v, err := keyrule.DecodeJSON([]byte(src))
	if err != nil {
		t.Fatalf("decode %q: %v", src, err)
	}
	return v
}

func TestMinItemsScenario(t *testing.T) {
	ctx := context.Background()
	e := keywords.NewEngine()
	schema := mustJSON(t, `{"type":"array","minItems":2}`)

	err := e.Validate(ctx, schema, mustJSON(t, `[1]`))
	iss, ok := keyrule.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", err)
	}
	got := iss[0]
	if got.Keyword != "minItems" {
		t.Fatalf("keyword = %q, want minItems", got.Keyword)
	}
	if got.SchemaPath != "/minItems" {
		t.Fatalf("schema pointer = %q, want /minItems", got.SchemaPath)
	}
	if got.InstancePath != "/" {
		t.Fatalf("instance pointer = %q, want /", got.InstancePath)
	}

	if err := e.Validate(ctx, schema, mustJSON(t, `[1,2]`)); err != nil {
		t.Fatalf("two elements must pass: %v", err)
	}
}

func TestInstanceChecks(t *testing.T) {
	cases := []struct {
		name     string
		schema   string
		instance string
		ok       bool
		code     string
	}{
		{"type match", `{"type":"string"}`, `"x"`, true, ""},
		{"type mismatch", `{"type":"string"}`, `1`, false, keyrule.CodeInvalidType},
		{"type union", `{"type":["string","null"]}`, `null`, true, ""},
		{"number accepts integer", `{"type":"number"}`, `3`, true, ""},
		{"integer rejects fraction", `{"type":"integer"}`, `3.5`, false, keyrule.CodeInvalidType},
		{"integer accepts 5.0", `{"type":"integer"}`, `5.0`, true, ""},

		{"enum hit", `{"enum":[1,"a"]}`, `"a"`, true, ""},
		{"enum numeric equivalence", `{"enum":[1]}`, `1.0`, true, ""},
		{"enum miss", `{"enum":[1,"a"]}`, `"b"`, false, keyrule.CodeInvalidEnum},
		{"const hit", `{"const":{"k":[1]}}`, `{"k":[1]}`, true, ""},
		{"const miss", `{"const":1}`, `2`, false, keyrule.CodeInvalidEnum},

		{"minimum ok", `{"minimum":2}`, `2`, true, ""},
		{"minimum below", `{"minimum":2}`, `1.5`, false, keyrule.CodeTooSmall},
		{"maximum above", `{"maximum":2}`, `3`, false, keyrule.CodeTooBig},
		{"exclusiveMinimum equal", `{"exclusiveMinimum":2}`, `2`, false, keyrule.CodeTooSmall},
		{"exclusiveMaximum below", `{"exclusiveMaximum":2}`, `1`, true, ""},
		{"multipleOf ok", `{"multipleOf":0.5}`, `2.5`, true, ""},
		{"multipleOf miss", `{"multipleOf":3}`, `10`, false, keyrule.CodeNotMultiple},

		{"minLength ok", `{"minLength":2}`, `"ab"`, true, ""},
		{"minLength short", `{"minLength":3}`, `"ab"`, false, keyrule.CodeTooShort},
		{"minLength counts runes", `{"minLength":2}`, `"日本"`, true, ""},
		{"maxLength long", `{"maxLength":1}`, `"ab"`, false, keyrule.CodeTooLong},
		{"pattern ok", `{"pattern":"^a+$"}`, `"aaa"`, true, ""},
		{"pattern miss", `{"pattern":"^a+$"}`, `"b"`, false, keyrule.CodePattern},

		{"minItems ok", `{"minItems":1}`, `[1]`, true, ""},
		{"maxItems over", `{"maxItems":1}`, `[1,2]`, false, keyrule.CodeTooLong},
		{"uniqueItems ok", `{"uniqueItems":true}`, `[1,2]`, true, ""},
		{"uniqueItems dup", `{"uniqueItems":true}`, `[1,2,1]`, false, keyrule.CodeNotUnique},
		{"uniqueItems off", `{"uniqueItems":false}`, `[1,1]`, true, ""},

		{"required ok", `{"required":["a"]}`, `{"a":1}`, true, ""},
		{"required missing", `{"required":["a","b"]}`, `{"a":1}`, false, keyrule.CodeRequired},
		{"minProperties under", `{"minProperties":2}`, `{"a":1}`, false, keyrule.CodeTooShort},
		{"maxProperties over", `{"maxProperties":1}`, `{"a":1,"b":2}`, false, keyrule.CodeTooLong},

		// Keywords apply per kind; a string keyword is inert on an array.
		{"kind gating", `{"minLength":3}`, `[1]`, true, ""},
	}

	ctx := context.Background()
	e := keywords.NewEngine()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := e.Validate(ctx, mustJSON(t, tc.schema), mustJSON(t, tc.instance))
			if tc.ok {
				if err != nil {
					t.Fatalf("expected pass, got %v", err)
				}
				return
			}
			iss, _ := keyrule.AsIssues(err)
			if len(iss) == 0 {
				t.Fatalf("expected violation")
			}
			if tc.code != "" && iss[0].Code != tc.code {
				t.Fatalf("code = %q, want %q (%v)", iss[0].Code, tc.code, iss)
			}
		})
	}
}

func TestSyntaxChecks(t *testing.T) {
	cases := []struct {
		name   string
		schema string
		ok     bool
	}{
		{"good schema", `{"type":"array","minItems":2}`, true},
		{"unknown type name", `{"type":"integerish"}`, false},
		{"type array empty", `{"type":[]}`, false},
		{"type array dup", `{"type":["string","string"]}`, false},
		{"enum not array", `{"enum":"x"}`, false},
		{"enum empty", `{"enum":[]}`, false},
		{"enum dup", `{"enum":[1,1.0]}`, false},
		{"minimum not number", `{"minimum":"2"}`, false},
		{"multipleOf zero", `{"multipleOf":0}`, false},
		{"minLength negative", `{"minLength":-1}`, false},
		{"minLength fraction", `{"minLength":1.5}`, false},
		{"pattern bad regexp", `{"pattern":"["}`, false},
		{"format not string", `{"format":3}`, false},
		{"uniqueItems not bool", `{"uniqueItems":"yes"}`, false},
		{"required not array", `{"required":"a"}`, false},
		{"required dup", `{"required":["a","a"]}`, false},
	}

	e := keywords.NewEngine()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			report := e.ValidateSyntax(e.NewContext(mustJSON(t, tc.schema)))
			if report.OK() != tc.ok {
				t.Fatalf("syntax ok = %v, want %v (%v)", report.OK(), tc.ok, report.Issues())
			}
			if !tc.ok && report.Issues()[0].Code != keyrule.CodeBadSchema {
				t.Fatalf("syntax issues must use bad_schema, got %q", report.Issues()[0].Code)
			}
		})
	}
}

func TestContainerRecursion_ObjectProperties(t *testing.T) {
	ctx := context.Background()
	e := keywords.NewEngine()
	schema := mustJSON(t, `{
		"type": "object",
		"properties": {
			"name": {"type": "string", "minLength": 3}
		}
	}`)

	if err := e.Validate(ctx, schema, mustJSON(t, `{"name":"abc"}`)); err != nil {
		t.Fatalf("valid nested property: %v", err)
	}

	err := e.Validate(ctx, schema, mustJSON(t, `{"name":"ab"}`))
	iss, _ := keyrule.AsIssues(err)
	if len(iss) != 1 {
		t.Fatalf("expected one nested diagnostic, got %v", err)
	}
	if iss[0].InstancePath != "/name" {
		t.Fatalf("instance pointer = %q, want /name", iss[0].InstancePath)
	}
	if iss[0].SchemaPath != "/properties/name/minLength" {
		t.Fatalf("schema pointer = %q", iss[0].SchemaPath)
	}
}

func TestContainerRecursion_DeepNesting(t *testing.T) {
	ctx := context.Background()
	e := keywords.NewEngine()
	schema := mustJSON(t, `{
		"properties": {
			"items": {
				"type": "array",
				"items": {"type": "integer", "minimum": 0}
			}
		}
	}`)

	err := e.Validate(ctx, schema, mustJSON(t, `{"items":[1,-2,3]}`))
	iss, _ := keyrule.AsIssues(err)
	if len(iss) != 1 {
		t.Fatalf("expected one diagnostic, got %v", err)
	}
	if iss[0].InstancePath != "/items/1" {
		t.Fatalf("instance pointer = %q, want /items/1", iss[0].InstancePath)
	}
	if iss[0].Keyword != "minimum" {
		t.Fatalf("keyword = %q, want minimum", iss[0].Keyword)
	}
}

func TestContainerRecursion_TupleItems(t *testing.T) {
	ctx := context.Background()
	e := keywords.NewEngine()
	schema := mustJSON(t, `{
		"items": [{"type":"string"}, {"type":"integer"}],
		"additionalItems": {"type":"boolean"}
	}`)

	if err := e.Validate(ctx, schema, mustJSON(t, `["a", 1, true]`)); err != nil {
		t.Fatalf("tuple match must pass: %v", err)
	}

	err := e.Validate(ctx, schema, mustJSON(t, `["a", 1, "nope"]`))
	iss, _ := keyrule.AsIssues(err)
	if len(iss) != 1 || iss[0].InstancePath != "/2" {
		t.Fatalf("expected one diagnostic at /2, got %v", err)
	}
	if iss[0].SchemaPath != "/additionalItems/type" {
		t.Fatalf("schema pointer = %q", iss[0].SchemaPath)
	}
}

func TestContainerRecursion_PatternAndAdditionalProperties(t *testing.T) {
	ctx := context.Background()
	e := keywords.NewEngine()
	schema := mustJSON(t, `{
		"patternProperties": {"^n_": {"type":"integer"}},
		"additionalProperties": {"type":"string"}
	}`)

	if err := e.Validate(ctx, schema, mustJSON(t, `{"n_count": 2, "label": "x"}`)); err != nil {
		t.Fatalf("conforming members must pass: %v", err)
	}
	if err := e.Validate(ctx, schema, mustJSON(t, `{"n_count": "two"}`)); err == nil {
		t.Fatalf("patternProperties schema must apply")
	}
	if err := e.Validate(ctx, schema, mustJSON(t, `{"label": 3}`)); err == nil {
		t.Fatalf("additionalProperties schema must apply")
	}
}

func TestCollectAllViolations(t *testing.T) {
	ctx := context.Background()
	e := keywords.NewEngine()
	schema := mustJSON(t, `{"minItems":3, "maxItems":1}`)

	err := e.Validate(ctx, schema, mustJSON(t, `[1,2]`))
	iss, _ := keyrule.AsIssues(err)
	if len(iss) != 2 {
		t.Fatalf("conjunctive composite must report every violation, got %v", err)
	}
	if iss[0].Keyword != "minItems" || iss[1].Keyword != "maxItems" {
		t.Fatalf("diagnostics must follow registration order, got %v", iss)
	}
}

func TestUnknownFormatInSchemaIsPermissive(t *testing.T) {
	ctx := context.Background()
	e := keywords.NewEngine()
	schema := mustJSON(t, `{"format":"not-a-registered-format"}`)
	if err := e.Validate(ctx, schema, mustJSON(t, `"anything"`)); err != nil {
		t.Fatalf("unknown format must pass: %v", err)
	}
}

func TestDiagnosticLanguage(t *testing.T) {
	ctx := context.Background()
	e := keywords.NewEngine()
	schema := mustJSON(t, `{"minItems":2,"minLength":1}`)

	err := e.Validate(ctx, schema, mustJSON(t, `[1]`))
	iss, _ := keyrule.AsIssues(err)
	if len(iss) != 1 {
		t.Fatalf("expected one diagnostic, got %v", err)
	}
	english := iss[0].Message
	if english == "" {
		t.Fatalf("expected a message on the diagnostic")
	}

	i18n.SetLanguage("ja")
	defer i18n.SetLanguage("en")

	err = e.Validate(ctx, schema, mustJSON(t, `[1]`))
	iss, _ = keyrule.AsIssues(err)
	if len(iss) != 1 {
		t.Fatalf("expected one diagnostic, got %v", err)
	}
	if iss[0].Message == english || iss[0].Message == "" {
		t.Fatalf("language switch must change the message, got %q", iss[0].Message)
	}
	if iss[0].Message != i18n.T(keyrule.CodeTooShort, nil) {
		t.Fatalf("message = %q, want the translated %q", iss[0].Message, i18n.T(keyrule.CodeTooShort, nil))
	}
}

func TestRegister_CollidesWithStandardVocabulary(t *testing.T) {
	e := keywords.NewEngine()
	err := keywords.Register(e)
	if err == nil {
		t.Fatalf("second registration must fail")
	}
}
