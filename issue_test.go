package keyrule_test

import (
	"testing"

	keyrule "github.com/keyrulehq/keyrule"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := keyrule.Issues{
		{Keyword: "minItems", Code: keyrule.CodeTooShort, InstancePath: "/a"},
		{Keyword: "type", Code: keyrule.CodeInvalidType, InstancePath: "/b"},
		{Code: keyrule.CodeBadSchema, InstancePath: "/c"},
		{Code: keyrule.CodeTooLong, InstancePath: "/d"},
	}
	s := iss.Error()
	if s == "" {
		t.Fatalf("expected non-empty error summary")
	}
	if keyrule.Issues(nil).Error() != "" {
		t.Fatalf("empty issues must render empty")
	}
}

func TestReport_MergePreservesOrder(t *testing.T) {
	a := keyrule.FailWith(keyrule.Issue{Code: "one"})
	b := keyrule.FailWith(keyrule.Issue{Code: "two"})
	merged := a.Merge(b)
	if merged.OK() {
		t.Fatalf("merged report must fail")
	}
	got := merged.Issues()
	if len(got) != 2 || got[0].Code != "one" || got[1].Code != "two" {
		t.Fatalf("unexpected merge result: %+v", got)
	}
}

func TestReport_ZeroValueIsSuccess(t *testing.T) {
	if !keyrule.ReportOK.OK() {
		t.Fatalf("canonical report must be success")
	}
	if err := keyrule.ReportOK.Err(); err != nil {
		t.Fatalf("success report Err = %v", err)
	}
}

func TestAsIssues(t *testing.T) {
	var err error = keyrule.Issues{{Code: keyrule.CodeRequired}}
	iss, ok := keyrule.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected to extract issues, got %v %v", iss, ok)
	}
	if _, ok := keyrule.AsIssues(nil); ok {
		t.Fatalf("nil error must not extract")
	}
}
