package keywords

import "testing"

func TestCompilePattern_Memoized(t *testing.T) {
	re1, err := compilePattern("^a+$")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	re2, err := compilePattern("^a+$")
	if err != nil {
		t.Fatalf("compile again: %v", err)
	}
	if re1 != re2 {
		t.Fatalf("expected the memoized pattern on the second compile")
	}
	if _, err := compilePattern("["); err == nil {
		t.Fatalf("malformed pattern must not compile")
	}
}
