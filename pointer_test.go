package keyrule_test

import (
	"testing"

	keyrule "github.com/keyrulehq/keyrule"
)

func TestPointer_RootAndChaining(t *testing.T) {
	if got := keyrule.Root().String(); got != "/" {
		t.Fatalf("root pointer = %q, want /", got)
	}
	p := keyrule.Root().Field("items").Index(2).Field("price")
	if got := p.String(); got != "/items/2/price" {
		t.Fatalf("pointer = %q", got)
	}
}

func TestPointer_Escaping(t *testing.T) {
	p := keyrule.Root().Field("a/b").Field("c~d")
	if got := p.String(); got != "/a~1b/c~0d" {
		t.Fatalf("pointer = %q", got)
	}
}

func TestPointer_Immutability(t *testing.T) {
	base := keyrule.Root().Field("a")
	one := base.Field("b")
	two := base.Field("c")
	if one.String() != "/a/b" || two.String() != "/a/c" {
		t.Fatalf("derivation mutated the base: %q %q", one, two)
	}
}
