package keyrule

import (
	"encoding/json"
	"math"
	"strings"
)

// Kind is the structural classification of a data instance.
type Kind int

const (
	// KindInvalid marks Go values outside the data model (structs, channels,
	// funcs). No keyword dispatches on it; Validate rejects such values with
	// an unsupported_type issue instead of silently classifying them.
	KindInvalid Kind = iota
	KindNull
	KindBoolean
	KindInteger
	KindNumber
	KindString
	KindArray
	KindObject
)

// kindNames indexes Kind values for String(); keep in sync with the consts.
var kindNames = [...]string{"invalid", "null", "boolean", "integer", "number", "string", "array", "object"}

func (k Kind) String() string {
	if k < KindInvalid || k > KindObject {
		return "unknown"
	}
	return kindNames[k]
}

// KindOf classifies a decoded instance into its Kind. Numbers with a zero
// fractional part classify as KindInteger, not KindNumber; integer-valued
// keyword checkers rely on this refinement.
func KindOf(v any) Kind {
	switch n := v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBoolean
	case string:
		return KindString
	case map[string]any:
		return KindObject
	case []any:
		return KindArray
	case json.Number:
		if isIntegralLiteral(string(n)) {
			return KindInteger
		}
		if f, err := n.Float64(); err == nil && f == math.Trunc(f) && !math.IsInf(f, 0) {
			return KindInteger
		}
		return KindNumber
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) && !math.IsNaN(n) {
			return KindInteger
		}
		return KindNumber
	case float32:
		return KindOf(float64(n))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInteger
	default:
		return KindInvalid
	}
}

// isIntegralLiteral reports whether a JSON number literal has no fractional or
// exponent part, avoiding a float round-trip for the common case.
func isIntegralLiteral(s string) bool {
	if s == "" {
		return false
	}
	return !strings.ContainsAny(s, ".eE")
}

// KindSet is a bitmask over Kinds.
type KindSet uint16

// KindsOf builds a KindSet from the given kinds.
func KindsOf(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s = s.Add(k)
	}
	return s
}

// Add returns the set with k included.
func (s KindSet) Add(k Kind) KindSet { return s | 1<<uint(k) }

// Has reports whether k is in the set.
func (s KindSet) Has(k Kind) bool { return s&(1<<uint(k)) != 0 }

// Union returns the union of both sets.
func (s KindSet) Union(o KindSet) KindSet { return s | o }

// Empty reports whether the set holds no kinds.
func (s KindSet) Empty() bool { return s == 0 }

// Kinds lists the members in declaration order.
func (s KindSet) Kinds() []Kind {
	var out []Kind
	for k := KindInvalid; k <= KindObject; k++ {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// AllKinds is the set of every Kind.
var AllKinds = KindsOf(KindNull, KindBoolean, KindInteger, KindNumber, KindString, KindArray, KindObject)

// NumericKinds covers both integer and non-integer numbers; keywords that
// constrain numbers should register against it so integer instances are not
// missed by the Integer refinement.
var NumericKinds = KindsOf(KindInteger, KindNumber)
