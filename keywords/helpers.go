package keywords

import (
	"encoding/json"
	"math/big"
	"reflect"
	"regexp"
	"sync"

	keyrule "github.com/keyrulehq/keyrule"
	"github.com/keyrulehq/keyrule/i18n"
)

// value reads the checker's own keyword value from the current schema
// fragment. Checkers are only dispatched when the key is present, so a miss
// here means the fragment changed shape mid-validation, which cannot happen.
func value(c *keyrule.Context, name string) any {
	obj, _ := c.Schema.(map[string]any)
	return obj[name]
}

// ratOf converts any numeric representation in the canonical tree to an exact
// rational, so bound comparisons never suffer float rounding.
func ratOf(v any) (*big.Rat, bool) {
	switch n := v.(type) {
	case json.Number:
		if r, ok := new(big.Rat).SetString(string(n)); ok {
			return r, true
		}
		return nil, false
	case float64:
		// SetFloat64 returns nil for NaN and infinities.
		if r := new(big.Rat).SetFloat64(n); r != nil {
			return r, true
		}
		return nil, false
	case int:
		return new(big.Rat).SetInt64(int64(n)), true
	case int64:
		return new(big.Rat).SetInt64(n), true
	default:
		return nil, false
	}
}

// intOf converts v to a non-negative bound; used by the count/length keywords
// whose schema values must be integers >= 0.
func intOf(v any) (int64, bool) {
	r, ok := ratOf(v)
	if !ok || !r.IsInt() {
		return 0, false
	}
	return r.Num().Int64(), true
}

// equalValue compares two canonical-tree values, treating numerically equal
// numbers as equal regardless of literal form (1 vs 1.0).
func equalValue(a, b any) bool {
	ra, aok := ratOf(a)
	rb, bok := ratOf(b)
	if aok && bok {
		return ra.Cmp(rb) == 0
	}
	if aok != bok {
		return false
	}
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			w, ok := bv[k]
			if !ok || !equalValue(v, w) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equalValue(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

// badSchema builds the single-issue report used by syntax checkers. The
// message comes from the translator; the untranslated shape requirement rides
// along as the "detail" parameter.
func badSchema(c *keyrule.Context, keyword, detail string) keyrule.Report {
	return keyrule.FailWith(c.Issue(keyword, keyrule.CodeBadSchema,
		i18n.T(keyrule.CodeBadSchema, nil), "detail", detail))
}

var patternCache sync.Map // pattern string -> *regexp.Regexp

// compilePattern memoizes compiled patterns: one schema pattern is matched
// against every instance it governs, so recompiling per check would waste the
// validator cache's savings.
func compilePattern(pat string) (*regexp.Regexp, error) {
	if re, ok := patternCache.Load(pat); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return nil, err
	}
	patternCache.Store(pat, re)
	return re, nil
}

// boundSyntax is the shared syntax check for keywords whose value must be a
// number (minimum, maximum, and the exclusive variants).
func boundSyntax(c *keyrule.Context, keyword string) keyrule.Report {
	if _, ok := ratOf(value(c, keyword)); !ok {
		return badSchema(c, keyword, keyword+" must be a number")
	}
	return keyrule.ReportOK
}

// countSyntax is the shared syntax check for keywords whose value must be a
// non-negative integer (the length, items, and properties bounds).
func countSyntax(c *keyrule.Context, keyword string) keyrule.Report {
	n, ok := intOf(value(c, keyword))
	if !ok || n < 0 {
		return badSchema(c, keyword, keyword+" must be a non-negative integer")
	}
	return keyrule.ReportOK
}
