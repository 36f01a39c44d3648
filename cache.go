package keyrule

import (
	"fmt"
	"sync"

	json "github.com/goccy/go-json"
)

// canonicalKey derives a structural-value identity for a schema fragment: the
// deterministic JSON serialization (map keys sorted by the encoder). Logically
// identical fragments obtained from different parse passes share one key, so
// the memoization below never depends on physical identity.
func canonicalKey(fragment any) string {
	b, err := json.Marshal(fragment)
	if err != nil {
		// Non-serializable fragments still need a stable key; %#v is at least
		// deterministic for tree-shaped data.
		return fmt.Sprintf("%#v", fragment)
	}
	return string(b)
}

type cacheKey struct {
	kind   Kind
	schema string
}

// validatorCache memoizes compiled validators keyed by (value kind, schema
// fragment identity). It carries its own lock so readers holding the engine's
// read lock can still populate it.
type validatorCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]Validator
}

func newValidatorCache() *validatorCache {
	return &validatorCache{entries: map[cacheKey]Validator{}}
}

func (c *validatorCache) get(key cacheKey) (Validator, bool) {
	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()
	return v, ok
}

func (c *validatorCache) put(key cacheKey, v Validator) {
	c.mu.Lock()
	c.entries[key] = v
	c.mu.Unlock()
}

// invalidate removes every entry whose kind is in the set, leaving the other
// partitions untouched.
func (c *validatorCache) invalidate(kinds KindSet) {
	if kinds.Empty() {
		return
	}
	c.mu.Lock()
	for key := range c.entries {
		if kinds.Has(key.kind) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

// checkedSet records schema fragments whose syntax has already been verified,
// keyed by the same canonical form as the validator cache. Only successes are
// recorded; a failing schema is re-checked on the next call.
type checkedSet struct {
	mu      sync.RWMutex
	members map[string]struct{}
}

func newCheckedSet() *checkedSet {
	return &checkedSet{members: map[string]struct{}{}}
}

func (s *checkedSet) contains(key string) bool {
	s.mu.RLock()
	_, ok := s.members[key]
	s.mu.RUnlock()
	return ok
}

func (s *checkedSet) add(key string) {
	s.mu.Lock()
	s.members[key] = struct{}{}
	s.mu.Unlock()
}

func (s *checkedSet) clear() {
	s.mu.Lock()
	s.members = map[string]struct{}{}
	s.mu.Unlock()
}
