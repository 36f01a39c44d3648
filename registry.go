package keyrule

// The registries are plain data structures; the engine serializes access to
// them with its own lock, so none of them synchronize internally.

// keywordEntry pairs a keyword checker with the kinds it applies to.
type keywordEntry struct {
	name    string
	checker KeywordChecker
	kinds   KindSet
}

// keywordRegistry maps keyword names to checkers plus applicable kinds,
// preserving registration order so composite diagnostics are deterministic.
type keywordRegistry struct {
	entries map[string]*keywordEntry
	order   []string
}

func newKeywordRegistry() *keywordRegistry {
	return &keywordRegistry{entries: map[string]*keywordEntry{}}
}

func (r *keywordRegistry) register(name string, checker KeywordChecker, kinds KindSet) bool {
	if _, ok := r.entries[name]; ok {
		return false
	}
	r.entries[name] = &keywordEntry{name: name, checker: checker, kinds: kinds}
	r.order = append(r.order, name)
	return true
}

// unregister removes the entry, returning the kinds it applied to so the
// caller can invalidate exactly those cache partitions.
func (r *keywordRegistry) unregister(name string) (KindSet, bool) {
	ent, ok := r.entries[name]
	if !ok {
		return 0, false
	}
	delete(r.entries, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return ent.kinds, true
}

// lookup returns, in registration order, every checker whose keyword appears
// as a field of the fragment and whose kind set contains kind. Non-object
// fragments carry no keywords and yield nothing.
func (r *keywordRegistry) lookup(fragment any, kind Kind) []*keywordEntry {
	obj, ok := fragment.(map[string]any)
	if !ok {
		return nil
	}
	var out []*keywordEntry
	for _, name := range r.order {
		if _, present := obj[name]; !present {
			continue
		}
		if ent := r.entries[name]; ent.kinds.Has(kind) {
			out = append(out, ent)
		}
	}
	return out
}

// syntaxRegistry is the kind-independent sibling: schema shape checking does
// not depend on any instance.
type syntaxRegistry struct {
	entries map[string]SyntaxChecker
	order   []string
}

func newSyntaxRegistry() *syntaxRegistry {
	return &syntaxRegistry{entries: map[string]SyntaxChecker{}}
}

func (r *syntaxRegistry) register(name string, checker SyntaxChecker) bool {
	if _, ok := r.entries[name]; ok {
		return false
	}
	r.entries[name] = checker
	r.order = append(r.order, name)
	return true
}

func (r *syntaxRegistry) unregister(name string) {
	if _, ok := r.entries[name]; !ok {
		return
	}
	delete(r.entries, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *syntaxRegistry) lookup(fragment any) []SyntaxChecker {
	obj, ok := fragment.(map[string]any)
	if !ok {
		return nil
	}
	var out []SyntaxChecker
	for _, name := range r.order {
		if _, present := obj[name]; present {
			out = append(out, r.entries[name])
		}
	}
	return out
}
