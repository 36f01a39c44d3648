package keyrule

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/keyrulehq/keyrule/i18n"
)

// ErrKeywordRegistered is returned when registering a keyword name that is
// already installed. Replacing a keyword requires an explicit unregister
// first, so semantics never change silently.
var ErrKeywordRegistered = errors.New("keyrule: keyword already registered; unregister it first")

// ErrFormatRegistered is the format-registry counterpart of
// ErrKeywordRegistered.
var ErrFormatRegistered = errors.New("keyrule: format already registered; unregister it first")

// Engine dispatches keyword checks, memoizes compiled validators, and owns the
// registration API. Engines are independent: two engines configured with
// different keyword sets never share caches or checked-schema state.
//
// Locking: e.mu guards the registries and the registration generation.
// Validations hold the read side only while consulting the registries and
// while committing cache entries; checkers execute lock-free, so recursive
// container descent never nests read locks. A cache or checked-set write is
// committed only if no registration intervened (the generation is unchanged),
// which keeps "keyword installed" and "cache invalidated" atomic for readers.
type Engine struct {
	mu       sync.RWMutex
	gen      uint64
	keywords *keywordRegistry
	syntaxes *syntaxRegistry
	formats  map[string]FormatChecker

	cache   *validatorCache
	checked *checkedSet

	skipSyntax bool
}

// Option configures an Engine at construction.
type Option func(*Engine)

// SkipSyntax disables schema syntax checking entirely (trusted-schema mode).
func SkipSyntax() Option {
	return func(e *Engine) { e.skipSyntax = true }
}

// New returns an empty engine; no keywords or formats are installed. Use the
// keywords and formats packages for the standard vocabulary.
func New(opts ...Option) *Engine {
	e := &Engine{
		keywords: newKeywordRegistry(),
		syntaxes: newSyntaxRegistry(),
		formats:  map[string]FormatChecker{},
		cache:    newValidatorCache(),
		checked:  newCheckedSet(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RegisterKeyword installs a syntax/keyword checker pair for name, applicable
// to the given instance kinds. Cache entries for exactly those kinds are
// invalidated and the syntax-checked set is cleared, since a schema judged
// valid before may be judged differently under the new keyword.
func (e *Engine) RegisterKeyword(name string, sc SyntaxChecker, kc KeywordChecker, kinds ...Kind) error {
	set := KindsOf(kinds...)
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.keywords.register(name, kc, set) {
		return ErrKeywordRegistered
	}
	if sc != nil {
		e.syntaxes.register(name, sc)
	}
	e.gen++
	e.cache.invalidate(set)
	e.checked.clear()
	return nil
}

// UnregisterKeyword removes the keyword from both registries. Unregistering an
// absent keyword is a no-op, not an error. Cache entries for the kinds the
// keyword had applied to are invalidated and the syntax-checked set cleared.
func (e *Engine) UnregisterKeyword(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	kinds, ok := e.keywords.unregister(name)
	e.syntaxes.unregister(name)
	e.gen++
	if ok {
		e.cache.invalidate(kinds)
	}
	e.checked.clear()
}

// RegisterFormat installs a checker for a format name. Formats are resolved
// lazily at validation time, so no cache invalidation is needed.
func (e *Engine) RegisterFormat(name string, fc FormatChecker) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.formats[name]; ok {
		return ErrFormatRegistered
	}
	e.formats[name] = fc
	return nil
}

// UnregisterFormat removes a format checker; absent names are a no-op.
func (e *Engine) UnregisterFormat(name string) {
	e.mu.Lock()
	delete(e.formats, name)
	e.mu.Unlock()
}

// ValidateSyntax checks the shape of the context's schema fragment against
// every syntax checker registered for a keyword the fragment uses. The result
// of a success is memoized: a fragment is a property of the schema alone, so a
// fragment judged valid once is never re-checked until a registration change.
// Failures are reported but not memoized.
func (e *Engine) ValidateSyntax(c *Context) Report {
	if e.skipSyntax {
		return ReportOK
	}
	key := canonicalKey(c.Schema)
	if e.checked.contains(key) {
		return ReportOK
	}

	e.mu.RLock()
	gen := e.gen
	checkers := e.syntaxes.lookup(c.Schema)
	e.mu.RUnlock()

	report := ReportOK
	for _, sc := range checkers {
		report = report.Merge(sc.CheckSyntax(c))
		if c.FailFast && !report.OK() {
			break
		}
	}
	if report.OK() {
		// Commit only if no registration raced the check; a stale success
		// must not survive a cleared checked set.
		e.mu.RLock()
		if e.gen == gen {
			e.checked.add(key)
		}
		e.mu.RUnlock()
	}
	return report
}

// InstanceValidator compiles (or retrieves from cache) the composite validator
// for the context's schema fragment and the instance's kind. Zero applicable
// checkers collapse to AlwaysTrue and a single checker is returned unwrapped;
// array and object kinds are additionally wrapped so validation descends into
// children.
func (e *Engine) InstanceValidator(c *Context, instance any) Validator {
	kind := KindOf(instance)
	key := cacheKey{kind: kind, schema: canonicalKey(c.Schema)}
	if v, ok := e.cache.get(key); ok {
		return v
	}

	e.mu.RLock()
	gen := e.gen
	entries := e.keywords.lookup(c.Schema, kind)
	e.mu.RUnlock()

	var base Validator
	switch len(entries) {
	case 0:
		base = AlwaysTrue
	case 1:
		base = &keywordValidator{keyword: entries[0].name, checker: entries[0].checker}
	default:
		children := make([]Validator, len(entries))
		for i, ent := range entries {
			children[i] = &keywordValidator{keyword: ent.name, checker: ent.checker}
		}
		base = &matchAll{children: children}
	}

	ret := base
	if schema, ok := c.Schema.(map[string]any); ok {
		switch kind {
		case KindArray:
			ret = &arrayValidator{schema: schema, wrapped: base}
		case KindObject:
			ret = &objectValidator{schema: schema, wrapped: base}
		}
	}

	e.mu.RLock()
	if e.gen == gen {
		e.cache.put(key, ret)
	}
	e.mu.RUnlock()
	return ret
}

// FormatValidator resolves a format name to a validator. Unknown formats are
// permissive by default and yield AlwaysTrue, since format vocabularies are
// open and dialect-defined.
func (e *Engine) FormatValidator(c *Context, name string) Validator {
	e.mu.RLock()
	fc, ok := e.formats[name]
	e.mu.RUnlock()
	if !ok {
		return AlwaysTrue
	}
	return &formatValidator{name: name, checker: fc}
}

type formatValidator struct {
	name    string
	checker FormatChecker
}

func (v *formatValidator) Validate(c *Context, instance any) Report {
	s, ok := instance.(string)
	if !ok {
		// Formats constrain string content only.
		return ReportOK
	}
	return v.checker.CheckFormat(c, s)
}

// validate is the recursive unit shared by the top-level entry point and the
// container wrappers: syntax gate first, then compile-or-fetch and execute.
// A fragment that fails its syntax check is reported and not applied to the
// instance. Values outside the data model are rejected here rather than
// classified as some kind they are not.
func (e *Engine) validate(c *Context, instance any) Report {
	if report := e.ValidateSyntax(c); !report.OK() {
		return report
	}
	if KindOf(instance) == KindInvalid {
		return FailWith(c.Issue("", CodeUnsupportedType,
			i18n.T(CodeUnsupportedType, nil), "goType", fmt.Sprintf("%T", instance)))
	}
	return e.InstanceValidator(c, instance).Validate(c, instance)
}

// ValidateOpt bundles per-call validation options.
type ValidateOpt struct {
	// FailFast stops at the first failing checker instead of collecting
	// every diagnostic.
	FailFast bool
}

// Validate checks instance against schema and returns nil on success or the
// collected Issues as the error. Fail-fast may be selected per call through
// ValidateOpt or ambiently through WithFailFast on the context.
func (e *Engine) Validate(ctx context.Context, schema, instance any, opts ...ValidateOpt) error {
	return e.ValidateReport(ctx, schema, instance, opts...).Err()
}

// ValidateReport is Validate returning the full Report, for callers that want
// the diagnostics without error unwrapping.
func (e *Engine) ValidateReport(ctx context.Context, schema, instance any, opts ...ValidateOpt) Report {
	c := e.NewContext(schema)
	var opt ValidateOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.FailFast || IsFailFast(ctx) {
		c = c.WithFailFast(true)
	}
	return e.validate(c, instance)
}

// ---- Validation-time context options ----

type contextKey int

const _ctxKeyFailFast contextKey = iota

// WithFailFast returns a child context that marks fail-fast validation
// behavior for calls that thread a context.Context instead of ValidateOpt.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current validation should stop on the first
// issue.
func IsFailFast(ctx context.Context) bool {
	b, _ := ctx.Value(_ctxKeyFailFast).(bool)
	return b
}
