package keyrule

// Context carries the state of one validation step: the schema fragment being
// applied, the pointer positions inside the schema and the instance, a
// reference back to the engine for recursive sub-validation, and the failure
// handling mode. Contexts are immutable; derivation helpers return copies.
type Context struct {
	engine *Engine

	// Schema is the current schema fragment (a decoded data tree).
	Schema any

	// SchemaPath locates Schema inside the schema document.
	SchemaPath Pointer

	// InstancePath locates the value under validation inside the instance
	// document.
	InstancePath Pointer

	// FailFast stops composite validation after the first failing checker.
	// The default collects every diagnostic.
	FailFast bool
}

// NewContext returns a root context for validating against schema.
func (e *Engine) NewContext(schema any) *Context {
	return &Context{engine: e, Schema: schema, SchemaPath: Root(), InstancePath: Root()}
}

// Engine returns the engine the context belongs to, for recursive
// sub-validation from container and keyword checkers.
func (c *Context) Engine() *Engine { return c.engine }

// WithFailFast returns a copy with the fail-fast mode set.
func (c *Context) WithFailFast(on bool) *Context {
	out := *c
	out.FailFast = on
	return &out
}

// WithSchema returns a copy positioned at a sub-schema reached through the
// given schema pointer segment.
func (c *Context) WithSchema(fragment any, seg string) *Context {
	out := *c
	out.Schema = fragment
	out.SchemaPath = c.SchemaPath.Field(seg)
	return &out
}

// AtIndex returns a copy descended into the instance array element i.
func (c *Context) AtIndex(i int) *Context {
	out := *c
	out.InstancePath = c.InstancePath.Index(i)
	return &out
}

// AtProperty returns a copy descended into the instance object member name.
func (c *Context) AtProperty(name string) *Context {
	out := *c
	out.InstancePath = c.InstancePath.Field(name)
	return &out
}

// Issue builds an Issue stamped with the context's schema and instance
// pointers. The keyword name is appended to the schema pointer so diagnostics
// name the exact constraint that failed. kv lists parameter pairs.
func (c *Context) Issue(keyword, code, msg string, kv ...any) Issue {
	var params map[string]any
	if len(kv) > 0 {
		params = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			if k, ok := kv[i].(string); ok {
				params[k] = kv[i+1]
			}
		}
	}
	sp := c.SchemaPath
	if keyword != "" {
		sp = sp.Field(keyword)
	}
	return Issue{
		Keyword:      keyword,
		Code:         code,
		Message:      msg,
		SchemaPath:   sp.String(),
		InstancePath: c.InstancePath.String(),
		Params:       params,
	}
}
