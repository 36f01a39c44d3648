package keyrule

import (
	"strconv"
	"strings"
)

// Pointer builds RFC 6901 JSON Pointers in a chain-safe way. The zero value is
// the document root and renders as "/".
type Pointer struct {
	parts []string
}

// Root returns the document-root pointer.
func Root() Pointer { return Pointer{} }

// Field appends an object member name, escaping '~' -> '~0' and '/' -> '~1'.
func (p Pointer) Field(name string) Pointer {
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return Pointer{parts: append(append([]string{}, p.parts...), esc)}
}

// Index appends an array index.
func (p Pointer) Index(i int) Pointer {
	return Pointer{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

// String renders the pointer; the root renders as "/".
func (p Pointer) String() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}
