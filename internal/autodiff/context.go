package autodiff

import (
	"fmt"
	"slices"

	"github.com/gomlx/exceptions"
)

// Context carries values from a Function's Forward call to its paired
// Backward call.
//
// A Context is created fresh for each Apply. Values may be saved once, while
// Forward runs; Apply seals the context when Forward returns, after which it
// is read-only.
type Context struct {
	noGrad bool
	sealed bool
	saving bool // SaveForBackward was called
	saved  []any
}

// NewContext creates an unsealed context. When noGrad is true nothing will
// ever be saved, since Backward will never be called.
func NewContext(noGrad bool) *Context {
	return &Context{noGrad: noGrad}
}

// SaveForBackward stores values for the Backward call. It panics if the
// context is sealed or values were already saved.
func (c *Context) SaveForBackward(values ...any) {
	if c.sealed {
		exceptions.Panicf("SaveForBackward: context is sealed (saving is only allowed during Forward)")
	}
	if c.saving {
		exceptions.Panicf("SaveForBackward: values were already saved for this call")
	}
	c.saving = true
	if c.noGrad {
		return
	}
	c.saved = values
}

// SavedValues returns a copy of the saved values in the order they were
// saved.
func (c *Context) SavedValues() []any {
	return slices.Clone(c.saved)
}

// NoGrad reports whether gradients are not required for this call.
func (c *Context) NoGrad() bool {
	return c.noGrad
}

// Seal makes the context read-only.
func (c *Context) Seal() {
	c.sealed = true
}

// IsSealed reports whether the context is read-only.
func (c *Context) IsSealed() bool {
	return c.sealed
}

// Saved returns the i-th saved value as a T.
// It panics if nothing was saved at i or the value has a different type.
func Saved[T any](c *Context, i int) T {
	if c == nil || i >= len(c.saved) {
		panic(fmt.Sprintf("context has no saved value #%d", i))
	}
	v, ok := c.saved[i].(T)
	if !ok {
		panic(fmt.Sprintf("context saved value #%d is %T, not %T", i, c.saved[i], v))
	}
	return v
}
