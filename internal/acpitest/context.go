// Package acpitest provides fakes and table fixtures for tests.
package acpitest

import (
	"bytes"
	"io"
)

// Context is a ParseContext that records everything a parser does.
type Context struct {
	Errors      uint32
	Warnings    uint32
	Out         bytes.Buffer
	Consistency bool
	Highlight   bool

	// Dispatched lists every address passed to ProcessTableAt, in call order.
	Dispatched []uint64
}

// NewContext returns a Context with consistency checking enabled.
func NewContext() *Context {
	return &Context{Consistency: true}
}

func (c *Context) IncrementErrorCount()    { c.Errors++ }
func (c *Context) IncrementWarningCount()  { c.Warnings++ }
func (c *Context) GetErrorCount() uint32   { return c.Errors }
func (c *Context) GetWarningCount() uint32 { return c.Warnings }
func (c *Context) ResetErrorCount()        { c.Errors = 0 }
func (c *Context) ResetWarningCount()      { c.Warnings = 0 }
func (c *Context) Output() io.Writer       { return &c.Out }
func (c *Context) ColourHighlighting() bool {
	return c.Highlight
}
func (c *Context) ConsistencyChecking() bool {
	return c.Consistency
}

// ProcessTableAt records the child table address.
func (c *Context) ProcessTableAt(address uint64) {
	c.Dispatched = append(c.Dispatched, address)
}
