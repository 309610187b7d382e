package app

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/deploymenttheory/go-acpiview/internal/logger"
)

// Context holds application-wide configuration and state
type Context struct {
	context.Context

	// Output preferences
	OutputFormat string
	Highlight    bool

	// Stdout receives the report, Stderr diagnostics
	Stdout io.Writer
	Stderr io.Writer

	Logger logger.Logger

	// DefaultTimeout bounds a run. Zero disables the bound.
	DefaultTimeout time.Duration
}

// NewContext creates a new application context
func NewContext() *Context {
	return &Context{
		Context:        context.Background(),
		OutputFormat:   "text",
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		Logger:         logger.Discard(),
		DefaultTimeout: 30 * time.Second,
	}
}

// WithTimeout creates a context with timeout. A non-positive timeout only adds cancellation.
func (c *Context) WithTimeout(timeout time.Duration) (*Context, context.CancelFunc) {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(c.Context, timeout)
	} else {
		ctx, cancel = context.WithCancel(c.Context)
	}
	newCtx := *c
	newCtx.Context = ctx
	return &newCtx, cancel
}

// Log returns the context logger, never nil
func (c *Context) Log() logger.Logger {
	if c.Logger == nil {
		return logger.Discard()
	}
	return c.Logger
}
