package services

import (
	"sync/atomic"

	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
)

// ErrorCounters holds the run-scoped error and warning totals.
// The counters only ever grow between resets.
type ErrorCounters struct {
	errors   atomic.Uint32
	warnings atomic.Uint32
}

var _ interfaces.ErrorCounter = (*ErrorCounters)(nil)

// NewErrorCounters returns zeroed counters
func NewErrorCounters() *ErrorCounters {
	return &ErrorCounters{}
}

// IncrementErrorCount records one consistency error
func (c *ErrorCounters) IncrementErrorCount() { c.errors.Add(1) }

// IncrementWarningCount records one consistency warning
func (c *ErrorCounters) IncrementWarningCount() { c.warnings.Add(1) }

// GetErrorCount returns the number of errors recorded since the last reset
func (c *ErrorCounters) GetErrorCount() uint32 { return c.errors.Load() }

// GetWarningCount returns the number of warnings recorded since the last reset
func (c *ErrorCounters) GetWarningCount() uint32 { return c.warnings.Load() }

// ResetErrorCount sets the error count to zero
func (c *ErrorCounters) ResetErrorCount() { c.errors.Store(0) }

// ResetWarningCount sets the warning count to zero
func (c *ErrorCounters) ResetWarningCount() { c.warnings.Store(0) }

// Reset sets both counts to zero
func (c *ErrorCounters) Reset() {
	c.ResetErrorCount()
	c.ResetWarningCount()
}
