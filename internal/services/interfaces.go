package services

import (
	"context"

	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
)

// AcpiViewService runs table traversals against a platform
type AcpiViewService interface {
	Run(ctx context.Context, platform interfaces.Platform, opts Options) (*Result, error)
}

// RSDPLocatorService finds the root pointer in a configuration table directory
type RSDPLocatorService interface {
	Locate(platform interfaces.Platform, counters interfaces.ErrorCounter) (*RootPointer, error)
}
