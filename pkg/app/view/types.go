package view

import (
	"github.com/deploymenttheory/go-acpiview/internal/device"
	"github.com/deploymenttheory/go-acpiview/internal/managers/validation"
	"github.com/deploymenttheory/go-acpiview/internal/services"
	"github.com/deploymenttheory/go-acpiview/pkg/app"
)

// Request represents one acpiview invocation
type Request struct {
	Source    device.SourceOptions
	Selection app.TableSelection

	// Quiet disables consistency checking
	Quiet bool

	// Requirements is the hexadecimal mandatory table specification ID. Empty disables the check.
	Requirements string

	// Traversal bounds and dump destination; zero values select the defaults
	DumpDir        string
	MaxDepth       int
	MaxTableLength uint32

	// Profiles adds or overrides mandatory table profiles
	Profiles []validation.Profile
}

// Response represents the outcome of one invocation
type Response struct {
	Source    string          `json:"source" yaml:"source"`
	Selection string          `json:"selection" yaml:"selection"`
	Result    services.Result `json:"result" yaml:"result"`

	// MemoryCache holds physical memory cache statistics for the efi source
	MemoryCache *device.CacheStats `json:"memory_cache,omitempty" yaml:"memory_cache,omitempty"`

	// Report holds the trace text when it was captured instead of streamed
	Report string `json:"report,omitempty" yaml:"report,omitempty"`
}

// Passed reports whether the run found no errors
func (r *Response) Passed() bool {
	if r.Result.Errors != 0 {
		return false
	}
	return r.Result.Mandatory == nil || r.Result.Mandatory.Passed()
}
