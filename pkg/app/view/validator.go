package view

import (
	"fmt"

	"github.com/deploymenttheory/go-acpiview/internal/config"
	"github.com/deploymenttheory/go-acpiview/internal/device"
	"github.com/deploymenttheory/go-acpiview/pkg/app"
)

// Validate validates a view request
func (r *Request) Validate() error {
	if err := r.Selection.Validate(); err != nil {
		return err
	}

	if r.Requirements != "" {
		if _, err := config.ParseSpecID(r.Requirements); err != nil {
			return app.NewError(app.ErrCodeInvalidParameter, "invalid -r value", err)
		}
	}

	switch r.Source.Source {
	case device.SourceEFI, "":
	case device.SourceImage:
		if r.Source.ImagePath == "" {
			return app.NewError(app.ErrCodeInvalidParameter, "source image requires --image", nil)
		}
	default:
		return app.NewError(app.ErrCodeInvalidParameter, fmt.Sprintf("unknown source %q", r.Source.Source), nil)
	}

	if r.MaxDepth < 0 {
		return app.NewError(app.ErrCodeInvalidParameter, fmt.Sprintf("max depth %d is negative", r.MaxDepth), nil)
	}

	return nil
}

// SpecID returns the parsed requirements ID and whether the check is enabled
func (r *Request) SpecID() (uint64, bool) {
	if r.Requirements == "" {
		return 0, false
	}
	id, err := config.ParseSpecID(r.Requirements)
	if err != nil {
		return 0, false
	}
	return id, true
}
