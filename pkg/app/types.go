package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deploymenttheory/go-acpiview/internal/services"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// TableSelection represents the table options shared across commands
type TableSelection struct {
	Name string
	List bool
	Dump bool
}

// Validate applies the option conflict rules of the acpiview command
func (ts *TableSelection) Validate() error {
	if ts.Name != "" && ts.List {
		return NewError(ErrCodeInvalidParameter, "too many arguments: -s cannot be combined with -l", nil)
	}
	if ts.Dump && ts.Name == "" {
		return NewError(ErrCodeInvalidParameter, "missing option: -d requires -s", nil)
	}
	if ts.Dump && ts.List {
		return NewError(ErrCodeInvalidParameter, "too many arguments: -d cannot be combined with -l", nil)
	}
	// The typed name prefixes dump file names
	if strings.ContainsAny(ts.Name, `/\`) {
		return NewError(ErrCodeInvalidParameter, fmt.Sprintf("invalid table name %q: path separators are not allowed", ts.Name), nil)
	}
	return nil
}

// Mode returns the report mode selected by the options
func (ts *TableSelection) Mode() types.ReportMode {
	switch {
	case ts.List:
		return types.ReportTableList
	case ts.Dump:
		return types.ReportDumpBinFile
	case ts.Name != "":
		return types.ReportSelected
	default:
		return types.ReportAll
	}
}

// String returns a string representation of the selection
func (ts *TableSelection) String() string {
	switch ts.Mode() {
	case types.ReportTableList:
		return "Installed tables"
	case types.ReportDumpBinFile:
		return "Dump: " + ts.Name
	case types.ReportSelected:
		return "Table: " + ts.Name
	default:
		return "All tables"
	}
}

// CommonError represents application-level errors
type CommonError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CommonError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CommonError) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeInvalidParameter = "INVALID_PARAMETER"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeUnsupported      = "UNSUPPORTED"
	ErrCodePlatformAccess   = "PLATFORM_ACCESS"
)

// Process exit statuses
const (
	ExitOK               = 0
	ExitFailure          = 1
	ExitInvalidParameter = 2
	ExitNotFound         = 3
)

// NewError creates a new CommonError
func NewError(code, message string, cause error) *CommonError {
	return &CommonError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Classify maps err onto a CommonError. Errors that already carry a code are returned as is.
func Classify(err error) *CommonError {
	if err == nil {
		return nil
	}

	var ce *CommonError
	if errors.As(err, &ce) {
		return ce
	}

	switch {
	case errors.Is(err, services.ErrInvalidOptions), errors.Is(err, services.ErrSinkNotWritable):
		return NewError(ErrCodeInvalidParameter, "invalid parameter", err)
	case errors.Is(err, services.ErrUnsupportedRevision):
		return NewError(ErrCodeUnsupported, "unsupported platform", err)
	case errors.Is(err, services.ErrRSDPNotFound), errors.Is(err, services.ErrNoRootParser):
		return NewError(ErrCodeNotFound, "ACPI tables not found", err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return NewError(ErrCodePlatformAccess, "run stopped before traversal", err)
	default:
		return NewError(ErrCodePlatformAccess, "platform access failed", err)
	}
}

// ExitCode returns the process exit status for err
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	switch Classify(err).Code {
	case ErrCodeInvalidParameter:
		return ExitInvalidParameter
	case ErrCodeNotFound, ErrCodeUnsupported:
		return ExitNotFound
	default:
		return ExitFailure
	}
}
