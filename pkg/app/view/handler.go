package view

import (
	"bytes"
	"io"

	"github.com/spf13/afero"

	"github.com/deploymenttheory/go-acpiview/internal/device"
	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
	"github.com/deploymenttheory/go-acpiview/internal/managers/parsers"
	"github.com/deploymenttheory/go-acpiview/internal/managers/validation"
	"github.com/deploymenttheory/go-acpiview/internal/services"
	"github.com/deploymenttheory/go-acpiview/pkg/app"
)

// Handler runs view requests against platforms opened from Fs
type Handler struct {
	// Fs provides the platform sources and receives dumped tables
	Fs afero.Fs

	Registry interfaces.ParserRegistry

	// Open opens the platform for a request. Nil uses device.Open.
	Open func(fs afero.Fs, opts device.SourceOptions) (interfaces.Platform, error)
}

// NewHandler creates a handler with the built-in parsers
func NewHandler(fs afero.Fs) *Handler {
	return &Handler{
		Fs:       fs,
		Registry: parsers.NewStaticParserRegistry(),
	}
}

// Handle processes a view request. In text output the report streams to ctx.Stdout; other
// formats capture it in the response. A response is returned with any error raised after
// the platform was opened.
func (h *Handler) Handle(ctx *app.Context, req *Request) (*Response, error) {
	// 1. Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	log := ctx.Log().With("source", sourceName(req.Source))
	log.Debug("starting acpiview", "selection", req.Selection.String())

	// 2. Open the platform
	platform, err := h.open(req.Source)
	if err != nil {
		return nil, app.NewError(app.ErrCodePlatformAccess, "failed to open platform", err)
	}
	defer platform.Close()

	// 3. Run the traversal
	var captured *bytes.Buffer
	var out io.Writer = ctx.Stdout
	if ctx.OutputFormat != "" && ctx.OutputFormat != "text" {
		captured = &bytes.Buffer{}
		out = captured
	}
	if out == nil {
		out = io.Discard
	}

	validator := validation.NewMandatoryTableValidator(req.Profiles...)
	engine := services.NewAcpiViewEngine(h.Registry, validator, h.Fs, out, log)

	specID, validate := req.SpecID()
	result, runErr := engine.Run(ctx, platform, services.Options{
		Mode:                   req.Selection.Mode(),
		SelectedName:           req.Selection.Name,
		ConsistencyChecking:    !req.Quiet,
		Highlight:              ctx.Highlight && captured == nil,
		MandatoryTableValidate: validate,
		MandatoryTableSpec:     specID,
		MaxDepth:               req.MaxDepth,
		MaxTableLength:         req.MaxTableLength,
		DumpDir:                req.DumpDir,
	})

	if result == nil {
		return nil, app.Classify(runErr)
	}

	response := &Response{
		Source:    sourceName(req.Source),
		Selection: req.Selection.String(),
		Result:    *result,
	}
	if captured != nil {
		response.Report = captured.String()
	}
	if reporter, ok := platform.(device.CacheReporter); ok {
		if stats, cached := reporter.CacheStats(); cached {
			response.MemoryCache = &stats
			log.Debug("physical memory cache", "hits", stats.Hits, "misses", stats.Misses,
				"hit_rate", stats.HitRate(), "bytes_read", stats.BytesRead)
		}
	}

	if runErr != nil {
		return response, app.Classify(runErr)
	}
	return response, nil
}

func (h *Handler) open(opts device.SourceOptions) (interfaces.Platform, error) {
	if h.Open != nil {
		return h.Open(h.Fs, opts)
	}
	return device.Open(h.Fs, opts)
}

func sourceName(opts device.SourceOptions) string {
	if opts.Source == "" {
		return device.SourceEFI
	}
	return opts.Source
}
