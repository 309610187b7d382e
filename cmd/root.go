package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-acpiview/internal/config"
	"github.com/deploymenttheory/go-acpiview/internal/device"
	"github.com/deploymenttheory/go-acpiview/internal/logger"
	"github.com/deploymenttheory/go-acpiview/pkg/app"
	"github.com/deploymenttheory/go-acpiview/pkg/app/view"
)

// rootOptions holds the flag values shared by every command
type rootOptions struct {
	configFile   string
	quiet        bool
	highlight    string
	requirements string
	source       string
	image        string
	output       string
	logLevel     string
	logFormat    string
	dumpDir      string

	// Root command only
	selectName string
	list       bool
	dump       bool
}

// NewRootCommand builds the acpiview command tree. fs provides the platform sources,
// configuration files and the dump destination.
func NewRootCommand(fs afero.Fs) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "acpiview",
		Short: "Display ACPI table information",
		Long: `acpiview walks the ACPI table graph of a UEFI platform starting from the
RSDP published in the EFI configuration table, decodes every table it has a
parser for and reports consistency errors and warnings.

Tables are read from the running firmware (/sys/firmware/efi/systab and
/dev/mem) or from a captured image described by a YAML manifest.

Examples:
  # Trace every table
  acpiview

  # Trace only the FADT without consistency checks
  acpiview -s FACP -q

  # List installed tables and check the Arm SBBR 1.1 mandatory set
  acpiview -l -r 0x10001

  # Dump every SSDT from a captured image
  acpiview --image capture/platform.yaml -s SSDT -d`,
		Version:       version,
		Args:          rejectArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, fs, opts, app.TableSelection{Name: opts.selectName, List: opts.list, Dump: opts.dump})
		},
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return app.NewError(app.ErrCodeInvalidParameter, "invalid flag", err)
	})

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file (default acpiview-config.yaml in ., ./config, $HOME/.acpiview, /etc/acpiview)")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "disable consistency checking")
	pf.StringVar(&opts.highlight, "highlight", "", "colour highlighting (auto, always, never)")
	pf.Lookup("highlight").NoOptDefVal = config.HighlightAlways
	pf.StringVarP(&opts.requirements, "requirements", "r", "", "check mandatory tables for a specification ID (hex)")
	pf.StringVar(&opts.source, "source", "", "platform source (efi, image)")
	pf.StringVar(&opts.image, "image", "", "image manifest (selects --source image)")
	pf.StringVarP(&opts.output, "output", "o", "", "output format (text, json, yaml)")
	pf.StringVar(&opts.logLevel, "log-level", "", "diagnostic log level (debug, info, warn, error)")
	pf.StringVar(&opts.logFormat, "log-format", "", "diagnostic log format (pretty, text, json)")
	pf.StringVar(&opts.dumpDir, "dump-dir", "", "directory receiving dumped tables")

	// Table selection
	rootCmd.Flags().StringVarP(&opts.selectName, "select", "s", "", "trace only the table with this signature")
	rootCmd.Flags().BoolVarP(&opts.list, "list", "l", false, "list the installed tables")
	rootCmd.Flags().BoolVarP(&opts.dump, "dump", "d", false, "dump the selected table to a binary file")

	rootCmd.AddCommand(
		newListCommand(fs, opts),
		newDumpCommand(fs, opts),
		newConfigCommand(fs, opts),
		newTablesCommand(),
		newVersionCommand(),
	)

	return rootCmd
}

// Execute runs the command line and exits with the status matching the outcome
func Execute() {
	rootCmd := NewRootCommand(afero.NewOsFs())
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(app.ExitCode(err))
	}
}

func rejectArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return app.NewError(app.ErrCodeInvalidParameter, fmt.Sprintf("too many arguments: %s", strings.Join(args, " ")), nil)
	}
	return nil
}

// resolveConfig loads the configuration and applies explicitly set flags on top
func resolveConfig(cmd *cobra.Command, fs afero.Fs, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.LoadFs(fs, opts.configFile)
	if err != nil {
		return nil, app.NewError(app.ErrCodeInvalidParameter, "failed to load configuration", err)
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source = opts.source
	}
	if flags.Changed("image") {
		cfg.Image = opts.image
		if !flags.Changed("source") {
			cfg.Source = device.SourceImage
		}
	}
	if flags.Changed("highlight") {
		cfg.Highlight = opts.highlight
	}
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = opts.logFormat
	}
	if flags.Changed("dump-dir") {
		cfg.DumpDir = opts.dumpDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, app.NewError(app.ErrCodeInvalidParameter, "invalid configuration", err)
	}
	return cfg, nil
}

// requireValues rejects value flags that were given an empty value
func requireValues(cmd *cobra.Command, names ...string) error {
	for _, name := range names {
		flag := cmd.Flags().Lookup(name)
		if flag != nil && flag.Changed && flag.Value.String() == "" {
			return app.NewError(app.ErrCodeInvalidParameter, fmt.Sprintf("no value for -%s", flag.Shorthand), nil)
		}
	}
	return nil
}

func runView(cmd *cobra.Command, fs afero.Fs, opts *rootOptions, selection app.TableSelection) error {
	if err := requireValues(cmd, "select", "requirements"); err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd, fs, opts)
	if err != nil {
		return err
	}

	log := logger.FromFormat(cmd.ErrOrStderr(), cfg.LogFormat, logger.ParseLevel(cfg.LogLevel))
	if cfg.File != "" {
		log.Debug("configuration loaded", "file", cfg.File)
	}

	profiles, err := cfg.MandatoryProfiles()
	if err != nil {
		return app.NewError(app.ErrCodeInvalidParameter, "invalid profile", err)
	}

	ctx := app.NewContext()
	if c := cmd.Context(); c != nil {
		ctx.Context = c
	}
	ctx.Context = logger.WithContext(ctx.Context, log)
	ctx.Stdout = cmd.OutOrStdout()
	ctx.Stderr = cmd.ErrOrStderr()
	ctx.OutputFormat = cfg.Output
	ctx.Highlight = highlightFor(cfg, ctx.Stdout)
	ctx.Logger = log
	ctx.DefaultTimeout = cfg.Timeout

	ctx, cancel := ctx.WithTimeout(ctx.DefaultTimeout)
	defer cancel()

	req := &view.Request{
		Source: device.SourceOptions{
			Source:     cfg.Source,
			SystabPath: cfg.SystabPath,
			DevMemPath: cfg.DevMemPath,
			ImagePath:  cfg.Image,
		},
		Selection:      selection,
		Quiet:          opts.quiet,
		Requirements:   opts.requirements,
		DumpDir:        cfg.DumpDir,
		MaxDepth:       cfg.MaxDepth,
		MaxTableLength: cfg.MaxTableLength,
		Profiles:       profiles,
	}

	resp, err := view.NewHandler(fs).Handle(ctx, req)
	if resp != nil {
		if ferr := view.FormatOutput(ctx.Stdout, resp, cfg.Output); ferr != nil && err == nil {
			err = ferr
		}
		log.Info(view.FormatSummary(resp))
	}
	return err
}

// highlightFor resolves colour output for w. Auto applies only when w is a terminal file.
func highlightFor(cfg *config.Config, w any) bool {
	f, _ := w.(*os.File)
	return cfg.HighlightEnabled(f)
}
