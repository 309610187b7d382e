package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-acpiview/pkg/app"
)

func newDumpCommand(fs afero.Fs, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dump SIGNATURE",
		Short: "Dump every table with a signature to binary files",
		Long: `Write the raw bytes of every table carrying SIGNATURE to
<dump-dir>/<SIGNATURE><NNNN>.bin, numbering the files from 0000.

Examples:
  # Dump the DSDT to the current directory
  acpiview dump DSDT

  # Dump every SSDT to ./tables
  acpiview dump SSDT --dump-dir ./tables`,

		Args: func(cmd *cobra.Command, args []string) error {
			switch len(args) {
			case 0:
				return app.NewError(app.ErrCodeInvalidParameter, "missing option: dump requires a table signature", nil)
			case 1:
				return nil
			default:
				return rejectArgs(cmd, args[1:])
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, fs, opts, app.TableSelection{Name: args[0], Dump: true})
		},
	}
}
