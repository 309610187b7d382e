package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-acpiview/pkg/app"
)

func newListCommand(fs afero.Fs, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the installed ACPI tables",
		Long: `List every table reachable from the RSDP in discovery order.

Examples:
  # List installed tables
  acpiview list

  # List tables from a captured image and check the SBBR 1.0 mandatory set
  acpiview list --image capture/platform.yaml -r 10000`,

		Args: rejectArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, fs, opts, app.TableSelection{List: true})
		},
	}
}
