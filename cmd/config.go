package cmd

import (
	"github.com/goccy/go-json"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-acpiview/internal/config"
)

func newConfigCommand(fs afero.Fs, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  rejectArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, fs, opts)
			if err != nil {
				return err
			}

			if cfg.Output == config.OutputJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(cfg)
			}

			encoder := yaml.NewEncoder(cmd.OutOrStdout())
			defer encoder.Close()
			encoder.SetIndent(2)
			return encoder.Encode(cfg)
		},
	}
}
