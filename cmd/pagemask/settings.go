package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/pagemask"
)

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Print the settings document of a mask type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			settings, err := cfg.Settings()
			if err != nil {
				return err
			}

			doc := pagemask.NewSettingsDocument(settings)
			if cfg.Output == outputFormatJSON {
				return doc.WriteJSON(cmd.OutOrStdout())
			}
			return doc.WriteYAML(cmd.OutOrStdout())
		},
	}
	addSettingsFlags(cmd.Flags())
	return cmd
}
