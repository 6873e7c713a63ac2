package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gogpu/pagemask"
	imageio "github.com/gogpu/pagemask/internal/image"
)

type legendResult struct {
	Legend   string `json:"legend" yaml:"legend"`
	Swatches int    `json:"swatches" yaml:"swatches"`
	Source   string `json:"source" yaml:"source"`
}

func newLegendCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "legend",
		Short: "Draw the color legend of a mask type",
		Long: `Draw one labeled swatch per region color. The colors come from the
scheme of --setting, or from an existing settings document with --from.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString("out")
			from, _ := cmd.Flags().GetString("from")

			res := legendResult{Legend: out}
			var colors pagemask.ColorMap
			if from != "" {
				colors, err = readColorMap(from)
				if err != nil {
					return err
				}
				res.Source = from
			} else {
				settings, err := cfg.Settings()
				if err != nil {
					return err
				}
				colors = pagemask.NewColorMap(settings.Mode().Scheme())
				res.Source = string(settings.Mode())
			}

			if err := imageio.Save(out, pagemask.Legend(colors)); err != nil {
				return err
			}
			res.Swatches = colors.Swatches()
			return outputTo(cmd.OutOrStdout(), cfg.Output, res)
		},
	}

	cmd.Flags().String("out", pagemask.LegendFileName, "legend image path; the extension selects the format")
	cmd.Flags().String("from", "", "settings document (mask_setting.json) to take the colors from")
	addSettingsFlags(cmd.Flags())

	return cmd
}

func readColorMap(path string) (pagemask.ColorMap, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open settings document: %w", err)
	}
	defer func() { _ = f.Close() }()

	doc, err := pagemask.ReadSettingsDocument(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc.ColorMap, nil
}
