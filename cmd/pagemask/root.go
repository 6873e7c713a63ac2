package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gogpu/pagemask"
	"github.com/gogpu/pagemask/internal/config"
)

// rootOptions holds values shared by every subcommand.
type rootOptions struct {
	cfgFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "pagemask",
		Short: "Render PageXML layout documents into class mask images",
		Long: `pagemask converts PageXML files into raster masks in which every region
is filled with a color encoding its type, for training page segmentation.

Modes:
  - all_types      one color per region type and sub-type
  - text_non_text  binary text / non-text masks
  - text_line      text line polygons colored like their region
  - baseline       text line baselines with end ticks`,
		Version:      pagemask.Version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(
		&opts.cfgFile, "config", "", "config file (default: ./pagemask.yaml or ~/.pagemask/pagemask.yaml)",
	)
	root.PersistentFlags().String(
		"log-level", config.DefaultLogLevel, "log level: debug, info, warn or error",
	)
	root.PersistentFlags().StringP(
		"output", "o", config.DefaultOutput, "output format: yaml or json",
	)

	root.AddCommand(
		newConvertCmd(opts),
		newLegendCmd(opts),
		newSettingsCmd(opts),
		newVersionCmd(),
	)
	return root
}

// load resolves the configuration of cmd and installs the logger.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags(), o.cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, _ := cfg.SlogLevel()
	pagemask.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})))
	return cfg, nil
}

// addSettingsFlags registers the flags that build pagemask.Settings.
func addSettingsFlags(fs *pflag.FlagSet) {
	fs.String("setting", config.DefaultSetting,
		"mask type: all_types, text_non_text, baseline or text_line")
	fs.String("mask-extension", config.DefaultMaskExtension,
		"mask image format: png, jpg, jpeg, gif, tif, tiff, bmp or dib")
	fs.String("pcgts-version", config.DefaultPcGtsVersion,
		"PageXML schema version tried first: 2017, 2013, 2019, 2019s, 2013s or 2017s")
	fs.Int("line-width", config.DefaultLineWidth,
		"baseline stroke width in pixels")
	fs.Int("baseline-length", config.DefaultBaselineLength,
		"length of the ticks drawn at baseline ends; 0 disables them")
}
