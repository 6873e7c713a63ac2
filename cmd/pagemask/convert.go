package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/pagemask"
	"github.com/gogpu/pagemask/internal/config"
)

// convertSummary is printed after a batch.
type convertSummary struct {
	Files     int              `json:"files" yaml:"files"`
	Converted int              `json:"converted" yaml:"converted"`
	Failed    int              `json:"failed" yaml:"failed"`
	Outputs   []string         `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Failures  []convertFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
	Settings  string           `json:"settings,omitempty" yaml:"settings,omitempty"`
	Legend    string           `json:"legend,omitempty" yaml:"legend,omitempty"`
}

type convertFailure struct {
	Input string `json:"input" yaml:"input"`
	Error string `json:"error" yaml:"error"`
}

func newConvertCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert PageXML files into mask images",
		Long: `Convert every PageXML file matched by --input into <name>.mask.<ext>
in --output-dir. --input may be a file, a directory (all *.xml files in it)
or a glob pattern such as "pages/*.xml".

A file that fails does not stop the batch unless --fail-fast is set. The
command exits non-zero when any file failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return runConvert(cmd, cfg)
		},
	}

	fs := cmd.Flags()
	fs.StringP("input", "i", "", "PageXML file, directory or glob pattern")
	fs.String("output-dir", "", "directory the masks are written to")
	fs.Int("processes", config.DefaultProcesses, "files converted in parallel; 0 uses every CPU")
	fs.Float64("scale", config.DefaultScale, "scale factor applied to the page size and coordinates")
	fs.Bool("setting-output", false, "also write mask_setting.json to the output directory")
	fs.Bool("color-legend", false, "also write the color legend image_palette.png to the output directory")
	fs.Bool("fail-fast", false, "stop starting new files after the first failure")
	addSettingsFlags(fs)

	return cmd
}

func runConvert(cmd *cobra.Command, cfg *config.Config) error {
	if cfg.Input == "" || cfg.OutputDir == "" {
		return errors.New("--input and --output-dir are required")
	}

	settings, err := cfg.Settings()
	if err != nil {
		return err
	}
	conv, err := pagemask.NewConverter(settings, cfg.OutputDir, cfg.ConverterOptions()...)
	if err != nil {
		return err
	}

	var summary convertSummary
	if cfg.SettingOutput {
		if summary.Settings, err = conv.WriteSettingsDocument("json"); err != nil {
			return err
		}
	}
	if cfg.ColorLegend {
		if summary.Legend, err = conv.WriteLegend(); err != nil {
			return err
		}
	}

	files, err := pagemask.ExpandInputs(cfg.Input)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		pagemask.Logger().Warn("no input files matched", "input", cfg.Input)
	}

	for _, r := range conv.ConvertAll(cmd.Context(), files) {
		summary.Files++
		if r.Err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, convertFailure{Input: r.Input, Error: r.Err.Error()})
			continue
		}
		summary.Converted++
		summary.Outputs = append(summary.Outputs, r.Output)
	}

	if err := outputTo(cmd.OutOrStdout(), cfg.Output, summary); err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", summary.Failed, summary.Files)
	}
	return nil
}
