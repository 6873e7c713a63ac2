package config

import "github.com/spf13/viper"

// Command-line defaults. Line width and baseline length differ from the
// library defaults.
const (
	DefaultProcesses      = 4
	DefaultSetting        = "all_types"
	DefaultMaskExtension  = "png"
	DefaultPcGtsVersion   = "2017"
	DefaultLineWidth      = 7
	DefaultBaselineLength = 15
	DefaultScale          = 1.0
	DefaultLogLevel       = "warn"
	DefaultOutput         = "yaml"
)

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	return &Config{
		Processes:      DefaultProcesses,
		Setting:        DefaultSetting,
		MaskExtension:  DefaultMaskExtension,
		PcGtsVersion:   DefaultPcGtsVersion,
		LineWidth:      DefaultLineWidth,
		BaselineLength: DefaultBaselineLength,
		Scale:          DefaultScale,
		LogLevel:       DefaultLogLevel,
		Output:         DefaultOutput,
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("input", d.Input)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("processes", d.Processes)
	v.SetDefault("setting", d.Setting)
	v.SetDefault("mask_extension", d.MaskExtension)
	v.SetDefault("pcgts_version", d.PcGtsVersion)
	v.SetDefault("line_width", d.LineWidth)
	v.SetDefault("baseline_length", d.BaselineLength)
	v.SetDefault("scale", d.Scale)
	v.SetDefault("setting_output", d.SettingOutput)
	v.SetDefault("color_legend", d.ColorLegend)
	v.SetDefault("fail_fast", d.FailFast)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("output", d.Output)
}
