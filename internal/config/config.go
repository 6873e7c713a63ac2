// Package config loads pagemask command-line configuration from defaults,
// an optional YAML file, PAGEMASK_* environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gogpu/pagemask"
	imageio "github.com/gogpu/pagemask/internal/image"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "PAGEMASK"

// ErrInvalid is returned by Validate for out of range values.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the command-line configuration.
type Config struct {
	Input          string  `mapstructure:"input" yaml:"input"`
	OutputDir      string  `mapstructure:"output_dir" yaml:"output_dir"`
	Processes      int     `mapstructure:"processes" yaml:"processes"`
	Setting        string  `mapstructure:"setting" yaml:"setting"`               // rendering mode
	MaskExtension  string  `mapstructure:"mask_extension" yaml:"mask_extension"` // output image format
	PcGtsVersion   string  `mapstructure:"pcgts_version" yaml:"pcgts_version"`   // namespace probed first
	LineWidth      int     `mapstructure:"line_width" yaml:"line_width"`
	BaselineLength int     `mapstructure:"baseline_length" yaml:"baseline_length"`
	Scale          float64 `mapstructure:"scale" yaml:"scale"`
	SettingOutput  bool    `mapstructure:"setting_output" yaml:"setting_output"`
	ColorLegend    bool    `mapstructure:"color_legend" yaml:"color_legend"`
	FailFast       bool    `mapstructure:"fail_fast" yaml:"fail_fast"`
	LogLevel       string  `mapstructure:"log_level" yaml:"log_level"`
	Output         string  `mapstructure:"output" yaml:"output"` // yaml or json
}

// Load builds a Config. Later sources override earlier ones: defaults,
// the config file, environment variables, then flags that were set on the
// command line. flags may be nil.
//
// cfgFile names the config file; when empty, pagemask.yaml is looked up in
// the working directory and in $HOME/.pagemask. A missing default file is
// not an error.
func Load(flags *pflag.FlagSet, cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("pagemask")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.pagemask")
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			if f.Name == "config" {
				return
			}
			if err := v.BindPFlag(key(f.Name), f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", bindErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// key maps a flag name such as "output-dir" to its config key.
func key(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

// Validate checks every value that has a fixed range.
func (c *Config) Validate() error {
	if _, err := pagemask.ParseMode(c.Setting); err != nil {
		return err
	}
	if _, err := pagemask.ParseSchemaVersion(c.PcGtsVersion); err != nil {
		return err
	}
	if !imageio.Supported(c.MaskExtension) {
		return fmt.Errorf("%w: mask_extension %q (supported: %s)",
			pagemask.ErrUnsupportedFormat, c.MaskExtension, strings.Join(imageio.Formats(), ", "))
	}
	if c.LineWidth < 1 {
		return fmt.Errorf("%w: line_width must be at least 1, got %d", ErrInvalid, c.LineWidth)
	}
	if c.BaselineLength < 0 {
		return fmt.Errorf("%w: baseline_length must not be negative, got %d", ErrInvalid, c.BaselineLength)
	}
	if !(c.Scale > 0) {
		return fmt.Errorf("%w: scale must be positive, got %v", ErrInvalid, c.Scale)
	}
	if c.Processes < 0 {
		return fmt.Errorf("%w: processes must not be negative, got %d", ErrInvalid, c.Processes)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.Output {
	case "yaml", "json":
	default:
		return fmt.Errorf("%w: output must be yaml or json, got %q", ErrInvalid, c.Output)
	}
	return nil
}

// Settings converts c into library settings.
func (c *Config) Settings() (pagemask.Settings, error) {
	mode, err := pagemask.ParseMode(c.Setting)
	if err != nil {
		return pagemask.Settings{}, err
	}
	version, err := pagemask.ParseSchemaVersion(c.PcGtsVersion)
	if err != nil {
		return pagemask.Settings{}, err
	}
	return pagemask.NewSettings(
		pagemask.WithMode(mode),
		pagemask.WithExtension(strings.ToLower(strings.TrimPrefix(c.MaskExtension, "."))),
		pagemask.WithSchemaVersion(version),
		pagemask.WithLineWidth(c.LineWidth),
		pagemask.WithTickLength(c.BaselineLength),
	), nil
}

// ConverterOptions returns the batch options of c.
func (c *Config) ConverterOptions() []pagemask.ConverterOption {
	return []pagemask.ConverterOption{
		pagemask.WithScale(c.Scale),
		pagemask.WithWorkers(c.Processes),
		pagemask.WithFailFast(c.FailFast),
	}
}

// SlogLevel parses the log level name.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return level, nil
}
