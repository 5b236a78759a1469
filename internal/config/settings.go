package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/rgehrsitz/drawdown/internal/output"
)

// envPrefix is the prefix of environment overrides, e.g. DRAWDOWN_LOGGING_LEVEL
const envPrefix = "DRAWDOWN"

// Settings holds application settings, as opposed to the plan being calculated
type Settings struct {
	Logging        LoggingSettings `mapstructure:"logging"`
	Output         OutputSettings  `mapstructure:"output"`
	Server         ServerSettings  `mapstructure:"server"`
	RegulatoryFile string          `mapstructure:"regulatory_file"`
}

// LoggingSettings holds logging configuration options
type LoggingSettings struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputFile string `mapstructure:"output_file"` // optional file output
}

// OutputSettings holds the default report format
type OutputSettings struct {
	Format string `mapstructure:"format"` // a report formatter name or alias
}

// ServerSettings configures the HTTP facade
type ServerSettings struct {
	Addr string `mapstructure:"addr"`
}

// newViper builds a viper instance with YAML files, DRAWDOWN_ environment
// overrides and the application defaults
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output_file", "")
	v.SetDefault("output.format", "console")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("regulatory_file", "")
	return v
}

// LoadSettings reads the settings file at path, if any, and applies environment
// overrides. An empty path yields defaults plus environment.
func LoadSettings(path string) (*Settings, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return &settings, nil
}

// Validate checks the enumerated settings
func (s *Settings) Validate() error {
	if _, err := parseLevel(s.Logging.Level); err != nil {
		return err
	}
	switch s.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s", s.Logging.Format)
	}
	if s.Output.Format != "" && output.GetFormatterByName(s.Output.Format) == nil {
		return fmt.Errorf("invalid output format: %s", s.Output.Format)
	}
	return nil
}
