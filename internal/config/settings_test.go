package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadSettings_Defaults(t *testing.T) {
	settings, err := LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, "warn", settings.Logging.Level)
	assert.Equal(t, "console", settings.Logging.Format)
	assert.Equal(t, "console", settings.Output.Format)
	assert.Equal(t, ":8080", settings.Server.Addr)
	assert.Empty(t, settings.RegulatoryFile)
}

func TestLoadSettings_File(t *testing.T) {
	settings, err := LoadSettings(filepath.Join("testdata", "settings.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "debug", settings.Logging.Level)
	assert.Equal(t, "json", settings.Logging.Format)
	assert.Equal(t, "csv", settings.Output.Format)
	assert.Equal(t, "127.0.0.1:9090", settings.Server.Addr)
}

func TestLoadSettings_EnvironmentOverride(t *testing.T) {
	t.Setenv("DRAWDOWN_OUTPUT_FORMAT", "json")
	t.Setenv("DRAWDOWN_REGULATORY_FILE", "/etc/drawdown/regulatory.yaml")

	settings, err := LoadSettings(filepath.Join("testdata", "settings.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "json", settings.Output.Format)
	assert.Equal(t, "/etc/drawdown/regulatory.yaml", settings.RegulatoryFile)
}

func TestLoadSettings_Invalid(t *testing.T) {
	t.Setenv("DRAWDOWN_LOGGING_LEVEL", "verbose")

	_, err := LoadSettings("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestLoadSettings_OutputFormatAliases(t *testing.T) {
	for _, format := range []string{"console-lite", "lite", "summary", "verbose"} {
		t.Setenv("DRAWDOWN_OUTPUT_FORMAT", format)
		settings, err := LoadSettings("")
		require.NoError(t, err, format)
		assert.Equal(t, format, settings.Output.Format)
	}

	t.Setenv("DRAWDOWN_OUTPUT_FORMAT", "xml")
	_, err := LoadSettings("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggingSettings{Level: "info", Format: "json"}, "")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger(LoggingSettings{Level: "error", Format: "console"}, "debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel), "override takes precedence")
}

func TestNewLogger_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "drawdown.log")

	logger, err := NewLogger(LoggingSettings{Level: "info", Format: "json", OutputFile: path}, "")
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()

	assert.FileExists(t, path)
}

func TestNewLogger_Invalid(t *testing.T) {
	_, err := NewLogger(LoggingSettings{Level: "loud"}, "")
	assert.Error(t, err)

	_, err = NewLogger(LoggingSettings{Format: "xml"}, "")
	assert.Error(t, err)
}
