package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/dtmf-codec/configs"
)

func TestGenerateExampleConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dtmf-codec.yaml")
	require.NoError(t, GenerateExampleConfig(path))
	require.FileExists(t, path)

	loaded, err := loadConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, configs.GetDefaultConfig(), loaded)

	require.NoError(t, ValidateConfigFile(path))
}

func TestLoadConfigFromFileMissing(t *testing.T) {
	_, err := loadConfigFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoadConfigFromJSONOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"output_format": "yaml", "audio": {"sample_rate": 16000}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := loadConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.OutputFormat)
	assert.Equal(t, 16000, cfg.Audio.SampleRate)

	// Fields absent from the file keep their defaults.
	assert.Equal(t, 15.0, cfg.Detect.FreqTolerance)
	assert.Equal(t, "HC{", cfg.Message.Prefix)
}

func TestValidateConfigFileRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0644))

	err := ValidateConfigFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestMergeConfigFlagOverrides(t *testing.T) {
	cfg := configs.GetDefaultConfig()
	ctx := &Context{OutputFormat: "json", OutputFile: "out/results.json", Verbose: true}

	mergeConfig(cfg, ctx)

	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "out/results.json", cfg.Output.File)
	assert.True(t, cfg.Verbose)
}

func TestMergeConfigZeroContextKeepsDefaults(t *testing.T) {
	cfg := configs.GetDefaultConfig()
	mergeConfig(cfg, &Context{})
	assert.Equal(t, configs.GetDefaultConfig(), cfg)
}
