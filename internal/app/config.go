package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/dtmf-codec/configs"
)

// loadAndMergeConfig loads configuration from viper and merges CLI flags
func loadAndMergeConfig(ctx *Context) (*configs.Config, error) {
	// Base configuration: defaults, discovered config file, environment
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load base configuration: %w", err)
	}

	// Override with CLI flags
	mergeConfig(config, ctx)

	// Validate the final configuration
	if err := configs.ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// mergeConfig overrides configuration values with CLI flags
func mergeConfig(config *configs.Config, ctx *Context) {
	if ctx.OutputFormat != "" {
		config.OutputFormat = ctx.OutputFormat
	}
	if ctx.OutputFile != "" {
		config.Output.File = ctx.OutputFile
	}
	if ctx.Verbose {
		config.Verbose = true
	}
}

// loadConfigFromFile loads a configuration file over the defaults
func loadConfigFromFile(filePath string) (*configs.Config, error) {
	// Check if file exists
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file does not exist: %s", filePath)
	}

	// Determine file format
	ext := filepath.Ext(filePath)
	switch ext {
	case ".yaml", ".yml":
		return loadConfigFromYAML(filePath)
	case ".json":
		return loadConfigFromJSON(filePath)
	default:
		// Try YAML first, then JSON
		if cfg, err := loadConfigFromYAML(filePath); err == nil {
			return cfg, nil
		}
		return loadConfigFromJSON(filePath)
	}
}

// loadConfigFromYAML loads from YAML file
func loadConfigFromYAML(filePath string) (*configs.Config, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open YAML config file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML config file: %w", err)
	}

	config := configs.GetDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return config, nil
}

// loadConfigFromJSON loads from JSON file
func loadConfigFromJSON(filePath string) (*configs.Config, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open JSON config file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON config file: %w", err)
	}

	config := configs.GetDefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config: %w", err)
	}

	return config, nil
}

// GenerateExampleConfig generates an example configuration file
func GenerateExampleConfig(outputFile string) error {
	exampleConfig := configs.GetDefaultConfig()

	// Write to YAML file
	data, err := yaml.Marshal(exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(outputFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("✅ Example configuration written to: %s\n", outputFile)
	return nil
}

// ValidateConfigFile validates a configuration file
func ValidateConfigFile(configFile string) error {
	config, err := loadConfigFromFile(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := configs.ValidateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	fmt.Printf("✅ Configuration is valid: %s\n", configFile)
	fmt.Printf("   - Sample rate: %d Hz\n", config.Audio.SampleRate)
	fmt.Printf("   - Tone duration: %s, gap %s, fade %s\n",
		config.Audio.ToneDuration, config.Audio.GapDuration, config.Audio.FadeDuration)
	fmt.Printf("   - Message markers: %s...%s\n", config.Message.Prefix, config.Message.Suffix)

	return nil
}
