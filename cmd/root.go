package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/dtmf-codec/configs"
	"github.com/RyanBlaney/dtmf-codec/internal/app"
)

var (
	configFile   string
	verbose      bool
	logLevel     string
	outputFormat string
	outputFile   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dtmf-codec",
	Short: "DTMF audio codec for keypad-encoded messages",
	Long: `A dual-tone audio codec that hides short text messages in
telephone-keypad tones and recovers them from the waveform alone.

Key features:
- T9 keypad mapping between text and the 12-symbol digit alphabet
- Tone synthesis on a fixed timing grid with fades and peak normalization
- FFT-based tone detection with nearest-reference frequency snapping
- Best-effort transcript reconstruction with per-position candidate sets
- JSON, YAML, CSV and table output`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is $HOME/.config/dtmf-codec/dtmf-codec.yaml)")

	// Output and logging flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table",
		"output format (json, yaml, csv, table)")
	rootCmd.PersistentFlags().StringVar(&outputFile, "output-file", "",
		"write formatted results to this file instead of stdout")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("output_format", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("output.file", rootCmd.PersistentFlags().Lookup("output-file"))
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if configFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(configFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		// Search config in home directory and /etc
		viper.AddConfigPath(home)
		viper.AddConfigPath(filepath.Join(home, ".config", "dtmf-codec"))
		viper.AddConfigPath("/etc/dtmf-codec")
		viper.AddConfigPath("./configs")
		viper.SetConfigName("dtmf-codec")
		viper.SetConfigType("yaml")
	}

	// Environment variable support
	viper.SetEnvPrefix("DTMF_CODEC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	// Set default values
	configs.SetDefaults(viper.GetViper())

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	} else if configFile != "" {
		fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", configFile, err)
		os.Exit(1)
	}
}

// initializeConfig initializes configuration after flags are parsed
func initializeConfig(cmd *cobra.Command) error {
	// Bind all flags to viper
	return bindFlags(cmd, viper.GetViper())
}

// flagConfigKeys maps flag names to their configuration keys where the
// two differ. Without the mapping the --output format flag would bind to
// the "output" file section instead of "output_format".
var flagConfigKeys = map[string]string{
	"output":        "output_format",
	"output-file":   "output.file",
	"log-level":     "log_level",
	"upper":         "message.uppercase",
	"show-segments": "output.show_segments",
}

// bindFlags binds each cobra flag to its associated viper configuration
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := f.Name
		if mapped, ok := flagConfigKeys[f.Name]; ok {
			key = mapped
		}

		// Environment variable name
		envVarSuffix := strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(key))

		// Apply the viper config value to the flag when the flag is not set
		// and viper has a value. Config sections are not flag values: a flag
		// named like a section (selftest --message vs the message.* keys)
		// must keep its own default.
		if !f.Changed && v.IsSet(key) {
			val := v.Get(key)
			if _, isSection := val.(map[string]any); !isSection {
				if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
					lastErr = err
				}
			}
		}

		// Bind the flag to viper
		if err := v.BindPFlag(key, f); err != nil {
			lastErr = err
		}

		// Bind to environment variable
		if err := v.BindEnv(key, "DTMF_CODEC_"+envVarSuffix); err != nil {
			lastErr = err
		}
	})

	return lastErr
}

// newAppContext seeds an app context from the global flags. The flags are
// also bound into viper, so only changed flags are copied here; copying
// their defaults would mask values from the config file.
func newAppContext(cmd *cobra.Command) *app.Context {
	ctx := &app.Context{
		ConfigFile:   configFile,
		SegmentIndex: -1,
	}
	if cmd.Flags().Changed("output") {
		ctx.OutputFormat = outputFormat
	}
	if cmd.Flags().Changed("output-file") {
		ctx.OutputFile = outputFile
	}
	if cmd.Flags().Changed("verbose") {
		ctx.Verbose = verbose
	}
	return ctx
}

// GetConfig returns the current viper instance
func GetConfig() *viper.Viper {
	return viper.GetViper()
}
