package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/dtmf-codec/configs"
	"github.com/RyanBlaney/dtmf-codec/internal/app"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and manage configuration files",
	Long: `Inspect the effective configuration, validate a configuration file,
or write an annotated example to start from.

Examples:
  # Display the merged configuration the codec would run with
  dtmf-codec config show

  # Check a file before pointing --config at it
  dtmf-codec config validate ./configs/dtmf-codec.yaml

  # Write a starting point with every default filled in
  dtmf-codec config example dtmf-codec.yaml`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display all effective configuration values",
	Long: `Load the configuration the same way encode and decode do and display
every value in a structured format, so flag, environment, and file
overrides can be verified.

Examples:
  # Show the defaults
  dtmf-codec config show

  # Show with a specific config file applied
  dtmf-codec --config /path/to/dtmf-codec.yaml config show`,
	RunE: runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.ValidateConfigFile(args[0])
	},
}

var configExampleCmd = &cobra.Command{
	Use:   "example [file]",
	Short: "Write an example configuration file with default values",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile := "dtmf-codec.yaml"
		if len(args) > 0 {
			outputFile = args[0]
		}
		return app.GenerateExampleConfig(outputFile)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configExampleCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	fmt.Println("DTMF CODEC CONFIGURATION")
	fmt.Println(strings.Repeat("=", 80))

	// Load configuration
	config, err := configs.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	printSection("APPLICATION SETTINGS")
	printKeyValue("Verbose", fmt.Sprintf("%t", config.Verbose))
	printKeyValue("Log Level", config.LogLevel)
	printKeyValue("Log Format", config.LogFormat)
	printKeyValue("Output Format", config.OutputFormat)

	printSection("AUDIO CONFIGURATION")
	printKeyValue("Sample Rate", fmt.Sprintf("%d Hz", config.Audio.SampleRate))
	printKeyValue("Tone Duration", config.Audio.ToneDuration.String())
	printKeyValue("Gap Duration", config.Audio.GapDuration.String())
	printKeyValue("Fade Duration", config.Audio.FadeDuration.String())
	printKeyValue("Tone Amplitude", fmt.Sprintf("%.2f", config.Audio.ToneAmplitude))
	printKeyValue("Peak Level", fmt.Sprintf("%.2f", config.Audio.PeakLevel))

	printSection("DETECTION CONFIGURATION")
	printKeyValue("Frequency Tolerance", fmt.Sprintf("%.1f Hz", config.Detect.FreqTolerance))
	printKeyValue("Silence Floor", fmt.Sprintf("%.3f", config.Detect.SilenceFloor))

	printSubsection("Row Band")
	printKeyValue("  Low", fmt.Sprintf("%.1f Hz", config.Detect.RowBand.Low))
	printKeyValue("  High", fmt.Sprintf("%.1f Hz", config.Detect.RowBand.High))

	printSubsection("Column Band")
	printKeyValue("  Low", fmt.Sprintf("%.1f Hz", config.Detect.ColBand.Low))
	printKeyValue("  High", fmt.Sprintf("%.1f Hz", config.Detect.ColBand.High))

	printSection("MESSAGE CONFIGURATION")
	printKeyValue("Uppercase", fmt.Sprintf("%t", config.Message.Uppercase))
	printKeyValue("Prefix", config.Message.Prefix)
	printKeyValue("Suffix", config.Message.Suffix)

	printSection("OUTPUT CONFIGURATION")
	printKeyValue("File", config.Output.File)
	printKeyValue("Show Segments", fmt.Sprintf("%t", config.Output.ShowSegments))

	fmt.Println()
	fmt.Println(ColorGreen + strings.Repeat("-", 80))
	fmt.Println("CONFIGURATION LOADED SUCCESSFULLY")
	if used := GetConfig().ConfigFileUsed(); used != "" {
		fmt.Printf("Config file: %s\n", used)
	}
	fmt.Println(strings.Repeat("=", 80) + ColorReset)

	return nil
}
