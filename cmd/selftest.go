package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/RyanBlaney/dtmf-codec/configs"
	"github.com/RyanBlaney/dtmf-codec/pkg/audio"
	"github.com/RyanBlaney/dtmf-codec/pkg/dtmf"
	"github.com/RyanBlaney/dtmf-codec/pkg/keypad"
	"github.com/RyanBlaney/dtmf-codec/pkg/logging"
)

var (
	selftestMessage   string
	selftestVerbose   bool
	selftestKeepFiles bool
)

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Run an end-to-end check of the codec pipeline",
	Long: `Push a message through every stage of the codec and verify each one.

The self-test exercises the full pipeline against the loaded
configuration:
- Configuration loading and validation
- Keypad mapping and candidate-set soundness
- Dual-tone waveform synthesis
- WAV write and read-back round trip
- Window detection and digit recovery
- Message reconstruction with marker anchoring

Examples:
  # Run with the default test message
  dtmf-codec selftest

  # Push a specific message through the pipeline
  dtmf-codec selftest --message "HC{PIPELINE}" --verbose

  # Keep the intermediate WAV file for inspection
  dtmf-codec selftest --keep-files`,
	Args: cobra.NoArgs,
	RunE: runSelftest,
}

func init() {
	rootCmd.AddCommand(selftestCmd)

	selftestCmd.Flags().StringVar(&selftestMessage, "message", "HC{TEST}",
		"message to push through the pipeline")
	selftestCmd.Flags().BoolVarP(&selftestVerbose, "verbose", "v", false,
		"verbose output")
	selftestCmd.Flags().BoolVar(&selftestKeepFiles, "keep-files", false,
		"keep the intermediate WAV file")
}

func runSelftest(cmd *cobra.Command, args []string) error {
	verbose := selftestVerbose || viper.GetBool("verbose")

	printHeader("Codec Pipeline Self-Test", selftestMessage)

	timer := NewPerformanceTimer()
	timer.StartEvent("total_test")

	// Step 1: Configuration Validation
	timer.StartEvent("config_validation")
	printStep(1, "Configuration Validation")

	appConfig, err := configs.LoadConfig()
	if err != nil {
		printError("Failed to load application config: %v", err)
		return fmt.Errorf("failed to load application config: %w", err)
	}
	printSuccess("Application configuration loaded")

	if err := configs.ValidateConfig(appConfig); err != nil {
		printError("Configuration validation failed: %v", err)
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	printSuccess("Configuration validation passed")

	toneConfig := appConfig.ToneConfig()
	printInfo("Tone grid: %d Hz, %d samples per step", toneConfig.SampleRate, toneConfig.StepSamples())

	timer.EndEvent("config_validation")
	fmt.Println()

	// Step 2: Keypad Mapping
	timer.StartEvent("keypad_mapping")
	printStep(2, "Keypad Mapping")

	message := selftestMessage
	if appConfig.Message.Uppercase {
		message = cases.Upper(language.Und).String(message)
	}

	digits, err := keypad.ToDigits(message)
	if err != nil {
		printError("Message does not map to the keypad: %v", err)
		return fmt.Errorf("keypad mapping failed: %w", err)
	}
	printSuccess("Message maps to %d digits: %s", len(digits), digits.String())

	runes := []rune(message)
	for i, digit := range digits {
		if !strings.ContainsRune(string(keypad.Candidates(digit)), runes[i]) {
			printError("Digit %s does not list %q as a candidate", digit, runes[i])
			return fmt.Errorf("candidate set for digit %s is missing %q", digit, runes[i])
		}
	}
	printSuccess("Every character appears in its digit's candidate set")

	if verbose {
		printInfo("Key sequence: %s", digits.Keys())
	}

	timer.EndEvent("keypad_mapping")
	fmt.Println()

	// Step 3: Tone Synthesis
	timer.StartEvent("synthesis")
	printStep(3, "Tone Synthesis")

	synth, err := dtmf.NewSynthesizer(toneConfig, logging.Nop())
	if err != nil {
		printError("Failed to create synthesizer: %v", err)
		return fmt.Errorf("failed to create synthesizer: %w", err)
	}

	data, err := synth.Synthesize(digits)
	if err != nil {
		printError("Synthesis failed: %v", err)
		return fmt.Errorf("synthesis failed: %w", err)
	}
	printSuccess("Synthesized %d samples", data.SampleCount())
	displayWaveformInfo(data, verbose)

	timer.EndEvent("synthesis")
	fmt.Println()

	// Step 4: WAV Round Trip
	timer.StartEvent("wav_round_trip")
	printStep(4, "WAV Round Trip")

	dir, err := os.MkdirTemp("", "dtmf-selftest-")
	if err != nil {
		printError("Failed to create temporary directory: %v", err)
		return fmt.Errorf("failed to create temporary directory: %w", err)
	}
	if selftestKeepFiles {
		printInfo("Keeping artifacts in %s", dir)
	} else {
		defer os.RemoveAll(dir)
	}

	wavPath := filepath.Join(dir, "selftest.wav")
	if err := audio.WriteFile(wavPath, data); err != nil {
		printError("Failed to write waveform: %v", err)
		return fmt.Errorf("failed to write waveform: %w", err)
	}
	printSuccess("Waveform written: %s", wavPath)

	readBack, err := audio.ReadFile(wavPath)
	if err != nil {
		printError("Failed to read waveform back: %v", err)
		return fmt.Errorf("failed to read waveform back: %w", err)
	}
	printSuccess("Waveform read back")

	if err := readBack.ValidateFormat(toneConfig.SampleRate, 1, 16); err != nil {
		printError("Read-back format mismatch: %v", err)
		return fmt.Errorf("read-back format mismatch: %w", err)
	}
	printSuccess("Format matches %d Hz mono 16-bit", toneConfig.SampleRate)

	if readBack.SampleCount() != data.SampleCount() {
		printError("Sample count changed: wrote %d, read %d", data.SampleCount(), readBack.SampleCount())
		return fmt.Errorf("round trip lost samples: wrote %d, read %d", data.SampleCount(), readBack.SampleCount())
	}
	printSuccess("Sample count preserved: %d", readBack.SampleCount())

	timer.EndEvent("wav_round_trip")
	fmt.Println()

	// Step 5: Tone Detection
	timer.StartEvent("detection")
	printStep(5, "Tone Detection")

	detector, err := dtmf.NewDetector(toneConfig, logging.Nop())
	if err != nil {
		printError("Failed to create detector: %v", err)
		return fmt.Errorf("failed to create detector: %w", err)
	}

	detection, err := detector.Detect(readBack)
	if err != nil {
		printError("Detection failed: %v", err)
		return fmt.Errorf("detection failed: %w", err)
	}
	printSuccess("Classified %d windows into %d digits", len(detection.Segments), len(detection.Digits))

	if unknown := detection.UnknownCount(); unknown > 0 {
		printWarning("%d positions could not be classified", unknown)
	} else {
		printSuccess("All positions classified")
	}

	if detection.Digits.String() != digits.String() {
		printError("Detected digits %s do not match encoded %s", detection.Digits, digits)
		return fmt.Errorf("detected digits %s do not match encoded %s", detection.Digits, digits)
	}
	printSuccess("Detected digits match the encoded sequence")

	if verbose {
		displaySegmentClassification(detection.Segments)
	}

	timer.EndEvent("detection")
	fmt.Println()

	// Step 6: Message Reconstruction
	timer.StartEvent("reconstruction")
	printStep(6, "Message Reconstruction")

	reconstructor, err := keypad.NewReconstructor(appConfig.Message.Prefix, appConfig.Message.Suffix)
	if err != nil {
		printError("Failed to create reconstructor: %v", err)
		return fmt.Errorf("failed to create reconstructor: %w", err)
	}

	transcript := reconstructor.Reconstruct(detection.Digits)
	text := transcript.Text()
	printSuccess("Reconstructed: %s", text)
	printInfo("Ambiguous positions: %d", transcript.AmbiguousCount())

	if unresolved := transcript.UnresolvedCount(); unresolved > 0 {
		printWarning("%d positions unresolved", unresolved)
	}

	prefix, suffix := appConfig.Message.Prefix, appConfig.Message.Suffix
	if strings.HasPrefix(message, prefix) && strings.HasSuffix(message, suffix) {
		if strings.HasPrefix(text, prefix) && strings.HasSuffix(text, suffix) {
			printSuccess("Message markers recovered exactly")
		} else {
			printError("Markers %s...%s were not recovered from %s", prefix, suffix, text)
			return fmt.Errorf("markers %s...%s were not recovered", prefix, suffix)
		}
	} else {
		printInfo("Message carries no marker pair, skipping anchor check")
	}

	timer.EndEvent("reconstruction")
	fmt.Println()

	// Performance Summary
	timer.EndEvent("total_test")
	if verbose {
		printSectionHeader("Performance Summary")
		displaySelftestPerformanceSummary(timer)
		fmt.Println()
	}

	// Test Summary
	printSectionHeader("Test Summary")
	printSelftestSummary(appConfig, digits, detection, transcript, timer)

	return nil
}

func displayWaveformInfo(data *audio.Data, verbose bool) {
	printInfo("Waveform Properties:")
	fmt.Printf("      Samples: %d\n", data.SampleCount())
	fmt.Printf("      Sample Rate: %d Hz\n", data.SampleRate)
	fmt.Printf("      Channels: %d\n", data.Channels)
	fmt.Printf("      Bit Depth: %d\n", data.BitDepth)
	fmt.Printf("      Duration: %.3f seconds\n", data.Duration().Seconds())

	if verbose && len(data.PCM) > 0 {
		var sum float64
		min := data.PCM[0]
		max := data.PCM[0]

		for _, sample := range data.PCM {
			sum += sample
			if sample < min {
				min = sample
			}
			if sample > max {
				max = sample
			}
		}

		avg := sum / float64(len(data.PCM))
		peakAmplitude := max
		if -min > max {
			peakAmplitude = -min
		}

		printInfo("Waveform Statistics:")
		fmt.Printf("      Average Amplitude: %.6f\n", avg)
		fmt.Printf("      Peak Amplitude: %.6f\n", peakAmplitude)

		// Check for potential issues
		if peakAmplitude > 0.99 {
			printWarning("Potential clipping detected (peak > 0.99)")
		}
		if avg > 0.01 || avg < -0.01 {
			printWarning("Waveform carries a DC offset (average %.4f)", avg)
		}
	}
}

func displaySegmentClassification(segments []dtmf.Segment) {
	printInfo("Window Classification:")
	for _, seg := range segments {
		label := string(seg.Status)
		if seg.Status == dtmf.SegmentTone {
			label = fmt.Sprintf("%s '%s' (%.0f Hz + %.0f Hz)", seg.Status, seg.Digit, seg.RowRef, seg.ColRef)
		}
		fmt.Printf("      %2d @ %6.2fs: %s\n", seg.Index, seg.StartTime, label)
	}
}

func displaySelftestPerformanceSummary(timer *PerformanceTimer) {
	printInfo("Performance Breakdown:")

	events := []string{
		"config_validation", "keypad_mapping", "synthesis",
		"wav_round_trip", "detection", "reconstruction",
	}

	for _, event := range events {
		duration := timer.GetDuration(event)
		if duration > 0 {
			eventName := titleCaser.String(strings.ReplaceAll(event, "_", " "))
			fmt.Printf("      %s: %v\n", eventName, duration)
		}
	}
}

func printSelftestSummary(config *configs.Config, digits keypad.Sequence, detection *dtmf.Detection, transcript *keypad.Transcript, timer *PerformanceTimer) {
	printResult("Configuration", true)
	printResult("Keypad Mapping", true)
	printResult("Synthesis", true)
	printResult("WAV Round Trip", true)
	printResult("Detection", detection.UnknownCount() == 0)
	printResult("Reconstruction", transcript.UnresolvedCount() == 0)

	fmt.Println()
	printInfo("Codec Summary:")
	fmt.Printf("   Sample Rate: %d Hz\n", config.Audio.SampleRate)
	fmt.Printf("   Tone Duration: %s (gap %s)\n", config.Audio.ToneDuration, config.Audio.GapDuration)
	fmt.Printf("   Digits Encoded: %d\n", len(digits))
	fmt.Printf("   Ambiguous Positions: %d\n", transcript.AmbiguousCount())

	fmt.Printf("\n%sTotal Test Duration: %v%s\n", ColorBold, timer.GetTotalDuration(), ColorReset)
}
