package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/dtmf-codec/internal/app"
)

var (
	decodeShowSegments bool
	decodeStrict       bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode [file.wav]",
	Short: "Recover the hidden message from a DTMF waveform",
	Long: `Decode a keypad-encoded waveform back into text.

The waveform is scanned in fixed 600ms windows. Each window is
classified by the dominant row and column frequencies into a keypad
digit, silence, or an unrecognized tone pair. Digits are then mapped
back to letters: positions covered by the HC{...} message markers are
resolved exactly, a '0' in the message body resolves to '{' or '}' by
which half of the sequence it sits in, and every other digit is
rendered as its candidate set, e.g. [TUV].

Examples:
  # Decode a waveform and print the reconstruction table
  dtmf-codec decode flag.wav

  # Include the per-window segment listing
  dtmf-codec decode flag.wav --show-segments

  # Fail with a non-zero exit if any position stays unresolved
  dtmf-codec decode flag.wav --strict

  # Machine-readable result
  dtmf-codec decode flag.wav -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().BoolVar(&decodeShowSegments, "show-segments", false,
		"include the per-window segment classification in the result")
	decodeCmd.Flags().BoolVar(&decodeStrict, "strict", false,
		"exit non-zero when any position cannot be resolved")

	viper.BindPFlag("output.show_segments", decodeCmd.Flags().Lookup("show-segments"))
}

func runDecode(cmd *cobra.Command, args []string) error {
	ctx := newAppContext(cmd)
	ctx.InputFile = args[0]
	ctx.Strict = decodeStrict

	decodeApp, err := app.NewDecodeApp(ctx)
	if err != nil {
		return err
	}

	return decodeApp.Run(cmd.Context())
}
