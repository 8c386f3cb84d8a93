package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/dtmf-codec/internal/app"
)

var (
	encodeOut      string
	encodeKeysFile string
	encodeUpper    bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode [message]",
	Short: "Hide a text message in a DTMF waveform",
	Long: `Encode a text message as a telephone-keypad tone waveform.

Each character maps to the digit of the key it is printed on; each digit
becomes one 500ms dual-tone burst separated by 100ms of silence. The
waveform is written as a mono 16-bit 8kHz WAV file.

The supported alphabet is the uppercase letters A-Z plus the message
delimiters '{' and '}'. Input is folded to uppercase first unless
--upper=false; any character outside the alphabet aborts the encode
before the output file is created.

Examples:
  # Encode a flag-style message
  dtmf-codec encode "HC{TEST}" --out flag.wav

  # Keep the pressed-key sidecar next to the waveform
  dtmf-codec encode "HC{TEST}" --out flag.wav --keys-file keys.txt

  # Strict alphabet, no case folding
  dtmf-codec encode --upper=false "HC{TEST}"

  # JSON result on stdout
  dtmf-codec encode "HC{TEST}" -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().StringVar(&encodeOut, "out", "output.wav",
		"waveform output path")
	encodeCmd.Flags().StringVar(&encodeKeysFile, "keys-file", "",
		"write the pressed-key sequence to this file")
	encodeCmd.Flags().BoolVar(&encodeUpper, "upper", true,
		"fold the message to uppercase before mapping")

	viper.BindPFlag("message.uppercase", encodeCmd.Flags().Lookup("upper"))
}

func runEncode(cmd *cobra.Command, args []string) error {
	ctx := newAppContext(cmd)
	ctx.Message = args[0]
	ctx.WaveformFile = encodeOut
	ctx.KeysFile = encodeKeysFile

	encodeApp, err := app.NewEncodeApp(ctx)
	if err != nil {
		return err
	}

	return encodeApp.Run(cmd.Context())
}
