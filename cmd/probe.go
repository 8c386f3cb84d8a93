package cmd

import (
	"github.com/spf13/cobra"

	"github.com/RyanBlaney/dtmf-codec/internal/app"
)

var probeSegment int

var probeCmd = &cobra.Command{
	Use:   "probe [file.wav]",
	Short: "Inspect a waveform without reconstructing the message",
	Long: `Probe a waveform and report its audio properties alongside the raw
detection output: format, duration, the detected digit string, and the
per-window segment classification.

Probe stops short of message reconstruction, which makes it useful for
checking whether a capture is clean before decoding it, or for looking
at a single suspicious window.

Examples:
  # Full detection report
  dtmf-codec probe flag.wav

  # Just the fourth window
  dtmf-codec probe flag.wav --segment 3

  # Feed the report to other tooling
  dtmf-codec probe flag.wav -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)

	probeCmd.Flags().IntVar(&probeSegment, "segment", -1,
		"report only the window with this index")
}

func runProbe(cmd *cobra.Command, args []string) error {
	ctx := newAppContext(cmd)
	ctx.InputFile = args[0]
	ctx.SegmentIndex = probeSegment

	probeApp, err := app.NewProbeApp(ctx)
	if err != nil {
		return err
	}

	return probeApp.Run(cmd.Context())
}
