package cmd

import (
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTracePinout/pkg/render"
)

var showCmd = &cobra.Command{
	Use:   "show [chip...]",
	Short: "Draw pinouts in the terminal",
	Long: `Draw the pinout of every variant of the named chips, or of all chips.
Colors are used when the output is a terminal.

Examples:
  pinout show 74HC595
  pinout show ATtiny85 --hide PWM --show I2C
  pinout show ATtiny85 --align=false`,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ds, err := prepare(args)
	if err != nil {
		return err
	}
	return render.Terminal(cmd.OutOrStdout(), ds, renderOptions())
}
