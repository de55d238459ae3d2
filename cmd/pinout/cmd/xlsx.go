package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTracePinout/pkg/render"
)

var xlsxOutput string

var xlsxCmd = &cobra.Command{
	Use:   "xlsx [chip...]",
	Short: "Write pinouts to a spreadsheet",
	Long: `Write one worksheet per chip variant into an .xlsx workbook.

Examples:
  pinout xlsx -o pinouts.xlsx
  pinout xlsx ATtiny85 -o attiny85.xlsx --show I2C`,
	RunE: runXLSX,
}

func init() {
	rootCmd.AddCommand(xlsxCmd)
	xlsxCmd.Flags().StringVarP(&xlsxOutput, "output", "o", "pinout.xlsx", "output file")
}

func runXLSX(cmd *cobra.Command, args []string) error {
	ds, err := prepare(args)
	if err != nil {
		return err
	}

	f, err := render.Workbook(ds, renderOptions())
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(xlsxOutput); err != nil {
		return err
	}
	log.Printf("wrote %s (%d sheets)", xlsxOutput, len(f.GetSheetList()))
	return nil
}
