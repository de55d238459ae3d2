package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTracePinout/pkg/pinout"
	"github.com/OpenTraceLab/OpenTracePinout/pkg/render"
)

var svgOutput string

var svgCmd = &cobra.Command{
	Use:   "svg [chip...]",
	Short: "Write pinouts as SVG",
	Long: `Write the pinouts of the named chips, or of all chips, as SVG.

Without -o the document goes to stdout. When -o names an existing directory
every chip gets its own <chip>.svg file there.

Examples:
  pinout svg 74HC595 -o 74hc595.svg
  pinout svg -o out/ --theme dark`,
	RunE: runSVG,
}

func init() {
	rootCmd.AddCommand(svgCmd)
	svgCmd.Flags().StringVarP(&svgOutput, "output", "o", "", "output file or directory (default stdout)")
}

func runSVG(cmd *cobra.Command, args []string) error {
	ds, err := prepare(args)
	if err != nil {
		return err
	}
	opts := renderOptions()

	if svgOutput == "" {
		return render.SVG(cmd.OutOrStdout(), ds, opts)
	}
	if info, err := os.Stat(svgOutput); err == nil && info.IsDir() {
		for _, d := range ds {
			path := filepath.Join(svgOutput, fileName(d.Chip)+".svg")
			if err := writeSVG(path, []*pinout.Diagram{d}, opts); err != nil {
				return err
			}
		}
		return nil
	}
	return writeSVG(svgOutput, ds, opts)
}

func writeSVG(path string, ds []*pinout.Diagram, opts render.Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.SVG(f, ds, opts); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("wrote %s", path)
	return f.Close()
}

// fileName replaces path separators in a chip name.
func fileName(chip string) string {
	return strings.NewReplacer("/", "_", `\`, "_").Replace(chip)
}
