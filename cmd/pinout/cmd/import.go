package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTracePinout/pkg/bsdl"
	"github.com/OpenTraceLab/OpenTracePinout/pkg/chip"
	"github.com/OpenTraceLab/OpenTracePinout/pkg/pinout"
)

var (
	importPinMap  string
	importPackage string
	importPins    int
	importOutput  string
	importDir     string
	importIDCode  string
)

var importCmd = &cobra.Command{
	Use:   "import [bsdl-file]",
	Short: "Convert a BSDL file to a chip definition",
	Long: `Read the pin map of a BSDL file and write a YAML chip definition that
the other commands accept with --file.

The pin map defaults to the PHYSICAL_PIN_MAP generic. Package pins without a
port become numbered gaps; pins above --pins become additional pins. Grid
(BGA) pin maps are not supported.

With --idcode the file is looked up by IDCODE among the BSDL files below
--dir instead of being named.

Examples:
  pinout import STM32F303_F334_LQFP64.bsd -o stm32f303.yaml
  pinout import sn74bct8244a.bsd --pin-map DW --pins 24
  pinout import --dir bsdl/ --idcode 0x06438041
  pinout show -f stm32f303.yaml --show "Port Mode"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importPinMap, "pin-map", "", "PIN_MAP_STRING constant to use")
	importCmd.Flags().StringVar(&importPackage, "package", "", "package shape (dual, quad); inferred from the pin map name by default")
	importCmd.Flags().IntVar(&importPins, "pins", 0, "number of numbered package pins (default: highest mapped pin)")
	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "output file (default stdout)")
	importCmd.Flags().StringVar(&importDir, "dir", ".", "directory searched with --idcode")
	importCmd.Flags().StringVar(&importIDCode, "idcode", "", "IDCODE of the part, e.g. 0x06438041")
}

func runImport(cmd *cobra.Command, args []string) error {
	pkg := chip.Package(importPackage)
	switch pkg {
	case "", chip.PackageDual, chip.PackageQuad:
	default:
		return fmt.Errorf("%w: %q", pinout.ErrUnknownPackage, importPackage)
	}

	file, name, err := openBSDL(args)
	if err != nil {
		return err
	}
	def, err := bsdl.ToChip(file, bsdl.ImportOptions{
		PinMap:   importPinMap,
		Package:  pkg,
		PinCount: importPins,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	for i := range def.Variants {
		if err := pinout.CheckVariant(&def, &def.Variants[i]); err != nil {
			log.Printf("warning: %v (adjust with --pins)", err)
		}
	}

	var w io.Writer = cmd.OutOrStdout()
	if importOutput != "" {
		f, err := os.Create(importOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := chip.Encode(w, []chip.Definition{def}); err != nil {
		return err
	}
	log.Printf("imported %s: %d pins, %d groups", def.Name, len(def.Variants[0].Pins), len(def.Data))
	return nil
}

// openBSDL parses the named file or finds one by --idcode.
func openBSDL(args []string) (*bsdl.BSDLFile, string, error) {
	if importIDCode == "" {
		if len(args) != 1 {
			return nil, "", fmt.Errorf("import needs a BSDL file or --idcode")
		}
		parser, err := bsdl.NewParser()
		if err != nil {
			return nil, "", err
		}
		file, err := parser.ParseFile(args[0])
		return file, args[0], err
	}

	if len(args) != 0 {
		return nil, "", fmt.Errorf("give either a BSDL file or --idcode, not both")
	}
	id, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(importIDCode), "0x"), 16, 32)
	if err != nil {
		return nil, "", fmt.Errorf("--idcode %q: %w", importIDCode, err)
	}

	lib := bsdl.NewLibrary()
	if err := lib.LoadDir(importDir); err != nil {
		return nil, "", err
	}
	log.Printf("indexed %d BSDL files in %s", lib.Len(), importDir)
	return lib.Lookup(uint32(id))
}
