package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/OpenTraceLab/OpenTracePinout/pkg/pinout"
	"github.com/OpenTraceLab/OpenTracePinout/pkg/render"
)

var (
	// Global flags
	verbose  bool
	cfgFile  string
	chipFile string
	theme    string
	align    bool
	fontSize int
	hide     []string
	show     []string
	showName bool
)

// cfg merges flags, PINOUT_* environment variables and pinout.yaml.
var cfg = viper.New()

var rootCmd = &cobra.Command{
	Use:   "pinout",
	Short: "Pinout diagrams for ICs",
	Long: `pinout draws pinout diagrams of integrated circuits from declarative chip
definitions: every package variant with numbered pins, pin names and
color-coded function tags.

Chip definitions come from the built-in catalogue, from a YAML file given
with --file, or from a BSDL file through the import command.

Examples:
  pinout list                          # Built-in chips
  pinout show 74HC595                  # Draw in the terminal
  pinout show ATtiny85 --show I2C      # Include a group hidden by default
  pinout svg ATtiny85 -o attiny85.svg  # Write an SVG
  pinout import stm32f303.bsd > stm32.yaml`,
	Version:           "0.3.0",
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&cfgFile, "config", "", "config file (default ./pinout.yaml, then $HOME/.config/pinout/pinout.yaml)")
	flags.StringVarP(&chipFile, "file", "f", "", "YAML chip definitions, added after the built-in chips")
	flags.StringVar(&theme, "theme", "light", "color theme (light, dark)")
	flags.BoolVar(&align, "align", true, "one tag column per function group")
	flags.IntVar(&fontSize, "font-size", pinout.DefaultFontSize, "font size in px for SVG output")
	flags.StringSliceVar(&hide, "hide", nil, "function groups to hide")
	flags.StringSliceVar(&show, "show", nil, "function groups to show, including ones hidden by default")
	flags.BoolVar(&showName, "name", false, "print the chip title above each diagram (without the flag: only when not exactly one chip is named)")

	for key, flag := range map[string]string{
		"file":       "file",
		"theme":      "theme",
		"align-data": "align",
		"font-size":  "font-size",
		"hide":       "hide",
		"show":       "show",
		"show-name":  "name",
	} {
		if err := cfg.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func initConfig(cmd *cobra.Command, args []string) error {
	if !verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(0)
	log.SetPrefix("pinout: ")

	if cfgFile != "" {
		cfg.SetConfigFile(cfgFile)
	} else {
		cfg.SetConfigName("pinout")
		cfg.SetConfigType("yaml")
		cfg.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			cfg.AddConfigPath(filepath.Join(home, ".config", "pinout"))
		}
	}
	cfg.SetEnvPrefix("PINOUT")
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("config: %w", err)
		}
		log.Printf("no config file, using flags and environment")
	} else {
		log.Printf("using config %s", cfg.ConfigFileUsed())
	}
	return nil
}

func renderOptions() render.Options {
	return render.Options{Theme: render.ParseTheme(cfg.GetString("theme"))}
}
