package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/OpenTraceLab/OpenTracePinout/pkg/catalog"
	"github.com/OpenTraceLab/OpenTracePinout/pkg/chip"
	"github.com/OpenTraceLab/OpenTracePinout/pkg/pinout"
)

// loadChips returns the built-in chips followed by the ones from --file.
func loadChips() ([]chip.Definition, error) {
	defs, err := catalog.All()
	if err != nil {
		return nil, fmt.Errorf("built-in chips: %w", err)
	}

	path := cfg.GetString("file")
	if path == "" {
		return defs, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	extra, err := chip.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("loaded %d chips from %s", len(extra), path)
	return append(defs, extra...), nil
}

// selectChips loads the chips named in args, or all chips when args is empty.
// Unknown names are skipped; it fails only when none of the names match.
func selectChips(args []string) ([]chip.Definition, error) {
	defs, err := loadChips()
	if err != nil {
		return nil, err
	}
	for _, name := range args {
		if _, ok := chip.Find(defs, name); !ok {
			log.Printf("skipping unknown chip %q", name)
		}
	}
	selected := chip.Select(defs, args)
	if len(args) > 0 && len(selected) == 0 {
		return nil, fmt.Errorf("no chip matches %s (see 'pinout list')", strings.Join(args, ", "))
	}
	return selected, nil
}

// titleShown reports whether diagrams carry the chip title. Unless --name or
// the show-name key is set, the title is left out when exactly one chip was
// requested.
func titleShown(requested int) bool {
	if cfg.IsSet("show-name") {
		return cfg.GetBool("show-name")
	}
	return requested != 1
}

// newController applies the configured preferences. --hide and --show name
// groups of any of the selected chips; a name no chip has is an error.
func newController(defs []chip.Definition) (*pinout.Controller, error) {
	c := pinout.NewController()
	c.SetAlign(cfg.GetBool("align-data"))
	if err := c.SetFontSize(cfg.GetInt("font-size")); err != nil {
		return nil, err
	}

	apply := func(groups []string, op func(*chip.Definition, string) error) error {
		for _, g := range groups {
			found := false
			for i := range defs {
				if _, ok := defs[i].Group(g); !ok {
					continue
				}
				found = true
				if err := op(&defs[i], g); err != nil {
					return err
				}
			}
			if !found {
				return fmt.Errorf("%w: %q", pinout.ErrUnknownGroup, g)
			}
		}
		return nil
	}
	if err := apply(cfg.GetStringSlice("hide"), c.Hide); err != nil {
		return nil, err
	}
	if err := apply(cfg.GetStringSlice("show"), c.Show); err != nil {
		return nil, err
	}
	return c, nil
}

// diagrams builds one diagram per chip. Variant errors are logged and drawn,
// not returned.
func diagrams(defs []chip.Definition, c *pinout.Controller, showName bool) []*pinout.Diagram {
	out := make([]*pinout.Diagram, 0, len(defs))
	for i := range defs {
		d := pinout.Build(&defs[i], c.Settings(&defs[i]), showName)
		for _, err := range d.Failed() {
			log.Printf("%v", err)
		}
		out = append(out, d)
	}
	return out
}

// prepare is the common start of the drawing commands.
func prepare(args []string) ([]*pinout.Diagram, error) {
	defs, err := selectChips(args)
	if err != nil {
		return nil, err
	}
	c, err := newController(defs)
	if err != nil {
		return nil, err
	}
	return diagrams(defs, c, titleShown(len(args))), nil
}
