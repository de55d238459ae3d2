package cmd

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTracePinout/pkg/chip"
	"github.com/OpenTraceLab/OpenTracePinout/pkg/pinout"
	"github.com/OpenTraceLab/OpenTracePinout/pkg/render"
)

var errQuit = errors.New("quit")

var shellCmd = &cobra.Command{
	Use:   "shell <chip>",
	Short: "Change display settings interactively",
	Long: `Start an interactive session for one chip. The pinout is drawn again after
every change.

Commands:
  show <group>     show a function group
  hide <group>     hide a function group
  toggle <group>   flip a function group
  align on|off     one tag column per group, or stacked tags
  font <px>        font size for SVG output
  groups           list the groups and their state
  reset            back to the default groups
  exit             leave the shell`,
	Args: cobra.ExactArgs(1),
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	defs, err := selectChips(args)
	if err != nil {
		return err
	}
	c, err := newController(defs)
	if err != nil {
		return err
	}

	s := &session{def: &defs[0], ctl: c, out: cmd.OutOrStdout(), opts: renderOptions(), showName: titleShown(1)}
	if err := s.draw(); err != nil {
		return err
	}

	p := prompt.New(
		func(line string) {
			if err := s.exec(line); err != nil && !errors.Is(err, errQuit) {
				fmt.Fprintln(s.out, "error:", err)
			}
		},
		s.complete,
		prompt.OptionPrefix(s.def.Name+"> "),
		prompt.OptionTitle("pinout "+s.def.Name),
		prompt.OptionSetExitCheckerOnInput(func(in string, breakline bool) bool {
			return breakline && isQuit(in)
		}),
	)
	p.Run()
	return nil
}

// session is the state of one shell.
type session struct {
	def      *chip.Definition
	ctl      *pinout.Controller
	out      io.Writer
	opts     render.Options
	showName bool
}

func isQuit(line string) bool {
	switch strings.TrimSpace(line) {
	case "exit", "quit", "q":
		return true
	}
	return false
}

// exec runs one command line. Mutations redraw the chip.
func (s *session) exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, rest := fields[0], strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	switch cmd {
	case "exit", "quit", "q":
		return errQuit
	case "groups":
		s.groups()
		return nil
	case "show", "hide", "toggle":
		if rest == "" {
			return fmt.Errorf("%s needs a group name", cmd)
		}
		var err error
		switch cmd {
		case "show":
			err = s.ctl.Show(s.def, rest)
		case "hide":
			err = s.ctl.Hide(s.def, rest)
		default:
			_, err = s.ctl.Toggle(s.def, rest)
		}
		if err != nil {
			return err
		}
	case "align":
		switch rest {
		case "on":
			s.ctl.SetAlign(true)
		case "off":
			s.ctl.SetAlign(false)
		default:
			return fmt.Errorf("align takes on or off, got %q", rest)
		}
	case "font":
		n, err := strconv.Atoi(rest)
		if err != nil {
			return fmt.Errorf("font takes a size in px, got %q", rest)
		}
		if err := s.ctl.SetFontSize(n); err != nil {
			return err
		}
	case "reset":
		s.ctl.Reset(s.def)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return s.draw()
}

func (s *session) draw() error {
	d := pinout.Build(s.def, s.ctl.Settings(s.def), s.showName)
	return render.Terminal(s.out, []*pinout.Diagram{d}, s.opts)
}

func (s *session) groups() {
	visible := s.ctl.Settings(s.def).Visible
	for _, g := range s.def.Data {
		mark := " "
		if visible.Has(g.Name) {
			mark = "x"
		}
		fmt.Fprintf(s.out, "[%s] %s\n", mark, g.Name)
	}
}

var shellCommands = []prompt.Suggest{
	{Text: "show", Description: "show a function group"},
	{Text: "hide", Description: "hide a function group"},
	{Text: "toggle", Description: "flip a function group"},
	{Text: "align", Description: "on or off"},
	{Text: "font", Description: "font size in px"},
	{Text: "groups", Description: "list function groups"},
	{Text: "reset", Description: "default groups"},
	{Text: "exit", Description: "leave the shell"},
}

// complete suggests commands for the first word and group names after
// show, hide and toggle.
func (s *session) complete(d prompt.Document) []prompt.Suggest {
	before := d.TextBeforeCursor()
	fields := strings.Fields(before)
	if len(fields) == 0 || (len(fields) == 1 && !strings.HasSuffix(before, " ")) {
		return prompt.FilterHasPrefix(shellCommands, d.GetWordBeforeCursor(), true)
	}

	switch fields[0] {
	case "show", "hide", "toggle":
		visible := s.ctl.Settings(s.def).Visible
		var out []prompt.Suggest
		for _, g := range s.def.Data {
			state := "hidden"
			if visible.Has(g.Name) {
				state = "shown"
			}
			out = append(out, prompt.Suggest{Text: g.Name, Description: state})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Text < out[j].Text })
		prefix := strings.TrimSpace(strings.TrimPrefix(before, fields[0]))
		return prompt.FilterHasPrefix(out, prefix, true)
	case "align":
		return prompt.FilterHasPrefix([]prompt.Suggest{{Text: "on"}, {Text: "off"}}, d.GetWordBeforeCursor(), true)
	}
	return nil
}
