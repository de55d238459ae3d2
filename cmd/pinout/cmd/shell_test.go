package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/c-bata/go-prompt"

	"github.com/OpenTraceLab/OpenTracePinout/pkg/catalog"
	"github.com/OpenTraceLab/OpenTracePinout/pkg/chip"
	"github.com/OpenTraceLab/OpenTracePinout/pkg/pinout"
)

func newSession(t *testing.T, name string) (*session, *bytes.Buffer) {
	t.Helper()
	defs, err := catalog.All()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	def, ok := chip.Find(defs, name)
	if !ok {
		t.Fatalf("no chip %q", name)
	}
	var out bytes.Buffer
	return &session{def: def, ctl: pinout.NewController(), out: &out, showName: true}, &out
}

func TestSessionExec(t *testing.T) {
	tests := []struct {
		line    string
		wantErr bool
		redraw  bool
	}{
		{"", false, false},
		{"groups", false, false},
		{"show I2C", false, true},
		{"hide Serial", true, false},
		{"toggle PWM", false, true},
		{"align off", false, true},
		{"align maybe", true, false},
		{"font 16", false, true},
		{"font -1", true, false},
		{"font big", true, false},
		{"show", true, false},
		{"reset", false, true},
		{"frobnicate", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			s, out := newSession(t, "ATtiny85")
			err := s.exec(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("exec(%q) err = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
			drew := strings.Contains(out.String(), "ATtiny85")
			if drew != tt.redraw {
				t.Errorf("exec(%q) redraw = %v, want %v\n%s", tt.line, drew, tt.redraw, out.String())
			}
		})
	}
}

func TestSessionState(t *testing.T) {
	s, out := newSession(t, "ATtiny85")

	for _, line := range []string{"show I2C", "hide ADC", "align off", "font 20"} {
		if err := s.exec(line); err != nil {
			t.Fatalf("exec(%q): %v", line, err)
		}
	}

	st := s.ctl.Settings(s.def)
	if !st.Visible.Has("I2C") || st.Visible.Has("ADC") {
		t.Errorf("visible = %v", st.Visible)
	}
	if st.AlignData || st.FontSize != 20 {
		t.Errorf("settings = %+v", st)
	}

	out.Reset()
	s.exec("groups")
	if !strings.Contains(out.String(), "[x] I2C") || !strings.Contains(out.String(), "[ ] ADC") {
		t.Errorf("groups output:\n%s", out.String())
	}
}

func TestSessionQuit(t *testing.T) {
	s, _ := newSession(t, "74HC595")
	for _, line := range []string{"exit", "quit", " q "} {
		if err := s.exec(line); !errors.Is(err, errQuit) {
			t.Errorf("exec(%q) = %v, want errQuit", line, err)
		}
		if !isQuit(line) {
			t.Errorf("isQuit(%q) = false", line)
		}
	}
}

func TestSessionGroupWithSpaces(t *testing.T) {
	s, _ := newSession(t, "74HC595")
	if err := s.exec("hide Serial In/Out"); err != nil {
		t.Fatalf("exec: %v", err)
	}
	if s.ctl.Settings(s.def).Visible.Has("Serial In/Out") {
		t.Error("group still visible")
	}
}

func TestSessionComplete(t *testing.T) {
	s, _ := newSession(t, "ATtiny85")

	tests := []struct {
		text string
		want []string
	}{
		{"to", []string{"toggle"}},
		{"show ", []string{"ADC", "I2C", "PWM", "Reset", "SPI"}},
		{"hide P", []string{"PWM"}},
		{"align o", []string{"on", "off"}},
		{"font ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			buf := prompt.NewBuffer()
			buf.InsertText(tt.text, false, true)

			var got []string
			for _, sg := range s.complete(*buf.Document()) {
				got = append(got, sg.Text)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("complete(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
