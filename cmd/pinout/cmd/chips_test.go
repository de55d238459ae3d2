package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTracePinout/pkg/pinout"
)

func TestSelectChips(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr bool
	}{
		{name: "one", args: []string{"ATtiny85"}, want: []string{"ATtiny85"}},
		{name: "unknown names are skipped", args: []string{"ATtiny85", "NoSuchChip"}, want: []string{"ATtiny85"}},
		{name: "source order", args: []string{"ATtiny85", "74HC595"}, want: []string{"74HC595", "ATtiny85"}},
		{name: "nothing matches", args: []string{"NE555"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs, err := selectChips(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected an error, got %d chips", len(defs))
				}
				return
			}
			if err != nil {
				t.Fatalf("selectChips: %v", err)
			}
			var got []string
			for _, d := range defs {
				got = append(got, d.Name)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("selected %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrepareTitle(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		setting interface{}
		want    bool
	}{
		{name: "single chip", args: []string{"ATtiny85"}, want: false},
		{name: "two chips", args: []string{"ATtiny85", "74HC595"}, want: true},
		{name: "all chips", args: nil, want: true},
		{name: "forced on", args: []string{"ATtiny85"}, setting: true, want: true},
		{name: "forced off", args: []string{"ATtiny85", "74HC595"}, setting: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg.Set("show-name", tt.setting)
			defer cfg.Set("show-name", nil)

			ds, err := prepare(tt.args)
			if err != nil {
				t.Fatalf("prepare: %v", err)
			}
			for _, d := range ds {
				if d.ShowName != tt.want {
					t.Errorf("%s: ShowName = %v, want %v", d.Chip, d.ShowName, tt.want)
				}
			}
		})
	}
}

func TestNewController(t *testing.T) {
	defer cfg.Set("show", nil)
	defer cfg.Set("hide", nil)

	defs, err := selectChips(nil)
	if err != nil {
		t.Fatalf("selectChips: %v", err)
	}

	cfg.Set("show", []string{"I2C"})
	cfg.Set("hide", []string{"Data"})
	c, err := newController(defs)
	if err != nil {
		t.Fatalf("newController: %v", err)
	}
	if s := c.Settings(&defs[1]); !s.Visible.Has("I2C") {
		t.Errorf("I2C should be shown on %s", defs[1].Name)
	}
	if s := c.Settings(&defs[0]); s.Visible.Has("Data") {
		t.Errorf("Data should be hidden on %s", defs[0].Name)
	}

	cfg.Set("hide", []string{"Nope"})
	if _, err := newController(defs); !errors.Is(err, pinout.ErrUnknownGroup) {
		t.Errorf("err = %v, want ErrUnknownGroup", err)
	}
}

func TestFileName(t *testing.T) {
	if got := fileName(`A/B\C`); got != "A_B_C" {
		t.Errorf("fileName = %q", got)
	}
}
