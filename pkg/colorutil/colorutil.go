// Package colorutil parses the color strings used by chip definitions and
// derives readable text colors for them.
package colorutil

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Text colors returned by Contrast.
const (
	Black = "black"
	White = "white"
)

// DefaultBackground is assumed when a color string is empty.
const DefaultBackground = White

// brightnessThreshold separates dark from light backgrounds.
const brightnessThreshold = 125

// Parse accepts CSS color names and #rgb / #rrggbb hex strings.
func Parse(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("colorutil: empty color")
	}

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(strings.ToLower(s))
		if err != nil {
			return color.RGBA{}, fmt.Errorf("colorutil: invalid hex color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
	}

	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("colorutil: unknown color %q", s)
}

// Brightness is the perceived brightness of c in the range 0-255.
func Brightness(c color.RGBA) int {
	return int(math.Round(float64(int(c.R)*299+int(c.G)*587+int(c.B)*114) / 1000))
}

// Contrast returns "black" for light backgrounds and "white" for dark ones.
// An empty string is treated as white; an unparseable color is treated the
// same way.
func Contrast(background string) string {
	if background == "" {
		background = DefaultBackground
	}
	c, err := Parse(background)
	if err != nil {
		c = colornames.White
	}
	if Brightness(c) > brightnessThreshold {
		return Black
	}
	return White
}

// Hex returns the canonical #rrggbb form of s, or "" if s does not parse.
func Hex(s string) string {
	c, err := Parse(s)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
