package render

import "github.com/OpenTraceLab/OpenTracePinout/pkg/colorutil"

// Theme is a color scheme for the diagram chrome. Pin and tag colors come
// from the chip definition and are not themed.
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

// ParseTheme maps "light" and "dark" to a theme; anything else is light.
func ParseTheme(s string) Theme {
	if s == "dark" {
		return ThemeDark
	}
	return ThemeLight
}

// Colors used for everything that is not a badge. All values are #rrggbb.
type Colors struct {
	Background string
	Text       string

	// Package body
	Body       string
	BodyText   string
	BodyBorder string

	Number string
	Filler string
	Border string
	Error  string
}

// GetColors returns the color scheme for the given theme
func GetColors(theme Theme) *Colors {
	switch theme {
	case ThemeDark:
		return &Colors{
			Background: "#1e1e1e",
			Text:       "#e0e0e0",
			Body:       "#3a3a3a",
			BodyText:   "#ffffff",
			BodyBorder: "#808080",
			Number:     "#a0a0a0",
			Filler:     "#606060",
			Border:     "#808080",
			Error:      "#ff6464",
		}
	default:
		return &Colors{
			Background: "#ffffff",
			Text:       "#000000",
			Body:       "#202020",
			BodyText:   "#ffffff",
			BodyBorder: "#000000",
			Number:     "#606060",
			Filler:     "#c0c0c0",
			Border:     "#404040",
			Error:      "#c00000",
		}
	}
}

// badgeColors resolves the fill and text of a segment against the theme.
// Unparseable or empty colors fall back to the theme's own.
func (c *Colors) badgeColors(s Segment) (bg, fg string) {
	bg, fg = colorutil.Hex(s.Background), colorutil.Hex(s.Foreground)
	if fg == "" {
		fg = c.Text
	}
	return bg, fg
}
