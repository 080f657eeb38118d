package shell

import (
	"strings"

	"github.com/fatih/color"

	"github.com/chinmay1088/emptier/errs"
)

// Theme is the display preference.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme accepts "light" or "dark", case-insensitively.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeDark:
		return ThemeDark, nil
	case ThemeLight:
		return ThemeLight, nil
	}
	err := errs.WithDetails(errs.ErrInvalidArgument, map[string]string{"theme": s})
	return "", errs.WithSuggestion(err, "use 'light' or 'dark'")
}

// Palette holds the colours used to render one theme.
type Palette struct {
	Title   *color.Color
	Muted   *color.Color
	Accent  *color.Color
	Success *color.Color
	Pending *color.Color
	Failure *color.Color
}

// Palette returns the colours for t. Unknown themes render as dark.
func (t Theme) Palette() Palette {
	if t == ThemeLight {
		return Palette{
			Title:   color.New(color.FgBlack, color.Bold),
			Muted:   color.New(color.FgHiBlack),
			Accent:  color.New(color.FgBlue),
			Success: color.New(color.FgGreen),
			Pending: color.New(color.FgMagenta),
			Failure: color.New(color.FgRed),
		}
	}
	return Palette{
		Title:   color.New(color.FgHiWhite, color.Bold),
		Muted:   color.New(color.FgWhite),
		Accent:  color.New(color.FgCyan),
		Success: color.New(color.FgHiGreen),
		Pending: color.New(color.FgHiYellow),
		Failure: color.New(color.FgHiRed),
	}
}
