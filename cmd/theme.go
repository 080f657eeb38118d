package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chinmay1088/emptier/shell"
)

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark]",
	Short: "Show or change the colour theme",
	Long: `Show the colour theme, set it, or toggle it.

Examples:
  emptier theme          # Show the theme
  emptier theme light    # Use the light palette
  emptier theme toggle   # Switch between light and dark`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTheme,
}

func runTheme(cmd *cobra.Command, args []string) error {
	var (
		theme shell.Theme
		err   error
	)
	switch {
	case len(args) == 0:
		theme = app.shell.Theme()
	case args[0] == "toggle":
		theme, err = app.shell.ToggleTheme()
	default:
		theme, err = app.shell.SetTheme(args[0])
	}
	if err != nil {
		return err
	}

	fmt.Printf("🎨 Theme: %s\n", theme.Palette().Accent.Sprint(theme))
	return nil
}
