package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/chinmay1088/emptier/cmd"
	"github.com/chinmay1088/emptier/errs"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		if s := errs.SuggestionOf(err); s != "" {
			fmt.Fprintf(os.Stderr, "💡 %s\n", s)
		}
		os.Exit(errs.ExitCode(err))
	}
}
