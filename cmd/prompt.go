package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/chinmay1088/emptier/errs"
)

const minPasswordLength = 8

var stdin = bufio.NewReader(os.Stdin)

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		// piped input, e.g. in scripts
		line, err := readLine(stdin)
		fmt.Println()
		return line, err
	}

	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println() // New line after password input
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

// readNewPassword asks for a password twice.
func readNewPassword() (string, error) {
	password, err := readPassword("Enter a password for your wallet: ")
	if err != nil {
		return "", err
	}
	if len(password) < minPasswordLength {
		return "", errs.WithSuggestion(errs.ErrInvalidArgument,
			fmt.Sprintf("the password must be at least %d characters long", minPasswordLength))
	}

	confirmPassword, err := readPassword("Confirm password: ")
	if err != nil {
		return "", err
	}
	if password != confirmPassword {
		return "", errs.WithSuggestion(errs.ErrInvalidArgument, "passwords do not match")
	}
	return password, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a y/n question. --yes answers it.
func confirm(question string) bool {
	if flags.yes {
		return true
	}
	return askYesNo(stdin, os.Stdout, question)
}

func askYesNo(r *bufio.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s (y/n): ", question)
	response, err := readLine(r)
	if err != nil {
		return false
	}

	response = strings.ToLower(response)
	return response == "y" || response == "yes"
}
