package ui

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/sli3en/pwgen/internal/secure"
)

// PromptMaster reads a master passphrase once, with terminal echo disabled.
// It requires an interactive terminal.
func PromptMaster(label string) (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("prompt requires an interactive terminal")
	}
	fmt.Fprint(os.Stdout, "\r"+label)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stdout)
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase")
	}
	return string(b), nil
}

// PromptMasterConfirm reads the master passphrase twice and requires both
// entries to match, for use at vault Init time.
func PromptMasterConfirm() (string, error) {
	k1, err := PromptMaster("Enter master passphrase: ")
	if err != nil {
		return "", err
	}
	k2, err := PromptMaster("Re-enter:                 ")
	if err != nil {
		return "", err
	}
	if !secure.Compare([]byte(k1), []byte(k2)) {
		return "", fmt.Errorf("passphrases do not match")
	}
	return k1, nil
}
