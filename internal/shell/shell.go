// Package shell detects the calling shell and renders the commands that
// set or clear AWS_PROFILE in it.
package shell

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Shell identifies a supported shell dialect.
type Shell string

const (
	Bash       Shell = "bash"
	Zsh        Shell = "zsh"
	Fish       Shell = "fish"
	Csh        Shell = "csh"
	PowerShell Shell = "powershell"
	Cmd        Shell = "cmd"
)

// Detect inspects the environment and returns the most likely shell.
// Unknown environments fall back to bash syntax, which zsh also
// accepts.
func Detect() Shell {
	return detect(runtime.GOOS, os.Getenv)
}

func detect(goos string, getenv func(string) string) Shell {
	if goos == "windows" {
		if getenv("PSModulePath") != "" {
			return PowerShell
		}
		return Cmd
	}

	sh := getenv("SHELL")
	switch {
	case strings.Contains(sh, "zsh"):
		return Zsh
	case strings.Contains(sh, "fish"):
		return Fish
	case strings.Contains(sh, "csh"):
		return Csh
	case strings.Contains(sh, "bash"):
		return Bash
	}

	return Bash
}

// Parse maps a user-supplied shell name to a Shell. tcsh shares csh
// syntax and maps to it.
func Parse(name string) (Shell, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bash":
		return Bash, nil
	case "zsh":
		return Zsh, nil
	case "fish":
		return Fish, nil
	case "csh", "tcsh":
		return Csh, nil
	case "powershell", "pwsh":
		return PowerShell, nil
	case "cmd":
		return Cmd, nil
	}
	return "", fmt.Errorf("unknown shell %q (valid: bash, zsh, fish, csh, tcsh, powershell, cmd)", name)
}

// ExportCommand returns the statement that sets AWS_PROFILE to profile
// in this shell.
func (s Shell) ExportCommand(profile string) string {
	switch s {
	case Fish:
		return fmt.Sprintf("set -gx AWS_PROFILE %q", profile)
	case Csh:
		return fmt.Sprintf("setenv AWS_PROFILE %q", profile)
	case PowerShell:
		return fmt.Sprintf("$env:AWS_PROFILE = %q", profile)
	case Cmd:
		return "set AWS_PROFILE=" + profile
	}
	return fmt.Sprintf("export AWS_PROFILE=%q", profile)
}

// UnsetCommand returns the statement that removes AWS_PROFILE from the
// environment in this shell.
func (s Shell) UnsetCommand() string {
	switch s {
	case Fish:
		return "set -e AWS_PROFILE"
	case Csh:
		return "unsetenv AWS_PROFILE"
	case PowerShell:
		return "Remove-Item Env:AWS_PROFILE"
	case Cmd:
		return "set AWS_PROFILE="
	}
	return "unset AWS_PROFILE"
}
