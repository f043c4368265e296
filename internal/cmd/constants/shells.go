// Package constants provides shared constants for CLI commands.
package constants

// Shell type constants for the completion command.
const (
	// ShellBash represents the Bash shell.
	ShellBash = "bash"

	// ShellZsh represents the Zsh shell.
	ShellZsh = "zsh"

	// ShellFish represents the Fish shell.
	ShellFish = "fish"

	// ShellPowerShell represents PowerShell.
	ShellPowerShell = "powershell"
)

// Shells lists every supported completion shell, in help order.
var Shells = []string{ShellBash, ShellZsh, ShellFish, ShellPowerShell}
