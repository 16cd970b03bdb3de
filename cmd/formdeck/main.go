package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/formdeck/formdeck/internal/logger"
	"github.com/formdeck/formdeck/internal/tui/theme"
)

const (
	logoText1 = "█▀▀ █▀█ █▀█ █▀▄▀█ █▀▄ █▀▀ █▀▀ █▄▀"
	logoText2 = "█▀  █▄█ █▀▄ █ ▀ █ █▄▀ ██▄ █▄▄ █ █"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "formdeck",
	Short: "Terminal client for the formdeck forms workspace",
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

formdeck manages the forms of a workspace project from the terminal.
Form records are persisted in an embedded NATS JetStream table; the
creation wizard, listing, editing and export all operate on it.`

	rootCmd.AddCommand(formsCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(doctorCmd)
}
