package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/formdeck/formdeck/internal/config"
)

var setupFlags struct {
	project   bool
	force     bool
	projectID string
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create a formdeck configuration file",
	Long: `Create a formdeck configuration file with sensible defaults.

By default, creates a global config at ~/.config/formdeck/formdeck.yml.
Use --project to create a project-local config in the current directory.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
	setupCmd.Flags().StringVar(&setupFlags.projectID, "project-id", "", "Workspace project identifier to record in the config")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	cfg := &config.Config{
		Project:  setupFlags.projectID,
		DataDir:  ".formdeck",
		LogLevel: "info",
		LogFile:  "",
		AIAssist: false,
	}

	var err error
	if setupFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return err
	}

	cmd.Printf("Wrote config to %s\n", targetPath)
	if cfg.Project == "" {
		cmd.Println("No project set; pass --project-id or edit the config before creating forms.")
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
