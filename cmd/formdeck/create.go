package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/formdeck/formdeck/internal/config"
	"github.com/formdeck/formdeck/internal/logger"
	"github.com/formdeck/formdeck/internal/tui/wizard"
)

var formsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new form with the template wizard",
	Long: `Create a new form with the two-step wizard: pick a template, then fill
in name, slug and description. The form is created disabled at version 1;
activation happens in the editor afterwards.`,
	RunE: runFormsCreate,
}

func runFormsCreate(cmd *cobra.Command, args []string) error {
	cfg, err := loadFormsConfig()
	if err != nil {
		return err
	}
	if cfg.Project == "" {
		return fmt.Errorf("no project configured (set project in %s or FORMDECK_PROJECT)", config.ProjectPath())
	}

	ctx := cmd.Context()
	st, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := wizard.Run(ctx, cfg, st)
	if err != nil {
		return err
	}

	if result.Cancelled {
		// Backing out of the wizard lands on the forms list.
		logger.Debug("Wizard cancelled, falling back to forms list")
		return printFormsList(ctx, cmd, st, cfg.Project)
	}

	// Hand off to the editor addressed by the new identifier.
	cmd.Printf("Created form %s\n", result.FormID)
	return openFormEditor(ctx, cmd, cfg, st, result.FormID)
}
