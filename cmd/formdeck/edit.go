package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/charmbracelet/x/editor"
	"github.com/gosimple/slug"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/formdeck/formdeck/internal/config"
	"github.com/formdeck/formdeck/internal/form"
	"github.com/formdeck/formdeck/internal/logger"
	"github.com/formdeck/formdeck/internal/store"
)

// formDoc is the YAML document exposed to $EDITOR. Identifier, type tag and
// version are backend-owned and deliberately absent.
type formDoc struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	IsActive    bool   `yaml:"is_active"`
}

var formsEditCmd = &cobra.Command{
	Use:   "edit <form-id>",
	Short: "Edit a form record in $EDITOR",
	Long: `Open the form's editable fields as YAML in $EDITOR. Saving bumps the
form's version counter; activation is flipped here via is_active.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		return openFormEditor(ctx, cmd, cfg, st, args[0])
	},
}

// openFormEditor runs one editor session over a form record and persists the
// result. This is the destination the creation wizard navigates to.
func openFormEditor(ctx context.Context, cmd *cobra.Command, cfg *config.Config, st *store.Store, formID string) error {
	rec, err := st.GetForm(ctx, cfg.Project, formID)
	if err != nil {
		return err
	}

	doc := formDoc{
		Name:     rec.Name,
		Slug:     rec.Slug,
		IsActive: rec.IsActive,
	}
	if rec.Description != nil {
		doc.Description = *rec.Description
	}

	before, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling form document: %w", err)
	}

	tmpfile, err := os.CreateTemp("", "formdeck_form_*.yml")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()

	header := fmt.Sprintf("# %s (version %d)\n# Edit and save; closing the editor applies the changes.\n", rec.Name, rec.Version)
	if _, err := tmpfile.WriteString(header + string(before)); err != nil {
		_ = tmpfile.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	_ = tmpfile.Close()

	edit, err := editor.Command("formdeck", tmpfile.Name())
	if err != nil {
		return fmt.Errorf("resolving editor: %w", err)
	}
	edit.Stdin = os.Stdin
	edit.Stdout = os.Stdout
	edit.Stderr = os.Stderr

	logger.Debug("Opening editor for form %s", formID)
	if err := edit.Run(); err != nil {
		return fmt.Errorf("editor session failed: %w", err)
	}

	after, err := os.ReadFile(tmpfile.Name())
	if err != nil {
		return fmt.Errorf("reading edited file: %w", err)
	}

	diff := udiff.Unified("before", "after", header+string(before), string(after))
	if diff == "" {
		cmd.Println("No changes.")
		return nil
	}

	var edited formDoc
	if err := yaml.Unmarshal(after, &edited); err != nil {
		return fmt.Errorf("parsing edited form document: %w", err)
	}

	name := strings.TrimSpace(edited.Name)
	if name == "" {
		return fmt.Errorf("form name cannot be empty")
	}

	rec.Name = name
	rec.Slug = form.EffectiveSlug(name, edited.Slug)
	rec.IsActive = edited.IsActive
	if desc := strings.TrimSpace(edited.Description); desc != "" {
		rec.Description = &desc
	} else {
		rec.Description = nil
	}

	updated, err := st.UpdateForm(ctx, *rec)
	if err != nil {
		return err
	}

	cmd.Print(diff)
	cmd.Printf("Updated form %s to version %d\n", updated.ID, updated.Version)
	return nil
}

var exportFlags struct {
	out string
}

var formsExportCmd = &cobra.Command{
	Use:   "export <form-id>",
	Short: "Write a form definition to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		rec, err := st.GetForm(ctx, cfg.Project, args[0])
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling form: %w", err)
		}

		name := slug.Make(rec.Name)
		if name == "" {
			name = "unnamed-form"
		}
		path := filepath.Join(exportFlags.out, name+".yml")

		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("writing export file: %w", err)
		}

		cmd.Printf("Exported form %s to %s\n", rec.ID, path)
		return nil
	},
}

func init() {
	formsExportCmd.Flags().StringVarP(&exportFlags.out, "out", "o", ".", "Output directory for the exported file")
}
