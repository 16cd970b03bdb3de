package main

import (
	"context"
	"fmt"
	"strings"

	"charm.land/glamour/v2"
	"github.com/spf13/cobra"

	"github.com/formdeck/formdeck/internal/catalog"
	"github.com/formdeck/formdeck/internal/config"
	"github.com/formdeck/formdeck/internal/form"
	"github.com/formdeck/formdeck/internal/logger"
	"github.com/formdeck/formdeck/internal/nats"
	"github.com/formdeck/formdeck/internal/store"
)

var formsFlags struct {
	dataDir string
	project string
}

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "Manage the forms of the current project",
}

func init() {
	formsCmd.PersistentFlags().StringVar(&formsFlags.dataDir, "data-dir", "", "Data directory for the embedded store (default: config data_dir)")
	formsCmd.PersistentFlags().StringVarP(&formsFlags.project, "project", "p", "", "Project identifier (default: config project)")

	formsCmd.AddCommand(formsCreateCmd)
	formsCmd.AddCommand(formsListCmd)
	formsCmd.AddCommand(formsShowCmd)
	formsCmd.AddCommand(formsEditCmd)
	formsCmd.AddCommand(formsExportCmd)
	formsCmd.AddCommand(formsDeleteCmd)
	formsCmd.AddCommand(formsActivityCmd)
}

// loadFormsConfig loads the config and applies command-level flag overrides.
func loadFormsConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if formsFlags.dataDir != "" {
		cfg.DataDir = formsFlags.dataDir
	}
	if formsFlags.project != "" {
		cfg.Project = formsFlags.project
	}
	return cfg, nil
}

// openStore starts the embedded NATS server and opens the forms store.
// The returned cleanup shuts everything down in order.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, func(), error) {
	ns, err := nats.StartEmbedded(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("starting embedded store: %w", err)
	}

	nc, err := nats.ConnectInProcess(ns)
	if err != nil {
		ns.Shutdown()
		return nil, nil, fmt.Errorf("connecting to embedded store: %w", err)
	}

	js, err := nats.CreateJetStream(nc)
	if err != nil {
		_ = nats.Shutdown(nc, ns)
		return nil, nil, fmt.Errorf("creating JetStream context: %w", err)
	}

	st, err := store.Open(ctx, js)
	if err != nil {
		_ = nats.Shutdown(nc, ns)
		return nil, nil, err
	}

	cleanup := func() {
		if err := nats.Shutdown(nc, ns); err != nil {
			logger.Warn("Store shutdown: %v", err)
		}
	}
	return st, cleanup, nil
}

var formsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List form records in the current project",
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

		return printFormsList(ctx, cmd, st, cfg.Project)
	},
}

func printFormsList(ctx context.Context, cmd *cobra.Command, st *store.Store, project string) error {
	records, err := st.ListForms(ctx, project)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		cmd.Printf("No forms in project %s. Create one with: formdeck forms create\n", project)
		return nil
	}

	cmd.Printf("%-36s  %-24s  %-20s  %-8s  %-6s  %s\n", "ID", "NAME", "SLUG", "TYPE", "ACTIVE", "VERSION")
	for _, rec := range records {
		cmd.Printf("%-36s  %-24s  %-20s  %-8s  %-6t  %d\n",
			rec.ID, truncate(rec.Name, 24), truncate(rec.Slug, 20), rec.FormType, rec.IsActive, rec.Version)
	}
	return nil
}

var formsShowCmd = &cobra.Command{
	Use:   "show <form-id>",
	Short: "Render a form summary",
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

		cmd.Println(renderFormSummary(rec))
		return nil
	},
}

// renderFormSummary renders a form record as markdown via glamour, falling
// back to the raw markdown if the renderer is unavailable.
func renderFormSummary(rec *form.Record) string {
	md := formSummaryMarkdown(rec)

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}

	rendered, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSuffix(rendered, "\n")
}

func formSummaryMarkdown(rec *form.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", rec.Name)
	if rec.Description != nil {
		fmt.Fprintf(&b, "%s\n\n", *rec.Description)
	}

	status := "inactive"
	if rec.IsActive {
		status = "active"
	}

	fmt.Fprintf(&b, "- **ID**: `%s`\n", rec.ID)
	fmt.Fprintf(&b, "- **Slug**: `%s`\n", rec.Slug)
	fmt.Fprintf(&b, "- **Type**: %s\n", rec.FormType)
	fmt.Fprintf(&b, "- **Status**: %s (version %d)\n", status, rec.Version)
	fmt.Fprintf(&b, "- **Created**: %s\n", rec.CreatedAt.Format("2006-01-02 15:04"))

	if tpl, ok := catalog.ByID(rec.FormType); ok && len(tpl.Fields) > 0 {
		b.WriteString("\n## Template fields\n\n")
		for _, f := range tpl.Fields {
			fmt.Fprintf(&b, "1. %s\n", f)
		}
	}

	return b.String()
}

var formsDeleteCmd = &cobra.Command{
	Use:   "delete <form-id>",
	Short: "Delete a form record",
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

		if err := st.DeleteForm(ctx, cfg.Project, args[0]); err != nil {
			return err
		}
		cmd.Printf("Deleted form %s\n", args[0])
		return nil
	},
}

var formsActivityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show recent form activity in the current project",
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

		events, err := st.Activity(ctx, cfg.Project)
		if err != nil {
			return err
		}

		if len(events) == 0 {
			cmd.Println("No activity yet.")
			return nil
		}

		for _, ev := range events {
			cmd.Printf("%s  %-7s  %-36s  %s\n",
				ev.Timestamp.Local().Format("2006-01-02 15:04:05"), ev.Action, ev.FormID, ev.FormName)
		}
		return nil
	},
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
