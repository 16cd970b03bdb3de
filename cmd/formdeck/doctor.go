package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"

	"github.com/formdeck/formdeck/internal/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the local formdeck environment",
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	failures := 0

	check := func(ok bool, label, hint string) {
		mark := "✓"
		if !ok {
			mark = "✗"
			failures++
		}
		cmd.Printf("%s %s\n", mark, label)
		if !ok && hint != "" {
			cmd.Printf("  %s\n", hint)
		}
	}

	check(config.Exists(), "config file present", "run: formdeck setup")

	cfg, err := config.Load()
	if err != nil {
		check(false, "config loads", err.Error())
		cfg = &config.Config{DataDir: ".formdeck"}
	} else {
		check(true, "config loads", "")
		check(cfg.Project != "", "project configured", "set project in the config or FORMDECK_PROJECT")
	}

	check(dataDirWritable(cfg.DataDir), fmt.Sprintf("data dir writable (%s)", cfg.DataDir), "check permissions")

	_, err = editor.Command("formdeck", "probe")
	check(err == nil, "editor available", "set $EDITOR to enable formdeck forms edit")

	if failures > 0 {
		return fmt.Errorf("%d check(s) failed", failures)
	}
	cmd.Println("All checks passed.")
	return nil
}

// dataDirWritable verifies the data directory can be created and written.
func dataDirWritable(dir string) bool {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false
	}
	probe := filepath.Join(dir, ".doctor_probe")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return false
	}
	_ = os.Remove(probe)
	return true
}
