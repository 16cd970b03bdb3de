package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getting working directory: %v", err)
	}
	workDir := t.TempDir()
	if err := os.Chdir(workDir); err != nil {
		t.Fatalf("changing directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWd) })
}

func TestLoad_Defaults(t *testing.T) {
	// Point XDG at an empty dir and run from an empty dir so no config file
	// is picked up.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Project != "" {
		t.Errorf("expected empty project by default, got %q", cfg.Project)
	}
	if cfg.DataDir != ".formdeck" {
		t.Errorf("expected default data_dir .formdeck, got %q", cfg.DataDir)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log_level info, got %q", cfg.LogLevel)
	}
	if cfg.LogFile != "" {
		t.Errorf("expected empty log_file by default, got %q", cfg.LogFile)
	}
	if cfg.AIAssist {
		t.Error("expected ai_assist false by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("FORMDECK_PROJECT", "proj-env")
	t.Setenv("FORMDECK_DATA_DIR", "/tmp/formdeck-data")
	t.Setenv("FORMDECK_LOG_LEVEL", "debug")
	t.Setenv("FORMDECK_AI_ASSIST", "true")
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Project != "proj-env" {
		t.Errorf("expected project from env, got %q", cfg.Project)
	}
	if cfg.DataDir != "/tmp/formdeck-data" {
		t.Errorf("expected data_dir from env, got %q", cfg.DataDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log_level from env, got %q", cfg.LogLevel)
	}
	if !cfg.AIAssist {
		t.Error("expected ai_assist true from env")
	}
}

func TestLoad_ProjectConfigOverridesGlobal(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	globalDir := filepath.Join(tmpDir, "formdeck")
	if err := os.MkdirAll(globalDir, 0755); err != nil {
		t.Fatalf("creating global config dir: %v", err)
	}
	global := "project: global-proj\nlog_level: warn\n"
	if err := os.WriteFile(filepath.Join(globalDir, "formdeck.yml"), []byte(global), 0644); err != nil {
		t.Fatalf("writing global config: %v", err)
	}

	chdirTemp(t)

	project := "project: local-proj\n"
	if err := os.WriteFile("formdeck.yml", []byte(project), 0644); err != nil {
		t.Fatalf("writing project config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Project != "local-proj" {
		t.Errorf("expected project config to win, got %q", cfg.Project)
	}
	// Unset in the project file, so the global value survives the merge.
	if cfg.LogLevel != "warn" {
		t.Errorf("expected log_level from global config, got %q", cfg.LogLevel)
	}
}

func TestGlobalPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/xdg")

	got := GlobalPath()
	want := filepath.Join("/custom/xdg", "formdeck", "formdeck.yml")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestGlobalPath_HomeFallback(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	got := GlobalPath()
	if !strings.HasSuffix(got, filepath.Join(".config", "formdeck", "formdeck.yml")) {
		t.Errorf("expected path under ~/.config/formdeck, got %s", got)
	}
}

func TestWriteGlobalAndExists(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	chdirTemp(t)

	if Exists() {
		t.Fatal("expected no config before writing")
	}

	cfg := &Config{
		Project:  "proj-1",
		DataDir:  ".formdeck",
		LogLevel: "info",
		AIAssist: true,
	}
	if err := WriteGlobal(cfg); err != nil {
		t.Fatalf("writing global config: %v", err)
	}

	if !Exists() {
		t.Error("expected Exists to report the global config")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Project != "proj-1" {
		t.Errorf("expected project proj-1, got %q", loaded.Project)
	}
	if !loaded.AIAssist {
		t.Error("expected ai_assist true after round trip")
	}
}

func TestWriteProject(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	chdirTemp(t)

	cfg := &Config{Project: "proj-local", DataDir: "data"}
	if err := WriteProject(cfg); err != nil {
		t.Fatalf("writing project config: %v", err)
	}

	data, err := os.ReadFile("formdeck.yml")
	if err != nil {
		t.Fatalf("reading project config: %v", err)
	}
	if !strings.Contains(string(data), "proj-local") {
		t.Errorf("expected project id in file, got:\n%s", data)
	}
}
