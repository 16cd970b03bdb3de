// Package uistate persists small UI preferences that carry across runs.
package uistate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/formdeck/formdeck/internal/catalog"
	"github.com/formdeck/formdeck/internal/logger"
)

// State holds persistent UI preferences.
type State struct {
	Wizard WizardState `json:"wizard"`
}

// WizardState remembers where the creation wizard left off.
type WizardState struct {
	// LastTemplate is the id of the template picked on the last completed
	// run. The picker opens with the cursor on it.
	LastTemplate string `json:"last_template"`
}

// Default returns the default UI state.
func Default() *State {
	return &State{
		Wizard: WizardState{
			LastTemplate: catalog.All()[0].ID,
		},
	}
}

// Load reads the UI state from <dataDir>/ui-state.json.
// Returns default state if the file doesn't exist or on error.
func Load(dataDir string) *State {
	path := filepath.Join(dataDir, "ui-state.json")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Failed to read UI state file: %v", err)
		return Default()
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		logger.Warn("Failed to parse UI state JSON: %v", err)
		return Default()
	}

	// A remembered template may have left the catalog; fall back quietly.
	if _, ok := catalog.ByID(state.Wizard.LastTemplate); !ok {
		state.Wizard.LastTemplate = catalog.All()[0].ID
	}

	return &state
}

// Save writes the UI state to <dataDir>/ui-state.json.
// Creates the data directory if it doesn't exist.
func Save(dataDir string, state *State) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dataDir, "ui-state.json")

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling UI state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing UI state file: %w", err)
	}

	logger.Debug("UI state saved to %s", path)
	return nil
}
