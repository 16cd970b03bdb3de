// Package form defines the managed-form record and the rules for building
// one from wizard input.
package form

import (
	"errors"
	"strings"
	"time"

	"github.com/formdeck/formdeck/internal/catalog"
)

// TypeCustom is the form type stored when no catalog template was involved
// in creating the form.
const TypeCustom = "custom"

// Record is a managed form as persisted in the forms table.
// A record is created inactive at version 1; activation and all later
// mutation happen in the editor, never in the creation wizard.
type Record struct {
	ID          string    `json:"id" yaml:"id"`
	ProjectID   string    `json:"project_id" yaml:"project_id"`
	Name        string    `json:"name" yaml:"name"`
	Slug        string    `json:"slug" yaml:"slug"`
	Description *string   `json:"description" yaml:"description,omitempty"`
	FormType    string    `json:"form_type" yaml:"form_type"`
	IsActive    bool      `json:"is_active" yaml:"is_active"`
	Version     int       `json:"version" yaml:"version"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// Draft holds the user-editable wizard fields before submission.
type Draft struct {
	Name        string
	Slug        string
	Description string
	Template    *catalog.Template
}

// Precondition errors. The wizard treats these as "do not submit" rather
// than user-visible failures.
var (
	ErrNoProject = errors.New("no project context")
	ErrEmptyName = errors.New("form name is empty")
)

// Build resolves a draft into a record ready for insertion.
//
// The name and slug are trimmed, a blank slug derives from the name, and an
// empty description is stored as null rather than "". The form type is the
// selected template's identifier - the blank template contributes its own id,
// not "custom"; "custom" is only stored when no template object exists at
// all. The record starts disabled at version 1.
func (d Draft) Build(projectID string) (Record, error) {
	if strings.TrimSpace(projectID) == "" {
		return Record{}, ErrNoProject
	}

	name := strings.TrimSpace(d.Name)
	if name == "" {
		return Record{}, ErrEmptyName
	}

	var desc *string
	if t := strings.TrimSpace(d.Description); t != "" {
		desc = &t
	}

	formType := TypeCustom
	if d.Template != nil {
		formType = d.Template.ID
	}

	return Record{
		ProjectID:   projectID,
		Name:        name,
		Slug:        EffectiveSlug(name, d.Slug),
		Description: desc,
		FormType:    formType,
		IsActive:    false,
		Version:     1,
	}, nil
}
