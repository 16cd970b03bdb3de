package wizard

import (
	tea "charm.land/bubbletea/v2"

	"github.com/formdeck/formdeck/internal/form"
	"github.com/formdeck/formdeck/internal/logger"
)

// createForm performs the single backend insert. Failures never propagate
// past this command: they are logged and turned into CreateFailedMsg so the
// wizard stays usable for a manual retry.
func (m *Model) createForm(rec form.Record) tea.Cmd {
	ctx := m.ctx
	creator := m.creator

	return func() tea.Msg {
		created, err := creator.CreateForm(ctx, rec)
		if err != nil {
			logger.Error("Failed to create form %q in project %s: %v", rec.Name, rec.ProjectID, err)
			return CreateFailedMsg{Err: err}
		}

		logger.Info("Created form %s (slug=%s type=%s)", created.ID, created.Slug, created.FormType)
		return FormCreatedMsg{Form: created}
	}
}
