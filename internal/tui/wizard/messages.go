package wizard

import (
	"github.com/formdeck/formdeck/internal/catalog"
	"github.com/formdeck/formdeck/internal/form"
)

// TemplateChosenMsg is sent when a catalog template is selected in the
// picker step.
type TemplateChosenMsg struct {
	Template catalog.Template
}

// SubmitRequestedMsg is sent when the user confirms the details step.
type SubmitRequestedMsg struct{}

// FormCreatedMsg is sent when the backend insert succeeded.
type FormCreatedMsg struct {
	Form *form.Record
}

// CreateFailedMsg is sent when the backend insert failed. The wizard stays
// on the details step with entered values intact.
type CreateFailedMsg struct {
	Err error
}
