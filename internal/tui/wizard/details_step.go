package wizard

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/formdeck/formdeck/internal/form"
	"github.com/formdeck/formdeck/internal/tui/theme"
)

// Field indices for focus cycling.
const (
	fieldName = iota
	fieldSlug
	fieldDescription
	fieldCount
)

// DetailsStep collects the form name, slug and description. The wizard keeps
// one instance alive across back-navigation so entered values survive a
// return to the template picker.
type DetailsStep struct {
	inputs  [fieldCount]textinput.Model
	focused int
	saving  bool
	spinner spinner.Model
	width   int
	height  int
}

// NewDetailsStep creates the details form.
func NewDetailsStep() *DetailsStep {
	name := textinput.New()
	name.Placeholder = "e.g. 'Newsletter Signup'"
	name.CharLimit = 100
	name.Focus()

	slug := textinput.New()
	slug.Placeholder = "defaults to a slug derived from the name"
	slug.CharLimit = 100

	desc := textinput.New()
	desc.Placeholder = "optional"
	desc.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current().Primary))

	s := &DetailsStep{spinner: sp}
	s.inputs[fieldName] = name
	s.inputs[fieldSlug] = slug
	s.inputs[fieldDescription] = desc
	return s
}

// Init initializes the details step.
func (s *DetailsStep) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the dimensions for the details step.
func (s *DetailsStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	for i := range s.inputs {
		s.inputs[i].SetWidth(width - 14)
	}
}

// Name returns the entered form name (untrimmed; trimming happens on build).
func (s *DetailsStep) Name() string { return s.inputs[fieldName].Value() }

// Slug returns the entered slug.
func (s *DetailsStep) Slug() string { return s.inputs[fieldSlug].Value() }

// Description returns the entered description.
func (s *DetailsStep) Description() string { return s.inputs[fieldDescription].Value() }

// SetName overwrites the name input (template pre-fill).
func (s *DetailsStep) SetName(v string) { s.inputs[fieldName].SetValue(v) }

// SetSlug overwrites the slug input (template pre-fill).
func (s *DetailsStep) SetSlug(v string) { s.inputs[fieldSlug].SetValue(v) }

// Draft returns the current field values as a draft, without a template
// reference; the wizard attaches its selection.
func (s *DetailsStep) Draft() form.Draft {
	return form.Draft{
		Name:        s.Name(),
		Slug:        s.Slug(),
		Description: s.Description(),
	}
}

// SetSaving toggles the in-flight state. While saving the inputs are blurred
// and the submit key is ignored upstream.
func (s *DetailsStep) SetSaving(saving bool) tea.Cmd {
	s.saving = saving
	if saving {
		s.blurAll()
		return s.spinner.Tick
	}
	s.inputs[s.focused].Focus()
	return nil
}

// Saving reports whether a create call is in flight.
func (s *DetailsStep) Saving() bool { return s.saving }

// SubmitEnabled reports whether the submit control is active: a non-blank
// name and no create in flight.
func (s *DetailsStep) SubmitEnabled() bool {
	return !s.saving && strings.TrimSpace(s.Name()) != ""
}

func (s *DetailsStep) blurAll() {
	for i := range s.inputs {
		s.inputs[i].Blur()
	}
}

func (s *DetailsStep) focusField(idx int) tea.Cmd {
	s.blurAll()
	s.focused = idx
	return s.inputs[idx].Focus()
}

// Update handles messages for the details step.
func (s *DetailsStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if s.saving {
			var cmd tea.Cmd
			s.spinner, cmd = s.spinner.Update(msg)
			return cmd
		}
		return nil

	case tea.KeyPressMsg:
		if s.saving {
			// Single-flight: ignore all input while the create is pending.
			return nil
		}

		switch msg.String() {
		case "tab", "down":
			return s.focusField((s.focused + 1) % fieldCount)
		case "shift+tab", "up":
			return s.focusField((s.focused + fieldCount - 1) % fieldCount)
		case "enter":
			if !s.SubmitEnabled() {
				return nil
			}
			return func() tea.Msg {
				return SubmitRequestedMsg{}
			}
		}
	}

	if s.saving {
		return nil
	}

	var cmd tea.Cmd
	s.inputs[s.focused], cmd = s.inputs[s.focused].Update(msg)
	return cmd
}

// View renders the details step.
func (s *DetailsStep) View() string {
	t := theme.Current()

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)).Width(12)
	focusedLabel := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)).Width(12)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted))

	labels := [fieldCount]string{"Name", "Slug", "Description"}

	var b strings.Builder
	for i := range s.inputs {
		style := labelStyle
		if i == s.focused && !s.saving {
			style = focusedLabel
		}
		b.WriteString(style.Render(labels[i]) + " " + s.inputs[i].View() + "\n\n")
	}

	if s.saving {
		b.WriteString(s.spinner.View() + " " + mutedStyle.Render("Creating form..."))
	} else if !s.SubmitEnabled() {
		b.WriteString(mutedStyle.Render("Enter a name to create the form"))
	} else {
		b.WriteString(renderHintBar(
			"tab", "next field",
			"enter", "create",
			"esc", "back",
		))
	}

	return b.String()
}
