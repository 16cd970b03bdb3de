package wizard

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/formdeck/formdeck/internal/catalog"
	"github.com/formdeck/formdeck/internal/tui/theme"
)

// TemplateStep is the template picker: a fixed list of catalog entries plus,
// when the workspace is entitled to it, a non-selectable AI-assist upsell row.
type TemplateStep struct {
	templates   []catalog.Template
	selectedIdx int
	showUpsell  bool
	width       int
	height      int
}

// NewTemplateStep creates the picker over the static catalog.
func NewTemplateStep(showUpsell bool) *TemplateStep {
	return &TemplateStep{
		templates:  catalog.All(),
		showUpsell: showUpsell,
	}
}

// Init initializes the template step.
func (s *TemplateStep) Init() tea.Cmd {
	return nil
}

// SetSize updates the dimensions for the picker.
func (s *TemplateStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Selected returns the template under the cursor.
func (s *TemplateStep) Selected() catalog.Template {
	return s.templates[s.selectedIdx]
}

// Select moves the cursor to the template with the given id, if present.
func (s *TemplateStep) Select(id string) {
	for i, tpl := range s.templates {
		if tpl.ID == id {
			s.selectedIdx = i
			return
		}
	}
}

// Update handles messages for the template step.
func (s *TemplateStep) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if s.selectedIdx > 0 {
			s.selectedIdx--
		}
	case "down", "j":
		if s.selectedIdx < len(s.templates)-1 {
			s.selectedIdx++
		}
	case "enter":
		chosen := s.templates[s.selectedIdx]
		return func() tea.Msg {
			return TemplateChosenMsg{Template: chosen}
		}
	}

	return nil
}

// View renders the template picker.
func (s *TemplateStep) View() string {
	t := theme.Current()

	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle))
	cursorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted))

	var b strings.Builder
	for i, tpl := range s.templates {
		prefix := "  "
		name := nameStyle.Render(tpl.Icon + "  " + tpl.Name)
		if i == s.selectedIdx {
			prefix = cursorStyle.Render("▸ ")
			name = cursorStyle.Render(tpl.Icon + "  " + tpl.Name)
		}

		b.WriteString(prefix + name + "\n")
		b.WriteString("    " + descStyle.Render(tpl.Description) + "\n")
	}

	// Upsell affordance only; the AI-assisted path is not implemented and
	// the row cannot be selected.
	if s.showUpsell {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("  ✦  Generate with AI (coming soon)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderHintBar(
		"↑↓/j/k", "navigate",
		"enter", "select",
		"esc", "cancel",
	))

	return b.String()
}
