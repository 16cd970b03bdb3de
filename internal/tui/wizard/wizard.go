// Package wizard implements the two-step managed-form creation wizard:
// template picker, then details. Submitting the details step inserts one
// form record and hands the new identifier back to the caller for
// navigation to the editor.
package wizard

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/formdeck/formdeck/internal/catalog"
	"github.com/formdeck/formdeck/internal/config"
	"github.com/formdeck/formdeck/internal/form"
	"github.com/formdeck/formdeck/internal/logger"
	"github.com/formdeck/formdeck/internal/tui/theme"
	"github.com/formdeck/formdeck/internal/uistate"
)

// Step identifies a wizard screen. The enum is deliberately closed: rendering
// switches over it exhaustively, so no third screen can exist unnoticed.
type Step int

const (
	// StepTemplate is the initial template picker screen.
	StepTemplate Step = iota
	// StepDetails is the name/slug/description screen.
	StepDetails
)

// Modal layout constants
const (
	modalWidth        = 70
	modalPadding      = 2
	modalBorderWidth  = 1
	modalContentWidth = modalWidth - (modalPadding * 2) - (modalBorderWidth * 2)
)

// Creator is the persistence dependency: insert one form record, get the
// created record back.
type Creator interface {
	CreateForm(ctx context.Context, rec form.Record) (*form.Record, error)
}

// Result holds the wizard outcome.
type Result struct {
	FormID    string // Identifier of the created form (empty if cancelled)
	Cancelled bool   // User backed out without creating anything
}

// Model is the BubbleTea model for the creation wizard.
type Model struct {
	step      Step
	cancelled bool
	saving    bool // Single-flight guard over the create call
	width     int
	height    int

	ctx     context.Context
	cfg     *config.Config
	creator Creator

	selected *catalog.Template // nil until a template is chosen
	result   Result

	templateStep *TemplateStep
	detailsStep  *DetailsStep
}

// New creates a wizard model. Exposed separately from Run for tests, which
// drive Update directly instead of running a program.
func New(ctx context.Context, cfg *config.Config, creator Creator) *Model {
	return &Model{
		step:    StepTemplate,
		ctx:     ctx,
		cfg:     cfg,
		creator: creator,
	}
}

// Run is the entry point for the creation wizard. It runs a standalone
// BubbleTea program and returns the outcome.
func Run(ctx context.Context, cfg *config.Config, creator Creator) (*Result, error) {
	m := New(ctx, cfg, creator)

	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	wizModel, ok := finalModel.(*Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}

	if wizModel.cancelled {
		return &Result{Cancelled: true}, nil
	}
	return &wizModel.result, nil
}

// Init initializes the wizard model.
func (m *Model) Init() tea.Cmd {
	m.templateStep = NewTemplateStep(m.cfg.AIAssist)
	m.templateStep.Select(uistate.Load(m.cfg.DataDir).Wizard.LastTemplate)
	return m.templateStep.Init()
}

// Update handles messages for the wizard.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "esc":
			switch m.step {
			case StepTemplate:
				// On the first step, exit the wizard
				m.cancelled = true
				return m, tea.Quit
			case StepDetails:
				// Go back; the details step instance survives, so the
				// selection and entered text are preserved for re-entry.
				if !m.saving {
					m.step = StepTemplate
				}
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateStepSizes()
		return m, nil

	case TemplateChosenMsg:
		m.selected = &msg.Template
		if m.detailsStep == nil {
			m.detailsStep = NewDetailsStep()
		}
		// Non-blank templates pre-fill name and slug; both stay editable.
		// The blank sentinel leaves whatever was entered before untouched.
		if !msg.Template.Blank() {
			m.detailsStep.SetName(msg.Template.Name)
			m.detailsStep.SetSlug(msg.Template.ID)
		}
		m.step = StepDetails
		m.updateStepSizes()
		return m, m.detailsStep.Init()

	case SubmitRequestedMsg:
		return m, m.submit()

	case FormCreatedMsg:
		// No confirmation screen: hand off to navigation immediately.
		m.result.FormID = msg.Form.ID
		if m.selected != nil {
			st := uistate.Load(m.cfg.DataDir)
			st.Wizard.LastTemplate = m.selected.ID
			if err := uistate.Save(m.cfg.DataDir, st); err != nil {
				logger.Warn("Failed to save UI state: %v", err)
			}
		}
		return m, tea.Quit

	case CreateFailedMsg:
		// Stay on the details step with entered values intact and the
		// submit control re-enabled; the failure is already logged.
		m.saving = false
		if m.detailsStep != nil {
			return m, m.detailsStep.SetSaving(false)
		}
		return m, nil
	}

	// Forward to the current step.
	var cmd tea.Cmd
	switch m.step {
	case StepTemplate:
		if m.templateStep != nil {
			cmd = m.templateStep.Update(msg)
		}
	case StepDetails:
		if m.detailsStep != nil {
			cmd = m.detailsStep.Update(msg)
		}
	}
	return m, cmd
}

// submit validates preconditions and dispatches the create call. A failed
// precondition is a no-op: no network call, no state change.
func (m *Model) submit() tea.Cmd {
	if m.saving || m.detailsStep == nil {
		return nil
	}

	draft := m.detailsStep.Draft()
	draft.Template = m.selected

	rec, err := draft.Build(m.cfg.Project)
	if err != nil {
		if errors.Is(err, form.ErrEmptyName) || errors.Is(err, form.ErrNoProject) {
			logger.Debug("Create suppressed: %v", err)
			return nil
		}
		logger.Error("Failed to build form record: %v", err)
		return nil
	}

	m.saving = true
	savingCmd := m.detailsStep.SetSaving(true)
	return tea.Batch(savingCmd, m.createForm(rec))
}

func (m *Model) updateStepSizes() {
	contentWidth := modalContentWidth
	contentHeight := m.height - 10
	if contentHeight < 10 {
		contentHeight = 10
	}

	if m.templateStep != nil {
		m.templateStep.SetSize(contentWidth, contentHeight)
	}
	if m.detailsStep != nil {
		m.detailsStep.SetSize(contentWidth, contentHeight)
	}
}

// View renders the wizard UI.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 || m.height == 0 {
		view.Content = lipgloss.NewLayer("")
		return view
	}

	content := m.renderModal()

	centered := lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(centered).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// renderModal wraps the current step in the bordered modal container.
func (m *Model) renderModal() string {
	t := theme.Current()

	var stepTitle, stepContent string
	switch m.step {
	case StepTemplate:
		stepTitle = "New Form - Step 1 of 2: Template"
		if m.templateStep != nil {
			stepContent = m.templateStep.View()
		}
	case StepDetails:
		stepTitle = "New Form - Step 2 of 2: Details"
		if m.detailsStep != nil {
			stepContent = m.detailsStep.View()
		}
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Primary)).
		MarginBottom(1)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(stepTitle),
		stepContent,
	)

	modalStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Padding(2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.BorderDefault))

	return modalStyle.Render(content)
}
