package tui

import (
	"context"
	"strings"

	"mlibctl/internal/tagedit"
	"mlibctl/internal/tui/components"
	"mlibctl/internal/tui/messages"
	"mlibctl/internal/tui/styles"
	"mlibctl/internal/tui/views"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// TagModel is the terminal tag edit dialog
type TagModel struct {
	ctx   context.Context
	ctrl  *tagedit.Controller
	keys  KeyMap
	theme styles.Styles

	form   *components.TagForm
	status *components.StatusBar
	errMsg string

	saved  bool
	closed bool
}

// NewTagModel wraps ctrl
func NewTagModel(ctx context.Context, ctrl *tagedit.Controller, theme styles.Styles) *TagModel {
	tag := ctrl.Working()
	return &TagModel{
		ctx:    ctx,
		ctrl:   ctrl,
		keys:   DefaultKeyMap(),
		theme:  theme,
		form:   components.NewTagForm(theme, tag.Name, tag.Description, tag.Color, tagedit.ColorOptions()),
		status: components.NewStatusBar(theme),
	}
}

// Init implements tea.Model
func (m *TagModel) Init() tea.Cmd {
	return nil
}

// Saved reports whether the dialog closed after a successful save
func (m *TagModel) Saved() bool {
	return m.saved
}

// Closed reports whether the dialog is done
func (m *TagModel) Closed() bool {
	return m.closed
}

func (m *TagModel) saveCmd() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return messages.TagSavedMsg{Err: ctrl.Save(ctx)}
	}
}

// View implements tea.Model
func (m *TagModel) View() string {
	return views.RenderTagView(m, m.theme)
}

// Update implements tea.Model
func (m *TagModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.TagSavedMsg:
		m.status.SetLoading(false)
		m.status.SetText("")
		if msg.Err != nil {
			m.errMsg = m.ctrl.ErrorMessage()
			if m.errMsg == "" {
				// rejected before reaching the server
				m.errMsg = msg.Err.Error()
			}
			return m, nil
		}
		m.saved = true
		m.closed = true
		return m, tea.Quit

	case messages.ConfigUpdateMsg:
		m.theme = ThemeFromConfig(msg.Config.Theme)
		m.status.SetStyles(m.theme)
		return m, nil

	case spinner.TickMsg:
		return m, m.status.Update(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Close):
			m.closed = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Save):
			if !m.CanSave() {
				return m, nil
			}
			m.errMsg = ""
			m.status.SetText("Saving...")
			return m, tea.Batch(m.status.SetLoading(true), m.saveCmd())
		}

		cmd := m.form.Update(msg)
		m.sync()
		return m, cmd
	}
	return m, nil
}

// sync copies the form into the controller's working copy
func (m *TagModel) sync() {
	m.ctrl.SetName(m.form.Name())
	m.ctrl.SetDescription(m.form.Description())
	if c := m.form.Color(); !strings.EqualFold(c, m.ctrl.Working().Color) {
		if err := m.ctrl.SetColor(c); err != nil {
			m.errMsg = err.Error()
		}
	}
}

// CanSave reports whether Save is enabled: something changed and no save
// is running.
func (m *TagModel) CanSave() bool {
	return m.ctrl.Changed() && !m.ctrl.Updating()
}

func (m *TagModel) Form() string         { return m.form.View() }
func (m *TagModel) ErrorMessage() string { return m.errMsg }
func (m *TagModel) Status() string       { return m.status.View() }

func (m *TagModel) HelpLine() string {
	return shortHelp(m.keys.Focus, m.keys.Color, m.keys.Save, m.keys.Close)
}
