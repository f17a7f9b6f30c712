package tui

import (
	"context"

	"mlibctl/internal/export"
	"mlibctl/internal/gateway"
	"mlibctl/internal/naming"
	"mlibctl/internal/tui/common"
	"mlibctl/internal/tui/components"
	"mlibctl/internal/tui/messages"
	"mlibctl/internal/tui/styles"
	"mlibctl/internal/tui/views"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Export option rows, in display order
const (
	optionNFO = iota
	optionSimpleFilenames
	optionNewFolder
	optionCount
)

// ExportModel is the terminal export dialog
type ExportModel struct {
	ctx   context.Context
	ctrl  *export.Controller
	keys  KeyMap
	theme styles.Styles

	focus     common.Focus
	folders   *components.FolderList
	name      textinput.Model
	details   *components.Details
	status    *components.StatusBar
	optCursor int
	showHelp  bool

	result *export.Result
}

// NewExportModel wraps ctrl. status should be the notifier ctrl was
// created with so that success notices show up in the dialog.
func NewExportModel(ctx context.Context, ctrl *export.Controller, status *components.StatusBar, theme styles.Styles) *ExportModel {
	if status == nil {
		status = components.NewStatusBar(theme)
	}

	name := textinput.New()
	name.Placeholder = "Folder name or template, e.g. {uploader} - {title}"
	name.Width = 50
	name.SetValue(ctrl.FolderName())

	m := &ExportModel{
		ctx:     ctx,
		ctrl:    ctrl,
		keys:    DefaultKeyMap(),
		theme:   theme,
		focus:   common.FocusFolders,
		folders: components.NewFolderList(theme),
		name:    name,
		details: components.NewDetails(theme),
		status:  status,
	}

	f := ctrl.File()
	m.details.SetFields(
		components.Field{Label: "Title", Value: f.Title},
		components.Field{Label: "Uploader", Value: f.Uploader},
		components.Field{Label: "Channel", Value: f.Channel},
		components.Field{Label: "Uploaded", Value: f.UploadDate},
		components.Field{Label: "Source", Value: f.Extractor},
		components.Field{Label: "ID", Value: f.ID},
	)
	return m
}

// NewNotifier creates the status bar an export controller should notify
func NewNotifier(theme styles.Styles) *components.StatusBar {
	return components.NewStatusBar(theme)
}

// Init implements tea.Model
func (m *ExportModel) Init() tea.Cmd {
	m.status.SetText("Loading folders...")
	return tea.Batch(m.status.SetLoading(true), m.loadCmd(m.ctrl.LoadFolders))
}

// Result reports how the dialog ended. ok is false while it is still open.
func (m *ExportModel) Result() (export.Result, bool) {
	if m.result == nil {
		return export.Result{}, false
	}
	return *m.result, true
}

func (m *ExportModel) loadCmd(fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return messages.FoldersLoadedMsg{Err: fn(ctx)}
	}
}

func (m *ExportModel) navigateCmd(folder gateway.Folder) tea.Cmd {
	nav := m.ctrl.Navigator()
	return m.loadCmd(func(ctx context.Context) error {
		return nav.NavigateTo(ctx, folder)
	})
}

func (m *ExportModel) submitCmd() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return messages.ExportDoneMsg{Err: ctrl.Submit(ctx)}
	}
}

func (m *ExportModel) waitClosedCmd() tea.Cmd {
	done := m.ctrl.Done()
	return func() tea.Msg {
		r, ok := <-done
		return messages.DialogClosedMsg{Result: r, OK: ok}
	}
}

// View implements tea.Model
func (m *ExportModel) View() string {
	return views.RenderExportView(m, m.theme)
}

// Update implements tea.Model
func (m *ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.folders.SetSize(msg.Width-4, max(msg.Height/2, 6))
		m.details.SetSize(msg.Width-4, 6)
		return m, nil

	case messages.FoldersLoadedMsg:
		nav := m.ctrl.Navigator()
		m.folders.SetFolders(nav.Folders(), nav.Display())
		if !nav.Loading() {
			m.status.SetLoading(false)
			m.status.SetText("")
		}
		return m, nil

	case messages.ExportDoneMsg:
		m.status.SetLoading(false)
		if msg.Err != nil {
			m.status.SetText("")
			return m, nil
		}
		return m, m.waitClosedCmd()

	case messages.DialogClosedMsg:
		if msg.OK {
			r := msg.Result
			m.result = &r
		} else if m.result == nil {
			m.result = &export.Result{Exported: m.ctrl.Succeeded()}
		}
		return m, tea.Quit

	case messages.ConfigUpdateMsg:
		m.SetTheme(ThemeFromConfig(msg.Config.Theme))
		return m, nil

	case spinner.TickMsg:
		return m, m.status.Update(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// SetTheme restyles the dialog
func (m *ExportModel) SetTheme(theme styles.Styles) {
	m.theme = theme
	m.status.SetStyles(theme)
	m.folders.SetStyles(theme)
	m.details.SetStyles(theme)
}

func (m *ExportModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.ctrl.Close()
		return m, m.waitClosedCmd()
	case key.Matches(msg, m.keys.Save):
		if m.ctrl.Exporting() || m.ctrl.Succeeded() || m.ctrl.Closed() {
			return m, nil
		}
		m.status.SetText("Exporting...")
		return m, tea.Batch(m.status.SetLoading(true), m.submitCmd())
	case key.Matches(msg, m.keys.Focus):
		return m, m.setFocus(m.focus.Next())
	case key.Matches(msg, m.keys.NextConvention):
		m.ctrl.SetConvention(m.ctrl.Convention().Next())
		m.name.SetValue(m.ctrl.FolderName())
		return m, nil
	}

	switch m.focus {
	case common.FocusName:
		return m, m.updateName(msg)
	case common.FocusOptions:
		m.updateOptions(msg)
		return m, nil
	default:
		return m, m.updateFolders(msg)
	}
}

func (m *ExportModel) setFocus(f common.Focus) tea.Cmd {
	if f == common.FocusName && !m.ctrl.CreateNewFolder() {
		// nothing to type without a new folder
		f = f.Next()
	}
	m.focus = f
	if f == common.FocusName {
		return m.name.Focus()
	}
	m.name.Blur()
	return nil
}

func (m *ExportModel) updateFolders(msg tea.KeyMsg) tea.Cmd {
	nav := m.ctrl.Navigator()
	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return nil
	case key.Matches(msg, m.keys.Open):
		folder, ok := m.folders.Selected()
		if !ok || nav.Loading() {
			return nil
		}
		return m.startLoading(m.navigateCmd(folder))
	case key.Matches(msg, m.keys.Back):
		if len(nav.History()) == 0 {
			return nil
		}
		return m.startLoading(m.loadCmd(nav.Back))
	case key.Matches(msg, m.keys.Home):
		return m.startLoading(m.loadCmd(nav.Home))
	}
	return m.folders.Update(msg)
}

func (m *ExportModel) startLoading(cmd tea.Cmd) tea.Cmd {
	m.status.SetText("Loading folders...")
	return tea.Batch(m.status.SetLoading(true), cmd)
}

func (m *ExportModel) updateName(msg tea.KeyMsg) tea.Cmd {
	before := m.name.Value()
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	if v := m.name.Value(); v != before {
		m.ctrl.SetFolderName(v)
	}
	return cmd
}

func (m *ExportModel) updateOptions(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Up):
		m.optCursor = (m.optCursor - 1 + optionCount) % optionCount
	case key.Matches(msg, m.keys.Down):
		m.optCursor = (m.optCursor + 1) % optionCount
	case key.Matches(msg, m.keys.Toggle):
		switch m.optCursor {
		case optionNFO:
			m.ctrl.SetIncludeNFO(!m.ctrl.IncludeNFO())
		case optionSimpleFilenames:
			m.ctrl.SetUseSimpleFilenames(!m.ctrl.UseSimpleFilenames())
		case optionNewFolder:
			m.ctrl.SetCreateNewFolder(!m.ctrl.CreateNewFolder())
		}
	}
}

// Reader methods used by the view

func (m *ExportModel) File() gateway.File            { return m.ctrl.File() }
func (m *ExportModel) Location() string              { return m.ctrl.Navigator().Display() }
func (m *ExportModel) Focus() common.Focus           { return m.focus }
func (m *ExportModel) NameInput() string             { return m.name.View() }
func (m *ExportModel) NameEnabled() bool             { return m.ctrl.CreateNewFolder() }
func (m *ExportModel) Convention() naming.Convention { return m.ctrl.Convention() }
func (m *ExportModel) Preview() string               { return m.ctrl.Preview() }
func (m *ExportModel) OptionCursor() int             { return m.optCursor }
func (m *ExportModel) FullExportPath() string        { return m.ctrl.FullExportPath() }
func (m *ExportModel) ExportError() string           { return m.ctrl.ExportError() }
func (m *ExportModel) Status() string                { return m.status.View() }
func (m *ExportModel) Details() string               { return m.details.View() }
func (m *ExportModel) ShowHelp() bool                { return m.showHelp }

func (m *ExportModel) FolderList() string {
	if msg := m.ctrl.Navigator().ErrorMessage(); msg != "" {
		return m.theme.Error.Render(msg)
	}
	return m.folders.View()
}

func (m *ExportModel) Toggles() []common.Toggle {
	return []common.Toggle{
		optionNFO:             {Label: "Include NFO metadata file", On: m.ctrl.IncludeNFO()},
		optionSimpleFilenames: {Label: "Use simple filenames", On: m.ctrl.UseSimpleFilenames()},
		optionNewFolder:       {Label: "Create new folder", On: m.ctrl.CreateNewFolder()},
	}
}

// HelpLine lists the bindings of the focused section
func (m *ExportModel) HelpLine() string {
	switch m.focus {
	case common.FocusName:
		return shortHelp(m.keys.NextConvention, m.keys.Focus, m.keys.Save, m.keys.Close)
	case common.FocusOptions:
		return shortHelp(m.keys.Up, m.keys.Down, m.keys.Toggle, m.keys.Focus, m.keys.Save, m.keys.Close)
	default:
		return shortHelp(m.keys.Open, m.keys.Back, m.keys.Home, m.keys.Focus, m.keys.Save, m.keys.Close)
	}
}
