package views

import (
	"strings"

	"mlibctl/internal/naming"
	"mlibctl/internal/tui/common"
	"mlibctl/internal/tui/styles"
)

// RenderExportView draws the export dialog
func RenderExportView(m common.ExportReader, theme styles.Styles) string {
	var sb strings.Builder

	file := m.File()
	title := file.Title
	if title == "" {
		title = naming.DefaultTitle
	}
	sb.WriteString(theme.Title.Render("Export: " + title))
	sb.WriteString("\n")
	sb.WriteString(m.Details())
	sb.WriteString("\n\n")

	// Folder browser
	sb.WriteString(sectionHeader(theme, "Export to", m.Focus() == common.FocusFolders))
	sb.WriteString("\n")
	sb.WriteString(theme.FolderListStyle().Render(m.FolderList()))
	sb.WriteString("\n\n")

	// Folder name
	if m.NameEnabled() {
		sb.WriteString(sectionHeader(theme, "Folder name", m.Focus() == common.FocusName))
		sb.WriteString("\n  " + m.NameInput() + "\n")
		sb.WriteString("  " + theme.Help.Render("Naming: "+m.Convention().Label()))
		sb.WriteString("\n")
		if preview := m.Preview(); preview != "" {
			sb.WriteString("  " + theme.Help.Render("Preview: ") + preview + "\n")
		}
		sb.WriteString("\n")
	}

	// Options
	sb.WriteString(sectionHeader(theme, "Options", m.Focus() == common.FocusOptions))
	sb.WriteString("\n")
	for i, t := range m.Toggles() {
		sb.WriteString(renderToggle(theme, t, m.Focus() == common.FocusOptions && i == m.OptionCursor()))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(theme.Help.Render("Full path: ") + theme.Emphasis.Render(m.FullExportPath()))
	sb.WriteString("\n")

	if msg := m.ExportError(); msg != "" {
		sb.WriteString(theme.Error.Render(msg) + "\n")
	}
	if status := m.Status(); status != "" {
		sb.WriteString(status + "\n")
	}

	if m.ShowHelp() {
		sb.WriteString("\n" + RenderHelp(theme))
	}
	sb.WriteString("\n" + theme.Help.Render(m.HelpLine()))

	return theme.App.Render(sb.String())
}

func sectionHeader(theme styles.Styles, text string, focused bool) string {
	if focused {
		return theme.Selected.Render("▸ " + text)
	}
	return theme.Unselected.Render("  " + text)
}

func renderToggle(theme styles.Styles, t common.Toggle, cursor bool) string {
	box := "[ ]"
	if t.On {
		box = "[x]"
	}
	line := box + " " + t.Label
	if cursor {
		return theme.Selected.Render("> " + line)
	}
	return "  " + line
}

// RenderHelp explains folder names and templates
func RenderHelp(theme styles.Styles) string {
	var s strings.Builder
	s.WriteString("Type a folder name or pick a naming convention.\n")
	s.WriteString("Custom names may use placeholders, filled in by the server:\n  ")
	s.WriteString(strings.Join(naming.Placeholders(), " "))
	s.WriteString("\n")
	return theme.Help.Render(s.String())
}
