package views

import (
	"strings"

	"mlibctl/internal/tui/common"
	"mlibctl/internal/tui/styles"
)

// RenderTagView draws the tag edit dialog
func RenderTagView(m common.TagReader, theme styles.Styles) string {
	var sb strings.Builder

	sb.WriteString(theme.Title.Render("Edit tag"))
	sb.WriteString("\n")
	sb.WriteString(m.Form())
	sb.WriteString("\n\n")

	if m.CanSave() {
		sb.WriteString(theme.Selected.Render("[ Save ]"))
	} else {
		sb.WriteString(theme.Disabled.Render("[ Save ]"))
	}
	sb.WriteString("\n")

	if msg := m.ErrorMessage(); msg != "" {
		sb.WriteString(theme.Error.Render(msg) + "\n")
	}
	if status := m.Status(); status != "" {
		sb.WriteString(status + "\n")
	}
	sb.WriteString("\n" + theme.Help.Render(m.HelpLine()))

	return theme.App.Render(sb.String())
}
