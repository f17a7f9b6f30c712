package components

import (
	"fmt"
	"strings"

	"mlibctl/internal/tui/styles"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Field is one labelled line of the details pane
type Field struct {
	Label string
	Value string
}

// Details shows record metadata in a scrollable pane
type Details struct {
	viewport viewport.Model
	fields   []Field
	theme    styles.Styles
}

func NewDetails(theme styles.Styles) *Details {
	vp := viewport.New(60, 6)
	return &Details{viewport: vp, theme: theme}
}

func (d *Details) SetSize(width, height int) {
	d.viewport.Width = width
	d.viewport.Height = height
	d.render()
}

// SetFields replaces the content. Empty values are skipped.
func (d *Details) SetFields(fields ...Field) {
	d.fields = fields
	d.render()
}

func (d *Details) render() {
	width := 0
	for _, f := range d.fields {
		if len(f.Label) > width {
			width = len(f.Label)
		}
	}
	var s strings.Builder
	for _, f := range d.fields {
		if f.Value == "" {
			continue
		}
		label := d.theme.Help.Render(fmt.Sprintf("%-*s", width, f.Label))
		s.WriteString(label + "  " + f.Value + "\n")
	}
	d.viewport.SetContent(strings.TrimRight(s.String(), "\n"))
}

func (d *Details) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return cmd
}

func (d *Details) View() string {
	return d.viewport.View()
}

// SetStyles applies a new theme
func (d *Details) SetStyles(theme styles.Styles) {
	d.theme = theme
	d.render()
}
