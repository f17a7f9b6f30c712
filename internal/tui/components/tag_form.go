package components

import (
	"strings"

	"mlibctl/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Tag form fields, in tab order
const (
	FieldName = iota
	FieldDescription
	FieldColor
	fieldCount
)

// TagForm edits a tag's name, description and color
type TagForm struct {
	inputs []textinput.Model
	cursor int
	colors []string
	color  int
	theme  styles.Styles
}

// NewTagForm creates the form. colors is the palette; color is the current
// value and is added to the palette when it is not part of it. An empty color
// selects nothing until the user picks one.
func NewTagForm(theme styles.Styles, name, description, color string, colors []string) *TagForm {
	tf := &TagForm{theme: theme}

	nameInput := textinput.New()
	nameInput.Placeholder = "Tag name"
	nameInput.CharLimit = 64
	nameInput.Width = 40
	nameInput.SetValue(name)
	nameInput.Focus()

	descInput := textinput.New()
	descInput.Placeholder = "Description (optional)"
	descInput.Width = 40
	descInput.SetValue(description)

	tf.inputs = []textinput.Model{nameInput, descInput}

	tf.colors = append([]string{}, colors...)
	tf.selectColor(color)
	if tf.color < 0 && color != "" {
		tf.colors = append(tf.colors, color)
		tf.color = len(tf.colors) - 1
	}
	return tf
}

func (tf *TagForm) Name() string        { return tf.inputs[FieldName].Value() }
func (tf *TagForm) Description() string { return tf.inputs[FieldDescription].Value() }

// Color returns the picked color, or "" when none is
func (tf *TagForm) Color() string {
	if tf.color < 0 || tf.color >= len(tf.colors) {
		return ""
	}
	return tf.colors[tf.color]
}

func (tf *TagForm) selectColor(color string) {
	tf.color = -1
	if color == "" {
		return
	}
	for i, c := range tf.colors {
		if strings.EqualFold(c, color) {
			tf.color = i
			return
		}
	}
}

// Cursor returns the focused field
func (tf *TagForm) Cursor() int {
	return tf.cursor
}

// SetValues resets every field
func (tf *TagForm) SetValues(name, description, color string) {
	tf.inputs[FieldName].SetValue(name)
	tf.inputs[FieldDescription].SetValue(description)
	tf.selectColor(color)
}

func (tf *TagForm) focus(i int) tea.Cmd {
	tf.cursor = (i + fieldCount) % fieldCount
	var cmd tea.Cmd
	for j := range tf.inputs {
		if j == tf.cursor {
			cmd = tf.inputs[j].Focus()
		} else {
			tf.inputs[j].Blur()
		}
	}
	return cmd
}

func (tf *TagForm) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			return tf.focus(tf.cursor + 1)
		case "shift+tab", "up":
			return tf.focus(tf.cursor - 1)
		case "left", "h":
			if tf.cursor == FieldColor && len(tf.colors) > 0 {
				if tf.color < 0 {
					tf.color = len(tf.colors) - 1
				} else {
					tf.color = (tf.color - 1 + len(tf.colors)) % len(tf.colors)
				}
				return nil
			}
		case "right", "l", " ":
			if tf.cursor == FieldColor && len(tf.colors) > 0 {
				tf.color = (tf.color + 1) % len(tf.colors)
				return nil
			}
		}
	}

	if tf.cursor >= len(tf.inputs) {
		return nil
	}
	var cmd tea.Cmd
	tf.inputs[tf.cursor], cmd = tf.inputs[tf.cursor].Update(msg)
	return cmd
}

func (tf *TagForm) View() string {
	var s strings.Builder

	label := func(i int, text string) string {
		if i == tf.cursor {
			return tf.theme.Selected.Render("> " + text)
		}
		return tf.theme.Unselected.Render("  " + text)
	}

	s.WriteString(label(FieldName, "Name") + "\n")
	s.WriteString("  " + tf.inputs[FieldName].View() + "\n\n")
	s.WriteString(label(FieldDescription, "Description") + "\n")
	s.WriteString("  " + tf.inputs[FieldDescription].View() + "\n\n")
	s.WriteString(label(FieldColor, "Color") + "\n  ")

	for i, c := range tf.colors {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("■")
		if i == tf.color {
			swatch = "[" + swatch + "]"
		} else {
			swatch = " " + swatch + " "
		}
		s.WriteString(swatch)
	}
	if c := tf.Color(); c != "" {
		s.WriteString(" " + c)
	} else {
		s.WriteString(" none")
	}
	return s.String()
}
