package styles

import "github.com/charmbracelet/lipgloss"

// Styles defines the core UI styles
type Styles struct {
	App        lipgloss.Style
	Title      lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Help       lipgloss.Style
	Success    lipgloss.Style
	Error      lipgloss.Style
	Emphasis   lipgloss.Style
	Disabled   lipgloss.Style
	Border     lipgloss.Style
}

// Theme is the active style set. Models copy it at construction; use
// FromColors to build one from configuration.
var Theme = FromColors(DefaultColors)

// FolderListStyle frames the folder browser
func (s Styles) FolderListStyle() lipgloss.Style {
	return s.Border.
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())
}
