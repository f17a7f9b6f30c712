package styles

import "github.com/charmbracelet/lipgloss"

// Colors are the ANSI 256 color codes of a theme
type Colors struct {
	Primary  string
	Success  string
	Warning  string
	Error    string
	Info     string
	Emphasis string
	Border   string
}

// DefaultColors match the "default" config theme
var DefaultColors = Colors{
	Primary:  "213",
	Success:  "114",
	Warning:  "220",
	Error:    "196",
	Info:     "39",
	Emphasis: "212",
	Border:   "213",
}

// FromColors builds the style set for a theme. Empty colors fall back to
// the defaults.
func FromColors(c Colors) Styles {
	pick := func(v, fallback string) lipgloss.Color {
		if v == "" {
			return lipgloss.Color(fallback)
		}
		return lipgloss.Color(v)
	}
	primary := pick(c.Primary, DefaultColors.Primary)
	success := pick(c.Success, DefaultColors.Success)
	errColor := pick(c.Error, DefaultColors.Error)
	info := pick(c.Info, DefaultColors.Info)
	emphasis := pick(c.Emphasis, DefaultColors.Emphasis)
	border := pick(c.Border, DefaultColors.Border)

	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			MarginBottom(1),
		Selected: lipgloss.NewStyle().
			Foreground(emphasis).
			Bold(true),
		Unselected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		Help: lipgloss.NewStyle().
			Foreground(info),
		Success: lipgloss.NewStyle().
			Foreground(success),
		Error: lipgloss.NewStyle().
			Foreground(errColor),
		Emphasis: lipgloss.NewStyle().
			Foreground(emphasis),
		Disabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		Border: lipgloss.NewStyle().
			BorderForeground(border),
	}
}
