package tui

import (
	"mlibctl/internal/config"
	"mlibctl/internal/tui/styles"
)

// ThemeFromConfig builds the dialog styles from the theme config section
func ThemeFromConfig(t config.Theme) styles.Styles {
	return styles.FromColors(styles.Colors{
		Primary:  t.Primary,
		Success:  t.Success,
		Warning:  t.Warning,
		Error:    t.Error,
		Info:     t.Info,
		Emphasis: t.Emphasis,
		Border:   t.Border,
	})
}
