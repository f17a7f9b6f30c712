package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings of the dialogs
type KeyMap struct {
	// General
	Help  key.Binding
	Close key.Binding
	Focus key.Binding
	Save  key.Binding

	// Folder browser
	Up   key.Binding
	Down key.Binding
	Open key.Binding
	Back key.Binding
	Home key.Binding

	// Export form
	NextConvention key.Binding
	Toggle         key.Binding

	// Tag form
	Color key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Close: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "close")),
		Focus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next section")),
		Save:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),

		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open: key.NewBinding(key.WithKeys("enter", "l", "right"), key.WithHelp("enter", "open folder")),
		Back: key.NewBinding(key.WithKeys("backspace", "h", "left"), key.WithHelp("⌫", "back")),
		Home: key.NewBinding(key.WithKeys("~"), key.WithHelp("~", "home")),

		NextConvention: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "naming convention")),
		Toggle:         key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),

		Color: key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "color")),
	}
}

var helpView = help.New()

// shortHelp renders bindings on one line
func shortHelp(bindings ...key.Binding) string {
	return helpView.ShortHelpView(bindings)
}
