package components

import (
	"sync"

	"mlibctl/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusBar shows a spinner while work is pending and the latest notice.
// It implements gateway.Notifier; Notify may be called from any goroutine.
type StatusBar struct {
	style   lipgloss.Style
	spinner spinner.Model

	mu      sync.Mutex
	text    string
	loading bool
}

func NewStatusBar(theme styles.Styles) *StatusBar {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.Help

	return &StatusBar{
		style:   theme.Help,
		spinner: s,
	}
}

// SetStyles applies a new theme
func (s *StatusBar) SetStyles(theme styles.Styles) {
	s.style = theme.Help
	s.spinner.Style = theme.Help
}

// SetLoading starts or stops the spinner. The returned command drives the
// animation and is nil when stopping.
func (s *StatusBar) SetLoading(loading bool) tea.Cmd {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
	if loading {
		return s.spinner.Tick
	}
	return nil
}

func (s *StatusBar) SetText(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

// Notify shows msg as the current notice
func (s *StatusBar) Notify(msg string) {
	s.SetText(msg)
}

// Text returns the current notice
func (s *StatusBar) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

func (s *StatusBar) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *StatusBar) Update(msg tea.Msg) tea.Cmd {
	if !s.Loading() {
		return nil
	}
	if _, ok := msg.(spinner.TickMsg); !ok {
		return nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return cmd
}

func (s *StatusBar) View() string {
	s.mu.Lock()
	text, loading := s.text, s.loading
	s.mu.Unlock()

	if text == "" && !loading {
		return ""
	}
	if loading {
		return s.style.Render(s.spinner.View() + " " + text)
	}
	return s.style.Render(text)
}
