package tui

import (
	"context"
	"fmt"

	"mlibctl/internal/config"
	"mlibctl/internal/export"
	"mlibctl/internal/log"
	"mlibctl/internal/tui/messages"

	tea "github.com/charmbracelet/bubbletea"
)

// RunExport runs the export dialog until it closes. When cfgPath is set,
// theme edits to the config file are applied live.
func RunExport(ctx context.Context, m *ExportModel, cfgPath string) (export.Result, error) {
	final, err := run(ctx, m, cfgPath)
	if err != nil {
		return export.Result{}, err
	}
	r, _ := final.(*ExportModel).Result()
	return r, nil
}

// RunTag runs the tag dialog and reports whether the tag was saved
func RunTag(ctx context.Context, m *TagModel, cfgPath string) (bool, error) {
	final, err := run(ctx, m, cfgPath)
	if err != nil {
		return false, err
	}
	return final.(*TagModel).Saved(), nil
}

func run(ctx context.Context, model tea.Model, cfgPath string) (tea.Model, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())

	if cfgPath != "" {
		err := config.Watch(ctx, cfgPath, func(cfg *config.Config, err error) {
			if err == nil {
				p.Send(messages.ConfigUpdateMsg{Config: cfg})
			}
		})
		if err != nil {
			log.LogWithError(err).Warn("live config reload disabled")
		}
	}

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running dialog: %w", err)
	}
	return final, nil
}
