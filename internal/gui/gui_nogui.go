//go:build nogui
// +build nogui

package gui

import (
	"context"

	"mlibctl/internal/config"
	"mlibctl/internal/export"
	"mlibctl/internal/log"
	"mlibctl/internal/tagedit"
)

// App is a stub for builds with GUI disabled
type App struct{}

// New returns the stub
func New(cfg *config.Config, cfgPath string) *App {
	return &App{}
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return false
}

func (a *App) ShowExportDialog(ctx context.Context, ctrl *export.Controller) (export.Result, error) {
	return export.Result{}, ErrUnavailable
}

func (a *App) ShowTagDialog(ctx context.Context, ctrl *tagedit.Controller) (bool, error) {
	return false, ErrUnavailable
}

func (a *App) ShowSettings() error {
	return ErrUnavailable
}

// Notify logs msg
func (a *App) Notify(msg string) {
	log.Infof("%s", msg)
}
