package gui

import (
	"context"

	"mlibctl/internal/errors"
	"mlibctl/internal/export"
	"mlibctl/internal/tagedit"
)

// AppID identifies the application to fyne for preferences storage
const AppID = "io.github.mlibctl"

// ErrUnavailable is returned by builds without GUI support
var ErrUnavailable = errors.New("GUI not available in this build")

var errNoConfigPath = errors.New("no configuration file path")

// Interface defines the contract for GUI operations
type Interface interface {
	ShowExportDialog(ctx context.Context, ctrl *export.Controller) (export.Result, error)
	ShowTagDialog(ctx context.Context, ctrl *tagedit.Controller) (bool, error)
	ShowSettings() error
	Notify(msg string)
}

var _ Interface = (*App)(nil)
