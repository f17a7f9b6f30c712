//go:build !nogui
// +build !nogui

package gui

import (
	"context"
	"image/color"

	"mlibctl/internal/config"
	"mlibctl/internal/export"
	"mlibctl/internal/log"
	"mlibctl/internal/tagedit"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

// App is the desktop front-end. Each Show method opens one window and runs
// the fyne event loop until that window is done.
type App struct {
	fyneApp fyne.App
	cfg     *config.Config
	cfgPath string

	// go runs background work; tests replace it to run inline
	goFn func(func())
}

// New creates the application with a unique ID for preferences storage
func New(cfg *config.Config, cfgPath string) *App {
	return NewWithApp(app.NewWithID(AppID), cfg, cfgPath)
}

// NewWithApp wraps an existing fyne app, such as the test driver's
func NewWithApp(fyneApp fyne.App, cfg *config.Config, cfgPath string) *App {
	if cfg == nil {
		cfg = config.New()
	}
	return &App{
		fyneApp: fyneApp,
		cfg:     cfg,
		cfgPath: cfgPath,
		goFn:    func(f func()) { go f() },
	}
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return true
}

// Notify sends a desktop notification. It implements gateway.Notifier.
func (a *App) Notify(msg string) {
	log.Infof("%s", msg)
	a.fyneApp.SendNotification(fyne.NewNotification("mlibctl", msg))
}

// ShowExportDialog opens the export window and blocks until it closes
func (a *App) ShowExportDialog(ctx context.Context, ctrl *export.Controller) (export.Result, error) {
	w := a.NewExportWindow(ctx, ctrl)
	var result export.Result
	w.OnClosed = func(r export.Result) {
		result = r
		a.fyneApp.Quit()
	}
	w.Show()
	a.fyneApp.Run()
	return result, nil
}

// ShowTagDialog opens the tag window and blocks until it closes. It reports
// whether the tag was saved.
func (a *App) ShowTagDialog(ctx context.Context, ctrl *tagedit.Controller) (bool, error) {
	w := a.NewTagWindow(ctx, ctrl)
	saved := false
	w.OnClosed = func(ok bool) {
		saved = ok
		a.fyneApp.Quit()
	}
	w.Show()
	a.fyneApp.Run()
	return saved, nil
}

// ShowSettings opens the settings window and blocks until it closes
func (a *App) ShowSettings() error {
	w := a.NewSettingsWindow()
	w.window.SetOnClosed(a.fyneApp.Quit)
	w.window.Show()
	a.fyneApp.Run()
	return nil
}

// ShowError displays an error dialog on w
func (a *App) ShowError(w fyne.Window, title string, err error) {
	if err == nil {
		return
	}
	log.LogWithError(err).Error(title)
	dialog.ShowError(err, w)
}

// ShowInfo displays an information dialog on w
func (a *App) ShowInfo(w fyne.Window, message string) {
	dialog.ShowInformation("Information", message, w)
}

// parseHex reads #RRGGBB
func parseHex(s string) (color.NRGBA, bool) {
	if len(s) != 7 || s[0] != '#' {
		return color.NRGBA{}, false
	}
	var rgb [3]uint8
	for i := range rgb {
		hi, ok1 := hexDigit(s[1+2*i])
		lo, ok2 := hexDigit(s[2+2*i])
		if !ok1 || !ok2 {
			return color.NRGBA{}, false
		}
		rgb[i] = hi<<4 | lo
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xFF}, true
}

func hexDigit(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}
