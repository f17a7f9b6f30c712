//go:build !nogui
// +build !nogui

package gui

import (
	"strconv"
	"strings"

	"mlibctl/internal/config"
	"mlibctl/internal/errors"
	"mlibctl/internal/naming"
	"mlibctl/internal/navigation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// SettingsWindow edits the configuration file
type SettingsWindow struct {
	app    *App
	window fyne.Window

	serverURL  *widget.Entry
	apiKey     *widget.Entry
	timeout    *widget.Entry
	nfo        *widget.Check
	simple     *widget.Check
	newFolder  *widget.Check
	convention *widget.Select
	source     *widget.Select
	hidden     *widget.Entry
	themeName  *widget.Select
	saveBtn    *widget.Button
}

// NewSettingsWindow builds the settings window from the app's config
func (a *App) NewSettingsWindow() *SettingsWindow {
	s := &SettingsWindow{app: a}
	s.window = a.fyneApp.NewWindow("mlibctl settings")
	s.window.Resize(fyne.NewSize(480, 520))
	s.window.SetContent(s.build())
	return s
}

func (s *SettingsWindow) build() fyne.CanvasObject {
	cfg := s.app.cfg

	s.serverURL = widget.NewEntry()
	s.serverURL.SetPlaceHolder("http://localhost:3000")
	s.serverURL.SetText(cfg.Server.URL)
	s.apiKey = widget.NewPasswordEntry()
	s.apiKey.SetText(cfg.Server.APIKey)
	s.timeout = widget.NewEntry()
	s.timeout.SetText(strconv.Itoa(cfg.Server.TimeoutSeconds))

	s.nfo = widget.NewCheck("Include NFO metadata file", nil)
	s.nfo.SetChecked(cfg.Export.IncludeNFO)
	s.simple = widget.NewCheck("Use simple filenames", nil)
	s.simple.SetChecked(cfg.Export.UseSimpleFilenames)
	s.newFolder = widget.NewCheck("Create new folder", nil)
	s.newFolder.SetChecked(cfg.Export.CreateNewFolder)

	var labels []string
	for _, o := range naming.Conventions() {
		labels = append(labels, o.Label)
	}
	s.convention = widget.NewSelect(labels, nil)
	s.convention.SetSelected(cfg.Convention().Label())

	s.source = widget.NewSelect([]string{string(navigation.StrategyTree), string(navigation.StrategyLazy)}, nil)
	s.source.SetSelected(string(cfg.Strategy()))

	s.hidden = widget.NewEntry()
	s.hidden.SetPlaceHolder(".*, @eaDir")
	s.hidden.SetText(strings.Join(cfg.Export.HiddenFolders, ", "))

	s.themeName = widget.NewSelect(config.ListThemes(), nil)
	s.themeName.SetSelected(cfg.Theme.Name)

	s.saveBtn = widget.NewButton("Save", s.save)
	s.saveBtn.Importance = widget.HighImportance

	server := widget.NewCard("Server", "", widget.NewForm(
		widget.NewFormItem("URL", s.serverURL),
		widget.NewFormItem("API key", s.apiKey),
		widget.NewFormItem("Timeout (s)", s.timeout),
	))
	exportDefaults := widget.NewCard("Export defaults", "", container.NewVBox(
		s.nfo, s.simple, s.newFolder,
		widget.NewForm(
			widget.NewFormItem("Naming", s.convention),
			widget.NewFormItem("Folder source", s.source),
			widget.NewFormItem("Hidden folders", s.hidden),
		),
	))
	appearance := widget.NewCard("Terminal theme", "", s.themeName)
	buttons := container.NewHBox(layout.NewSpacer(), s.saveBtn)

	return container.NewVScroll(container.NewVBox(server, exportDefaults, appearance, buttons))
}

// collect builds a config from the form on top of the current one
func (s *SettingsWindow) collect() (*config.Config, error) {
	cfg := *s.app.cfg
	cfg.Server.URL = strings.TrimSpace(s.serverURL.Text)
	cfg.Server.APIKey = s.apiKey.Text
	timeout, err := strconv.Atoi(strings.TrimSpace(s.timeout.Text))
	if err != nil {
		return nil, errors.NewInvalidInputError("timeout", "must be a whole number of seconds")
	}
	cfg.Server.TimeoutSeconds = timeout

	cfg.Export.IncludeNFO = s.nfo.Checked
	cfg.Export.UseSimpleFilenames = s.simple.Checked
	cfg.Export.CreateNewFolder = s.newFolder.Checked
	for _, o := range naming.Conventions() {
		if o.Label == s.convention.Selected {
			cfg.Export.NamingConvention = string(o.Value)
		}
	}
	cfg.Export.FolderSource = s.source.Selected
	cfg.Export.HiddenFolders = nil
	for _, p := range strings.Split(s.hidden.Text, ",") {
		if p = strings.TrimSpace(p); p != "" {
			cfg.Export.HiddenFolders = append(cfg.Export.HiddenFolders, p)
		}
	}
	if s.themeName.Selected != cfg.Theme.Name {
		cfg.ApplyTheme(s.themeName.Selected)
	}
	return &cfg, cfg.Validate()
}

func (s *SettingsWindow) save() {
	cfg, err := s.collect()
	if err != nil {
		s.app.ShowError(s.window, "Invalid settings", err)
		return
	}
	if s.app.cfgPath == "" {
		s.app.ShowError(s.window, "Saving settings", errNoConfigPath)
		return
	}
	if err := config.SaveConfig(cfg, s.app.cfgPath); err != nil {
		s.app.ShowError(s.window, "Saving settings", err)
		return
	}
	s.app.cfg = cfg
	s.app.ShowInfo(s.window, "Settings saved to "+s.app.cfgPath)
}
