//go:build !nogui
// +build !nogui

package gui

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"mlibctl/internal/config"
	"mlibctl/internal/errors"
	"mlibctl/internal/export"
	"mlibctl/internal/gateway"
	"mlibctl/internal/gateway/gatewaytest"
	"mlibctl/internal/navigation"
	"mlibctl/internal/tagedit"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bunny = gateway.File{
	UID:        "f-1",
	Title:      "Big Buck Bunny",
	UploadDate: "2008-05-20",
	Uploader:   "Blender",
}

// newTestApp runs background work inline so widget state can be checked
// right after an action
func newTestApp(t *testing.T, cfg *config.Config, cfgPath string) *App {
	t.Helper()
	fyneApp := test.NewApp()
	t.Cleanup(fyneApp.Quit)
	a := NewWithApp(fyneApp, cfg, cfgPath)
	a.goFn = func(f func()) { f() }
	return a
}

func newExportWindow(t *testing.T, fake *gatewaytest.Fake) (*ExportWindow, *export.Controller) {
	t.Helper()
	if fake.Tree == nil {
		fake.Tree = gatewaytest.SampleTree()
	}
	a := newTestApp(t, nil, "")
	opts := export.DefaultOptions()
	opts.CloseDelay = 10 * time.Millisecond
	ctrl := export.New(bunny, navigation.New(navigation.NewTreeSource(fake)), fake, a, opts)
	w := a.NewExportWindow(context.Background(), ctrl)
	w.Show()
	return w, ctrl
}

func TestExportWindowLoadsFolders(t *testing.T) {
	w, _ := newExportWindow(t, &gatewaytest.Fake{})

	assert.Equal(t, "/", w.location.Text)
	assert.Equal(t, 3, w.folderCount())
	assert.True(t, w.back.Disabled())
	assert.Equal(t, "Big Buck Bunny (2008)", w.name.Text)
	assert.Equal(t, "Original", w.convention.Selected)
	assert.Equal(t, "Full path: /Big Buck Bunny (2008)", w.fullPath.Text)
	assert.False(t, w.navError.Visible())
}

func TestExportWindowNavigation(t *testing.T) {
	w, ctrl := newExportWindow(t, &gatewaytest.Fake{})

	w.folderList.Select(0)
	assert.Equal(t, "/Movies", w.location.Text)
	assert.Equal(t, 2, w.folderCount())
	assert.False(t, w.back.Disabled())

	w.folderList.Select(1)
	assert.Equal(t, "Movies/Drama", ctrl.Navigator().CurrentPath())

	test.Tap(w.back)
	assert.Equal(t, "/Movies", w.location.Text)

	test.Tap(w.home)
	assert.Equal(t, "/", w.location.Text)
	assert.True(t, w.back.Disabled())
}

func TestExportWindowFolderError(t *testing.T) {
	fake := &gatewaytest.Fake{}
	fake.FoldersFunc = func(ctx context.Context, q gateway.FolderQuery) (*gateway.FoldersResponse, error) {
		return nil, errors.NewTransportError(gateway.OpGetExportFolders, fmt.Errorf("connection refused"))
	}
	w, _ := newExportWindow(t, fake)

	assert.True(t, w.navError.Visible())
	assert.Equal(t, errors.ConnectionMessage, w.navError.Text)
	assert.Equal(t, 0, w.folderCount())
}

func TestExportWindowNaming(t *testing.T) {
	w, ctrl := newExportWindow(t, &gatewaytest.Fake{})

	w.convention.SetSelected("Kebab Case")
	assert.Equal(t, "big-buck-bunny-(2008)", w.name.Text)
	assert.Equal(t, "big-buck-bunny-(2008)", ctrl.FolderName())

	w.name.SetText("{uploader} - {title}")
	assert.True(t, ctrl.IsCustomName())
	assert.Empty(t, w.convention.Selected)
	assert.True(t, w.preview.Visible())
	assert.Equal(t, "Preview: Blender - Big Buck Bunny", w.preview.Text)

	// typing a generated name switches back to its convention
	w.name.SetText("big_buck_bunny_(2008)")
	assert.Equal(t, "Snake Case", w.convention.Selected)
	assert.False(t, w.preview.Visible())
}

func TestExportWindowOptions(t *testing.T) {
	w, ctrl := newExportWindow(t, &gatewaytest.Fake{})

	test.Tap(w.nfo)
	assert.False(t, ctrl.IncludeNFO())
	test.Tap(w.simple)
	assert.True(t, ctrl.UseSimpleFilenames())

	test.Tap(w.newFolder)
	assert.False(t, ctrl.CreateNewFolder())
	assert.True(t, w.name.Disabled())
	assert.Equal(t, "Full path: /", w.fullPath.Text)
}

func TestExportWindowSubmit(t *testing.T) {
	fake := &gatewaytest.Fake{}
	w, ctrl := newExportWindow(t, fake)
	closed := make(chan export.Result, 1)
	w.OnClosed = func(r export.Result) { closed <- r }

	w.folderList.Select(0)
	test.Tap(w.exportBtn)

	assert.True(t, ctrl.Succeeded())
	assert.Equal(t, export.SuccessMessage, w.status.Text)
	assert.True(t, w.exportBtn.Disabled())

	calls := fake.ExportCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Movies", calls[0].Path)

	select {
	case r := <-closed:
		assert.True(t, r.Exported)
		assert.Equal(t, "/Movies/Big Buck Bunny (2008)", r.Path)
	case <-time.After(3 * time.Second):
		t.Fatal("dialog did not close after a successful export")
	}
	r, ok := w.Result()
	require.True(t, ok)
	assert.True(t, r.Exported)
}

func TestExportWindowSubmitFailure(t *testing.T) {
	fake := &gatewaytest.Fake{}
	fake.ExportFunc = func(ctx context.Context, uid, path string, opts gateway.ExportOptions) (*gateway.Response, error) {
		return nil, errors.NewGatewayError(gateway.OpExportFile, "Target folder already exists")
	}
	w, ctrl := newExportWindow(t, fake)

	test.Tap(w.exportBtn)

	assert.False(t, ctrl.Closed())
	assert.True(t, w.exportErr.Visible())
	assert.Equal(t, "Target folder already exists", w.exportErr.Text)
	assert.False(t, w.exportBtn.Disabled())
	assert.Empty(t, w.status.Text)
}

func TestExportWindowCancel(t *testing.T) {
	w, ctrl := newExportWindow(t, &gatewaytest.Fake{})
	closed := make(chan export.Result, 1)
	w.OnClosed = func(r export.Result) { closed <- r }

	test.Tap(w.cancelBtn)
	assert.True(t, ctrl.Closed())

	select {
	case r := <-closed:
		assert.False(t, r.Exported)
	case <-time.After(3 * time.Second):
		t.Fatal("dialog did not close")
	}
}

func newTagWindow(t *testing.T, fake *gatewaytest.Fake) (*TagWindow, *tagedit.Controller) {
	t.Helper()
	tag := gateway.Tag{ID: "t1", Name: "Favorites", Color: "#2196F3"}
	fake.Tags = []gateway.Tag{tag}
	a := newTestApp(t, nil, "")
	ctrl := tagedit.New(tag, fake, tagedit.NewLibrary(fake))
	w := a.NewTagWindow(context.Background(), ctrl)
	w.Show()
	return w, ctrl
}

func TestTagWindowSaveEnabledOnlyWhenChanged(t *testing.T) {
	w, _ := newTagWindow(t, &gatewaytest.Fake{})
	assert.True(t, w.saveBtn.Disabled())

	test.Type(w.name, "!")
	assert.False(t, w.saveBtn.Disabled())

	w.name.SetText("Favorites")
	assert.True(t, w.saveBtn.Disabled())

	// same color in another case is not a change
	w.color.SetText("#2196f3")
	assert.True(t, w.saveBtn.Disabled())

	w.color.SetText("#4CAF50")
	assert.False(t, w.saveBtn.Disabled())
}

func TestTagWindowInvalidColorKeepsLastValid(t *testing.T) {
	w, ctrl := newTagWindow(t, &gatewaytest.Fake{})

	w.color.SetText("#12")
	assert.Equal(t, "#2196F3", ctrl.Working().Color)
	assert.True(t, w.saveBtn.Disabled())
	assert.True(t, w.errLabel.Visible())
	assert.Contains(t, w.errLabel.Text, "#RRGGBB")

	w.color.SetText("#4CAF50")
	assert.False(t, w.errLabel.Visible())
	assert.False(t, w.saveBtn.Disabled())
}

func TestTagWindowSave(t *testing.T) {
	fake := &gatewaytest.Fake{}
	w, ctrl := newTagWindow(t, fake)
	var saved *bool
	w.OnClosed = func(ok bool) { saved = &ok }

	w.description.SetText("Best of")
	test.Tap(w.saveBtn)

	require.NotNil(t, saved)
	assert.True(t, *saved)
	require.Len(t, fake.Updates, 1)
	assert.Equal(t, "Best of", fake.Updates[0].Description)
	assert.False(t, ctrl.Changed())
}

func TestTagWindowSaveFailure(t *testing.T) {
	fake := &gatewaytest.Fake{}
	fake.UpdateFunc = func(ctx context.Context, tag gateway.Tag) (*gateway.Response, error) {
		return nil, errors.NewGatewayError(gateway.OpUpdateTag, "")
	}
	w, _ := newTagWindow(t, fake)
	closed := false
	w.OnClosed = func(bool) { closed = true }

	w.name.SetText("Renamed")
	test.Tap(w.saveBtn)

	assert.False(t, closed)
	assert.True(t, w.errLabel.Visible())
	assert.Equal(t, tagedit.UpdateFailedMessage, w.errLabel.Text)
	assert.False(t, w.saveBtn.Disabled())
}

func TestTagWindowCancel(t *testing.T) {
	w, _ := newTagWindow(t, &gatewaytest.Fake{})
	calls := 0
	w.OnClosed = func(saved bool) {
		calls++
		assert.False(t, saved)
	}

	test.Tap(w.cancelBtn)
	w.close(true)
	assert.Equal(t, 1, calls)
}

func TestSettingsWindowSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	a := newTestApp(t, config.New(), path)
	s := a.NewSettingsWindow()

	s.serverURL.SetText("https://media.example.com")
	s.timeout.SetText("10")
	s.convention.SetSelected("Snake Case")
	s.source.SetSelected("lazy")
	s.hidden.SetText(".*, @eaDir")
	s.themeName.SetSelected("dark")
	test.Tap(s.saveBtn)

	loaded, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://media.example.com", loaded.Server.URL)
	assert.Equal(t, 10, loaded.Server.TimeoutSeconds)
	assert.Equal(t, "snake_case", loaded.Export.NamingConvention)
	assert.Equal(t, "lazy", loaded.Export.FolderSource)
	assert.Equal(t, []string{".*", "@eaDir"}, loaded.Export.HiddenFolders)
	assert.Equal(t, "dark", loaded.Theme.Name)
	assert.Equal(t, "https://media.example.com", a.cfg.Server.URL)
}

func TestSettingsWindowRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	a := newTestApp(t, config.New(), path)
	s := a.NewSettingsWindow()

	s.timeout.SetText("soon")
	_, err := s.collect()
	require.Error(t, err)

	s.timeout.SetText("5")
	s.serverURL.SetText("ftp://example.com")
	_, err = s.collect()
	assert.True(t, errors.IsInvalidConfig(err))

	test.Tap(s.saveBtn)
	assert.NoFileExists(t, path)
}

func TestParseHex(t *testing.T) {
	c, ok := parseHex("#2196f3")
	require.True(t, ok)
	assert.Equal(t, uint8(0x21), c.R)
	assert.Equal(t, uint8(0xF3), c.B)

	for _, s := range []string{"", "2196F3", "#21", "#GG0000"} {
		_, ok := parseHex(s)
		assert.False(t, ok, s)
	}
}
