//go:build !nogui
// +build !nogui

package gui

import (
	"context"
	"sync"

	"mlibctl/internal/export"
	"mlibctl/internal/gateway"
	"mlibctl/internal/naming"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ExportWindow is the desktop export dialog
type ExportWindow struct {
	// OnClosed receives the dialog's result once the window is gone
	OnClosed func(export.Result)

	app    *App
	ctx    context.Context
	ctrl   *export.Controller
	window fyne.Window

	location   *widget.Label
	folderList *widget.List
	navError   *widget.Label
	back       *widget.Button
	home       *widget.Button
	progress   *widget.ProgressBarInfinite

	name       *widget.Entry
	convention *widget.Select
	preview    *widget.Label
	nfo        *widget.Check
	simple     *widget.Check
	newFolder  *widget.Check

	fullPath  *widget.Label
	exportErr *widget.Label
	status    *widget.Label
	exportBtn *widget.Button
	cancelBtn *widget.Button

	// syncing is set while the window writes to its own inputs
	syncing bool

	mu      sync.Mutex
	folders []gateway.Folder
	result  *export.Result
}

// NewExportWindow builds the window for ctrl without showing it
func (a *App) NewExportWindow(ctx context.Context, ctrl *export.Controller) *ExportWindow {
	w := &ExportWindow{app: a, ctx: ctx, ctrl: ctrl}
	w.window = a.fyneApp.NewWindow("Export: " + displayTitle(ctrl.File().Title))
	w.window.Resize(fyne.NewSize(560, 680))
	w.window.SetContent(w.build())
	w.window.SetCloseIntercept(ctrl.Close)
	w.refreshFolders()
	return w
}

func displayTitle(title string) string {
	if title == "" {
		return naming.DefaultTitle
	}
	return title
}

// Show opens the window, starts loading the root folders and waits for the
// controller to finish in the background.
func (w *ExportWindow) Show() {
	w.window.Show()
	go w.awaitClose()
	w.load(w.ctrl.LoadFolders)
}

// Result reports how the dialog ended. ok is false while it is still open.
func (w *ExportWindow) Result() (export.Result, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.result == nil {
		return export.Result{}, false
	}
	return *w.result, true
}

func (w *ExportWindow) awaitClose() {
	r, ok := <-w.ctrl.Done()
	if !ok {
		r = export.Result{Exported: w.ctrl.Succeeded()}
	}
	w.mu.Lock()
	w.result = &r
	w.mu.Unlock()

	w.window.Close()
	if w.OnClosed != nil {
		w.OnClosed(r)
	}
}

func (w *ExportWindow) build() fyne.CanvasObject {
	f := w.ctrl.File()

	details := widget.NewForm()
	for _, item := range []struct{ label, value string }{
		{"Title", f.Title},
		{"Uploader", f.Uploader},
		{"Channel", f.Channel},
		{"Uploaded", f.UploadDate},
		{"Source", f.Extractor},
	} {
		if item.value != "" {
			details.Append(item.label, widget.NewLabel(item.value))
		}
	}

	w.location = widget.NewLabel("/")
	w.navError = widget.NewLabel("")
	w.navError.Importance = widget.DangerImportance
	w.navError.Hide()
	w.progress = widget.NewProgressBarInfinite()
	w.progress.Hide()
	w.back = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		w.load(w.ctrl.Navigator().Back)
	})
	w.home = widget.NewButtonWithIcon("", theme.HomeIcon(), func() {
		w.load(w.ctrl.Navigator().Home)
	})
	w.folderList = widget.NewList(
		w.folderCount,
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewIcon(theme.FolderIcon()), widget.NewLabel("folder"))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			folder, ok := w.folderAt(id)
			if !ok {
				return
			}
			name := folder.Name
			if folder.IsSymlink {
				name += " →"
			}
			obj.(*fyne.Container).Objects[1].(*widget.Label).SetText(name)
		},
	)
	w.folderList.OnSelected = w.openFolder

	w.fullPath = widget.NewLabel("")
	w.fullPath.Wrapping = fyne.TextWrapBreak
	w.preview = widget.NewLabel("")
	w.preview.Hide()

	w.name = widget.NewEntry()
	w.name.SetPlaceHolder("Folder name or template, e.g. {uploader} - {title}")
	w.name.SetText(w.ctrl.FolderName())
	w.name.OnChanged = w.nameChanged

	var labels []string
	for _, o := range naming.Conventions() {
		labels = append(labels, o.Label)
	}
	w.convention = widget.NewSelect(labels, w.conventionChanged)
	w.convention.PlaceHolder = naming.Custom.Label()
	w.syncConvention()

	w.nfo = widget.NewCheck("Include NFO metadata file", w.ctrl.SetIncludeNFO)
	w.nfo.SetChecked(w.ctrl.IncludeNFO())
	w.simple = widget.NewCheck("Use simple filenames", w.ctrl.SetUseSimpleFilenames)
	w.simple.SetChecked(w.ctrl.UseSimpleFilenames())
	w.newFolder = widget.NewCheck("Create new folder", w.newFolderChanged)
	w.newFolder.SetChecked(w.ctrl.CreateNewFolder())

	w.exportErr = widget.NewLabel("")
	w.exportErr.Importance = widget.DangerImportance
	w.exportErr.Wrapping = fyne.TextWrapWord
	w.exportErr.Hide()
	w.status = widget.NewLabel("")
	w.status.Importance = widget.SuccessImportance

	w.cancelBtn = widget.NewButton("Cancel", w.ctrl.Close)
	w.exportBtn = widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), w.submit)
	w.exportBtn.Importance = widget.HighImportance

	navBar := container.NewBorder(nil, nil, container.NewHBox(w.back, w.home), nil, w.location)
	folders := widget.NewCard("Export to", "",
		container.NewBorder(container.NewVBox(navBar, w.progress), w.navError, nil, nil, w.folderList))

	nameCard := widget.NewCard("Folder name", "", container.NewVBox(
		w.name,
		container.NewBorder(nil, nil, widget.NewLabel("Naming"), nil, w.convention),
		w.preview,
	))
	options := widget.NewCard("Options", "", container.NewVBox(w.nfo, w.simple, w.newFolder))
	buttons := container.NewHBox(layout.NewSpacer(), w.cancelBtn, w.exportBtn)

	header := container.NewVBox(
		widget.NewLabelWithStyle("Export: "+displayTitle(f.Title), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		details,
	)
	bottom := container.NewVBox(nameCard, options, w.fullPath, w.exportErr, w.status, buttons)
	return container.NewBorder(header, bottom, nil, nil, folders)
}

func (w *ExportWindow) folderCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.folders)
}

func (w *ExportWindow) folderAt(id widget.ListItemID) (gateway.Folder, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if id < 0 || id >= len(w.folders) {
		return gateway.Folder{}, false
	}
	return w.folders[id], true
}

func (w *ExportWindow) openFolder(id widget.ListItemID) {
	folder, ok := w.folderAt(id)
	w.folderList.UnselectAll()
	nav := w.ctrl.Navigator()
	if !ok || nav.Loading() {
		return
	}
	w.load(func(ctx context.Context) error {
		return nav.NavigateTo(ctx, folder)
	})
}

// load runs a navigation step in the background. Failures surface through
// the navigator's error message.
func (w *ExportWindow) load(fn func(context.Context) error) {
	w.progress.Show()
	w.progress.Start()
	w.back.Disable()
	w.home.Disable()
	w.app.goFn(func() {
		_ = fn(w.ctx)
		w.refreshFolders()
	})
}

func (w *ExportWindow) refreshFolders() {
	nav := w.ctrl.Navigator()
	w.mu.Lock()
	w.folders = nav.Folders()
	w.mu.Unlock()

	w.location.SetText(nav.Display())
	if msg := nav.ErrorMessage(); msg != "" {
		w.navError.SetText(msg)
		w.navError.Show()
	} else {
		w.navError.Hide()
	}
	if nav.CanGoBack() {
		w.back.Enable()
	} else {
		w.back.Disable()
	}
	w.home.Enable()
	if !nav.Loading() {
		w.progress.Stop()
		w.progress.Hide()
	}
	w.folderList.Refresh()
	w.refreshPath()
}

func (w *ExportWindow) refreshPath() {
	w.fullPath.SetText("Full path: " + w.ctrl.FullExportPath())
	if p := w.ctrl.Preview(); p != "" {
		w.preview.SetText("Preview: " + p)
		w.preview.Show()
	} else {
		w.preview.Hide()
	}
}

func (w *ExportWindow) nameChanged(s string) {
	if w.syncing {
		return
	}
	w.ctrl.SetFolderName(s)
	w.syncConvention()
	w.refreshPath()
}

func (w *ExportWindow) conventionChanged(label string) {
	if w.syncing || label == "" {
		return
	}
	for _, o := range naming.Conventions() {
		if o.Label == label {
			w.ctrl.SetConvention(o.Value)
		}
	}
	w.syncing = true
	w.name.SetText(w.ctrl.FolderName())
	w.syncing = false
	w.refreshPath()
}

// syncConvention shows the controller's convention in the select. A custom
// name clears it so the placeholder reads "Custom".
func (w *ExportWindow) syncConvention() {
	w.syncing = true
	defer func() { w.syncing = false }()
	if c := w.ctrl.Convention(); c != naming.Custom {
		w.convention.SetSelected(c.Label())
		return
	}
	w.convention.ClearSelected()
}

func (w *ExportWindow) newFolderChanged(on bool) {
	w.ctrl.SetCreateNewFolder(on)
	if on {
		w.name.Enable()
		w.convention.Enable()
	} else {
		w.name.Disable()
		w.convention.Disable()
	}
	w.refreshPath()
}

func (w *ExportWindow) submit() {
	if w.ctrl.Exporting() || w.ctrl.Closed() {
		return
	}
	w.exportBtn.Disable()
	w.exportErr.Hide()
	w.status.SetText("Exporting...")
	w.app.goFn(func() {
		if err := w.ctrl.Submit(w.ctx); err != nil {
			w.status.SetText("")
			if msg := w.ctrl.ExportError(); msg != "" {
				w.exportErr.SetText(msg)
				w.exportErr.Show()
			}
			if !w.ctrl.Closed() {
				w.exportBtn.Enable()
			}
			return
		}
		w.status.SetText(export.SuccessMessage)
	})
}
