//go:build !nogui
// +build !nogui

package gui

import (
	"context"
	"image/color"
	"sync"

	"mlibctl/internal/tagedit"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// TagWindow is the desktop tag edit dialog
type TagWindow struct {
	// OnClosed receives whether the tag was saved
	OnClosed func(saved bool)

	app    *App
	ctx    context.Context
	ctrl   *tagedit.Controller
	window fyne.Window

	name        *widget.Entry
	description *widget.Entry
	color       *widget.SelectEntry
	swatch      *canvas.Rectangle
	errLabel    *widget.Label
	saveBtn     *widget.Button
	cancelBtn   *widget.Button

	closeOnce sync.Once
}

// NewTagWindow builds the window for ctrl without showing it
func (a *App) NewTagWindow(ctx context.Context, ctrl *tagedit.Controller) *TagWindow {
	w := &TagWindow{app: a, ctx: ctx, ctrl: ctrl}
	w.window = a.fyneApp.NewWindow("Edit tag")
	w.window.Resize(fyne.NewSize(420, 320))
	w.window.SetContent(w.build())
	w.window.SetCloseIntercept(func() { w.close(false) })
	w.refresh()
	return w
}

// Show opens the window
func (w *TagWindow) Show() {
	w.window.Show()
}

func (w *TagWindow) build() fyne.CanvasObject {
	tag := w.ctrl.Working()

	w.name = widget.NewEntry()
	w.name.SetPlaceHolder("Tag name")
	w.name.SetText(tag.Name)
	w.name.OnChanged = func(s string) {
		w.ctrl.SetName(s)
		w.refresh()
	}

	w.description = widget.NewMultiLineEntry()
	w.description.SetPlaceHolder("Description (optional)")
	w.description.SetText(tag.Description)
	w.description.OnChanged = func(s string) {
		w.ctrl.SetDescription(s)
		w.refresh()
	}

	w.swatch = canvas.NewRectangle(color.Transparent)
	w.swatch.SetMinSize(fyne.NewSize(24, 24))
	w.swatch.CornerRadius = 4

	w.color = widget.NewSelectEntry(tagedit.ColorOptions())
	w.color.SetText(tag.Color)
	w.color.OnChanged = w.colorChanged

	w.errLabel = widget.NewLabel("")
	w.errLabel.Importance = widget.DangerImportance
	w.errLabel.Wrapping = fyne.TextWrapWord
	w.errLabel.Hide()

	w.cancelBtn = widget.NewButton("Cancel", func() { w.close(false) })
	w.saveBtn = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), w.save)
	w.saveBtn.Importance = widget.HighImportance

	form := widget.NewForm(
		widget.NewFormItem("Name", w.name),
		widget.NewFormItem("Description", w.description),
		widget.NewFormItem("Color", container.NewBorder(nil, nil, nil, w.swatch, w.color)),
	)
	buttons := container.NewHBox(layout.NewSpacer(), w.cancelBtn, w.saveBtn)
	return container.NewVBox(form, w.errLabel, buttons)
}

// colorChanged keeps the last valid color while the entry holds an invalid
// one and says why next to the form
func (w *TagWindow) colorChanged(s string) {
	if err := w.ctrl.SetColor(s); err != nil {
		w.errLabel.SetText(err.Error())
		w.errLabel.Show()
	} else {
		w.errLabel.Hide()
	}
	w.refresh()
}

// refresh enables Save only when there is something to save
func (w *TagWindow) refresh() {
	if c, ok := parseHex(w.ctrl.Working().Color); ok {
		w.swatch.FillColor = c
	} else {
		w.swatch.FillColor = color.Transparent
	}
	w.swatch.Refresh()

	if w.ctrl.Changed() && !w.ctrl.Updating() {
		w.saveBtn.Enable()
	} else {
		w.saveBtn.Disable()
	}
}

func (w *TagWindow) save() {
	if !w.ctrl.Changed() || w.ctrl.Updating() {
		return
	}
	w.saveBtn.Disable()
	w.errLabel.Hide()
	w.app.goFn(func() {
		err := w.ctrl.Save(w.ctx)
		if err == nil {
			w.close(true)
			return
		}
		msg := w.ctrl.ErrorMessage()
		if msg == "" {
			// rejected before reaching the server
			msg = err.Error()
		}
		w.errLabel.SetText(msg)
		w.errLabel.Show()
		w.refresh()
	})
}

func (w *TagWindow) close(saved bool) {
	w.closeOnce.Do(func() {
		w.window.Close()
		if w.OnClosed != nil {
			w.OnClosed(saved)
		}
	})
}
