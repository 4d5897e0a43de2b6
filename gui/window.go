// Package gui is the fyne desktop front end. It implements controller.View.
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/lepinkainen/texdds/controller"
	"github.com/lepinkainen/texdds/texture"
)

const appID = "io.github.lepinkainen.texdds"

// Window is the main converter window
type Window struct {
	app    fyne.App
	window fyne.Window

	formatSelect *widget.Select
	fileButton   *widget.Button
	folderButton *widget.Button
	progress     *widget.ProgressBar
	status       *widget.Label
}

var _ controller.View = (*Window)(nil)

// Run builds the window, performs the startup check and blocks until the app quits.
// The returned error is the startup failure, if any, so callers can exit non-zero.
func Run(version string, runner controller.Runner, check func() error) error {
	a := app.NewWithID(appID)
	w := NewWindow(a, version)

	c := controller.New(w, runner,
		controller.WithCheck(check),
		controller.WithDispatch(fyne.Do),
	)
	w.Bind(c)

	launchErr := c.Launch()
	a.Run()
	return launchErr
}

// NewWindow lays out the widgets. Nothing is shown until ShowMain.
func NewWindow(a fyne.App, version string) *Window {
	w := &Window{
		app:    a,
		window: a.NewWindow(fmt.Sprintf("Image to DDS Converter %s", version)),
	}

	w.formatSelect = widget.NewSelect(texture.FormatNames(), nil)
	w.fileButton = widget.NewButton("Select File", nil)
	w.folderButton = widget.NewButton("Select Folder", nil)

	w.progress = widget.NewProgressBar()
	w.progress.Min = 0
	w.progress.Max = 100
	w.progress.Hide()

	w.status = widget.NewLabel("")

	formatRow := container.NewBorder(nil, nil, widget.NewLabel("DDS Format:"), nil, w.formatSelect)
	w.window.SetContent(container.NewVBox(
		formatRow,
		w.fileButton,
		w.folderButton,
		w.progress,
		w.status,
	))
	w.window.Resize(fyne.NewSize(600, 400))
	w.window.SetMaster()

	return w
}

// Bind wires widget callbacks to the controller
func (w *Window) Bind(c *controller.Controller) {
	w.formatSelect.OnChanged = func(name string) {
		if err := c.SetFormat(name); err != nil {
			w.ShowError(err)
		}
	}
	w.formatSelect.SetSelected(string(c.Format()))

	w.fileButton.OnTapped = c.SelectFile
	w.folderButton.OnTapped = c.SelectFolder
}

// PickFile implements controller.View
func (w *Window) PickFile(onPicked func(string)) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			w.ShowError(err)
			return
		}
		if reader == nil {
			onPicked("")
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		onPicked(path)
	}, w.window)

	fd.SetFilter(storage.NewExtensionFileFilter(texture.ImageExtensions()))
	fd.Show()
}

// PickFolder implements controller.View
func (w *Window) PickFolder(onPicked func(string)) {
	w.pickDir(onPicked)
}

// PickOutputDir implements controller.View
func (w *Window) PickOutputDir(onPicked func(string)) {
	w.pickDir(onPicked)
}

func (w *Window) pickDir(onPicked func(string)) {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			w.ShowError(err)
			return
		}
		if uri == nil {
			onPicked("")
			return
		}
		onPicked(uri.Path())
	}, w.window)
}

// ShowInfo implements controller.View
func (w *Window) ShowInfo(title, message string) {
	dialog.ShowInformation(title, message, w.window)
}

// ShowWarning implements controller.View
func (w *Window) ShowWarning(title, message string) {
	dialog.ShowInformation(title, message, w.window)
}

// ShowError implements controller.View
func (w *Window) ShowError(err error) {
	dialog.ShowError(err, w.window)
}

// ShowFatal opens a bare window holding only the error and quits the app when it is dismissed
func (w *Window) ShowFatal(err error) {
	fatal := w.app.NewWindow("Error")
	fatal.Resize(fyne.NewSize(420, 160))
	fatal.SetMaster()

	d := dialog.NewError(err, fatal)
	d.SetOnClosed(w.app.Quit)

	fatal.Show()
	d.Show()
}

// ShowMain implements controller.View
func (w *Window) ShowMain() {
	w.window.Show()
}

// SetControlsEnabled implements controller.View
func (w *Window) SetControlsEnabled(enabled bool) {
	if enabled {
		w.fileButton.Enable()
		w.folderButton.Enable()
		w.formatSelect.Enable()
		return
	}
	w.fileButton.Disable()
	w.folderButton.Disable()
	w.formatSelect.Disable()
}

// SetProgressVisible implements controller.View
func (w *Window) SetProgressVisible(visible bool) {
	if visible {
		w.progress.Show()
	} else {
		w.progress.Hide()
	}
}

// SetProgress implements controller.View
func (w *Window) SetProgress(percent int) {
	w.progress.SetValue(float64(percent))
}

// SetStatus implements controller.View
func (w *Window) SetStatus(text string) {
	w.status.SetText(text)
}
