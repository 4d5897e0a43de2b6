// Package controller holds the main window logic independent of any GUI toolkit.
// A View supplies pickers, dialogs and the progress display; the Controller
// turns user actions into conversion jobs and job events into view updates.
package controller

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"github.com/lepinkainen/texdds/texture"
)

// View is what the controller needs from a GUI toolkit
type View interface {
	// PickFile asks for a single image. onPicked gets "" when cancelled.
	PickFile(onPicked func(path string))
	// PickFolder asks for a folder to scan. onPicked gets "" when cancelled.
	PickFolder(onPicked func(path string))
	// PickOutputDir asks where textures should be written. onPicked gets "" when cancelled.
	PickOutputDir(onPicked func(path string))

	ShowInfo(title, message string)
	ShowWarning(title, message string)
	ShowError(err error)
	// ShowFatal reports an unrecoverable startup problem. The main window is never shown after it.
	ShowFatal(err error)
	ShowMain()

	SetControlsEnabled(enabled bool)
	SetProgressVisible(visible bool)
	SetProgress(percent int)
	SetStatus(text string)
}

// Runner produces the events of a conversion job
type Runner interface {
	Run(ctx context.Context, job texture.Job) iter.Seq[texture.Event]
}

// Controller owns the UI state of the main window
type Controller struct {
	view     View
	runner   Runner
	check    func() error
	dispatch func(func())

	mu     sync.Mutex
	format texture.Format
	busy   bool
	done   chan struct{}
}

// Option customizes a Controller
type Option func(*Controller)

// WithDispatch sets how worker events are marshalled onto the UI thread (fyne.Do for fyne)
func WithDispatch(dispatch func(func())) Option {
	return func(c *Controller) { c.dispatch = dispatch }
}

// WithCheck sets the startup precondition run by Launch
func WithCheck(check func() error) Option {
	return func(c *Controller) { c.check = check }
}

// New creates a controller with the default format selected
func New(view View, runner Runner, opts ...Option) *Controller {
	c := &Controller{
		view:     view,
		runner:   runner,
		format:   texture.Formats[0],
		dispatch: func(f func()) { f() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Launch runs the startup check. On failure exactly one fatal dialog is shown and
// the error is returned so the caller can exit; otherwise the main window is shown.
func (c *Controller) Launch() error {
	if c.check != nil {
		if err := c.check(); err != nil {
			c.view.ShowFatal(err)
			return err
		}
	}

	c.view.SetProgressVisible(false)
	c.view.SetStatus("")
	c.view.ShowMain()
	return nil
}

// Format returns the selected compression preset
func (c *Controller) Format() texture.Format {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.format
}

// SetFormat selects the compression preset used by the next job
func (c *Controller) SetFormat(name string) error {
	format, err := texture.ParseFormat(name)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.format = format
	c.mu.Unlock()
	return nil
}

// Busy reports whether a job is running
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Wait returns a channel closed once the most recent job has delivered all its events.
// It is nil before the first job starts.
func (c *Controller) Wait() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// SelectFile lets the user pick one image and converts it
func (c *Controller) SelectFile() {
	if c.Busy() {
		return
	}

	c.view.PickFile(func(path string) {
		if path == "" {
			return
		}
		c.StartJob([]string{path})
	})
}

// SelectFolder lets the user pick a folder and converts every image found in it
func (c *Controller) SelectFolder() {
	if c.Busy() {
		return
	}

	c.view.PickFolder(func(dir string) {
		if dir == "" {
			return
		}

		files, err := texture.FindImageFilesRecursively(dir)
		if err != nil {
			c.view.ShowError(fmt.Errorf("failed to scan %s: %w", dir, err))
			return
		}
		if len(files) == 0 {
			c.view.ShowWarning("Error", "No image files found in the selected folder.")
			return
		}

		c.StartJob(files)
	})
}

// StartJob asks for an output directory and converts files into it in the background
func (c *Controller) StartJob(files []string) {
	c.view.PickOutputDir(func(outputDir string) {
		if outputDir == "" {
			return
		}

		job := texture.Job{Files: files, OutputDir: outputDir, Format: c.Format()}
		if err := job.Validate(); err != nil {
			c.view.ShowError(err)
			return
		}

		c.mu.Lock()
		if c.busy {
			c.mu.Unlock()
			return
		}
		c.busy = true
		c.done = make(chan struct{})
		done := c.done
		c.mu.Unlock()

		c.view.SetProgressVisible(true)
		c.view.SetProgress(0)
		c.view.SetControlsEnabled(false)

		go c.run(job, done)
	})
}

// run consumes the job events off the UI thread
func (c *Controller) run(job texture.Job, done chan struct{}) {
	defer close(done)

	for ev := range c.runner.Run(context.Background(), job) {
		switch ev.Kind {
		case texture.EventProgress:
			percent := ev.Percent
			c.dispatch(func() { c.HandleProgress(percent) })
		case texture.EventError:
			err := ev.Err
			c.dispatch(func() { c.HandleError(err) })
		case texture.EventDone:
			c.dispatch(c.HandleDone)
		}
	}
}

// HandleProgress updates the progress bar and status text
func (c *Controller) HandleProgress(percent int) {
	c.view.SetProgress(percent)
	c.view.SetStatus(fmt.Sprintf("Converting... %d%%", percent))
}

// HandleError shows a per-file failure. The job keeps running.
func (c *Controller) HandleError(err error) {
	c.view.ShowError(err)
}

// HandleDone restores the idle state and tells the user the batch has finished
func (c *Controller) HandleDone() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()

	c.view.SetProgressVisible(false)
	c.view.SetStatus("Conversion completed successfully!")
	c.view.SetControlsEnabled(true)
	c.view.ShowInfo("Complete", "File conversion completed successfully.")
}
