package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// File log entry for the processed files list
type FileLogEntry struct {
	Source string
	Output string
	Error  string
}

func (f FileLogEntry) FilterValue() string { return f.Source }
func (f FileLogEntry) Title() string       { return filepath.Base(f.Source) }
func (f FileLogEntry) Description() string {
	if f.Error != "" {
		return fmt.Sprintf("❌ %s", f.Error)
	}
	return fmt.Sprintf("✓ → %s", f.Output)
}

// ConvertModel shows the progress of a single conversion job
type ConvertModel struct {
	// Job state
	totalFiles int
	percent    int
	failed     int
	entries    []FileLogEntry
	done       bool

	// UI components
	progress progress.Model
	fileList list.Model

	// Layout
	width  int
	height int

	quitting bool

	Version   string
	Format    string
	OutputDir string
}

// NewConvertModel creates a new TUI model for a job of numFiles files
func NewConvertModel(numFiles int, format, outputDir, version string) ConvertModel {
	fileList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	fileList.Title = "Converted Files"
	fileList.SetShowHelp(false)

	return ConvertModel{
		totalFiles: numFiles,
		progress:   progress.New(progress.WithDefaultGradient()),
		fileList:   fileList,
		Version:    version,
		Format:     format,
		OutputDir:  outputDir,
	}
}

// Init implements tea.Model
func (m ConvertModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m ConvertModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(msg.Width-20, 10)
		m.fileList.SetSize(msg.Width-4, msg.Height/2)

	case FileFailedMsg:
		m.failed++
		m.entries = append(m.entries, FileLogEntry{Source: msg.Source, Error: msg.Error.Error()})
		m.refreshList()

	case FileProgressMsg:
		m.percent = msg.Percent
		// failures were logged when the error arrived
		if msg.Output != "" {
			m.entries = append(m.entries, FileLogEntry{Source: msg.Source, Output: msg.Output})
			m.refreshList()
		}

	case JobDoneMsg:
		m.done = true
		m.percent = 100
		return m, tea.Quit
	}

	return m, nil
}

func (m *ConvertModel) refreshList() {
	items := make([]list.Item, len(m.entries))
	for i, entry := range m.entries {
		items[i] = entry
	}
	m.fileList.SetItems(items)
}

// Done reports whether the job finished
func (m ConvertModel) Done() bool { return m.done }

// Quitting reports whether the user aborted
func (m ConvertModel) Quitting() bool { return m.quitting }

// Failed returns the number of files that could not be converted
func (m ConvertModel) Failed() int { return m.failed }

// Entries returns the processed-file log
func (m ConvertModel) Entries() []FileLogEntry { return m.entries }

// View implements tea.Model
func (m ConvertModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	header := HeaderStyle.Render(fmt.Sprintf("Image to DDS Converter %s", m.Version))
	settings := InfoStyle.Render(fmt.Sprintf("Format: %s  Output: %s", m.Format, m.OutputDir))

	status := ProcessingStyle.Render(fmt.Sprintf("Converting... %d%%", m.percent))
	if m.done {
		status = SuccessStyle.Render("Conversion completed successfully!")
	}
	overall := fmt.Sprintf("%s %s", m.progress.ViewAs(float64(m.percent)/100), status)

	sections := []string{header, settings, overall}
	if m.failed > 0 {
		sections = append(sections, ErrorStyle.Render(fmt.Sprintf("❌ %d of %d files failed", m.failed, m.totalFiles)))
	}
	if len(m.entries) > 0 {
		sections = append(sections, m.fileList.View())
	}
	sections = append(sections, helpStyle.Render("Controls: [q] Quit"))

	return strings.Join(sections, "\n\n")
}
