package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
)

// DirPickerModel lets the user choose the output directory in the terminal
type DirPickerModel struct {
	picker   filepicker.Model
	Selected string
	quitting bool
}

// NewDirPickerModel starts browsing at startDir
func NewDirPickerModel(startDir string) DirPickerModel {
	fp := filepicker.New()
	fp.CurrentDirectory = startDir
	fp.DirAllowed = true
	fp.FileAllowed = false
	fp.AutoHeight = true

	return DirPickerModel{picker: fp}
}

// Init implements tea.Model
func (m DirPickerModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update implements tea.Model
func (m DirPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case ".":
			m.Selected = m.picker.CurrentDirectory
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.Selected = path
		return m, tea.Quit
	}

	return m, cmd
}

// Cancelled reports whether the picker was closed without a choice
func (m DirPickerModel) Cancelled() bool {
	return m.quitting && m.Selected == ""
}

// View implements tea.Model
func (m DirPickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Select Output Directory"))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("📁 %s", m.picker.CurrentDirectory)))
	b.WriteString("\n\n")
	b.WriteString(m.picker.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("[enter] choose highlighted  [.] choose current  [q] cancel"))
	return b.String()
}
