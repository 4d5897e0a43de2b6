package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/texdds/texture"
)

// TUI Message Types for worker communication
type FileProgressMsg struct {
	Index   int
	Total   int
	Percent int
	Source  string
	Output  string // empty when the file failed
}

type FileFailedMsg struct {
	Index  int
	Source string
	Error  error
}

type JobDoneMsg struct {
	Total int
}

// EventMsg converts a worker event into the matching TUI message
func EventMsg(ev texture.Event) tea.Msg {
	switch ev.Kind {
	case texture.EventError:
		return FileFailedMsg{Index: ev.Index, Source: ev.Source, Error: ev.Err}
	case texture.EventDone:
		return JobDoneMsg{Total: ev.Total}
	default:
		return FileProgressMsg{
			Index:   ev.Index,
			Total:   ev.Total,
			Percent: ev.Percent,
			Source:  ev.Source,
			Output:  ev.Output,
		}
	}
}
