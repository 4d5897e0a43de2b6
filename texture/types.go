package texture

import (
	"fmt"
	"os"
	"strings"
)

// Format is one of the block-compression presets texconv is asked to produce
type Format string

const (
	DXT1 Format = "DXT1"
	DXT3 Format = "DXT3"
	DXT5 Format = "DXT5"
)

// Formats lists the supported presets in the order they are offered to the user.
// The first entry is the default.
var Formats = []Format{DXT1, DXT3, DXT5}

// FormatNames returns the preset names as plain strings for select widgets
func FormatNames() []string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return names
}

// ParseFormat accepts a preset name in any case
func ParseFormat(name string) (Format, error) {
	candidate := Format(strings.ToUpper(strings.TrimSpace(name)))
	for _, f := range Formats {
		if f == candidate {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown DDS format %q (expected one of %s)", name, strings.Join(FormatNames(), ", "))
}

// Job is one user-initiated batch of conversions sharing an output directory and preset
type Job struct {
	Files     []string
	OutputDir string
	Format    Format
}

// Validate checks the job can be started at all. Per-file problems are reported while running.
func (j Job) Validate() error {
	if len(j.Files) == 0 {
		return fmt.Errorf("no input files")
	}
	if _, err := ParseFormat(string(j.Format)); err != nil {
		return err
	}

	fi, err := os.Stat(j.OutputDir)
	if err != nil {
		return fmt.Errorf("output directory not accessible: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("output path %s is not a directory", j.OutputDir)
	}

	return nil
}

// EventKind tells consumers which fields of an Event are meaningful
type EventKind int

const (
	EventProgress EventKind = iota
	EventError
	EventDone
)

func (k EventKind) String() string {
	switch k {
	case EventProgress:
		return "progress"
	case EventError:
		return "error"
	case EventDone:
		return "done"
	default:
		return "unknown"
	}
}

// Event is a single notification emitted by a running job
type Event struct {
	Kind    EventKind
	Index   int    // zero-based position of the file in the job
	Total   int    // number of files in the job
	Percent int    // progress, 0-100 (EventProgress)
	Source  string // input file the event refers to
	Output  string // final .dds path on success
	Err     error  // EventError only
}
