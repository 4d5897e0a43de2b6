package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/lepinkainen/texdds/texture"
	"github.com/lepinkainen/texdds/types"
	"github.com/lepinkainen/texdds/ui"
	"github.com/lepinkainen/texdds/utils"
)

// ConvertCmd converts images to DDS from the terminal
type ConvertCmd struct {
	Files  []string `arg:"" name:"files" help:"Image files or directories to convert" type:"path"`
	Output string   `short:"o" help:"Output directory (asked for interactively when omitted in a terminal)" type:"path"`
	Format string   `short:"f" help:"DDS compression format" default:"DXT1" enum:"DXT1,DXT3,DXT5"`
	NoTUI  bool     `name:"no-tui" help:"Disable interactive TUI and print plain progress"`
}

// convertSummary counts what happened to a job's files
type convertSummary struct {
	Total     int
	Failed    int
	Completed bool
}

func (cmd *ConvertCmd) Run(appCtx *types.AppContext) error {
	version := appCtx.VersionOrDefault()

	toolPath, err := utils.ValidateTexconv(appCtx.TexconvOrDefault())
	if err != nil {
		fmt.Println(ui.ErrorStyle.Render(fmt.Sprintf("❌ %v", err)))
		return err
	}

	format, err := texture.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}

	files, err := texture.ExpandPaths(cmd.Files)
	if err != nil {
		return fmt.Errorf("failed to expand directories: %w", err)
	}
	if len(files) == 0 {
		fmt.Println(ui.WarningStyle.Render("⚠️  No image files found."))
		return nil
	}

	interactive := !cmd.NoTUI && isTerminal(os.Stdout)

	outputDir := cmd.Output
	if outputDir == "" {
		if !interactive {
			return fmt.Errorf("--output is required when not running in a terminal")
		}
		outputDir, err = pickOutputDir()
		if err != nil {
			return err
		}
		if outputDir == "" {
			fmt.Println(ui.InfoStyle.Render("No output directory selected, nothing converted."))
			return nil
		}
	}

	job := texture.Job{Files: files, OutputDir: outputDir, Format: format}
	if err := job.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	conv := texture.NewConverter(toolPath)

	var summary convertSummary
	if interactive {
		summary, err = runWithTUI(ctx, conv, job, version)
		if err != nil {
			return err
		}
	} else {
		fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("Image to DDS Converter %s", version)))
		fmt.Println(ui.ProcessingStyle.Render(fmt.Sprintf("Converting %d files to %s:", len(files), format)))
		summary = runPlain(ctx, conv, job, os.Stdout)
	}

	return reportSummary(os.Stdout, summary)
}

// isTerminal reports whether f is attached to an interactive terminal
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// pickOutputDir runs the directory picker TUI starting from the working directory
func pickOutputDir() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		start = "."
	}

	final, err := tea.NewProgram(ui.NewDirPickerModel(start)).Run()
	if err != nil {
		return "", fmt.Errorf("directory picker failed: %w", err)
	}

	picker, ok := final.(ui.DirPickerModel)
	if !ok || picker.Cancelled() {
		return "", nil
	}
	return picker.Selected, nil
}

// runWithTUI streams job events into the bubbletea progress view
func runWithTUI(ctx context.Context, conv *texture.Converter, job texture.Job, version string) (convertSummary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := ui.NewConvertModel(len(job.Files), string(job.Format), job.OutputDir, version)
	p := tea.NewProgram(model)

	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		for ev := range conv.Run(ctx, job) {
			p.Send(ui.EventMsg(ev))
		}
	}()

	final, err := p.Run()

	// q stops the job; the worker removes its temporary bitmap before exiting
	cancel()
	<-workerDone

	if err != nil {
		return convertSummary{}, fmt.Errorf("TUI failed: %w", err)
	}

	m, _ := final.(ui.ConvertModel)
	return convertSummary{Total: len(job.Files), Failed: m.Failed(), Completed: m.Done()}, nil
}

// runPlain prints a progress bar and one line per failed file
func runPlain(ctx context.Context, conv *texture.Converter, job texture.Job, w io.Writer) convertSummary {
	summary := convertSummary{Total: len(job.Files)}

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(fmt.Sprintf("Converting to %s", job.Format)),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetPredictTime(false),
	)

	for ev := range conv.Run(ctx, job) {
		switch ev.Kind {
		case texture.EventError:
			summary.Failed++
			_ = bar.Clear()
			fmt.Fprintf(w, "%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ %v", ev.Err)))
		case texture.EventProgress:
			_ = bar.Set(ev.Percent)
		case texture.EventDone:
			summary.Completed = true
			_ = bar.Finish()
			fmt.Fprintln(w)
		}
	}

	return summary
}

// reportSummary prints the outcome and turns failures into a non-zero exit
func reportSummary(w io.Writer, s convertSummary) error {
	if !s.Completed {
		fmt.Fprintf(w, "%s\n", ui.WarningStyle.Render("⚠️  Conversion interrupted."))
		return fmt.Errorf("conversion interrupted")
	}

	if s.Failed > 0 {
		fmt.Fprintf(w, "%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ %d of %d files failed", s.Failed, s.Total)))
		return fmt.Errorf("%d of %d files failed", s.Failed, s.Total)
	}

	fmt.Fprintf(w, "%s\n", ui.SuccessStyle.Render(fmt.Sprintf("✅ Converted %d files.", s.Total)))
	return nil
}
