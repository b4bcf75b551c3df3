package controller

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	m "crycurate/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output  io.Writer
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start initializes the UI. Extraction mode launches the interactive
// program; listing mode stays on plain output.
func (t *TUI) Start(options ...StartOption) error {
	config := &StartConfig{}
	for _, opt := range options {
		opt(config)
	}

	if config.mode != ModeExtract {
		return nil
	}

	t.done = make(chan struct{})
	t.program = tea.NewProgram(
		newExtractModel(config.total),
		tea.WithOutput(t.output),
	)

	go func() {
		defer close(t.done)

		_, _ = t.program.Run()
	}()

	return nil
}

// Close finalizes the UI.
func (t *TUI) Close() {
	if t.program == nil {
		return
	}

	t.program.Quit()
	<-t.done

	t.program = nil
}

// Wait blocks until the user closes the interactive program.
func (t *TUI) Wait() {
	if t.program == nil {
		return
	}

	<-t.done
}

// DisplaySourceList prints the matched sources or the error.
func (t *TUI) DisplaySourceList(stats []SourceStat, err error) error {
	if err != nil {
		_, _ = fmt.Fprintf(t.output, "list error: %v\n", err)

		return err
	}

	total := 0
	for _, stat := range stats {
		total += stat.Comments
	}

	_, _ = fmt.Fprintf(t.output, "Found %d comment(s) across %d file(s)\n", total, len(stats))

	return nil
}

// DisplayRunInfo shows the run configuration.
func (t *TUI) DisplayRunInfo(workers int, model string, offline bool, cached int) {
	if t.program != nil {
		t.program.Send(runInfoMsg{workers: workers, model: model, offline: offline, cached: cached})

		return
	}

	_, _ = fmt.Fprintf(t.output, "Curating with %d worker(s)\n", workers)
}

// DisplayFileStart shows the file being processed.
func (t *TUI) DisplayFileStart(path m.Path) {
	if t.program != nil {
		t.program.Send(fileStartMsg{path: string(path)})

		return
	}

	_, _ = fmt.Fprintf(t.output, "Processing %s\n", path)
}

// DisplayFileDone shows the per-file outcome.
func (t *TUI) DisplayFileDone(path m.Path, kept int, dropped int) {
	if t.program != nil {
		t.program.Send(fileDoneMsg{path: string(path), kept: kept, dropped: dropped})

		return
	}

	_, _ = fmt.Fprintf(t.output, "Done %s (kept %d, dropped %d)\n", path, kept, dropped)
}

// DisplaySummary shows the run totals.
func (t *TUI) DisplaySummary(files int, comments int, kept int, cached int) {
	if t.program != nil {
		t.program.Send(summaryMsg{files: files, comments: comments, kept: kept, cached: cached})

		return
	}

	_, _ = fmt.Fprintf(t.output, "Processed %d file(s): %d comment(s), %d kept\n", files, comments, kept)
}
