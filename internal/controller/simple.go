package controller

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "crycurate/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(_ ...StartOption) error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {

}

// Wait returns immediately; plain output has nothing to wait for.
func (s *SimpleUI) Wait() {

}

// DisplaySourceList prints the matched sources as a table, or the error.
func (s *SimpleUI) DisplaySourceList(stats []SourceStat, err error) error {
	if err != nil {
		s.printf("list error: %v\n", err)

		return err
	}

	sorted := make([]SourceStat, len(stats))
	copy(sorted, stats)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Comments"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	total := 0

	for _, stat := range sorted {
		table.Append([]string{string(stat.Path), fmt.Sprintf("%d", stat.Comments)})

		total += stat.Comments
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(sorted)),
		fmt.Sprintf("%d", total),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayRunInfo shows the run configuration.
func (s *SimpleUI) DisplayRunInfo(workers int, model string, offline bool, cached int) {
	oracle := model
	if offline {
		oracle = "offline heuristic"
	}

	s.printf("Curating with %d worker(s), oracle: %s, %d cached decision(s)\n", workers, oracle, cached)
}

// DisplayFileStart shows the file being processed.
func (s *SimpleUI) DisplayFileStart(path m.Path) {
	s.printf("Processing %s\n", path)
}

// DisplayFileDone shows the per-file outcome.
func (s *SimpleUI) DisplayFileDone(path m.Path, kept int, dropped int) {
	s.printf("Done %s (kept %d, dropped %d)\n", path, kept, dropped)
}

// DisplaySummary prints the run totals.
func (s *SimpleUI) DisplaySummary(files int, comments int, kept int, cached int) {
	s.printf("Processed %d file(s): %d comment(s), %d kept, %d dropped, cache now holds %d decision(s)\n",
		files, comments, kept, comments-kept, cached)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
