package controller

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func updateExtract(t *testing.T, m extractModel, msg tea.Msg) extractModel {
	t.Helper()

	updated, _ := m.Update(msg)

	model, ok := updated.(extractModel)
	if !ok {
		t.Fatalf("Update() returned %T, want extractModel", updated)
	}

	return model
}

func TestExtractModel_FileDoneUpdatesCounts(t *testing.T) {
	model := newExtractModel(3)

	model = updateExtract(t, model, fileStartMsg{path: "a.cry"})
	model = updateExtract(t, model, fileDoneMsg{path: "a.cry", kept: 2, dropped: 1})
	model = updateExtract(t, model, fileDoneMsg{path: "b.cry", kept: 0, dropped: 4})

	if model.doneFiles != 2 {
		t.Fatalf("doneFiles = %d, want 2", model.doneFiles)
	}

	if model.kept != 2 || model.dropped != 5 {
		t.Fatalf("kept/dropped = %d/%d, want 2/5", model.kept, model.dropped)
	}

	if len(model.fileList.Items()) != 2 {
		t.Fatalf("fileList has %d items, want 2", len(model.fileList.Items()))
	}
}

func TestExtractModel_SummaryFinishes(t *testing.T) {
	model := newExtractModel(1)

	model = updateExtract(t, model, summaryMsg{files: 1, comments: 5, kept: 3, cached: 5})

	if !model.finished {
		t.Fatal("summaryMsg should mark the model finished")
	}
}

func TestExtractModel_ViewShowsRunInfo(t *testing.T) {
	model := newExtractModel(2)
	model = updateExtract(t, model, tea.WindowSizeMsg{Width: 100, Height: 30})
	model = updateExtract(t, model, runInfoMsg{workers: 4, model: "gemini-2.5-flash", cached: 0})

	view := model.View()

	if !strings.Contains(view, "gemini-2.5-flash") {
		t.Fatalf("view missing oracle name:\n%s", view)
	}
}

func TestExtractModel_OfflineOracleLabel(t *testing.T) {
	model := newExtractModel(1)
	model = updateExtract(t, model, runInfoMsg{workers: 1, model: "gemini-2.5-flash", offline: true})

	if model.oracle != "offline heuristic" {
		t.Fatalf("oracle = %q, want offline heuristic", model.oracle)
	}
}

func TestExtractModel_QuitKey(t *testing.T) {
	model := newExtractModel(1)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "short", 10, "short"},
		{"truncated", "abcdefghij", 5, "abcd…"},
		{"zero width", "abc", 0, ""},
		{"width one", "abc", 1, "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateToWidth(tt.text, tt.width); got != tt.want {
				t.Fatalf("truncateToWidth(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}
