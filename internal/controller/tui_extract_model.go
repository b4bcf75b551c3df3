package controller

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type tickMsg time.Time

// fileDelegate renders one processed file per row.
type fileDelegate struct{}

func (d fileDelegate) Height() int  { return 1 }
func (d fileDelegate) Spacing() int { return 0 }
func (d fileDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d fileDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	file, ok := item.(fileItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()
	width := m.Width() - 16 // Reserve space for kept/dropped counts and spacing

	var pathStyle, countStyle lipgloss.Style

	if isSelected {
		pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		countStyle = pathStyle.Width(6).Align(lipgloss.Right)
	} else {
		pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true).
			Width(6).
			Align(lipgloss.Right)
	}

	line := fmt.Sprintf("%s %s  %s",
		countStyle.Render(fmt.Sprintf("+%d", file.kept)),
		countStyle.Render(fmt.Sprintf("-%d", file.dropped)),
		pathStyle.Render(truncateToWidth(file.path, width)),
	)
	_, _ = fmt.Fprint(w, line)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	if width <= 1 {
		return ellipsis
	}

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// extractModel handles the TUI display during a curation run.
type extractModel struct {
	width       int
	height      int
	progressBar progress.Model
	fileList    list.Model
	totalFiles  int
	doneFiles   int
	kept        int
	dropped     int
	workers     int
	oracle      string
	cached      int
	rendered    bool
	finished    bool
}

func newExtractModel(total int) extractModel {
	prog := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	fileList := list.New([]list.Item{}, fileDelegate{}, 80, 20)
	fileList.SetShowPagination(false)
	fileList.SetShowFilter(true)
	fileList.SetShowHelp(false)
	fileList.SetShowTitle(false)
	fileList.SetShowStatusBar(false)
	fileList.FilterInput.Placeholder = "Filter by path…"

	return extractModel{
		progressBar: prog,
		fileList:    fileList,
		totalFiles:  total,
	}
}

func (m extractModel) Init() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m extractModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.fileList.SetWidth(m.width - 4)

		m.progressBar.Width = m.width - 8
		if m.progressBar.Width < 20 {
			m.progressBar.Width = 20
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		default:
			if m.finished {
				var newList list.Model

				newList, cmd = m.fileList.Update(msg)
				m.fileList = newList

				return m, cmd
			}
		}

	case tickMsg:
		return m, tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case runInfoMsg:
		m.workers = msg.workers
		m.cached = msg.cached

		m.oracle = msg.model
		if msg.offline {
			m.oracle = "offline heuristic"
		}

		m.rendered = true

	case fileStartMsg:
		m.rendered = true

	case fileDoneMsg:
		m = m.handleFileDone(msg)

	case summaryMsg:
		m.doneFiles = msg.files
		m.kept = msg.kept
		m.dropped = msg.comments - msg.kept
		m.cached = msg.cached
		m.finished = true
	}

	return m, cmd
}

func (m extractModel) handleFileDone(msg fileDoneMsg) extractModel {
	m.doneFiles++
	m.kept += msg.kept
	m.dropped += msg.dropped

	items := append(m.fileList.Items(), fileItem{
		path:    msg.path,
		kept:    msg.kept,
		dropped: msg.dropped,
	})
	m.fileList.SetItems(items)

	return m
}

func (m extractModel) View() string {
	if !m.rendered {
		return "Initializing curation run…\n"
	}

	accentColor := lipgloss.Color("6")

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(accentColor)

	title := titleStyle.Render("crycurate")

	summary := summaryStyle.Render(fmt.Sprintf(
		"Files: %s / %s  •  Kept: %s  •  Dropped: %s  •  Workers: %s  •  Cached: %s  •  Oracle: %s",
		accentStyle.Render(fmt.Sprintf("%d", m.doneFiles)),
		accentStyle.Render(fmt.Sprintf("%d", m.totalFiles)),
		accentStyle.Render(fmt.Sprintf("%d", m.kept)),
		accentStyle.Render(fmt.Sprintf("%d", m.dropped)),
		accentStyle.Render(fmt.Sprintf("%d", m.workers)),
		accentStyle.Render(fmt.Sprintf("%d", m.cached)),
		accentStyle.Render(m.oracle),
	))

	percent := 0.0
	if m.totalFiles > 0 {
		percent = float64(m.doneFiles) / float64(m.totalFiles)
	}

	progressView := lipgloss.NewStyle().Padding(0, 2).Render(m.progressBar.ViewAs(percent))

	listHeight := m.height - 10
	if listHeight < 5 {
		listHeight = 5
	}

	m.fileList.SetHeight(listHeight)

	listStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Margin(1, 1, 0, 0).
		Padding(0, 1)

	listBox := listStyle.Render(m.fileList.View())

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(m.width)

	footerText := "Press q to quit"
	if m.finished {
		footerText = "Run complete • ↑/k up • ↓/j down • / filter • q quit"
	}

	footer := footerStyle.Render(footerText)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		progressView,
		listBox,
		footer,
	)
}
