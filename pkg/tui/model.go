// Package tui renders an interactive terminal view of a comparison:
// a difference list with per-page context, and a detail pane for the
// selected entry.
package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/posidlab/pdfcompare/internal/swarm"
	"github.com/posidlab/pdfcompare/pkg/engine"
	"github.com/posidlab/pdfcompare/pkg/engine/report"
)

type ViewState int

const (
	ViewStateList ViewState = iota
	ViewStateDetail
)

type Model struct {
	// core components
	spinner  spinner.Model
	progress progress.Model
	Engine   *swarm.Engine
	Result   *engine.Result

	// state
	state     ViewState
	comparing bool
	quitting  bool
	width     int
	height    int
	err       error

	// data
	items     []report.ExportItem
	filterIdx int
	tasksDone int

	// metrics
	startTime time.Time

	// navigation
	cursor        int
	detailsScroll int
}

type tickMsg time.Time

// resultMsg delivers the finished comparison to the model.
type resultMsg struct {
	result *engine.Result
	err    error
}

// ResultMsg wraps a finished comparison for delivery through
// tea.Program.Send.
func ResultMsg(res *engine.Result, err error) tea.Msg {
	return resultMsg{result: res, err: err}
}

// NewModel builds the TUI around a worker pool to poll while the
// comparison runs. A non-nil result starts in browse mode.
func NewModel(e *swarm.Engine, res *engine.Result) Model {
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = special

	prog := progress.New(progress.WithGradient("#00FF99", "#00CCFF"))

	m := Model{
		spinner:   s,
		progress:  prog,
		Engine:    e,
		comparing: res == nil,
		startTime: time.Now(),
	}
	if res != nil {
		m.setResult(res)
	}
	return m
}

func (m *Model) setResult(res *engine.Result) {
	m.Result = res
	m.items = report.Items(res)
	m.comparing = false
	if m.cursor >= len(m.items) {
		m.cursor = 0
	}
}

// Err returns the comparison error delivered through ResultMsg, if any.
func (m Model) Err() error {
	return m.err
}

// filterCycle orders the op filter: all differences first, then the
// word ops, then the block changes.
var filterCycle = []string{"", "delete", "insert", "replace", "modified", "deleted", "added"}

func (m Model) filterName() string {
	if filterCycle[m.filterIdx] == "" {
		return "all"
	}
	return filterCycle[m.filterIdx]
}

// visibleItems returns the difference rows matching the active filter.
func (m Model) visibleItems() []report.ExportItem {
	f := filterCycle[m.filterIdx]
	if f == "" {
		return m.items
	}
	var out []report.ExportItem
	for _, item := range m.items {
		if item.Change == f {
			out = append(out, item)
		}
	}
	return out
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
			return tickMsg(t)
		}),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.state == ViewStateDetail {
				if m.detailsScroll > 0 {
					m.detailsScroll--
				}
			} else if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.state == ViewStateDetail {
				m.detailsScroll++
			} else if m.cursor < len(m.visibleItems())-1 {
				m.cursor++
			}
		case "enter", " ":
			if len(m.visibleItems()) > 0 {
				if m.state == ViewStateList {
					m.state = ViewStateDetail
					m.detailsScroll = 0
				} else {
					m.state = ViewStateList
				}
			}
		case "f":
			if m.state == ViewStateList {
				m.filterIdx = (m.filterIdx + 1) % len(filterCycle)
				m.cursor = 0
			}
		case "esc":
			m.state = ViewStateList
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case resultMsg:
		m.err = msg.err
		if msg.result != nil {
			m.setResult(msg.result)
		} else {
			// Nothing to browse; drop the spinner and show the error.
			m.comparing = false
		}
		return m, nil

	case tickMsg:
		if m.Engine != nil {
			stats := m.Engine.GetStats()
			m.tasksDone = int(stats.TasksCompleted)
		}
		return m, tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.comparing {
		return "\n " + m.spinner.View() +
			" Comparing documents... (" + strconv.Itoa(m.tasksDone) + " pages processed)\n\n " +
			helpStyle("Press q to quit")
	}
	if m.Result == nil && m.err != nil {
		return "\n " + danger.Render("[ERROR]") + " Comparison failed: " + m.err.Error() +
			"\n\n " + helpStyle("q quit")
	}
	if m.state == ViewStateDetail {
		return m.viewDetails()
	}
	return m.viewList()
}
