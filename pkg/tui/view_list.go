package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) viewList() string {
	s := strings.Builder{}

	s.WriteString(m.viewHUD())
	s.WriteString("\n")

	if len(m.items) == 0 {
		s.WriteString("\n   " + special.Render("[SAME]") + subtle.Render("  Documents match. No differences found."))
		s.WriteString("\n\n " + helpStyle("q quit"))
		return s.String()
	}

	items := m.visibleItems()
	if len(items) == 0 {
		s.WriteString("\n   " + subtle.Render(fmt.Sprintf("No %s differences.", m.filterName())))
		s.WriteString("\n\n " + helpStyle("f filter · q quit"))
		return s.String()
	}

	headerTxt := fmt.Sprintf("  %-5s | %-6s | %-9s | %-28s | %s", "PAGE", "KIND", "CHANGE", "LEFT", "RIGHT")
	s.WriteString(dimStyle.Render(headerTxt) + "\n")
	s.WriteString(dimStyle.Render("  "+strings.Repeat("─", 72)) + "\n")

	start, end := m.calculateWindow(len(items))
	for i := start; i < end; i++ {
		item := items[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		baseLine := fmt.Sprintf("%-5d | %-6s | %-9s | %-28s | %s",
			item.Page+1,
			item.Kind,
			item.Change,
			truncate(item.Left, 28),
			truncate(item.Right, 28),
		)

		switch item.Change {
		case "deleted", "delete":
			baseLine = lipgloss.NewStyle().Foreground(colorDanger).Render(baseLine)
		case "added", "insert":
			baseLine = lipgloss.NewStyle().Foreground(colorNeonGreen).Render(baseLine)
		case "modified", "replace":
			baseLine = lipgloss.NewStyle().Foreground(colorWarning).Render(baseLine)
		}

		line := cursor + baseLine
		if i == m.cursor {
			s.WriteString(listSelectedStyle.Render(line) + "\n")
		} else {
			s.WriteString(listNormalStyle.Render(line) + "\n")
		}
	}

	s.WriteString("\n " + helpStyle(fmt.Sprintf("↑/↓ navigate · enter details · f filter: %s · q quit", m.filterName())))
	return s.String()
}

func (m Model) viewHUD() string {
	if m.Result == nil {
		return ""
	}

	sim := fmt.Sprintf("%.1f%%", m.Result.OverallSimilarity)
	simStyle := hudValueStyle
	if m.Result.OverallSimilarity < 60 {
		simStyle = danger
	} else if m.Result.OverallSimilarity < 90 {
		simStyle = warning
	}

	counts := m.Result.BlockCounts()
	parts := []string{
		hudLabelStyle.Render("SIMILARITY") + simStyle.Render(sim),
		hudLabelStyle.Render("PAGES") + hudValueStyle.Render(fmt.Sprintf("%d", m.Result.Pages)),
		hudLabelStyle.Render("DIFFS") + hudValueStyle.Render(fmt.Sprintf("%d", len(m.items))),
		hudLabelStyle.Render("BLOCKS") +
			iconModified.Render() + fmt.Sprintf(" %d ", counts.Modified) +
			iconDeleted.Render() + fmt.Sprintf(" %d ", counts.Deleted) +
			iconAdded.Render() + fmt.Sprintf(" %d", counts.Added),
	}
	if m.Result.Partial {
		parts = append(parts, danger.Render("[PARTIAL]"))
	}

	return titleStyle.Render("PDF COMPARE") + "\n" +
		hudStyle.Render(strings.Join(parts, "  ")) + "\n"
}

func (m Model) calculateWindow(total int) (int, int) {
	windowSize := m.height - 10 // HUD + header + footer
	if windowSize < 5 {
		windowSize = 5
	}

	start := m.cursor - (windowSize / 2)
	if start < 0 {
		start = 0
	}

	end := start + windowSize
	if end > total {
		end = total
		start = end - windowSize
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
