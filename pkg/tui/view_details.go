package tui

import (
	"fmt"
	"strings"
)

func (m Model) viewDetails() string {
	items := m.visibleItems()
	if m.cursor < 0 || m.cursor >= len(items) {
		return "No difference selected."
	}
	item := items[m.cursor]

	s := strings.Builder{}
	s.WriteString(detailsHeaderStyle.Render(fmt.Sprintf("DIFFERENCE %d / %d", m.cursor+1, len(items))) + "\n")

	icon := iconModified
	switch item.Change {
	case "deleted", "delete":
		icon = iconDeleted
	case "added", "insert":
		icon = iconAdded
	}

	var lines []string
	lines = append(lines,
		highlight.Render("Page:    ")+fmt.Sprintf("%d", item.Page+1),
		highlight.Render("Kind:    ")+item.Kind,
		highlight.Render("Change:  ")+icon.Render()+" "+item.Change,
		"",
	)

	if item.Left != "" {
		lines = append(lines, highlight.Render("Left:"))
		lines = append(lines, wrap(item.Left, 64)...)
		lines = append(lines, "")
	}
	if item.Right != "" {
		lines = append(lines, highlight.Render("Right:"))
		lines = append(lines, wrap(item.Right, 64)...)
		lines = append(lines, "")
	}
	if item.Detail != "" {
		lines = append(lines, highlight.Render("Detail:  ")+item.Detail)
	}
	if item.Rules != "" {
		lines = append(lines, highlight.Render("Rules:   ")+warning.Render(item.Rules))
	}

	// scroll window over the body
	if m.detailsScroll > 0 {
		if m.detailsScroll >= len(lines) {
			lines = nil
		} else {
			lines = lines[m.detailsScroll:]
		}
	}

	s.WriteString(detailsBoxStyle.Render(strings.Join(lines, "\n")))
	s.WriteString("\n\n " + helpStyle("↑/↓ scroll · esc back · q quit"))
	return s.String()
}

// wrap splits s into rune-width chunks so long extracted text does
// not blow out the details box.
func wrap(s string, width int) []string {
	r := []rune(s)
	if len(r) <= width {
		return []string{s}
	}
	var out []string
	for len(r) > width {
		out = append(out, string(r[:width]))
		r = r[width:]
	}
	if len(r) > 0 {
		out = append(out, string(r))
	}
	return out
}
