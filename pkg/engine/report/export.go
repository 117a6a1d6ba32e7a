// Package report renders comparison results as JSON, CSV, and an HTML
// dashboard for review outside the terminal.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/posidlab/pdfcompare/pkg/engine"
	"github.com/posidlab/pdfcompare/pkg/engine/comparer"
)

// ExportItem matches the JSON/CSV structure. Every row is one
// difference, word-level or block-level.
type ExportItem struct {
	Kind   string `json:"kind"`   // "word" or "block"
	Change string `json:"change"` // delete, insert, replace, modified, added, deleted
	Page   int    `json:"page"`
	Left   string `json:"left,omitempty"`
	Right  string `json:"right,omitempty"`
	Detail string `json:"detail,omitempty"`
	Rules  string `json:"rules,omitempty"`
}

// GenerateCSV writes the differences to a CSV file.
func GenerateCSV(res *engine.Result, path string) error {
	items := extractItems(res)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"Kind", "Change", "Page", "Left", "Right", "Detail", "Rules"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, item := range items {
		record := []string{
			item.Kind,
			item.Change,
			fmt.Sprintf("%d", item.Page),
			item.Left,
			item.Right,
			item.Detail,
			item.Rules,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}

// GenerateJSON writes the differences to a JSON file.
func GenerateJSON(res *engine.Result, path string) error {
	items := extractItems(res)

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Items returns the flattened difference rows in review order. The TUI
// renders these directly.
func Items(res *engine.Result) []ExportItem {
	return extractItems(res)
}

func extractItems(res *engine.Result) []ExportItem {
	var items []ExportItem

	for _, pr := range res.PageResults {
		for _, ed := range pr.Edits {
			item := ExportItem{
				Kind:   "word",
				Change: string(ed.Op),
				Page:   ed.Page,
				Left:   ed.Left,
				Right:  ed.Right,
			}
			var ids []string
			for _, v := range ed.Verdicts {
				ids = append(ids, v.RuleID)
			}
			item.Rules = strings.Join(ids, " ")
			items = append(items, item)
		}
	}

	if res.Blocks != nil {
		for _, m := range res.Blocks.Modified {
			items = append(items, ExportItem{
				Kind:   "block",
				Change: "modified",
				Page:   m.Left.Page,
				Left:   m.Left.Text,
				Right:  m.Right.Text,
				Detail: modifiedDetail(m),
			})
		}
		for _, d := range res.Blocks.Deleted {
			items = append(items, ExportItem{
				Kind:   "block",
				Change: "deleted",
				Page:   d.Block.Page,
				Left:   d.Block.Text,
			})
		}
		for _, a := range res.Blocks.Added {
			items = append(items, ExportItem{
				Kind:   "block",
				Change: "added",
				Page:   a.Block.Page,
				Right:  a.Block.Text,
			})
		}
	}

	// Stable review order: page, then kind.
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Page != items[j].Page {
			return items[i].Page < items[j].Page
		}
		return items[i].Kind < items[j].Kind
	})

	if items == nil {
		items = []ExportItem{}
	}
	return items
}

func modifiedDetail(m comparer.Match) string {
	var parts []string
	if len(m.WordDiff.Deleted) > 0 {
		parts = append(parts, "-"+strings.Join(m.WordDiff.Deleted, " "))
	}
	if len(m.WordDiff.Added) > 0 {
		parts = append(parts, "+"+strings.Join(m.WordDiff.Added, " "))
	}
	return strings.Join(parts, " ")
}
