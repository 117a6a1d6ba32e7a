// Package parser turns raw page lines into the section structure used by
// insurance proposal documents: ◆ marks a major section, ■ a minor one,
// everything else is content. Headers and footers are cut by page geometry
// before any structuring happens.
package parser

import (
	"strings"

	"github.com/posidlab/pdfcompare/pkg/config"
	"github.com/posidlab/pdfcompare/pkg/pdf"
)

// SectionType classifies a flattened text block.
type SectionType string

const (
	SectionStandalone   SectionType = "standalone"
	SectionMajorTitle   SectionType = "major_title"
	SectionMajorContent SectionType = "major_content"
	SectionMinorTitle   SectionType = "minor_title"
	SectionMinorContent SectionType = "minor_content"
)

// TextBlock is one comparable unit of the document.
type TextBlock struct {
	Text         string      `json:"text"`
	BBox         pdf.BBox    `json:"bbox"`
	Page         int         `json:"page"`
	SectionType  SectionType `json:"section_type"`
	SectionTitle string      `json:"section_title,omitempty"`
}

// Section is a structured node of one page.
type Section struct {
	Type        string
	Title       string
	Description string
	Text        string
	Page        int
	BBox        pdf.BBox
	Subsections []*Section
	Content     []TextBlock
}

// Page holds the parsed sections of one page.
type Page struct {
	Page     int
	Sections []*Section
}

// Parser structures a document page by page.
type Parser struct {
	layout config.LayoutConfig
}

// New creates a Parser with the given page geometry.
func New(layout config.LayoutConfig) *Parser {
	if layout.HeaderYMax == 0 && layout.FooterYMin == 0 {
		layout = config.DefaultLayoutConfig()
	}
	return &Parser{layout: layout}
}

// ParsePage structures the lines of one page. Header and footer lines are
// dropped first; the rest is grouped under ◆ and ■ markers.
func (p *Parser) ParsePage(lines []pdf.Line, pageNum int) Page {
	body := make([]pdf.Line, 0, len(lines))
	for _, l := range lines {
		y := l.BBox.Y0
		if y < p.layout.HeaderYMax || y > p.layout.FooterYMin {
			continue
		}
		body = append(body, l)
	}

	return Page{Page: pageNum, Sections: p.structure(body, pageNum)}
}

func (p *Parser) structure(lines []pdf.Line, pageNum int) []*Section {
	var sections []*Section
	var major *Section
	var minor *Section

	i := 0
	for i < len(lines) {
		line := lines[i]
		text := line.Text

		if strings.Contains(text, "◆") {
			if major != nil {
				sections = append(sections, major)
			}
			major = &Section{
				Type:  "major",
				Title: strings.TrimSpace(strings.ReplaceAll(text, "◆", "")),
				Page:  pageNum,
				BBox:  line.BBox,
			}
			minor = nil
			i++
			continue
		}

		if strings.Contains(text, "■") {
			title := strings.TrimSpace(strings.ReplaceAll(text, "■", ""))

			// Collect same-line continuation blocks as the description.
			parts := []string{title}
			j := i + 1
			for j < len(lines) {
				next := lines[j]
				if absFloat(next.BBox.Y0-line.BBox.Y0) <= p.layout.SameLineThreshold {
					parts = append(parts, next.Text)
					j++
				} else {
					break
				}
			}

			minor = &Section{
				Type:        "minor",
				Title:       title,
				Description: strings.Join(parts, " "),
				Page:        pageNum,
				BBox:        line.BBox,
			}
			if major != nil {
				major.Subsections = append(major.Subsections, minor)
			} else {
				sections = append(sections, minor)
			}
			i = j
			continue
		}

		content := TextBlock{Text: text, BBox: line.BBox, Page: pageNum}
		switch {
		case minor != nil:
			minor.Content = append(minor.Content, content)
		case major != nil:
			major.Content = append(major.Content, content)
		default:
			sections = append(sections, &Section{
				Type: "standalone",
				Text: text,
				Page: pageNum,
				BBox: line.BBox,
			})
		}
		i++
	}

	if major != nil {
		sections = append(sections, major)
	}

	return sections
}

// Flatten reduces parsed pages back to a flat, typed block list for
// comparison. Empty pages contribute nothing.
func Flatten(pages []Page) []TextBlock {
	var blocks []TextBlock
	for _, page := range pages {
		for _, s := range page.Sections {
			blocks = append(blocks, flattenSection(s)...)
		}
	}
	return blocks
}

func flattenSection(s *Section) []TextBlock {
	var blocks []TextBlock

	switch s.Type {
	case "standalone":
		blocks = append(blocks, TextBlock{
			Text: s.Text, BBox: s.BBox, Page: s.Page,
			SectionType: SectionStandalone,
		})

	case "major":
		blocks = append(blocks, TextBlock{
			Text: s.Title, BBox: s.BBox, Page: s.Page,
			SectionType: SectionMajorTitle,
		})
		for _, c := range s.Content {
			c.SectionType = SectionMajorContent
			c.SectionTitle = s.Title
			blocks = append(blocks, c)
		}
		for _, sub := range s.Subsections {
			blocks = append(blocks, flattenSection(sub)...)
		}

	case "minor":
		blocks = append(blocks, TextBlock{
			Text: s.Description, BBox: s.BBox, Page: s.Page,
			SectionType: SectionMinorTitle, SectionTitle: s.Title,
		})
		for _, c := range s.Content {
			c.SectionType = SectionMinorContent
			c.SectionTitle = s.Title
			blocks = append(blocks, c)
		}
	}

	return blocks
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
