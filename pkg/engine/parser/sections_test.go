package parser

import (
	"testing"

	"github.com/posidlab/pdfcompare/pkg/config"
	"github.com/posidlab/pdfcompare/pkg/pdf"
)

func line(text string, y float64) pdf.Line {
	return pdf.Line{Text: text, BBox: pdf.BBox{X0: 50, Y0: y, X1: 400, Y1: y + 12}}
}

func TestParsePageDropsHeaderAndFooter(t *testing.T) {
	p := New(config.DefaultLayoutConfig())

	lines := []pdf.Line{
		line("우체국보험 가입설계서", 40), // header
		line("본문 내용입니다", 200),
		line("- 1 -", 780), // footer
	}

	page := p.ParsePage(lines, 0)

	if len(page.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(page.Sections))
	}
	if page.Sections[0].Text != "본문 내용입니다" {
		t.Errorf("unexpected surviving text %q", page.Sections[0].Text)
	}
}

func TestParsePageSectionStructure(t *testing.T) {
	p := New(config.DefaultLayoutConfig())

	lines := []pdf.Line{
		line("◆ 보장내용", 100),
		line("주계약 본문", 120),
		line("■ 주계약", 140),
		line("월 보험료 30,000원", 142), // same visual line as the ■ title
		line("만기시 환급", 170),
	}

	page := p.ParsePage(lines, 2)

	if len(page.Sections) != 1 {
		t.Fatalf("expected 1 major section, got %d", len(page.Sections))
	}
	major := page.Sections[0]
	if major.Type != "major" || major.Title != "보장내용" {
		t.Fatalf("unexpected major section %+v", major)
	}
	if len(major.Content) != 1 || major.Content[0].Text != "주계약 본문" {
		t.Errorf("major content wrong: %+v", major.Content)
	}
	if len(major.Subsections) != 1 {
		t.Fatalf("expected 1 subsection, got %d", len(major.Subsections))
	}
	minor := major.Subsections[0]
	if minor.Title != "주계약" {
		t.Errorf("minor title wrong: %q", minor.Title)
	}
	if minor.Description != "주계약 월 보험료 30,000원" {
		t.Errorf("same-line description not joined: %q", minor.Description)
	}
	if len(minor.Content) != 1 || minor.Content[0].Text != "만기시 환급" {
		t.Errorf("minor content wrong: %+v", minor.Content)
	}
}

func TestFlatten(t *testing.T) {
	p := New(config.DefaultLayoutConfig())

	lines := []pdf.Line{
		line("독립 문장", 100),
		line("◆ 제목", 120),
		line("본문 A", 140),
		line("■ 소제목", 160),
		line("본문 B", 190),
	}

	blocks := Flatten([]Page{p.ParsePage(lines, 0)})

	wantTypes := []SectionType{
		SectionStandalone,
		SectionMajorTitle,
		SectionMajorContent,
		SectionMinorTitle,
		SectionMinorContent,
	}
	if len(blocks) != len(wantTypes) {
		t.Fatalf("expected %d blocks, got %d: %+v", len(wantTypes), len(blocks), blocks)
	}
	for i, want := range wantTypes {
		if blocks[i].SectionType != want {
			t.Errorf("block %d: expected type %s, got %s", i, want, blocks[i].SectionType)
		}
	}
	if blocks[4].SectionTitle != "소제목" {
		t.Errorf("minor content must carry its section title, got %q", blocks[4].SectionTitle)
	}
}
