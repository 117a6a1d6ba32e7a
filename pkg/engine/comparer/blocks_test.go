package comparer

import (
	"strings"
	"testing"

	"github.com/posidlab/pdfcompare/pkg/config"
	"github.com/posidlab/pdfcompare/pkg/engine/parser"
	"github.com/posidlab/pdfcompare/pkg/pdf"
)

func block(text string, page int, st parser.SectionType) parser.TextBlock {
	return parser.TextBlock{
		Text:        text,
		Page:        page,
		SectionType: st,
		BBox:        pdf.BBox{X0: 50, Y0: 100, X1: 400, Y1: 120},
	}
}

func TestCompareIdenticalBlocks(t *testing.T) {
	c := New(config.DefaultMatchConfig())

	blocks := []parser.TextBlock{
		block("◆ 주계약", 0, parser.SectionMajorTitle),
		block("월 보험료 30,000원 입니다", 0, parser.SectionMajorContent),
	}

	res := c.Compare(blocks, blocks)

	if n := res.Counts().Total; n != 0 {
		t.Fatalf("identical documents produced %d differences", n)
	}
	if len(res.SyncMap) != 2 {
		t.Fatalf("sync map = %v, want both blocks mapped", res.SyncMap)
	}
	for i, j := range res.SyncMap {
		if i != j {
			t.Errorf("block %d mapped to %d, want identity mapping", i, j)
		}
	}
}

func TestCompareModifiedBlock(t *testing.T) {
	c := New(config.DefaultMatchConfig())

	left := []parser.TextBlock{block("월 보험료 30,000원 입니다", 2, parser.SectionMajorContent)}
	right := []parser.TextBlock{block("월 보험료 50,000원 입니다", 3, parser.SectionMajorContent)}

	res := c.Compare(left, right)

	if len(res.Modified) != 1 {
		t.Fatalf("modified = %d, want 1", len(res.Modified))
	}
	m := res.Modified[0]
	if got := m.WordDiff.Deleted; len(got) != 1 || got[0] != "30,000원" {
		t.Errorf("deleted words = %v, want [30,000원]", got)
	}
	if got := m.WordDiff.Added; len(got) != 1 || got[0] != "50,000원" {
		t.Errorf("added words = %v, want [50,000원]", got)
	}

	hlA := res.HighlightsLeft[2]
	if len(hlA) != 1 || hlA[0].Color != ColorModified {
		t.Fatalf("left highlights = %+v, want one yellow entry on page 2", hlA)
	}
	if want := "[변경/삭제] 30,000원"; hlA[0].Detail != want {
		t.Errorf("left detail = %q, want %q", hlA[0].Detail, want)
	}
	hlB := res.HighlightsRight[3]
	if want := "[변경/추가] 50,000원"; len(hlB) != 1 || hlB[0].Detail != want {
		t.Errorf("right highlights = %+v, want detail %q", hlB, want)
	}
}

func TestCompareDeletedAndAdded(t *testing.T) {
	c := New(config.DefaultMatchConfig())

	left := []parser.TextBlock{
		block("해약환급금은 납입한 보험료보다 적을 수 있습니다", 0, parser.SectionStandalone),
	}
	right := []parser.TextBlock{
		block("자동이체 할인 특약 안내", 1, parser.SectionStandalone),
	}

	res := c.Compare(left, right)

	if len(res.Deleted) != 1 || len(res.Added) != 1 {
		t.Fatalf("deleted=%d added=%d, want 1 and 1", len(res.Deleted), len(res.Added))
	}
	del := res.HighlightsLeft[0][0]
	if del.Color != ColorDeleted || !strings.HasPrefix(del.Detail, "[삭제됨] ") {
		t.Errorf("deleted highlight = %+v", del)
	}
	add := res.HighlightsRight[1][0]
	if add.Color != ColorAdded || !strings.HasPrefix(add.Detail, "[추가됨] ") {
		t.Errorf("added highlight = %+v", add)
	}
}

func TestRightBlockMatchedAtMostOnce(t *testing.T) {
	c := New(config.DefaultMatchConfig())

	// Two equally good left candidates for a single right block. Only
	// the first may consume it; the second maps to nothing and is not
	// reported as deleted.
	left := []parser.TextBlock{
		block("보험료 납입 안내", 0, parser.SectionMinorContent),
		block("보험료 납입 안내", 0, parser.SectionMinorContent),
	}
	right := []parser.TextBlock{
		block("보험료 납입 안내", 0, parser.SectionMinorContent),
	}

	res := c.Compare(left, right)

	if len(res.SyncMap) != 1 {
		t.Fatalf("sync map = %v, want exactly one pair", res.SyncMap)
	}
	if j := res.SyncMap[0]; j != 0 {
		t.Errorf("first block mapped to %d, want 0", j)
	}
	if len(res.Deleted) != 0 {
		t.Errorf("deleted = %+v, want none", res.Deleted)
	}
}

func TestSectionTypeBonusBreaksTies(t *testing.T) {
	c := New(config.MatchConfig{SimilarityThreshold: 0.6, SectionTypeBonus: 0.1})

	target := block("보장 내용", 0, parser.SectionMinorTitle)
	candidates := []parser.TextBlock{
		block("보장 내용", 0, parser.SectionMajorTitle),
		block("보장 내용", 0, parser.SectionMinorTitle),
	}

	j, score, ok := c.findBestMatch(target, candidates)
	if !ok {
		t.Fatal("no match found")
	}
	if j != 1 {
		t.Errorf("matched index %d, want the same-type candidate 1", j)
	}
	if score < 1.0 {
		t.Errorf("score = %v, want bonus applied on top of a full ratio", score)
	}
}

func TestPlaceholderPairSuppressed(t *testing.T) {
	c := New(config.DefaultMatchConfig())
	c.SkipPlaceholders = true

	left := []parser.TextBlock{block("계약자 : ○○○ 귀하", 0, parser.SectionStandalone)}
	right := []parser.TextBlock{block("계약자 : 김민수 귀하", 0, parser.SectionStandalone)}

	res := c.Compare(left, right)

	if len(res.Placeholder) != 1 {
		t.Fatalf("placeholder pairs = %d, want 1", len(res.Placeholder))
	}
	if len(res.Modified) != 0 {
		t.Errorf("modified = %+v, want none", res.Modified)
	}
	if len(res.HighlightsLeft[0]) != 0 || len(res.HighlightsRight[0]) != 0 {
		t.Error("placeholder pair must not produce highlights")
	}
	if res.Counts().Total != 0 {
		t.Errorf("counts = %+v, placeholder pairs must not count", res.Counts())
	}
}

func TestIsPlaceholderDiff(t *testing.T) {
	cases := []struct {
		name  string
		left  string
		right string
		want  bool
	}{
		{"circle placeholder filled", "피보험자 ○○○", "피보험자 김민수", true},
		{"rate placeholder filled", "적용이율 x.xx%", "적용이율 2.25%", true},
		{"identical text", "피보험자 ○○○", "피보험자 ○○○", false},
		{"no placeholder marker", "abc def", "abc xyz", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsPlaceholderDiff(tc.left, tc.right); got != tc.want {
				t.Errorf("IsPlaceholderDiff(%q, %q) = %v, want %v", tc.left, tc.right, got, tc.want)
			}
		})
	}
}
