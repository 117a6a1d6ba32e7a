package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/posidlab/pdfcompare/pkg/engine"
	"github.com/posidlab/pdfcompare/pkg/engine/comparer"
	"github.com/posidlab/pdfcompare/pkg/engine/diff"
	"github.com/posidlab/pdfcompare/pkg/engine/parser"
	"github.com/posidlab/pdfcompare/pkg/engine/rules"
)

func sampleResult() *engine.Result {
	return &engine.Result{
		LeftPath:          "template.pdf",
		RightPath:         "generated.pdf",
		Pages:             2,
		OverallSimilarity: 91.25,
		PageResults: []engine.PageResult{
			{
				Page: 0, Similarity: 95.5, LeftWords: 10, RightWords: 10,
				Edits: []engine.EditRecord{
					{Op: diff.OpDelete, Left: "20년", Page: 0},
					{Op: diff.OpInsert, Right: "30년", Page: 0},
				},
			},
			{
				Page: 1, Similarity: 87.0, LeftWords: 8, RightWords: 8,
				Edits: []engine.EditRecord{
					{
						Op: diff.OpReplace, Left: "납입기간", Right: "보험기간", Page: 1,
						Verdicts: []rules.Verdict{{RuleID: "term-words", Action: "flag"}},
					},
				},
			},
		},
		Blocks: &comparer.Result{
			Modified: []comparer.Match{{
				Left:     parser.TextBlock{Text: "월 보험료 30,000원", Page: 0},
				Right:    parser.TextBlock{Text: "월 보험료 50,000원", Page: 0},
				WordDiff: comparer.WordDiff{Deleted: []string{"30,000원"}, Added: []string{"50,000원"}},
			}},
			Deleted: []comparer.Unmatched{{
				Block: parser.TextBlock{Text: "해약환급금 안내", Page: 1},
			}},
			Added: []comparer.Unmatched{{
				Block: parser.TextBlock{Text: "자동이체 할인", Page: 1},
			}},
		},
	}
}

func TestGenerateJSONGolden(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diff.json")
	if err := GenerateJSON(sampleResult(), path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	g := goldie.New(t)
	g.Assert(t, "export_json", data)
}

func TestGenerateCSVGolden(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diff.csv")
	if err := GenerateCSV(sampleResult(), path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	g := goldie.New(t)
	g.Assert(t, "export_csv", data)
}

func TestGenerateJSONEmptyResult(t *testing.T) {
	res := &engine.Result{LeftPath: "a.pdf", RightPath: "b.pdf", OverallSimilarity: 100}
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := GenerateJSON(res, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("empty result JSON = %q, want []", data)
	}
}

func TestGenerateDashboardXSS(t *testing.T) {
	// A block text trying to break out of the inline data script.
	malicious := `</td><script>alert('XSS')</script>`
	res := &engine.Result{
		LeftPath:  `docs/<bad>.pdf`,
		RightPath: "b.pdf",
		Pages:     1,
		PageResults: []engine.PageResult{{
			Page: 0, Similarity: 50,
			Edits: []engine.EditRecord{{Op: diff.OpDelete, Left: malicious, Page: 0}},
		}},
	}

	path := filepath.Join(t.TempDir(), "report.html")
	if err := GenerateDashboard(res, path); err != nil {
		t.Fatal(err)
	}
	contentBytes, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(contentBytes)

	// The payload lives inside the JSON data assignment. json.Marshal
	// escapes < and > as \u003c and \u003e, so the literal script tag
	// must never appear in the document.
	if strings.Contains(content, "<script>alert('XSS')</script>") {
		t.Fatal("XSS payload appears unescaped in the dashboard")
	}
	if !strings.Contains(content, `\u003cscript\u003e`) {
		t.Error("expected JSON-escaped payload in the data block")
	}

	// Footer paths are escaped separately.
	if strings.Contains(content, "docs/<bad>.pdf") {
		t.Error("left path appears unescaped in the footer")
	}
	if !strings.Contains(content, "docs/&lt;bad&gt;.pdf") {
		t.Error("expected HTML-escaped left path in the footer")
	}
}
