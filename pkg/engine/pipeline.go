package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/posidlab/pdfcompare/pkg/engine/comparer"
	"github.com/posidlab/pdfcompare/pkg/engine/diff"
	"github.com/posidlab/pdfcompare/pkg/engine/normalize"
	"github.com/posidlab/pdfcompare/pkg/engine/parser"
	"github.com/posidlab/pdfcompare/pkg/engine/rules"
	"github.com/posidlab/pdfcompare/pkg/pdf"
)

// pageData is the raw extraction output of one side of one page.
type pageData struct {
	words []pdf.Word
	lines []pdf.Line
	err   error
}

func (e *Engine) runPipeline(ctx context.Context, left, right pdf.Extractor) *Result {
	result := &Result{
		LeftPath:    e.config.LeftPath,
		RightPath:   e.config.RightPath,
		GeneratedAt: time.Now(),
	}

	pages := left.Pages()
	if right.Pages() > pages {
		pages = right.Pages()
	}
	result.Pages = pages

	leftData := e.extract(ctx, left, pages)
	rightData := e.extract(ctx, right, pages)

	e.compareWords(ctx, result, leftData, rightData)
	e.compareBlocks(ctx, result, leftData, rightData)

	for p := 0; p < pages; p++ {
		if leftData[p].err != nil || rightData[p].err != nil {
			result.FailedPages = append(result.FailedPages, p)
		}
	}
	result.Partial = len(result.FailedPages) > 0

	return result
}

// extract pulls words and lines of every page through the worker pool.
func (e *Engine) extract(ctx context.Context, ex pdf.Extractor, pages int) []pageData {
	ctx, span := e.Tracer.Start(ctx, "Engine.Extract")
	defer span.End()
	span.SetAttributes(attribute.Int("extract.pages", pages))

	data := make([]pageData, pages)
	var wg sync.WaitGroup

	for p := 0; p < pages; p++ {
		if p >= ex.Pages() {
			// The other document is longer; this side has no content.
			continue
		}
		p := p
		wg.Add(1)
		e.Swarm.Submit(func(ctx context.Context) error {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				data[p].err = err
				return err
			}
			words, err := ex.Words(p)
			if err != nil {
				data[p].err = fmt.Errorf("words page %d: %w", p, err)
				return data[p].err
			}
			lines, err := ex.Lines(p)
			if err != nil {
				data[p].err = fmt.Errorf("lines page %d: %w", p, err)
				return data[p].err
			}
			data[p].words = words
			data[p].lines = lines
			return nil
		})
	}

	wg.Wait()
	return data
}

// normalizeWords turns extracted words into the token list the diff
// runs on. Comma-joined numbers split first, then each piece goes
// through the normalization pipeline; empty results drop out.
func (e *Engine) normalizeWords(words []pdf.Word) []string {
	var out []string
	for _, w := range words {
		for _, piece := range normalize.SplitComma(w.Text) {
			norm := normalize.Word(piece)
			if e.dict != nil {
				norm = e.dict.Apply(norm)
			}
			if norm != "" {
				out = append(out, norm)
			}
		}
	}
	return out
}

func (e *Engine) compareWords(ctx context.Context, result *Result, leftData, rightData []pageData) {
	ctx, span := e.Tracer.Start(ctx, "Engine.CompareWords")
	defer span.End()

	var weightedSum, weightTotal float64

	for p := 0; p < result.Pages; p++ {
		pr := PageResult{Page: p}

		if err := firstErr(leftData[p].err, rightData[p].err); err != nil {
			pr.Error = err.Error()
			result.PageResults = append(result.PageResults, pr)
			continue
		}

		leftWords := e.normalizeWords(leftData[p].words)
		rightWords := e.normalizeWords(rightData[p].words)
		pr.LeftWords = len(leftWords)
		pr.RightWords = len(rightWords)

		pr.Similarity = diff.Similarity(leftWords, rightWords)
		edits := diff.Resync(leftWords, rightWords, e.diff)

		for _, ed := range edits {
			rec := EditRecord{Op: ed.Op, Page: p}
			if ed.Left != diff.None {
				rec.Left = leftWords[ed.Left]
			}
			if ed.Right != diff.None {
				rec.Right = rightWords[ed.Right]
			}

			if e.rules != nil {
				verdicts := e.rules.Evaluate(map[string]interface{}{
					"op":         string(rec.Op),
					"left":       rec.Left,
					"right":      rec.Right,
					"page":       p,
					"similarity": pr.Similarity,
				})
				if rules.Ignored(verdicts) {
					pr.Ignored++
					continue
				}
				rec.Verdicts = verdicts
			}

			pr.Edits = append(pr.Edits, rec)
		}

		weight := float64(max(len(leftWords), len(rightWords)))
		if weight > 0 {
			weightedSum += pr.Similarity * weight
			weightTotal += weight
		}

		result.PageResults = append(result.PageResults, pr)
	}

	if weightTotal > 0 {
		result.OverallSimilarity = weightedSum / weightTotal
	} else {
		result.OverallSimilarity = 100
	}
	span.SetAttributes(attribute.Float64("compare.similarity", result.OverallSimilarity))
}

func (e *Engine) compareBlocks(ctx context.Context, result *Result, leftData, rightData []pageData) {
	_, span := e.Tracer.Start(ctx, "Engine.CompareBlocks")
	defer span.End()

	p := parser.New(e.layout)
	leftBlocks := parseSides(p, leftData)
	rightBlocks := parseSides(p, rightData)

	c := comparer.New(e.match)
	if e.dict != nil {
		c.WithDictionary(e.dict)
	}
	c.SkipPlaceholders = e.config.SkipPlaceholders

	result.Blocks = c.Compare(leftBlocks, rightBlocks)

	counts := result.Blocks.Counts()
	span.SetAttributes(
		attribute.Int("blocks.modified", counts.Modified),
		attribute.Int("blocks.deleted", counts.Deleted),
		attribute.Int("blocks.added", counts.Added),
	)
}

func parseSides(p *parser.Parser, data []pageData) []parser.TextBlock {
	var pages []parser.Page
	for i := range data {
		if data[i].err != nil || len(data[i].lines) == 0 {
			continue
		}
		pages = append(pages, p.ParsePage(data[i].lines, i))
	}
	sort.SliceStable(pages, func(a, b int) bool { return pages[a].Page < pages[b].Page })
	return parser.Flatten(pages)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
