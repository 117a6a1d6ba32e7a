package pdf

import (
	"fmt"
	"os"
	"sort"
	"strings"

	ledong "github.com/ledongthuc/pdf"
)

// Document reads a PDF from disk. It implements Extractor.
type Document struct {
	path   string
	file   *os.File
	reader *ledong.Reader
}

// Open opens a PDF for extraction.
func Open(path string) (*Document, error) {
	f, r, err := ledong.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Document{path: path, file: f, reader: r}, nil
}

// Path returns the file path the document was opened from.
func (d *Document) Path() string { return d.path }

// Pages returns the page count.
func (d *Document) Pages() int { return d.reader.NumPage() }

// Close releases the underlying file.
func (d *Document) Close() error { return d.file.Close() }

// Words returns the words of a page (0-based) in reading order.
func (d *Document) Words(page int) ([]Word, error) {
	frags, height, err := d.fragments(page)
	if err != nil {
		return nil, err
	}
	words := assembleWords(frags, height, page)
	SortReadingOrder(words)
	return words, nil
}

// Lines returns the visual lines of a page (0-based) sorted by (y, x).
func (d *Document) Lines(page int) ([]Line, error) {
	frags, height, err := d.fragments(page)
	if err != nil {
		return nil, err
	}
	return assembleLines(frags, height, page), nil
}

// fragment is one raw positioned text run in bottom-left-origin
// coordinates, as the underlying reader reports them.
type fragment struct {
	s        string
	x, y, w  float64
	fontSize float64
	font     string
}

func (d *Document) fragments(page int) ([]fragment, float64, error) {
	if page < 0 || page >= d.reader.NumPage() {
		return nil, 0, fmt.Errorf("page %d out of range (have %d)", page, d.reader.NumPage())
	}

	// The underlying reader numbers pages from 1.
	p := d.reader.Page(page + 1)
	if p.V.IsNull() {
		return nil, 0, fmt.Errorf("page %d is empty", page)
	}

	height := pageHeight(p)
	content := p.Content()

	frags := make([]fragment, 0, len(content.Text))
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" && t.S != " " {
			continue
		}
		frags = append(frags, fragment{
			s:        t.S,
			x:        t.X,
			y:        t.Y,
			w:        t.W,
			fontSize: t.FontSize,
			font:     t.Font,
		})
	}
	return frags, height, nil
}

// pageHeight reads the MediaBox height. US Letter is the reader's own
// fallback assumption, so it is ours too.
func pageHeight(p ledong.Page) float64 {
	box := p.V.Key("MediaBox")
	if box.IsNull() {
		return 792
	}
	y0 := box.Index(1).Float64()
	y1 := box.Index(3).Float64()
	if y1 <= y0 {
		return 792
	}
	return y1 - y0
}

// assembleWords groups fragments into rows, then splits rows into words on
// whitespace fragments and horizontal gaps. Coordinates are flipped to a
// top-left origin so downstream geometry matches the layout config.
func assembleWords(frags []fragment, height float64, page int) []Word {
	var words []Word
	for _, row := range groupRows(frags) {
		var cur []fragment
		flush := func() {
			if w, ok := buildWord(cur, height, page); ok {
				words = append(words, w)
			}
			cur = nil
		}
		for _, f := range row {
			if strings.TrimSpace(f.s) == "" {
				flush()
				continue
			}
			if len(cur) > 0 {
				prev := cur[len(cur)-1]
				gap := f.x - (prev.x + prev.w)
				if gap > wordGap(prev.fontSize) {
					flush()
				}
			}
			cur = append(cur, f)
		}
		flush()
	}
	return words
}

// assembleLines joins each row into one Line.
func assembleLines(frags []fragment, height float64, page int) []Line {
	var lines []Line
	for _, row := range groupRows(frags) {
		var sb strings.Builder
		var box BBox
		var size float64
		bold := false
		first := true
		var prevEnd float64
		for _, f := range row {
			if strings.TrimSpace(f.s) == "" {
				if sb.Len() > 0 && !strings.HasSuffix(sb.String(), " ") {
					sb.WriteString(" ")
				}
				continue
			}
			if !first && f.x-prevEnd > wordGap(f.fontSize) && !strings.HasSuffix(sb.String(), " ") {
				sb.WriteString(" ")
			}
			sb.WriteString(f.s)
			fb := fragBox(f, height)
			if first {
				box = fb
				size = f.fontSize
				first = false
			} else {
				box = box.Union(fb)
			}
			if strings.Contains(strings.ToLower(f.font), "bold") {
				bold = true
			}
			prevEnd = f.x + f.w
		}
		text := strings.TrimSpace(sb.String())
		if text == "" {
			continue
		}
		lines = append(lines, Line{Text: text, BBox: box, Size: size, Bold: bold, Page: page})
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].BBox.Y0 != lines[j].BBox.Y0 {
			return lines[i].BBox.Y0 < lines[j].BBox.Y0
		}
		return lines[i].BBox.X0 < lines[j].BBox.X0
	})
	return lines
}

// groupRows buckets fragments into visual rows by baseline, top row first,
// left to right within a row.
func groupRows(frags []fragment) [][]fragment {
	sorted := make([]fragment, len(frags))
	copy(sorted, frags)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].y != sorted[j].y {
			return sorted[i].y > sorted[j].y // larger Y is higher on the page
		}
		return sorted[i].x < sorted[j].x
	})

	var rows [][]fragment
	for _, f := range sorted {
		if len(rows) > 0 {
			last := rows[len(rows)-1]
			tol := rowTolerance(last[0].fontSize)
			if abs(last[0].y-f.y) <= tol {
				rows[len(rows)-1] = append(rows[len(rows)-1], f)
				continue
			}
		}
		rows = append(rows, []fragment{f})
	}
	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].x < row[j].x })
	}
	return rows
}

func buildWord(frags []fragment, height float64, page int) (Word, bool) {
	if len(frags) == 0 {
		return Word{}, false
	}
	var sb strings.Builder
	box := fragBox(frags[0], height)
	for i, f := range frags {
		sb.WriteString(f.s)
		if i > 0 {
			box = box.Union(fragBox(f, height))
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return Word{}, false
	}
	return Word{Text: text, BBox: box, Page: page}, true
}

func fragBox(f fragment, height float64) BBox {
	size := f.fontSize
	if size <= 0 {
		size = 10
	}
	return BBox{
		X0: f.x,
		Y0: height - f.y - size,
		X1: f.x + f.w,
		Y1: height - f.y,
	}
}

func wordGap(fontSize float64) float64 {
	if fontSize <= 0 {
		fontSize = 10
	}
	return fontSize * 0.3
}

func rowTolerance(fontSize float64) float64 {
	if fontSize <= 0 {
		fontSize = 10
	}
	return fontSize * 0.5
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
