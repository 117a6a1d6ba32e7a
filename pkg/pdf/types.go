// Package pdf extracts positioned text from PDF files and assembles it
// into words and lines with top-left-origin page coordinates.
package pdf

// BBox is an axis-aligned box in page coordinates. The origin is the top
// left corner of the page, Y grows downward.
type BBox struct {
	X0, Y0, X1, Y1 float64
}

// Intersects reports whether two boxes overlap.
func (b BBox) Intersects(o BBox) bool {
	return b.X0 < o.X1 && o.X0 < b.X1 && b.Y0 < o.Y1 && o.Y0 < b.Y1
}

// Union returns the smallest box covering both.
func (b BBox) Union(o BBox) BBox {
	return BBox{
		X0: min(b.X0, o.X0),
		Y0: min(b.Y0, o.Y0),
		X1: max(b.X1, o.X1),
		Y1: max(b.Y1, o.Y1),
	}
}

// Width returns the horizontal extent.
func (b BBox) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical extent.
func (b BBox) Height() float64 { return b.Y1 - b.Y0 }

// Word is a single extracted word.
type Word struct {
	Text string
	BBox BBox
	Page int
}

// Line is a visual text line, used by the section parser.
type Line struct {
	Text string
	BBox BBox
	Size float64
	Bold bool
	Page int
}

// Extractor supplies positioned text. The engine only depends on this
// interface so tests can run on synthetic word lists.
type Extractor interface {
	// Pages returns the page count.
	Pages() int
	// Words returns the words of a page (0-based) in reading order.
	Words(page int) ([]Word, error)
	// Lines returns the visual lines of a page (0-based) sorted by (y, x).
	Lines(page int) ([]Line, error)
	// Close releases the underlying file.
	Close() error
}
