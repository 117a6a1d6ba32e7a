package pdf

import "sort"

// SortReadingOrder orders words the way a human reads the page: by the
// integer-truncated top coordinate first (so sub-point jitter inside one
// visual line does not reshuffle it), then left to right.
func SortReadingOrder(words []Word) {
	sort.SliceStable(words, func(i, j int) bool {
		yi, yj := int(words[i].BBox.Y0), int(words[j].BBox.Y0)
		if yi != yj {
			return yi < yj
		}
		return words[i].BBox.X0 < words[j].BBox.X0
	})
}

// WordsInRegion returns the words whose boxes intersect the region,
// in reading order.
func WordsInRegion(words []Word, region BBox) []Word {
	var out []Word
	for _, w := range words {
		if w.BBox.Intersects(region) {
			out = append(out, w)
		}
	}
	SortReadingOrder(out)
	return out
}

// UnionBBoxByPage collapses a word list to one covering box per page.
// The viewer uses this to mark the region a comparison ran over.
func UnionBBoxByPage(words []Word) map[int]BBox {
	out := make(map[int]BBox)
	for _, w := range words {
		if cur, ok := out[w.Page]; ok {
			out[w.Page] = cur.Union(w.BBox)
		} else {
			out[w.Page] = w.BBox
		}
	}
	return out
}
