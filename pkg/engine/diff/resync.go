// Package diff implements the resynchronizing word diff. PDF extraction
// splits and glues words differently between two renderings of the same
// text, so a plain edit-distance walk drifts out of sync after the first
// layout hiccup; this walk re-anchors itself instead.
package diff

import (
	"github.com/posidlab/pdfcompare/pkg/config"
)

// Op classifies one edit.
type Op string

const (
	OpDelete  Op = "delete"
	OpInsert  Op = "insert"
	OpReplace Op = "replace"
)

// None marks an absent index on one side of an edit.
const None = -1

// Edit is one recorded difference. Left and Right are indices into the
// compared word lists; the side an op does not touch holds None.
type Edit struct {
	Op    Op  `json:"op"`
	Left  int `json:"left"`
	Right int `json:"right"`
}

// Resync compares two normalized word lists and returns the ordered edits.
//
// On a mismatch it tries, in order:
//  1. word merge: join up to MaxMerge consecutive words of the shorter
//     side; if the joined text equals the other side's word the pair is a
//     match, not a difference (extraction split one word in two).
//  2. delete resync: the right word appears within Lookahead on the left.
//  3. insert resync: the left word appears within Lookahead on the right.
//  4. double resync: nearest (k1+k2) anchor where both sides meet again.
//  5. fallback: a single replace.
func Resync(left, right []string, cfg config.DiffConfig) []Edit {
	if cfg.Lookahead <= 0 {
		cfg.Lookahead = config.DefaultDiffConfig().Lookahead
	}
	if cfg.MaxMerge <= 0 {
		cfg.MaxMerge = config.DefaultDiffConfig().MaxMerge
	}

	var edits []Edit
	i, j := 0, 0

	for i < len(left) || j < len(right) {
		if i >= len(left) && j >= len(right) {
			break
		}
		if i < len(left) && j >= len(right) {
			edits = append(edits, Edit{Op: OpDelete, Left: i, Right: None})
			i++
			continue
		}
		if i >= len(left) && j < len(right) {
			edits = append(edits, Edit{Op: OpInsert, Left: None, Right: j})
			j++
			continue
		}

		if left[i] == right[j] {
			i++
			j++
			continue
		}

		if di, dj, ok := tryMerge(left, right, i, j, cfg.MaxMerge); ok {
			// A successful merge is a match: record nothing.
			i += di
			j += dj
			continue
		}

		if k, ok := findAhead(left, i, right[j], cfg.Lookahead); ok {
			for idx := i; idx < i+k; idx++ {
				edits = append(edits, Edit{Op: OpDelete, Left: idx, Right: None})
			}
			i += k
			continue
		}

		if k, ok := findAhead(right, j, left[i], cfg.Lookahead); ok {
			for idx := j; idx < j+k; idx++ {
				edits = append(edits, Edit{Op: OpInsert, Left: None, Right: idx})
			}
			j += k
			continue
		}

		if k1, k2, ok := findAnchor(left, right, i, j, cfg.Lookahead); ok {
			for idx := i; idx < i+k1; idx++ {
				edits = append(edits, Edit{Op: OpDelete, Left: idx, Right: None})
			}
			for idx := j; idx < j+k2; idx++ {
				edits = append(edits, Edit{Op: OpInsert, Left: None, Right: idx})
			}
			i += k1
			j += k2
			continue
		}

		edits = append(edits, Edit{Op: OpReplace, Left: i, Right: j})
		i++
		j++
	}

	return edits
}

// tryMerge joins consecutive words of the shorter side and tests them
// against the longer side's word. Returns the pointer advances on success.
func tryMerge(left, right []string, i, j, maxMerge int) (int, int, bool) {
	lw, rw := left[i], right[j]

	switch {
	case len(lw) < len(rw):
		joined := lw
		for k := 1; k < maxMerge && i+k < len(left); k++ {
			joined += left[i+k]
			if joined == rw {
				return k + 1, 1, true
			}
			if len(joined) > len(rw) {
				break
			}
		}
	case len(rw) < len(lw):
		joined := rw
		for k := 1; k < maxMerge && j+k < len(right); k++ {
			joined += right[j+k]
			if joined == lw {
				return 1, k + 1, true
			}
			if len(joined) > len(lw) {
				break
			}
		}
	}
	return 0, 0, false
}

// findAhead looks for want within lookahead words after position start
// (exclusive). Returns the skip distance.
func findAhead(words []string, start int, want string, lookahead int) (int, bool) {
	limit := min(lookahead+1, len(words)-start)
	for k := 1; k < limit; k++ {
		if words[start+k] == want {
			return k, true
		}
	}
	return 0, false
}

// findAnchor searches both sides for the closest future position where
// the streams agree again, minimizing the total skip k1+k2.
func findAnchor(left, right []string, i, j, lookahead int) (int, int, bool) {
	bestK1, bestK2 := 0, 0
	bestDist := -1

	limitL := min(lookahead+1, len(left)-i)
	limitR := min(lookahead+1, len(right)-j)
	for k1 := 1; k1 < limitL; k1++ {
		for k2 := 1; k2 < limitR; k2++ {
			if left[i+k1] == right[j+k2] {
				if bestDist == -1 || k1+k2 < bestDist {
					bestDist = k1 + k2
					bestK1, bestK2 = k1, k2
				}
			}
		}
	}
	if bestDist == -1 {
		return 0, 0, false
	}
	return bestK1, bestK2, true
}

// Counts tallies edits by op.
func Counts(edits []Edit) (deletes, inserts, replaces int) {
	for _, e := range edits {
		switch e.Op {
		case OpDelete:
			deletes++
		case OpInsert:
			inserts++
		case OpReplace:
			replaces++
		}
	}
	return
}
