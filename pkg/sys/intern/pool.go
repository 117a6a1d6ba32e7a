// Package intern deduplicates repeated strings into small integer
// handles. Insurance documents repeat the same normalized tokens and
// section keys across pages; comparing handles is cheaper than
// comparing the strings.
package intern

import "sync"

const InvalidID uint32 = 0

// Pool maps strings to stable 1-based IDs. Zero is the sentinel for
// the empty string. Safe for concurrent use.
type Pool struct {
	mu      sync.RWMutex
	store   map[string]uint32
	reverse []string
}

func NewPool() *Pool {
	return &Pool{
		store:   make(map[string]uint32),
		reverse: make([]string, 0, 256),
	}
}

// ID returns the unique handle for s, allocating one if necessary.
func (p *Pool) ID(s string) uint32 {
	if s == "" {
		return InvalidID
	}

	p.mu.RLock()
	id, ok := p.store[s]
	p.mu.RUnlock()
	if ok {
		return id
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Double-check
	if id, ok := p.store[s]; ok {
		return id
	}

	// reverse[id-1] holds the string for id.
	p.reverse = append(p.reverse, s)
	id = uint32(len(p.reverse))
	p.store[s] = id
	return id
}

// Str returns the string for a handle, "" for InvalidID or an
// out-of-range handle.
func (p *Pool) Str(id uint32) string {
	if id == InvalidID {
		return ""
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	idx := int(id) - 1
	if idx < 0 || idx >= len(p.reverse) {
		return ""
	}
	return p.reverse[idx]
}

// Len reports how many distinct strings the pool holds.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.reverse)
}
