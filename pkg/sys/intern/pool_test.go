package intern

import (
	"fmt"
	"sync"
	"testing"
)

func TestIDRoundTrip(t *testing.T) {
	p := NewPool()

	a := p.ID("보험료")
	b := p.ID("납입기간")
	if a == b {
		t.Fatal("distinct strings share an ID")
	}
	if p.ID("보험료") != a {
		t.Error("repeated ID lookup not stable")
	}
	if p.Str(a) != "보험료" || p.Str(b) != "납입기간" {
		t.Error("Str does not invert ID")
	}
}

func TestEmptyAndInvalid(t *testing.T) {
	p := NewPool()

	if p.ID("") != InvalidID {
		t.Error("empty string must map to InvalidID")
	}
	if p.Str(InvalidID) != "" {
		t.Error("InvalidID must map to empty string")
	}
	if p.Str(999) != "" {
		t.Error("out-of-range handle must map to empty string")
	}
}

func TestConcurrentID(t *testing.T) {
	p := NewPool()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				p.ID(fmt.Sprintf("token-%d", i%25))
			}
		}()
	}
	wg.Wait()

	if p.Len() != 25 {
		t.Errorf("pool size = %d, want 25", p.Len())
	}
}
