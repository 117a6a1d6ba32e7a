package normalize

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsMeaningless(t *testing.T) {
	meaningless := []string{
		"http://example.com",
		"www.epost.go.kr",
		"•",
		"①",
		"-",
		"o",
		"7",  // page number
		"42", // page number
		"※",
	}
	for _, w := range meaningless {
		if !IsMeaningless(w) {
			t.Errorf("expected %q to be meaningless", w)
		}
	}

	meaningful := []string{
		"보험료",
		"coverage",
		"123", // three digits is real data
		"가",
		"x",
	}
	for _, w := range meaningful {
		if IsMeaningless(w) {
			t.Errorf("expected %q to be meaningful", w)
		}
	}
}

func TestExpandKoreanNumber(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"1,000만", "10000000"},
		{"10,000,000", "10000000"},
		{"1,000만원", "10000000원"},
		{"3억", "300000000"},
		{"2조", "2000000000000"},
		{"추가납입", "추가납입"},
	}
	for _, c := range cases {
		if got := ExpandKoreanNumber(c.in); got != c.want {
			t.Errorf("ExpandKoreanNumber(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestWordNormalization(t *testing.T) {
	// "1,000만원" and "10,000,000원" must normalize to the same token:
	// that equivalence is the whole point of the pipeline.
	a := Word("1,000만원")
	b := Word("10,000,000원")
	if a != b {
		t.Fatalf("expected equal normal forms, got %q vs %q", a, b)
	}
	if a != "10000000원" {
		t.Errorf("unexpected normal form %q", a)
	}

	if got := Word("Hello,World!"); got != "helloworld" {
		t.Errorf("punctuation strip failed: %q", got)
	}
	if got := Word("•"); got != "" {
		t.Errorf("bullet must normalize to empty, got %q", got)
	}
}

func TestSplitComma(t *testing.T) {
	got := SplitComma("테스트, 확인")
	if len(got) != 2 || got[0] != "테스트" || got[1] != "확인" {
		t.Errorf("unexpected split: %v", got)
	}

	// A word that is nothing but commas falls back to itself.
	got = SplitComma(",,")
	if len(got) != 1 || got[0] != ",," {
		t.Errorf("expected fallback to original, got %v", got)
	}
}

func TestDictionaryApply(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.yaml")
	content := []byte("ignore:\n  - 주계약\nreplace:\n  무배당: 배당없음\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	d, err := LoadDictionary(path)
	if err != nil {
		t.Fatalf("LoadDictionary failed: %v", err)
	}

	if got := d.Apply(Word("주계약")); got != "" {
		t.Errorf("expected ignored word to map to empty, got %q", got)
	}
	if got := d.Apply(Word("무배당")); got != Word("배당없음") {
		t.Errorf("expected replacement, got %q", got)
	}
	if got := d.Apply("그대로"); got != "그대로" {
		t.Errorf("unlisted word must pass through, got %q", got)
	}
}
