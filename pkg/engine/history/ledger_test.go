package history

import (
	"path/filepath"
	"testing"
)

func TestFileBackendAppendLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "ledger.jsonl")
	c := NewClient(NewLocalBackend(path))

	for i := 0; i < 5; i++ {
		err := c.Append(Snapshot{
			Timestamp:  int64(1000 + i),
			LeftPath:   "a.pdf",
			RightPath:  "b.pdf",
			Similarity: float64(90 + i),
			Modified:   i,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	runs, err := c.LoadWindow(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("loaded %d runs, want 3", len(runs))
	}
	if runs[2].Timestamp != 1004 || runs[2].Similarity != 94 {
		t.Errorf("latest run = %+v", runs[2])
	}
}

func TestLoadMissingLedger(t *testing.T) {
	c := NewClient(NewLocalBackend(filepath.Join(t.TempDir(), "none.jsonl")))
	runs, err := c.LoadWindow(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Fatalf("runs = %v, want empty", runs)
	}
}

func TestAnalyzeFlagsDrift(t *testing.T) {
	runs := []Snapshot{
		{Timestamp: 1, Similarity: 98, Modified: 2},
		{Timestamp: 2, Similarity: 80, Modified: 40},
	}

	res := Analyze(runs)
	if res.SimilarityDelta != -18 {
		t.Errorf("SimilarityDelta = %v, want -18", res.SimilarityDelta)
	}
	if res.DiffDelta != 38 {
		t.Errorf("DiffDelta = %v, want 38", res.DiffDelta)
	}
	if len(res.Alerts) != 2 {
		t.Errorf("alerts = %v, want similarity and diff warnings", res.Alerts)
	}
}

func TestAnalyzeSingleRun(t *testing.T) {
	res := Analyze([]Snapshot{{Similarity: 97}})
	if res.CurrentSimilarity != 97 || len(res.Alerts) != 0 {
		t.Errorf("result = %+v", res)
	}
}
