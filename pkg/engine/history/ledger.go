// Package history keeps an append-only ledger of comparison runs so a
// reviewer can see how two documents drifted apart over time.
package history

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
)

// Snapshot records the outcome of one comparison run.
type Snapshot struct {
	Timestamp  int64   `json:"timestamp"`
	LeftPath   string  `json:"left_path"`
	RightPath  string  `json:"right_path"`
	Pages      int     `json:"pages"`
	Similarity float64 `json:"similarity"` // 0 - 100
	Modified   int     `json:"modified"`
	Deleted    int     `json:"deleted"`
	Added      int     `json:"added"`
	Partial    bool    `json:"partial,omitempty"`
	ReportPath string  `json:"report_path,omitempty"`
}

// TotalDiffs returns the combined difference count.
func (s Snapshot) TotalDiffs() int {
	return s.Modified + s.Deleted + s.Added
}

// Backend defines the storage interface for snapshots.
type Backend interface {
	Append(s Snapshot) error
	Load(n int) ([]Snapshot, error)
}

// Client manages the run ledger.
type Client struct {
	backend Backend
}

// NewClient initializes a history client. A nil backend falls back to
// the default ledger file.
func NewClient(backend Backend) *Client {
	if backend == nil {
		backend = &FileBackend{}
	}
	return &Client{backend: backend}
}

// Append records a new snapshot.
func (c *Client) Append(s Snapshot) error {
	return c.backend.Append(s)
}

// LoadWindow retrieves the most recent n snapshots.
func (c *Client) LoadWindow(n int) ([]Snapshot, error) {
	return c.backend.Load(n)
}

// NewLocalBackend creates a file-based backend at the specified path.
func NewLocalBackend(path string) *FileBackend {
	return &FileBackend{Path: path}
}

// FileBackend stores snapshots as one JSON object per line.
type FileBackend struct {
	Path string
}

func (b *FileBackend) Append(s Snapshot) error {
	path := b.Path
	if path == "" {
		var err error
		path, err = GetLedgerPath()
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

func (b *FileBackend) Load(n int) ([]Snapshot, error) {
	path := b.Path
	if path == "" {
		var err error
		path, err = GetLedgerPath()
		if err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return []Snapshot{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var history []Snapshot
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var s Snapshot
		if err := json.Unmarshal(scanner.Bytes(), &s); err != nil {
			// Corrupt lines are skipped, the ledger stays usable.
			continue
		}
		history = append(history, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(history) > n {
		return history[len(history)-n:], nil
	}
	return history, nil
}

// GetLedgerPath provides the default local storage path.
func GetLedgerPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pdfcompare", "ledger.jsonl"), nil
}
