package storage

import (
	"context"
	"os"
	"path"
	"path/filepath"
)

// Archive copies the named report files into the store under
// <stamp>/<basename> and returns the keys written. Files that cannot
// be read are skipped; archiving is best-effort and never blocks the
// comparison flow.
func Archive(ctx context.Context, store BlobStore, stamp string, paths ...string) ([]string, error) {
	var keys []string
	var firstErr error

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		key := path.Join(stamp, filepath.Base(p))
		if err := store.Put(ctx, key, data); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		keys = append(keys, key)
	}
	return keys, firstErr
}
