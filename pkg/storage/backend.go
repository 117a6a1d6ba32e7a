// Package storage archives generated reports so past comparisons stay
// reviewable after the output directory is overwritten by the next run.
package storage

import "context"

// BlobStore defines the interface for abstract storage backends.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
}
