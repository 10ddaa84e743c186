// Package docstore defines the unified interface for document persistence
// backends: the place assembled graph documents land after extraction.
//
// All providers (MinIO, S3, …) implement the Sink interface. Callers depend
// only on this package — never on a specific provider package.
//
// Usage:
//
//	cfg := docstore.DefaultConfig("localhost:9000", accessKey, secretKey)
//	sink, err := minio.New(ctx, cfg)
//	if err != nil { ... }
//	defer sink.Close()
//
//	err = sink.PutDocument(ctx, "cvlac", "0000172057.json", doc)
package docstore

import "context"

// Sink is the single interface all document persistence providers implement.
type Sink interface {
	// Ping verifies the storage backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any held resources.
	Close() error

	// EnsureBucket creates the bucket when it does not exist yet.
	EnsureBucket(ctx context.Context, bucket string) error

	// PutDocument encodes doc into the document encoding and writes it at
	// key inside bucket, overwriting any previous version.
	PutDocument(ctx context.Context, bucket, key string, doc any) error

	// GetDocument reads and decodes the document at key inside bucket.
	GetDocument(ctx context.Context, bucket, key string) (map[string]any, error)

	// ListDocuments returns the keys under prefix inside bucket.
	ListDocuments(ctx context.Context, bucket, prefix string) ([]string, error)
}
