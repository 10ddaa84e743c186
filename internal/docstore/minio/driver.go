// Package minio provides a MinIO implementation of docstore.Sink.
package minio

import (
	"bytes"
	"context"
	"io"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/grupocolav/UkuPacha/internal/docenc"
	"github.com/grupocolav/UkuPacha/internal/docstore"
	"github.com/grupocolav/UkuPacha/internal/errs"
)

const documentContentType = "application/json"

// Driver is a MinIO implementation of docstore.Sink.
// It is safe for concurrent use by multiple goroutines.
type Driver struct {
	client *miniogo.Client
}

// New connects to MinIO using the provided Config and returns a Driver.
// It calls Ping to validate the connection before returning.
func New(ctx context.Context, cfg *docstore.Config) (*Driver, error) {
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "failed to create minio client", err)
	}

	d := &Driver{client: client}

	if err := d.Ping(ctx); err != nil {
		return nil, err
	}

	return d, nil
}

// --- docstore.Sink implementation ---

// Ping verifies the MinIO server is reachable by listing buckets.
func (d *Driver) Ping(ctx context.Context) error {
	if _, err := d.client.ListBuckets(ctx); err != nil {
		return mapError(err, "ping failed")
	}
	return nil
}

// Close is a no-op for MinIO — the SDK client holds no persistent connections.
func (d *Driver) Close() error {
	return nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (d *Driver) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := d.client.BucketExists(ctx, bucket)
	if err != nil {
		return mapError(err, "failed to check bucket existence")
	}
	if exists {
		return nil
	}
	if err := d.client.MakeBucket(ctx, bucket, miniogo.MakeBucketOptions{}); err != nil {
		return mapError(err, "failed to create bucket")
	}
	return nil
}

// PutDocument encodes doc and writes it at key inside bucket.
// Encoding goes through docenc, so driver-native values (timestamps, LOB
// handles, labeled rows) are normalized on the way out.
func (d *Driver) PutDocument(ctx context.Context, bucket, key string, doc any) error {
	data, err := docenc.Marshal(doc)
	if err != nil {
		return err
	}

	_, err = d.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)),
		miniogo.PutObjectOptions{ContentType: documentContentType})
	if err != nil {
		return mapError(err, "failed to put document")
	}
	return nil
}

// GetDocument reads and decodes the document at key inside bucket.
func (d *Driver) GetDocument(ctx context.Context, bucket, key string) (map[string]any, error) {
	obj, err := d.client.GetObject(ctx, bucket, key, miniogo.GetObjectOptions{})
	if err != nil {
		return nil, mapError(err, "failed to get document")
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, mapError(err, "failed to read document")
	}

	var doc map[string]any
	if err := docenc.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ListDocuments returns the keys under prefix inside bucket.
func (d *Driver) ListDocuments(ctx context.Context, bucket, prefix string) ([]string, error) {
	opts := miniogo.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}

	var keys []string
	for obj := range d.client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, mapError(obj.Err, "failed to list documents")
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}
