// Package gcs implements the screenshot uploader on Google Cloud Storage.
package gcs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/golives/glc/internal/debug"
)

// signedURLExpiry is the far-future horizon for retrieval URLs. The catalog
// frontend embeds these URLs directly, so they must outlive any realistic
// deployment.
var signedURLExpiry = time.Date(2491, time.January, 1, 0, 0, 0, 0, time.UTC)

// Config holds the connection settings for the screenshot bucket.
type Config struct {
	Bucket          string
	CredentialsFile string
}

// GCSUploader implements assets.Uploader against a GCS bucket.
type GCSUploader struct {
	client *storage.Client
	bucket string
}

// New authenticates with a service account key and returns an uploader
// bound to the configured bucket.
func New(ctx context.Context, cfg Config) (*GCSUploader, error) {
	client, err := storage.NewClient(ctx, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSUploader{client: client, bucket: cfg.Bucket}, nil
}

// Upload copies the local file to key in the bucket and returns a signed
// read URL valid until the far-future expiry.
func (u *GCSUploader) Upload(ctx context.Context, localPath, key string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open screenshot %s: %w", localPath, err)
	}
	defer func() { _ = f.Close() }()

	obj := u.client.Bucket(u.bucket).Object(key)
	w := obj.NewWriter(ctx)
	w.ContentType = "image/png"
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload of %s: %w", key, err)
	}
	debug.Logf("assets: uploaded %s to gs://%s/%s\n", localPath, u.bucket, key)

	url, err := u.client.Bucket(u.bucket).SignedURL(key, &storage.SignedURLOptions{
		Method:  http.MethodGet,
		Expires: signedURLExpiry,
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign url for %s: %w", key, err)
	}
	return url, nil
}

// Delete removes the object at key from the bucket.
func (u *GCSUploader) Delete(ctx context.Context, key string) error {
	if err := u.client.Bucket(u.bucket).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying storage client.
func (u *GCSUploader) Close() error {
	return u.client.Close()
}
