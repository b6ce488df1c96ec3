// internal/adapters/out/gcs/media_store.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
)

// MediaStoreGCS stores product media (featured images) in a Google Cloud
// Storage bucket and returns the public object URL. It satisfies
// usecase.MediaStore.
type MediaStoreGCS struct {
	Client *storage.Client
	Bucket string
}

func NewMediaStoreGCS(client *storage.Client, bucket string) *MediaStoreGCS {
	return &MediaStoreGCS{
		Client: client,
		Bucket: strings.TrimSpace(bucket),
	}
}

// Save writes data to objectPath and returns the public URL. Existing
// objects at the same path are overwritten (featured image replacement).
func (s *MediaStoreGCS) Save(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	if s.Client == nil {
		return "", errors.New("MediaStoreGCS: nil storage client")
	}
	bucket := strings.TrimSpace(s.Bucket)
	if bucket == "" {
		return "", errors.New("MediaStoreGCS: bucket is empty")
	}

	objectPath = strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	if objectPath == "" {
		return "", errors.New("MediaStoreGCS: object path is empty")
	}
	if len(data) == 0 {
		return "", errors.New("MediaStoreGCS: empty payload")
	}

	w := s.Client.Bucket(bucket).Object(objectPath).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs write %s: %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs close %s: %w", objectPath, err)
	}

	return publicURL(bucket, objectPath), nil
}

// Delete removes the object at objectPath. Missing objects are a no-op.
func (s *MediaStoreGCS) Delete(ctx context.Context, objectPath string) error {
	if s.Client == nil {
		return errors.New("MediaStoreGCS: nil storage client")
	}
	bucket := strings.TrimSpace(s.Bucket)
	if bucket == "" {
		return errors.New("MediaStoreGCS: bucket is empty")
	}

	objectPath = strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	err := s.Client.Bucket(bucket).Object(objectPath).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}

func publicURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}
