package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"pdf-to-speech/internal/domain"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// StorageMirror publishes audio artifacts to a Cloud Storage bucket.
type StorageMirror struct {
	client *storage.Client
	bucket *storage.BucketHandle
	name   string
	logger domain.Logger
}

func NewStorageMirror(ctx context.Context, bucket string, logger domain.Logger, opts ...option.ClientOption) (*StorageMirror, error) {
	if bucket == "" {
		return nil, fmt.Errorf("GCS bucket must be provided")
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	logger.Info("GCS artifact mirror initialized", "bucket", bucket)
	return &StorageMirror{
		client: client,
		bucket: client.Bucket(bucket),
		name:   bucket,
		logger: logger,
	}, nil
}

func (m *StorageMirror) Name() string { return "gcs" }

// Publish writes the artifact only if the object does not exist yet.
func (m *StorageMirror) Publish(ctx context.Context, artifact *domain.AudioArtifact) error {
	f, err := os.Open(artifact.Path)
	if err != nil {
		return fmt.Errorf("failed to open artifact: %w", err)
	}
	defer f.Close()

	writer := m.bucket.Object(artifact.Name).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	writer.ContentType = artifact.ContentType

	if _, err := io.Copy(writer, f); err != nil {
		_ = writer.Close()
		if alreadyExists(err) {
			m.logger.Debug("Artifact already mirrored", "artifact", artifact.Name)
			return nil
		}
		return fmt.Errorf("failed to write to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		if alreadyExists(err) {
			m.logger.Debug("Artifact already mirrored", "artifact", artifact.Name)
			return nil
		}
		return fmt.Errorf("failed to finalize GCS write: %w", err)
	}

	m.logger.Debug("Artifact published to GCS", "artifact", artifact.Name, "bucket", m.name)
	return nil
}

// Close releases the storage client.
func (m *StorageMirror) Close() error {
	return m.client.Close()
}

func alreadyExists(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusPreconditionFailed
}
