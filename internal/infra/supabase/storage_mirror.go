package supabase

import (
	"context"
	"fmt"
	"os"

	"pdf-to-speech/internal/domain"

	storage_go "github.com/supabase-community/storage-go"
	"github.com/supabase-community/supabase-go"
)

// StorageMirror publishes audio artifacts to a Supabase Storage bucket.
type StorageMirror struct {
	client *supabase.Client
	bucket string
	logger domain.Logger
}

// NewStorageMirror creates a Supabase client for the given project.
func NewStorageMirror(url, key, bucket string, logger domain.Logger) (*StorageMirror, error) {
	if url == "" || key == "" {
		return nil, fmt.Errorf("supabase URL and key must be provided")
	}
	if bucket == "" {
		return nil, fmt.Errorf("supabase bucket must be provided")
	}

	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}

	logger.Info("Supabase storage mirror initialized", "url", url, "bucket", bucket)
	return &StorageMirror{client: client, bucket: bucket, logger: logger}, nil
}

func (m *StorageMirror) Name() string { return "supabase" }

// Publish uploads the artifact under its own name. Re-publishing overwrites.
func (m *StorageMirror) Publish(ctx context.Context, artifact *domain.AudioArtifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(artifact.Path)
	if err != nil {
		return fmt.Errorf("failed to open artifact: %w", err)
	}
	defer f.Close()

	contentType := artifact.ContentType
	upsert := true
	if _, err := m.client.Storage.UploadFile(m.bucket, artifact.Name, f, storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	}); err != nil {
		return fmt.Errorf("supabase upload failed: %w", err)
	}

	m.logger.Debug("Artifact published to Supabase", "artifact", artifact.Name, "bucket", m.bucket)
	return nil
}
