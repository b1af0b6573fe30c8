package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"pdf-to-speech/internal/domain"
)

var artifactNamePattern = regexp.MustCompile(`^[0-9a-f]{32}\.[a-z0-9]{2,5}$`)

var audioContentTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",
	".aac":  "audio/aac",
	".flac": "audio/flac",
}

// ContentTypeForExtension maps an audio file extension to its MIME type.
func ContentTypeForExtension(ext string) (string, bool) {
	ct, ok := audioContentTypes[strings.ToLower(ext)]
	return ct, ok
}

// FileArtifactStore saves audio bytes to a local media directory (default media/).
type FileArtifactStore struct {
	dir    string
	logger domain.Logger
}

func NewFileArtifactStore(dir string, logger domain.Logger) (*FileArtifactStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &FileArtifactStore{dir: dir, logger: logger}, nil
}

// Dir returns the media directory.
func (s *FileArtifactStore) Dir() string {
	return s.dir
}

// Save writes audio to {dir}/{id}{ext}. The file only appears under its final
// name once fully written.
func (s *FileArtifactStore) Save(ctx context.Context, audio *domain.Audio) (*domain.AudioArtifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if audio == nil || len(audio.Data) == 0 {
		return nil, fmt.Errorf("no audio data to save")
	}

	ext := strings.ToLower(audio.Extension)
	if ext == "" {
		ext = ".mp3"
	}
	contentType, ok := ContentTypeForExtension(ext)
	if !ok {
		return nil, fmt.Errorf("unsupported audio extension %q", ext)
	}
	if audio.ContentType != "" {
		contentType = audio.ContentType
	}

	name := newID() + ext
	path := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(s.dir, ".partial-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create artifact file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(audio.Data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to finalize artifact: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to finalize artifact: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to finalize artifact: %w", err)
	}

	s.logger.Debug("Artifact saved", "name", name, "bytes", len(audio.Data))
	return &domain.AudioArtifact{
		Name:        name,
		Path:        path,
		ContentType: contentType,
		Size:        int64(len(audio.Data)),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Resolve looks up an artifact by exact name. Names this store could not have
// produced resolve to domain.ErrNotFound.
func (s *FileArtifactStore) Resolve(name string) (*domain.AudioArtifact, error) {
	if !artifactNamePattern.MatchString(name) {
		return nil, domain.ErrNotFound
	}
	contentType, ok := ContentTypeForExtension(filepath.Ext(name))
	if !ok {
		return nil, domain.ErrNotFound
	}

	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, domain.ErrNotFound
	}

	return &domain.AudioArtifact{
		Name:        name,
		Path:        path,
		ContentType: contentType,
		Size:        info.Size(),
		CreatedAt:   info.ModTime().UTC(),
	}, nil
}

// Sweep removes artifacts and abandoned partial writes last modified before cutoff.
func (s *FileArtifactStore) Sweep(cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to list media directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !(artifactNamePattern.MatchString(name) || strings.HasPrefix(name, ".partial-")) {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("Failed to remove expired artifact", "artifact", name, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}
