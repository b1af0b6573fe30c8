package repository

import (
	"context"

	"pdf-to-speech/internal/domain"
)

// MirroredArtifactStore saves artifacts locally and then publishes a copy to
// remote object storage. The local copy stays authoritative: a failed publish
// is logged and the artifact is still returned.
type MirroredArtifactStore struct {
	local  domain.ArtifactStore
	mirror domain.ArtifactMirror
	logger domain.Logger
}

func NewMirroredArtifactStore(local domain.ArtifactStore, mirror domain.ArtifactMirror, logger domain.Logger) *MirroredArtifactStore {
	return &MirroredArtifactStore{
		local:  local,
		mirror: mirror,
		logger: logger,
	}
}

func (s *MirroredArtifactStore) Save(ctx context.Context, audio *domain.Audio) (*domain.AudioArtifact, error) {
	artifact, err := s.local.Save(ctx, audio)
	if err != nil {
		return nil, err
	}

	if err := s.mirror.Publish(ctx, artifact); err != nil {
		s.logger.Warn("Artifact mirror publish failed", "mirror", s.mirror.Name(), "artifact", artifact.Name, "error", err)
		return artifact, nil
	}

	s.logger.Info("Artifact mirrored", "mirror", s.mirror.Name(), "artifact", artifact.Name)
	return artifact, nil
}

func (s *MirroredArtifactStore) Resolve(name string) (*domain.AudioArtifact, error) {
	return s.local.Resolve(name)
}
