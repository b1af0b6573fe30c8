package service

import (
	"context"
	"time"

	"pdf-to-speech/internal/domain"
)

// ArtifactSweeper removes artifacts older than a cutoff.
type ArtifactSweeper interface {
	Sweep(cutoff time.Time) (int, error)
}

// ArtifactJanitor periodically expires generated audio. It runs outside the
// conversion pipeline, which never deletes the artifacts it creates.
type ArtifactJanitor struct {
	sweeper  ArtifactSweeper
	ttl      time.Duration
	interval time.Duration
	logger   domain.Logger
	now      func() time.Time
}

func NewArtifactJanitor(sweeper ArtifactSweeper, ttl, interval time.Duration, logger domain.Logger) *ArtifactJanitor {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &ArtifactJanitor{
		sweeper:  sweeper,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Run sweeps once immediately and then every interval until ctx is done.
func (j *ArtifactJanitor) Run(ctx context.Context) error {
	j.logger.Info("Artifact janitor started", "ttl", j.ttl.String(), "interval", j.interval.String())

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		j.SweepOnce()
		select {
		case <-ctx.Done():
			j.logger.Info("Artifact janitor stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// SweepOnce removes every artifact older than the TTL.
func (j *ArtifactJanitor) SweepOnce() int {
	removed, err := j.sweeper.Sweep(j.now().Add(-j.ttl))
	if err != nil {
		j.logger.Error("Artifact sweep failed", err)
		return 0
	}
	if removed > 0 {
		j.logger.Info("Expired artifacts removed", "count", removed)
	}
	return removed
}
