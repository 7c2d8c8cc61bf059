package service

import (
	"time"

	"github.com/rs/zerolog/log"

	"halfmoon/widget-service/internal/db/refreshlog"
)

// refreshRecorder writes refresh attempts to the refresh log in the
// background. A nil repository disables it.
type refreshRecorder struct {
	repo     refreshlog.Repository
	endpoint string
}

func (r refreshRecorder) record(cacheKey string, started time.Time, refreshErr error) {
	if r.repo == nil {
		return
	}

	duration := time.Since(started)
	go func() {
		if err := r.repo.LogRefresh(r.endpoint, cacheKey, duration, refreshErr); err != nil {
			log.Error().Err(err).Str("endpoint", r.endpoint).Msg("failed to log cache refresh")
		}
	}()
}
