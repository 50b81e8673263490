package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/supplyline/scm-console/internal/core/domain"
	"github.com/supplyline/scm-console/internal/core/ports"
)

const maxActivityPage = 500

type ActivityService struct {
	repo   ports.ActivityRepository
	logger zerolog.Logger
}

func NewActivityService(repo ports.ActivityRepository, logger zerolog.Logger) *ActivityService {
	return &ActivityService{repo: repo, logger: logger}
}

// Record appends one entry to the trail. Missing id, timestamp, or actor are
// filled in; an unauthenticated actor is stamped as the system sentinel.
func (s *ActivityService) Record(ctx context.Context, entry domain.ActivityEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.ActorID == "" {
		entry.ActorID = domain.SystemActor
	}

	if err := s.repo.Append(ctx, &entry); err != nil {
		s.logger.Error().Err(err).Str("action", entry.Action).Msg("failed to append activity entry")
		return err
	}
	return nil
}

func (s *ActivityService) Recent(ctx context.Context, filter ports.ListActivityFilter) ([]*domain.ActivityEntry, error) {
	if filter.Limit <= 0 || filter.Limit > maxActivityPage {
		filter.Limit = maxActivityPage
	}
	return s.repo.List(ctx, filter)
}
