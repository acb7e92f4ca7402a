package service

import (
	"context"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RecentActivityLimit is how many feed entries the activity endpoint returns
const RecentActivityLimit = 10

// ActivityService records and lists the user's activity feed
type ActivityService struct {
	activityRepo domain.ActivityRepository
}

// NewActivityService creates a new ActivityService
func NewActivityService(activityRepo domain.ActivityRepository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

// Record stores an activity entry. Failures are logged, never returned:
// the feed must not break the write that triggered it.
func (s *ActivityService) Record(ctx context.Context, userID uuid.UUID, wishlistID *uuid.UUID, activityType domain.ActivityType, title string) {
	if s == nil || s.activityRepo == nil {
		return
	}
	err := s.activityRepo.Create(ctx, &domain.Activity{
		UserID:     userID,
		WishlistID: wishlistID,
		Type:       activityType,
		Title:      title,
	})
	if err != nil {
		log.Warn().Err(err).
			Str("user_id", userID.String()).
			Str("activity_type", string(activityType)).
			Msg("Failed to record activity")
	}
}

// ListRecent returns the most recent activity entries with wishlist titles
func (s *ActivityService) ListRecent(ctx context.Context, userID uuid.UUID) ([]*domain.Activity, error) {
	return s.activityRepo.ListRecent(ctx, userID, RecentActivityLimit)
}
