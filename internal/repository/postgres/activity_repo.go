package postgres

import (
	"context"

	"github.com/dafibh/wishflow/wishflow-backend/db/sqlc"
	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/google/uuid"
)

// ActivityRepository implements domain.ActivityRepository using PostgreSQL
type ActivityRepository struct {
	queries *sqlc.Queries
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db DB) *ActivityRepository {
	return &ActivityRepository{
		queries: sqlc.New(db),
	}
}

// Create appends an entry to the user's activity feed
func (r *ActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	return r.queries.CreateActivity(ctx, sqlc.CreateActivityParams{
		UserID:     uuidToPg(activity.UserID),
		WishlistID: uuidPtrToPg(activity.WishlistID),
		Type:       string(activity.Type),
		Title:      activity.Title,
	})
}

// ListRecent retrieves the newest activity entries for a user
func (r *ActivityRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int32) ([]*domain.Activity, error) {
	rows, err := r.queries.ListRecentActivities(ctx, sqlc.ListRecentActivitiesParams{
		UserID: uuidToPg(userID),
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Activity, len(rows))
	for i, row := range rows {
		result[i] = &domain.Activity{
			ID:            pgToUUID(row.ID),
			UserID:        pgToUUID(row.UserID),
			WishlistID:    pgToUUIDPtr(row.WishlistID),
			WishlistTitle: pgTextToStringPtr(row.WishlistTitle),
			Type:          domain.ActivityType(row.Type),
			Title:         row.Title,
			CreatedAt:     row.CreatedAt.Time,
		}
	}
	return result, nil
}
