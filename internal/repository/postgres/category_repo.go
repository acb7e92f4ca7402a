package postgres

import (
	"context"
	"errors"

	"github.com/dafibh/wishflow/wishflow-backend/db/sqlc"
	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	db      DB
	queries *sqlc.Queries
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db DB) *CategoryRepository {
	return &CategoryRepository{
		db:      db,
		queries: sqlc.New(db),
	}
}

// List returns the default category plus the user's own, ordered by name
func (r *CategoryRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	categories, err := r.queries.ListCategories(ctx, uuidToPg(userID))
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Category, len(categories))
	for i, c := range categories {
		result[i] = sqlcCategoryToDomain(c)
	}
	return result, nil
}

// GetByID retrieves a category visible to the user
func (r *CategoryRepository) GetByID(ctx context.Context, userID uuid.UUID, id int32) (*domain.Category, error) {
	category, err := r.queries.GetCategoryByID(ctx, sqlc.GetCategoryByIDParams{
		ID:     id,
		UserID: uuidToPg(userID),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return sqlcCategoryToDomain(category), nil
}

// GetDefault retrieves the shared default category
func (r *CategoryRepository) GetDefault(ctx context.Context) (*domain.Category, error) {
	category, err := r.queries.GetDefaultCategory(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return sqlcCategoryToDomain(category), nil
}

// Create creates a user-owned category
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	created, err := r.queries.CreateCategory(ctx, sqlc.CreateCategoryParams{
		UserID: uuidPtrToPg(category.UserID),
		Name:   category.Name,
	})
	if err != nil {
		return nil, err
	}
	return sqlcCategoryToDomain(created), nil
}

// DeleteAndReassign moves every wishlist in the category to defaultID, then
// deletes the category. Both happen in one transaction.
func (r *CategoryRepository) DeleteAndReassign(ctx context.Context, userID uuid.UUID, id int32, defaultID int32) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	qtx := r.queries.WithTx(tx)

	if err := qtx.ReassignWishlistsCategory(ctx, sqlc.ReassignWishlistsCategoryParams{
		CategoryID:   id,
		CategoryID_2: defaultID,
	}); err != nil {
		return err
	}

	rows, err := qtx.DeleteUserCategory(ctx, sqlc.DeleteUserCategoryParams{
		ID:     id,
		UserID: uuidToPg(userID),
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrCategoryNotFound
	}

	return tx.Commit(ctx)
}

func sqlcCategoryToDomain(c sqlc.Category) *domain.Category {
	return &domain.Category{
		ID:        c.ID,
		UserID:    pgToUUIDPtr(c.UserID),
		Name:      c.Name,
		IsDefault: c.IsDefault,
		CreatedAt: c.CreatedAt.Time,
	}
}
