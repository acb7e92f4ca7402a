package postgres

import (
	"context"
	"errors"

	"github.com/dafibh/wishflow/wishflow-backend/db/sqlc"
	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WishlistRepository implements domain.WishlistRepository using PostgreSQL
type WishlistRepository struct {
	queries *sqlc.Queries
}

// NewWishlistRepository creates a new WishlistRepository
func NewWishlistRepository(db DB) *WishlistRepository {
	return &WishlistRepository{
		queries: sqlc.New(db),
	}
}

// Create creates a new wishlist
func (r *WishlistRepository) Create(ctx context.Context, wishlist *domain.Wishlist) (*domain.Wishlist, error) {
	created, err := r.queries.CreateWishlist(ctx, sqlc.CreateWishlistParams{
		UserID:      uuidToPg(wishlist.UserID),
		CategoryID:  wishlist.CategoryID,
		Title:       wishlist.Title,
		Description: stringPtrToPgText(wishlist.Description),
		IsPrivate:   wishlist.IsPrivate,
	})
	if err != nil {
		return nil, err
	}
	return sqlcWishlistToDomain(created), nil
}

// GetByID retrieves a wishlist owned by the user
func (r *WishlistRepository) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*domain.Wishlist, error) {
	wishlist, err := r.queries.GetWishlistByID(ctx, sqlc.GetWishlistByIDParams{
		ID:     uuidToPg(id),
		UserID: uuidToPg(userID),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWishlistNotFound
		}
		return nil, err
	}
	return sqlcWishlistToDomain(wishlist), nil
}

// GetAnyByID retrieves a wishlist without an ownership check
func (r *WishlistRepository) GetAnyByID(ctx context.Context, id uuid.UUID) (*domain.Wishlist, error) {
	wishlist, err := r.queries.GetWishlistAnyByID(ctx, uuidToPg(id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWishlistNotFound
		}
		return nil, err
	}
	return sqlcWishlistToDomain(wishlist), nil
}

// ListByUser retrieves the user's wishlists with item counts, newest first
func (r *WishlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WishlistWithStats, error) {
	rows, err := r.queries.ListWishlistsWithStats(ctx, uuidToPg(userID))
	if err != nil {
		return nil, err
	}
	result := make([]*domain.WishlistWithStats, len(rows))
	for i, row := range rows {
		result[i] = &domain.WishlistWithStats{
			Wishlist: *sqlcWishlistToDomain(sqlc.Wishlist{
				ID:          row.ID,
				UserID:      row.UserID,
				CategoryID:  row.CategoryID,
				Title:       row.Title,
				Description: row.Description,
				IsPrivate:   row.IsPrivate,
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
			}),
			ItemCount: int(row.ItemCount),
		}
	}
	return result, nil
}

// ListPublic retrieves every public wishlist with owner name and item count
func (r *WishlistRepository) ListPublic(ctx context.Context) ([]*domain.PublicWishlist, error) {
	rows, err := r.queries.ListPublicWishlists(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.PublicWishlist, len(rows))
	for i, row := range rows {
		result[i] = &domain.PublicWishlist{
			Wishlist: *sqlcWishlistToDomain(sqlc.Wishlist{
				ID:          row.ID,
				UserID:      row.UserID,
				CategoryID:  row.CategoryID,
				Title:       row.Title,
				Description: row.Description,
				IsPrivate:   row.IsPrivate,
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
			}),
			OwnerName: row.OwnerName,
			ItemCount: int(row.ItemCount),
		}
	}
	return result, nil
}

// Update updates a wishlist owned by wishlist.UserID
func (r *WishlistRepository) Update(ctx context.Context, wishlist *domain.Wishlist) (*domain.Wishlist, error) {
	updated, err := r.queries.UpdateWishlist(ctx, sqlc.UpdateWishlistParams{
		ID:          uuidToPg(wishlist.ID),
		UserID:      uuidToPg(wishlist.UserID),
		CategoryID:  wishlist.CategoryID,
		Title:       wishlist.Title,
		Description: stringPtrToPgText(wishlist.Description),
		IsPrivate:   wishlist.IsPrivate,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWishlistNotFound
		}
		return nil, err
	}
	return sqlcWishlistToDomain(updated), nil
}

// Delete removes a wishlist. Items and notes go with it via ON DELETE CASCADE.
func (r *WishlistRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	rows, err := r.queries.DeleteWishlist(ctx, sqlc.DeleteWishlistParams{
		ID:     uuidToPg(id),
		UserID: uuidToPg(userID),
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrWishlistNotFound
	}
	return nil
}

func sqlcWishlistToDomain(w sqlc.Wishlist) *domain.Wishlist {
	return &domain.Wishlist{
		ID:          pgToUUID(w.ID),
		UserID:      pgToUUID(w.UserID),
		CategoryID:  w.CategoryID,
		Title:       w.Title,
		Description: pgTextToStringPtr(w.Description),
		IsPrivate:   w.IsPrivate,
		CreatedAt:   w.CreatedAt.Time,
		UpdatedAt:   w.UpdatedAt.Time,
	}
}
