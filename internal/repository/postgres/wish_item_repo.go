package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/dafibh/wishflow/wishflow-backend/db/sqlc"
	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WishItemRepository implements domain.WishItemRepository using PostgreSQL
type WishItemRepository struct {
	queries *sqlc.Queries
}

// NewWishItemRepository creates a new WishItemRepository
func NewWishItemRepository(db DB) *WishItemRepository {
	return &WishItemRepository{
		queries: sqlc.New(db),
	}
}

// Create creates a new wish item
func (r *WishItemRepository) Create(ctx context.Context, item *domain.WishItem) (*domain.WishItem, error) {
	created, err := r.queries.CreateWishItem(ctx, sqlc.CreateWishItemParams{
		WishlistID:  uuidToPg(item.WishlistID),
		Title:       item.Title,
		Description: stringPtrToPgText(item.Description),
		Price:       decimalPtrToPgNumeric(item.Price),
		Currency:    item.Currency,
		Url:         stringPtrToPgText(item.URL),
	})
	if err != nil {
		return nil, err
	}
	return sqlcWishItemToDomain(created), nil
}

// GetByID retrieves an item whose wishlist is owned by the user
func (r *WishItemRepository) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*domain.WishItem, error) {
	item, err := r.queries.GetWishItemByID(ctx, sqlc.GetWishItemByIDParams{
		ID:     uuidToPg(id),
		UserID: uuidToPg(userID),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWishItemNotFound
		}
		return nil, err
	}
	return sqlcWishItemToDomain(item), nil
}

// ListByWishlist retrieves all items in a wishlist, newest first
func (r *WishItemRepository) ListByWishlist(ctx context.Context, wishlistID uuid.UUID) ([]*domain.WishItem, error) {
	items, err := r.queries.ListWishItemsByWishlist(ctx, uuidToPg(wishlistID))
	if err != nil {
		return nil, err
	}
	return sqlcWishItemsToDomain(items), nil
}

// ListByUser retrieves every item across the user's wishlists
func (r *WishItemRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WishItem, error) {
	items, err := r.queries.ListWishItemsByUser(ctx, uuidToPg(userID))
	if err != nil {
		return nil, err
	}
	return sqlcWishItemsToDomain(items), nil
}

// ListRecentlyUpdated retrieves the user's most recently touched items
func (r *WishItemRepository) ListRecentlyUpdated(ctx context.Context, userID uuid.UUID, limit int32) ([]*domain.RecentItem, error) {
	rows, err := r.queries.ListRecentlyUpdatedItems(ctx, sqlc.ListRecentlyUpdatedItemsParams{
		UserID: uuidToPg(userID),
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	result := make([]*domain.RecentItem, len(rows))
	for i, row := range rows {
		item := sqlcWishItemToDomain(sqlc.WishItem{
			ID:          row.ID,
			WishlistID:  row.WishlistID,
			Title:       row.Title,
			Description: row.Description,
			Price:       row.Price,
			Currency:    row.Currency,
			Url:         row.Url,
			ImagePath:   row.ImagePath,
			Completed:   row.Completed,
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		})
		result[i] = &domain.RecentItem{
			WishItem:      *item,
			WishlistTitle: row.WishlistTitle,
			NoteCount:     int(row.NoteCount),
		}
	}
	return result, nil
}

// ListImagePathsByWishlist returns the storage paths of every item image in a wishlist
func (r *WishItemRepository) ListImagePathsByWishlist(ctx context.Context, wishlistID uuid.UUID) ([]string, error) {
	paths, err := r.queries.ListItemImagePathsByWishlist(ctx, uuidToPg(wishlistID))
	if err != nil {
		return nil, err
	}
	result := make([]string, 0, len(paths))
	for _, p := range paths {
		if p.Valid && p.String != "" {
			result = append(result, p.String)
		}
	}
	return result, nil
}

// Update updates the editable fields of an item
func (r *WishItemRepository) Update(ctx context.Context, item *domain.WishItem) (*domain.WishItem, error) {
	updated, err := r.queries.UpdateWishItem(ctx, sqlc.UpdateWishItemParams{
		ID:          uuidToPg(item.ID),
		Title:       item.Title,
		Description: stringPtrToPgText(item.Description),
		Price:       decimalPtrToPgNumeric(item.Price),
		Currency:    item.Currency,
		Url:         stringPtrToPgText(item.URL),
		Completed:   item.Completed,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWishItemNotFound
		}
		return nil, err
	}
	return sqlcWishItemToDomain(updated), nil
}

// SetImagePath sets or clears (nil) the item's image
func (r *WishItemRepository) SetImagePath(ctx context.Context, id uuid.UUID, imagePath *string) (*domain.WishItem, error) {
	updated, err := r.queries.SetWishItemImage(ctx, sqlc.SetWishItemImageParams{
		ID:        uuidToPg(id),
		ImagePath: stringPtrToPgText(imagePath),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWishItemNotFound
		}
		return nil, err
	}
	return sqlcWishItemToDomain(updated), nil
}

// Move reassigns the item to another wishlist
func (r *WishItemRepository) Move(ctx context.Context, id uuid.UUID, targetWishlistID uuid.UUID) (*domain.WishItem, error) {
	moved, err := r.queries.MoveWishItem(ctx, sqlc.MoveWishItemParams{
		ID:         uuidToPg(id),
		WishlistID: uuidToPg(targetWishlistID),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWishItemNotFound
		}
		return nil, err
	}
	return sqlcWishItemToDomain(moved), nil
}

// Delete removes an item whose wishlist is owned by the user
func (r *WishItemRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	rows, err := r.queries.DeleteWishItem(ctx, sqlc.DeleteWishItemParams{
		ID:     uuidToPg(id),
		UserID: uuidToPg(userID),
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrWishItemNotFound
	}
	return nil
}

func sqlcWishItemsToDomain(items []sqlc.WishItem) []*domain.WishItem {
	result := make([]*domain.WishItem, len(items))
	for i, item := range items {
		result[i] = sqlcWishItemToDomain(item)
	}
	return result
}

func sqlcWishItemToDomain(i sqlc.WishItem) *domain.WishItem {
	return &domain.WishItem{
		ID:          pgToUUID(i.ID),
		WishlistID:  pgToUUID(i.WishlistID),
		Title:       i.Title,
		Description: pgTextToStringPtr(i.Description),
		Price:       pgNumericToDecimalPtr(i.Price),
		Currency:    strings.TrimSpace(i.Currency),
		URL:         pgTextToStringPtr(i.Url),
		ImagePath:   pgTextToStringPtr(i.ImagePath),
		Completed:   i.Completed,
		CreatedAt:   i.CreatedAt.Time,
		UpdatedAt:   i.UpdatedAt.Time,
	}
}
