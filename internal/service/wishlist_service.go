package service

import (
	"context"
	"strings"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/dafibh/wishflow/wishflow-backend/internal/util"
	"github.com/dafibh/wishflow/wishflow-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// WishlistDeletedPayload is the websocket payload for wishlist.deleted
type WishlistDeletedPayload struct {
	ID uuid.UUID `json:"id"`
}

// WishlistService handles wishlist business logic
type WishlistService struct {
	wishlistRepo   domain.WishlistRepository
	itemRepo       domain.WishItemRepository
	categories     *CategoryService
	activities     *ActivityService
	images         *ImageService
	eventPublisher websocket.EventPublisher
}

// NewWishlistService creates a new WishlistService
func NewWishlistService(
	wishlistRepo domain.WishlistRepository,
	itemRepo domain.WishItemRepository,
	categories *CategoryService,
	activities *ActivityService,
	images *ImageService,
) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		itemRepo:     itemRepo,
		categories:   categories,
		activities:   activities,
		images:       images,
	}
}

// SetEventPublisher sets the WebSocket event publisher
func (s *WishlistService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *WishlistService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// CreateWishlistInput contains input for creating a wishlist
type CreateWishlistInput struct {
	Title       string
	Description *string
	CategoryID  *int32
	IsPrivate   bool
}

// CreateWishlist creates a new wishlist. A nil category means the default one.
func (s *WishlistService) CreateWishlist(ctx context.Context, userID uuid.UUID, input CreateWishlistInput) (*domain.Wishlist, error) {
	categoryID, err := s.categories.resolveCategory(ctx, userID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	wishlist := &domain.Wishlist{
		UserID:      userID,
		CategoryID:  categoryID,
		Title:       strings.TrimSpace(input.Title),
		Description: sanitizeOptional(input.Description),
		IsPrivate:   input.IsPrivate,
	}
	if err := wishlist.Validate(); err != nil {
		return nil, err
	}

	created, err := s.wishlistRepo.Create(ctx, wishlist)
	if err != nil {
		return nil, err
	}

	s.activities.Record(ctx, userID, &created.ID, domain.ActivityWishlistCreated, created.Title)
	s.publishEvent(userID, websocket.WishlistCreated(created))
	return created, nil
}

// GetWishlists retrieves the user's wishlists with item counts, newest first
func (s *WishlistService) GetWishlists(ctx context.Context, userID uuid.UUID) ([]*domain.WishlistWithStats, error) {
	return s.wishlistRepo.ListByUser(ctx, userID)
}

// GetWishlistByID retrieves a wishlist owned by the user
func (s *WishlistService) GetWishlistByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*domain.Wishlist, error) {
	return s.wishlistRepo.GetByID(ctx, userID, id)
}

// UpdateWishlistInput contains a partial wishlist update; nil fields are left unchanged
type UpdateWishlistInput struct {
	Title       *string
	Description *string
	CategoryID  *int32
	IsPrivate   *bool
}

// UpdateWishlist applies a partial update
func (s *WishlistService) UpdateWishlist(ctx context.Context, userID uuid.UUID, id uuid.UUID, input UpdateWishlistInput) (*domain.Wishlist, error) {
	existing, err := s.wishlistRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if input.Title != nil {
		updated.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		updated.Description = sanitizeOptional(input.Description)
	}
	if input.CategoryID != nil {
		categoryID, err := s.categories.resolveCategory(ctx, userID, input.CategoryID)
		if err != nil {
			return nil, err
		}
		updated.CategoryID = categoryID
	}
	if input.IsPrivate != nil {
		updated.IsPrivate = *input.IsPrivate
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	result, err := s.wishlistRepo.Update(ctx, &updated)
	if err != nil {
		return nil, err
	}

	s.activities.Record(ctx, userID, &result.ID, domain.ActivityWishlistUpdated, result.Title)
	s.publishEvent(userID, websocket.WishlistUpdated(result))
	return result, nil
}

// DeleteWishlist deletes a wishlist with its items and notes, then removes
// the stored item images
func (s *WishlistService) DeleteWishlist(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if _, err := s.wishlistRepo.GetByID(ctx, userID, id); err != nil {
		return err
	}

	// collect image paths before the rows cascade away
	imagePaths, err := s.itemRepo.ListImagePathsByWishlist(ctx, id)
	if err != nil {
		return err
	}

	if err := s.wishlistRepo.Delete(ctx, userID, id); err != nil {
		return err
	}

	if s.images.IsEnabled() && len(imagePaths) > 0 {
		if err := s.images.DeleteAllVariants(ctx, imagePaths...); err != nil {
			log.Warn().Err(err).Str("wishlist_id", id.String()).Int("images", len(imagePaths)).Msg("Failed to delete item images")
		}
	}

	s.publishEvent(userID, websocket.WishlistDeleted(WishlistDeletedPayload{ID: id}))
	return nil
}

// sanitizeOptional strips markup from optional free text; empty results become nil
func sanitizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := util.StripTags(*s)
	if v == "" {
		return nil
	}
	return &v
}
