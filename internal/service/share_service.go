package service

import (
	"context"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/google/uuid"
)

// ShareService serves public wishlist views: share links and the discover feed
type ShareService struct {
	wishlistRepo domain.WishlistRepository
	itemRepo     domain.WishItemRepository
	noteRepo     domain.NoteRepository
	userRepo     domain.UserRepository
	items        *WishItemService
}

// NewShareService creates a new ShareService
func NewShareService(
	wishlistRepo domain.WishlistRepository,
	itemRepo domain.WishItemRepository,
	noteRepo domain.NoteRepository,
	userRepo domain.UserRepository,
	items *WishItemService,
) *ShareService {
	return &ShareService{
		wishlistRepo: wishlistRepo,
		itemRepo:     itemRepo,
		noteRepo:     noteRepo,
		userRepo:     userRepo,
		items:        items,
	}
}

// GetShared returns a public wishlist with its owner and items. viewerID is
// the caller's user when a session is present.
func (s *ShareService) GetShared(ctx context.Context, wishlistID uuid.UUID, viewerID *uuid.UUID) (*domain.SharedWishlist, error) {
	wishlist, err := s.wishlistRepo.GetAnyByID(ctx, wishlistID)
	if err != nil {
		return nil, err
	}
	if wishlist.IsPrivate {
		return nil, domain.ErrWishlistPrivate
	}

	owner, err := s.userRepo.GetByID(ctx, wishlist.UserID)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.ListByWishlist(ctx, wishlistID)
	if err != nil {
		return nil, err
	}
	notes, err := s.noteRepo.ListByWishlist(ctx, wishlistID)
	if err != nil {
		return nil, err
	}

	return &domain.SharedWishlist{
		Wishlist: *wishlist,
		Owner:    domain.Owner{ID: owner.ID, Name: owner.Name},
		IsOwner:  viewerID != nil && *viewerID == owner.ID,
		Items:    s.items.buildDetails(ctx, items, notes, "", domain.SortDateDesc),
	}, nil
}

// Discover lists all public wishlists, newest first
func (s *ShareService) Discover(ctx context.Context) ([]*domain.PublicWishlist, error) {
	return s.wishlistRepo.ListPublic(ctx)
}
