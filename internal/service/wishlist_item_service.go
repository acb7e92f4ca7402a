package service

import (
	"context"
	"sort"
	"strings"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/dafibh/wishflow/wishflow-backend/internal/util"
	"github.com/dafibh/wishflow/wishflow-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ItemDeletedPayload is the websocket payload for item.deleted
type ItemDeletedPayload struct {
	ID         uuid.UUID `json:"id"`
	WishlistID uuid.UUID `json:"wishlistId"`
}

// WishItemService handles wish item business logic
type WishItemService struct {
	itemRepo       domain.WishItemRepository
	wishlistRepo   domain.WishlistRepository
	noteRepo       domain.NoteRepository
	userRepo       domain.UserRepository
	currencies     *CurrencyService
	activities     *ActivityService
	images         *ImageService
	eventPublisher websocket.EventPublisher
}

// NewWishItemService creates a new WishItemService
func NewWishItemService(
	itemRepo domain.WishItemRepository,
	wishlistRepo domain.WishlistRepository,
	noteRepo domain.NoteRepository,
	userRepo domain.UserRepository,
	currencies *CurrencyService,
	activities *ActivityService,
	images *ImageService,
) *WishItemService {
	return &WishItemService{
		itemRepo:     itemRepo,
		wishlistRepo: wishlistRepo,
		noteRepo:     noteRepo,
		userRepo:     userRepo,
		currencies:   currencies,
		activities:   activities,
		images:       images,
	}
}

// SetEventPublisher sets the WebSocket event publisher
func (s *WishItemService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *WishItemService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// ListItemsInput selects ordering and the display currency of an item list
type ListItemsInput struct {
	Sort     string
	Currency string
}

// ListItems returns a wishlist's items with notes. Prices are converted into
// the requested currency, or the owner's preferred one.
func (s *WishItemService) ListItems(ctx context.Context, userID uuid.UUID, wishlistID uuid.UUID, input ListItemsInput) ([]*domain.ItemDetails, error) {
	if _, err := s.wishlistRepo.GetByID(ctx, userID, wishlistID); err != nil {
		return nil, err
	}

	order, err := domain.ParseItemSort(input.Sort)
	if err != nil {
		return nil, err
	}

	currency, err := s.displayCurrency(ctx, userID, input.Currency)
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

	return s.buildDetails(ctx, items, notes, currency, order), nil
}

// displayCurrency returns the requested currency, falling back to the user's
// preferred currency
func (s *WishItemService) displayCurrency(ctx context.Context, userID uuid.UUID, requested string) (string, error) {
	currency := strings.ToUpper(strings.TrimSpace(requested))
	if currency == "" {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return "", err
		}
		currency = user.PreferredCurrency
	}
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	if !domain.IsSupportedCurrency(currency) {
		return "", domain.ErrUnsupportedCurrency
	}
	return currency, nil
}

// buildDetails attaches notes, image links and converted prices to items and
// orders them. An empty currency skips conversion.
func (s *WishItemService) buildDetails(ctx context.Context, items []*domain.WishItem, notes []*domain.Note, currency string, order domain.ItemSort) []*domain.ItemDetails {
	notesByItem := make(map[uuid.UUID][]*domain.NoteView)
	for _, n := range notes {
		notesByItem[n.ItemID] = append(notesByItem[n.ItemID], NoteView(n))
	}

	details := make([]*domain.ItemDetails, 0, len(items))
	sortPrice := make(map[uuid.UUID]decimal.Decimal, len(items))

	// conversions run serially through the shared rate cache
	for _, item := range items {
		d := &domain.ItemDetails{WishItem: *item, Notes: notesByItem[item.ID]}
		if d.Notes == nil {
			d.Notes = []*domain.NoteView{}
		}
		d.Image = s.imageURLs(ctx, item)

		if item.Price != nil {
			sortPrice[item.ID] = *item.Price
			if currency != "" {
				converted, err := s.currencies.Convert(ctx, *item.Price, item.Currency, currency)
				if err != nil {
					log.Warn().Err(err).
						Str("item_id", item.ID.String()).
						Str("from", item.Currency).
						Str("to", currency).
						Msg("Price conversion failed")
					// unconvertible prices sort after the priced ones
					delete(sortPrice, item.ID)
				} else {
					d.ConvertedPrice = &domain.MoneyValue{
						Amount:    converted.StringFixed(2),
						Formatted: util.FormatMoney(converted, currency),
						Currency:  currency,
					}
					sortPrice[item.ID] = converted
				}
			}
		}
		details = append(details, d)
	}

	sortItems(details, sortPrice, order)
	return details
}

// sortItems orders details in place. Items without a comparable price sort last.
func sortItems(details []*domain.ItemDetails, prices map[uuid.UUID]decimal.Decimal, order domain.ItemSort) {
	sort.SliceStable(details, func(i, j int) bool {
		a, b := details[i], details[j]
		switch order {
		case domain.SortDateAsc:
			return a.CreatedAt.Before(b.CreatedAt)
		case domain.SortPriceAsc, domain.SortPriceDesc:
			pa, okA := prices[a.ID]
			pb, okB := prices[b.ID]
			if okA != okB {
				return okA
			}
			if !okA {
				return false
			}
			if order == domain.SortPriceAsc {
				return pa.LessThan(pb)
			}
			return pa.GreaterThan(pb)
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})
}

func (s *WishItemService) imageURLs(ctx context.Context, item *domain.WishItem) *domain.ImageURLs {
	if item.ImagePath == nil || !s.images.IsEnabled() {
		return nil
	}
	urls, err := s.images.URLs(ctx, *item.ImagePath)
	if err != nil {
		log.Warn().Err(err).Str("item_id", item.ID.String()).Msg("Failed to presign image URLs")
		return nil
	}
	return urls
}

// itemDetails loads notes and image links for a single item
func (s *WishItemService) itemDetails(ctx context.Context, item *domain.WishItem) (*domain.ItemDetails, error) {
	notes, err := s.noteRepo.ListByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	d := &domain.ItemDetails{WishItem: *item, Notes: make([]*domain.NoteView, 0, len(notes))}
	for _, n := range notes {
		d.Notes = append(d.Notes, NoteView(n))
	}
	d.Image = s.imageURLs(ctx, item)
	return d, nil
}

// CreateItemInput contains input for creating a wish item
type CreateItemInput struct {
	Title       string
	Description *string
	Price       *decimal.Decimal
	Currency    string
	URL         *string
}

// CreateItem adds an item to one of the user's wishlists. The currency
// defaults to the user's preferred currency.
func (s *WishItemService) CreateItem(ctx context.Context, userID uuid.UUID, wishlistID uuid.UUID, input CreateItemInput) (*domain.ItemDetails, error) {
	wishlist, err := s.wishlistRepo.GetByID(ctx, userID, wishlistID)
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		if currency, err = s.displayCurrency(ctx, userID, ""); err != nil {
			return nil, err
		}
	}

	item := &domain.WishItem{
		WishlistID:  wishlistID,
		Title:       strings.TrimSpace(input.Title),
		Description: sanitizeOptional(input.Description),
		Price:       roundPrice(input.Price),
		Currency:    currency,
		URL:         trimmedOrNil(input.URL),
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	created, err := s.itemRepo.Create(ctx, item)
	if err != nil {
		return nil, err
	}

	s.activities.Record(ctx, userID, &wishlist.ID, domain.ActivityItemAdded, created.Title)
	s.publishEvent(userID, websocket.ItemCreated(created))
	return &domain.ItemDetails{WishItem: *created, Notes: []*domain.NoteView{}}, nil
}

// UpdateItemInput is a partial item update; nil fields are left unchanged.
// An empty Description or URL clears it, ClearPrice removes the price.
type UpdateItemInput struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	ClearPrice  bool
	Currency    *string
	URL         *string
	Completed   *bool
}

// UpdateItem applies a partial update to an item the user owns
func (s *WishItemService) UpdateItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, input UpdateItemInput) (*domain.ItemDetails, error) {
	existing, err := s.itemRepo.GetByID(ctx, userID, itemID)
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
	if input.ClearPrice {
		updated.Price = nil
	} else if input.Price != nil {
		updated.Price = roundPrice(input.Price)
	}
	if input.Currency != nil {
		updated.Currency = strings.ToUpper(strings.TrimSpace(*input.Currency))
	}
	if input.URL != nil {
		updated.URL = trimmedOrNil(input.URL)
	}
	if input.Completed != nil {
		updated.Completed = *input.Completed
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	result, err := s.itemRepo.Update(ctx, &updated)
	if err != nil {
		return nil, err
	}

	activity := domain.ActivityItemUpdated
	if result.Completed && !existing.Completed {
		activity = domain.ActivityItemCompleted
	}
	s.activities.Record(ctx, userID, &result.WishlistID, activity, result.Title)
	s.publishEvent(userID, websocket.ItemUpdated(result))

	return s.itemDetails(ctx, result)
}

// MoveItem moves an item to another of the user's wishlists
func (s *WishItemService) MoveItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, targetWishlistID uuid.UUID) (*domain.ItemDetails, error) {
	item, err := s.itemRepo.GetByID(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if _, err := s.wishlistRepo.GetByID(ctx, userID, targetWishlistID); err != nil {
		return nil, err
	}

	// Don't move if already in target wishlist
	if item.WishlistID != targetWishlistID {
		item, err = s.itemRepo.Move(ctx, itemID, targetWishlistID)
		if err != nil {
			return nil, err
		}
		s.publishEvent(userID, websocket.ItemUpdated(item))
	}

	return s.itemDetails(ctx, item)
}

// DeleteItem deletes an item and its stored image
func (s *WishItemService) DeleteItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) error {
	item, err := s.itemRepo.GetByID(ctx, userID, itemID)
	if err != nil {
		return err
	}

	if err := s.itemRepo.Delete(ctx, userID, itemID); err != nil {
		return err
	}

	if item.ImagePath != nil && s.images.IsEnabled() {
		if err := s.images.DeleteAllVariants(ctx, *item.ImagePath); err != nil {
			log.Warn().Err(err).Str("item_id", itemID.String()).Msg("Failed to delete item image")
		}
	}

	s.publishEvent(userID, websocket.ItemDeleted(ItemDeletedPayload{ID: item.ID, WishlistID: item.WishlistID}))
	return nil
}

// SetImage replaces the item image with an uploaded one
func (s *WishItemService) SetImage(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, data []byte, filename string) (*domain.ItemDetails, error) {
	if !s.images.IsEnabled() {
		return nil, ErrImageStorageNotConfigured
	}

	item, err := s.itemRepo.GetByID(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	oldPath := item.ImagePath

	basePath, err := s.images.ProcessAndUpload(ctx, userID, itemID, data, filename)
	if err != nil {
		return nil, err
	}

	updated, err := s.itemRepo.SetImagePath(ctx, itemID, &basePath)
	if err != nil {
		if delErr := s.images.DeleteAllVariants(ctx, basePath); delErr != nil {
			log.Warn().Err(delErr).Str("item_id", itemID.String()).Msg("Failed to delete orphaned item image")
		}
		return nil, err
	}

	if oldPath != nil {
		if err := s.images.DeleteAllVariants(ctx, *oldPath); err != nil {
			log.Warn().Err(err).Str("item_id", itemID.String()).Msg("Failed to delete replaced item image")
		}
	}

	s.publishEvent(userID, websocket.ItemUpdated(updated))
	return s.itemDetails(ctx, updated)
}

// RemoveImage clears the item image and deletes its stored variants
func (s *WishItemService) RemoveImage(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) (*domain.ItemDetails, error) {
	item, err := s.itemRepo.GetByID(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if item.ImagePath == nil {
		return s.itemDetails(ctx, item)
	}
	oldPath := *item.ImagePath

	updated, err := s.itemRepo.SetImagePath(ctx, itemID, nil)
	if err != nil {
		return nil, err
	}

	if s.images.IsEnabled() {
		if err := s.images.DeleteAllVariants(ctx, oldPath); err != nil {
			log.Warn().Err(err).Str("item_id", itemID.String()).Msg("Failed to delete item image")
		}
	}

	s.publishEvent(userID, websocket.ItemUpdated(updated))
	return s.itemDetails(ctx, updated)
}

func roundPrice(p *decimal.Decimal) *decimal.Decimal {
	if p == nil {
		return nil
	}
	v := p.Round(2)
	return &v
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
