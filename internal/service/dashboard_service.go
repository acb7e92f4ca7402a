package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/dafibh/wishflow/wishflow-backend/internal/util"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	recentItemsLimit  = 5
	popularItemsLimit = 5
)

// DashboardService aggregates wishlist statistics
type DashboardService struct {
	wishlistRepo domain.WishlistRepository
	itemRepo     domain.WishItemRepository
	userRepo     domain.UserRepository
	currencies   *CurrencyService
	activities   *ActivityService
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	wishlistRepo domain.WishlistRepository,
	itemRepo domain.WishItemRepository,
	userRepo domain.UserRepository,
	currencies *CurrencyService,
	activities *ActivityService,
) *DashboardService {
	return &DashboardService{
		wishlistRepo: wishlistRepo,
		itemRepo:     itemRepo,
		userRepo:     userRepo,
		currencies:   currencies,
		activities:   activities,
	}
}

// GetSummary returns dashboard totals in the requested currency, else the
// user's preferred currency, else USD
func (s *DashboardService) GetSummary(ctx context.Context, userID uuid.UUID, currency string) (*domain.DashboardSummary, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = user.PreferredCurrency
	}
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	if !domain.IsSupportedCurrency(currency) {
		return nil, domain.ErrUnsupportedCurrency
	}

	wishlists, err := s.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.itemRepo.ListRecentlyUpdated(ctx, userID, recentItemsLimit)
	if err != nil {
		return nil, err
	}

	total, completed := 0, 0
	totalValue := decimal.Zero
	for _, item := range items {
		total++
		if item.Completed {
			completed++
		}
		if item.Price == nil {
			continue
		}
		converted, err := s.currencies.Convert(ctx, *item.Price, item.Currency, currency)
		if err != nil {
			log.Warn().Err(err).
				Str("item_id", item.ID.String()).
				Str("currency", currency).
				Msg("Skipping item in dashboard total")
			continue
		}
		totalValue = totalValue.Add(converted)
	}

	return &domain.DashboardSummary{
		TotalWishlists: len(wishlists),
		TotalItems:     total,
		CompletedItems: completed,
		CompletionRate: completionRate(completed, total),
		TotalValue: domain.MoneyValue{
			Amount:    totalValue.StringFixed(2),
			Formatted: util.FormatMoney(totalValue, currency),
			Currency:  currency,
		},
		RecentActivity: recentActivity(recent),
		PopularItems:   popularItems(recent),
		Currency:       currency,
	}, nil
}

// GetActivity returns the user's most recent activity feed entries
func (s *DashboardService) GetActivity(ctx context.Context, userID uuid.UUID) ([]*domain.Activity, error) {
	return s.activities.ListRecent(ctx, userID)
}

// completionRate returns the rounded percentage of completed items
func completionRate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(decimal.NewFromInt(int64(completed * 100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(0).
		IntPart())
}

func recentActivity(items []*domain.RecentItem) []domain.RecentActivityEntry {
	entries := make([]domain.RecentActivityEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, domain.RecentActivityEntry{
			ID:        item.ID,
			Type:      "update",
			Title:     fmt.Sprintf("Updated \"%s\" in %s", item.Title, item.WishlistTitle),
			Timestamp: item.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return entries
}

func popularItems(items []*domain.RecentItem) []domain.PopularItem {
	ranked := make([]*domain.RecentItem, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].NoteCount > ranked[j].NoteCount })
	if len(ranked) > popularItemsLimit {
		ranked = ranked[:popularItemsLimit]
	}

	popular := make([]domain.PopularItem, 0, len(ranked))
	for _, item := range ranked {
		popular = append(popular, domain.PopularItem{
			ID:            item.ID,
			Title:         item.Title,
			WishlistTitle: item.WishlistTitle,
			NoteCount:     item.NoteCount,
		})
	}
	return popular
}
