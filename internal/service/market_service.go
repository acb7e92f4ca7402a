package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

const (
	coinsCacheKey     = "coins"
	nftsCacheKey      = "nfts"
	exchangesCacheKey = "exchanges"
	staleKeyPrefix    = "stale:"
)

// MarketService serves crypto market data with an in-process cache
type MarketService struct {
	provider   domain.MarketDataProvider
	currencies *CurrencyService
	cache      *cache.Cache
	ttl        time.Duration
}

// NewMarketService creates a new MarketService
func NewMarketService(provider domain.MarketDataProvider, currencies *CurrencyService, ttl time.Duration) *MarketService {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &MarketService{
		provider:   provider,
		currencies: currencies,
		cache:      cache.New(ttl, 2*ttl),
		ttl:        ttl,
	}
}

// cachedList returns the cached list under key or fetches it. The last good
// copy is kept without expiry and served when the upstream fails.
func cachedList[T any](ctx context.Context, s *MarketService, key string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if v, ok := s.cache.Get(key); ok {
		return v.([]T), nil
	}

	items, err := fetch(ctx)
	if err != nil {
		if v, ok := s.cache.Get(staleKeyPrefix + key); ok {
			log.Warn().Err(err).Str("key", key).Msg("Market data fetch failed, serving stale copy")
			return v.([]T), nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrMarketDataUnavailable, err)
	}

	s.cache.Set(key, items, cache.DefaultExpiration)
	s.cache.Set(staleKeyPrefix+key, items, cache.NoExpiration)
	return items, nil
}

// ListCoins returns the top coins whose name contains search, priced in currency
func (s *MarketService) ListCoins(ctx context.Context, search, currency string) ([]domain.Coin, error) {
	currency, err := normalizeQuote(currency)
	if err != nil {
		return nil, err
	}

	coins, err := cachedList(ctx, s, coinsCacheKey, s.provider.FetchCoins)
	if err != nil {
		return nil, err
	}

	rate := s.quoteRate(ctx, currency)
	filtered := filterByName(coins, search, func(c domain.Coin) string { return c.Name })
	result := make([]domain.Coin, len(filtered))
	for i, c := range filtered {
		result[i] = convertCoin(c, rate)
	}
	return result, nil
}

// GetCoin returns a single coin with its 7 day chart
func (s *MarketService) GetCoin(ctx context.Context, id, currency string) (*domain.CoinDetail, error) {
	currency, err := normalizeQuote(currency)
	if err != nil {
		return nil, err
	}

	coins, err := cachedList(ctx, s, coinsCacheKey, s.provider.FetchCoins)
	if err != nil {
		return nil, err
	}

	for _, c := range coins {
		if c.ID != id {
			continue
		}
		converted := convertCoin(c, s.quoteRate(ctx, currency))
		detail := &domain.CoinDetail{Coin: converted, Currency: currency}
		if converted.SparklineIn7d != nil {
			detail.Chart = BuildChartSeries(converted.SparklineIn7d.Price)
		} else {
			detail.Chart = BuildChartSeries(nil)
		}
		return detail, nil
	}
	return nil, domain.ErrCoinNotFound
}

// ConvertCoin values amount coins in the quote currency
func (s *MarketService) ConvertCoin(ctx context.Context, id string, amount float64, currency string) (*domain.CoinConversion, error) {
	if amount < 0 {
		return nil, domain.ErrInvalidInput
	}
	detail, err := s.GetCoin(ctx, id, currency)
	if err != nil {
		return nil, err
	}
	return &domain.CoinConversion{
		CoinID:   detail.ID,
		Amount:   amount,
		Currency: detail.Currency,
		Value:    amount * detail.CurrentPrice,
	}, nil
}

// ListNFTs returns NFT collections whose name contains search
func (s *MarketService) ListNFTs(ctx context.Context, search string) ([]domain.NFT, error) {
	nfts, err := cachedList(ctx, s, nftsCacheKey, s.provider.FetchNFTs)
	if err != nil {
		return nil, err
	}
	return filterByName(nfts, search, func(n domain.NFT) string { return n.Name }), nil
}

// ListExchanges returns exchanges whose name contains search
func (s *MarketService) ListExchanges(ctx context.Context, search string) ([]domain.Exchange, error) {
	exchanges, err := cachedList(ctx, s, exchangesCacheKey, s.provider.FetchExchanges)
	if err != nil {
		return nil, err
	}
	return filterByName(exchanges, search, func(e domain.Exchange) string { return e.Name }), nil
}

func (s *MarketService) quoteRate(ctx context.Context, currency string) float64 {
	if currency == domain.DefaultCurrency || s.currencies == nil {
		return 1
	}
	return s.currencies.RateFor(ctx, currency).InexactFloat64()
}

func normalizeQuote(currency string) (string, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return domain.DefaultCurrency, nil
	}
	if !domain.IsMarketQuoteCurrency(currency) {
		return "", domain.ErrUnsupportedMarketQuote
	}
	return currency, nil
}

func convertCoin(c domain.Coin, rate float64) domain.Coin {
	if rate == 1 {
		return c
	}
	c.CurrentPrice *= rate
	c.MarketCap *= rate
	c.TotalVolume *= rate
	if c.SparklineIn7d != nil {
		prices := make([]float64, len(c.SparklineIn7d.Price))
		for i, p := range c.SparklineIn7d.Price {
			prices[i] = p * rate
		}
		c.SparklineIn7d = &domain.SparklineData{Price: prices}
	}
	return c
}

// filterByName keeps entries whose name contains search, ignoring case.
// An empty search keeps everything.
func filterByName[T any](items []T, search string, name func(T) string) []T {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return items
	}
	result := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(name(item)), search) {
			result = append(result, item)
		}
	}
	return result
}

// BuildChartSeries scales prices into [0,1] between their min and max.
// A flat series is drawn through the middle.
func BuildChartSeries(prices []float64) domain.ChartSeries {
	series := domain.ChartSeries{Points: make([]float64, len(prices))}
	if len(prices) == 0 {
		return series
	}

	series.Min, series.Max = prices[0], prices[0]
	for _, p := range prices[1:] {
		if p < series.Min {
			series.Min = p
		}
		if p > series.Max {
			series.Max = p
		}
	}

	span := series.Max - series.Min
	for i, p := range prices {
		if span == 0 {
			series.Points[i] = 0.5
			continue
		}
		series.Points[i] = (p - series.Min) / span
	}
	return series
}
