package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

var rateRefreshTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "wishflow_exchange_rate_refresh_total",
		Help: "Exchange rate refresh attempts by outcome",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(rateRefreshTotal)
}

// CurrencyService converts amounts between currencies using a process-wide
// rate table refreshed at most once per TTL
type CurrencyService struct {
	provider domain.ExchangeRateProvider
	ttl      time.Duration
	now      func() time.Time

	mu    sync.RWMutex
	table *domain.RateTable
	group singleflight.Group
}

// NewCurrencyService creates a new CurrencyService
func NewCurrencyService(provider domain.ExchangeRateProvider, ttl time.Duration) *CurrencyService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CurrencyService{provider: provider, ttl: ttl, now: time.Now}
}

// Currencies returns the currencies users can choose from
func (s *CurrencyService) Currencies() []domain.Currency {
	return domain.SupportedCurrencies
}

// Rates returns the cached rate table, refreshing it when older than the TTL.
// A failed refresh falls back to the stale table when one exists.
func (s *CurrencyService) Rates(ctx context.Context) (*domain.RateTable, error) {
	s.mu.RLock()
	table := s.table
	s.mu.RUnlock()

	if table != nil && s.now().Sub(table.FetchedAt) < s.ttl {
		return table, nil
	}

	v, err, _ := s.group.Do("rates", func() (any, error) {
		return s.refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		if table != nil {
			log.Warn().Err(err).Time("fetched_at", table.FetchedAt).Msg("Exchange rate refresh failed, serving stale rates")
			return table, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrRatesUnavailable, err)
	}
	return v.(*domain.RateTable), nil
}

func (s *CurrencyService) refresh(ctx context.Context) (*domain.RateTable, error) {
	// another caller may have refreshed while we waited
	s.mu.RLock()
	current := s.table
	s.mu.RUnlock()
	if current != nil && s.now().Sub(current.FetchedAt) < s.ttl {
		return current, nil
	}

	fresh, err := s.provider.FetchRates(ctx)
	if err != nil {
		rateRefreshTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	fresh.FetchedAt = s.now()

	s.mu.Lock()
	s.table = fresh
	s.mu.Unlock()

	rateRefreshTotal.WithLabelValues("ok").Inc()
	log.Debug().Int("rates", len(fresh.Rates)).Msg("Exchange rates refreshed")
	return fresh, nil
}

// Convert converts amount from one currency to another, rounded to 2 decimals.
// Same-currency conversions return the amount without touching the rate table.
func (s *CurrencyService) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == to {
		return amount, nil
	}

	table, err := s.Rates(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	result := amount
	if from != table.Base {
		rate, err := lookupRate(table, from)
		if err != nil {
			return decimal.Zero, err
		}
		result = result.Div(rate)
	}
	if to != table.Base {
		rate, err := lookupRate(table, to)
		if err != nil {
			return decimal.Zero, err
		}
		result = result.Mul(rate)
	}
	return result.Round(2), nil
}

func lookupRate(table *domain.RateTable, code string) (decimal.Decimal, error) {
	rate, ok := table.Rates[code]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrUnsupportedCurrency, code)
	}
	return rate, nil
}

// RateFor returns the multiplier from the base currency into code, or 1 when
// the rate is not known
func (s *CurrencyService) RateFor(ctx context.Context, code string) decimal.Decimal {
	code = strings.ToUpper(code)
	table, err := s.Rates(ctx)
	if err != nil || code == "" {
		return decimal.NewFromInt(1)
	}
	if code == table.Base {
		return decimal.NewFromInt(1)
	}
	if rate, ok := table.Rates[code]; ok && rate.IsPositive() {
		return rate
	}
	return decimal.NewFromInt(1)
}

// Warm loads the rate table once so the first request does not pay for it
func (s *CurrencyService) Warm(ctx context.Context) {
	if _, err := s.Rates(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn().Err(err).Msg("Initial exchange rate fetch failed")
	}
}
