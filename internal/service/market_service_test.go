package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/shopspring/decimal"
)

type fakeMarketProvider struct {
	coinCalls int
	err       error
	coins     []domain.Coin
	nfts      []domain.NFT
	exchanges []domain.Exchange
}

func (p *fakeMarketProvider) FetchCoins(ctx context.Context) ([]domain.Coin, error) {
	p.coinCalls++
	if p.err != nil {
		return nil, p.err
	}
	return p.coins, nil
}

func (p *fakeMarketProvider) FetchNFTs(ctx context.Context) ([]domain.NFT, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.nfts, nil
}

func (p *fakeMarketProvider) FetchExchanges(ctx context.Context) ([]domain.Exchange, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.exchanges, nil
}

func newTestMarketService(provider *fakeMarketProvider) *MarketService {
	currencies := NewCurrencyService(&fakeRateProvider{rates: map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.5"),
		"KZT": decimal.NewFromInt(500),
	}}, time.Hour)
	return NewMarketService(provider, currencies, time.Minute)
}

func sampleCoins() []domain.Coin {
	return []domain.Coin{
		{ID: "bitcoin", Name: "Bitcoin", CurrentPrice: 100, SparklineIn7d: &domain.SparklineData{Price: []float64{90, 110, 100}}},
		{ID: "ethereum", Name: "Ethereum", CurrentPrice: 10},
		{ID: "wrapped-bitcoin", Name: "Wrapped Bitcoin", CurrentPrice: 99},
	}
}

func TestListCoins_FilterIsCaseInsensitive(t *testing.T) {
	svc := newTestMarketService(&fakeMarketProvider{coins: sampleCoins()})

	coins, err := svc.ListCoins(context.Background(), "BITCOIN", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(coins) != 2 {
		t.Fatalf("Expected 2 coins, got %d", len(coins))
	}

	all, _ := svc.ListCoins(context.Background(), "", "USD")
	if len(all) != 3 {
		t.Errorf("Expected empty search to keep all 3 coins, got %d", len(all))
	}
}

func TestListCoins_ConvertsPrices(t *testing.T) {
	provider := &fakeMarketProvider{coins: sampleCoins()}
	svc := newTestMarketService(provider)

	coins, err := svc.ListCoins(context.Background(), "ethereum", "kzt")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if coins[0].CurrentPrice != 5000 {
		t.Errorf("Expected 5000, got %v", coins[0].CurrentPrice)
	}

	// the cached upstream copy must stay in USD
	usd, _ := svc.ListCoins(context.Background(), "ethereum", "USD")
	if usd[0].CurrentPrice != 10 {
		t.Errorf("Expected cached USD price 10, got %v", usd[0].CurrentPrice)
	}
	if provider.coinCalls != 1 {
		t.Errorf("Expected 1 upstream call, got %d", provider.coinCalls)
	}
}

func TestListCoins_MissingRateDefaultsToOne(t *testing.T) {
	svc := newTestMarketService(&fakeMarketProvider{coins: sampleCoins()})

	coins, err := svc.ListCoins(context.Background(), "ethereum", "RUB")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if coins[0].CurrentPrice != 10 {
		t.Errorf("Expected unconverted price 10, got %v", coins[0].CurrentPrice)
	}
}

func TestListCoins_UnsupportedQuote(t *testing.T) {
	svc := newTestMarketService(&fakeMarketProvider{coins: sampleCoins()})

	_, err := svc.ListCoins(context.Background(), "", "GBP")
	if err != domain.ErrUnsupportedMarketQuote {
		t.Errorf("Expected ErrUnsupportedMarketQuote, got %v", err)
	}
}

func TestListCoins_UpstreamFailure(t *testing.T) {
	svc := newTestMarketService(&fakeMarketProvider{err: errors.New("429")})

	_, err := svc.ListCoins(context.Background(), "", "")
	if !errors.Is(err, domain.ErrMarketDataUnavailable) {
		t.Errorf("Expected ErrMarketDataUnavailable, got %v", err)
	}
}

func TestListCoins_ServesStaleCopy(t *testing.T) {
	provider := &fakeMarketProvider{coins: sampleCoins()}
	svc := newTestMarketService(provider)

	if _, err := svc.ListCoins(context.Background(), "", ""); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	svc.cache.Delete(coinsCacheKey)
	provider.err = errors.New("down")

	coins, err := svc.ListCoins(context.Background(), "", "")
	if err != nil {
		t.Fatalf("Expected stale copy, got %v", err)
	}
	if len(coins) != 3 {
		t.Errorf("Expected 3 coins, got %d", len(coins))
	}
}

func TestGetCoin(t *testing.T) {
	svc := newTestMarketService(&fakeMarketProvider{coins: sampleCoins()})

	detail, err := svc.GetCoin(context.Background(), "bitcoin", "EUR")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if detail.CurrentPrice != 50 {
		t.Errorf("Expected 50, got %v", detail.CurrentPrice)
	}
	if detail.Chart.Min != 45 || detail.Chart.Max != 55 {
		t.Errorf("Expected chart range 45..55, got %v..%v", detail.Chart.Min, detail.Chart.Max)
	}
	want := []float64{0, 1, 0.5}
	for i, p := range detail.Chart.Points {
		if p != want[i] {
			t.Errorf("Expected point %d to be %v, got %v", i, want[i], p)
		}
	}

	_, err = svc.GetCoin(context.Background(), "dogecoin", "")
	if err != domain.ErrCoinNotFound {
		t.Errorf("Expected ErrCoinNotFound, got %v", err)
	}
}

func TestConvertCoin(t *testing.T) {
	svc := newTestMarketService(&fakeMarketProvider{coins: sampleCoins()})

	result, err := svc.ConvertCoin(context.Background(), "bitcoin", 2.5, "KZT")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Value != 125000 {
		t.Errorf("Expected 125000, got %v", result.Value)
	}

	_, err = svc.ConvertCoin(context.Background(), "bitcoin", -1, "USD")
	if err != domain.ErrInvalidInput {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestBuildChartSeries_FlatSeries(t *testing.T) {
	series := BuildChartSeries([]float64{3, 3, 3})
	for i, p := range series.Points {
		if p != 0.5 {
			t.Errorf("Expected point %d to be 0.5, got %v", i, p)
		}
	}

	empty := BuildChartSeries(nil)
	if len(empty.Points) != 0 {
		t.Errorf("Expected no points, got %d", len(empty.Points))
	}
}

func TestListNFTsAndExchanges(t *testing.T) {
	svc := newTestMarketService(&fakeMarketProvider{
		nfts:      []domain.NFT{{ID: "a", Name: "Bored Ape"}, {ID: "b", Name: "Pudgy Penguins"}},
		exchanges: []domain.Exchange{{ID: "binance", Name: "Binance"}, {ID: "kraken", Name: "Kraken"}},
	})

	nfts, err := svc.ListNFTs(context.Background(), "ape")
	if err != nil || len(nfts) != 1 {
		t.Fatalf("Expected 1 nft, got %d (%v)", len(nfts), err)
	}
	exchanges, err := svc.ListExchanges(context.Background(), "")
	if err != nil || len(exchanges) != 2 {
		t.Fatalf("Expected 2 exchanges, got %d (%v)", len(exchanges), err)
	}
}
