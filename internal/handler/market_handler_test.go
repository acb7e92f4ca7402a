package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/dafibh/wishflow/wishflow-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMarket struct {
	err error
}

func (s *stubMarket) FetchCoins(ctx context.Context) ([]domain.Coin, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Coin{
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", CurrentPrice: 60000, SparklineIn7d: &domain.SparklineData{Price: []float64{1, 2, 3}}},
		{ID: "ethereum", Symbol: "eth", Name: "Ethereum", CurrentPrice: 3000},
	}, nil
}

func (s *stubMarket) FetchNFTs(ctx context.Context) ([]domain.NFT, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.NFT{{ID: "punks", Name: "CryptoPunks"}, {ID: "apes", Name: "Bored Ape Yacht Club"}}, nil
}

func (s *stubMarket) FetchExchanges(ctx context.Context) ([]domain.Exchange, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Exchange{{ID: "binance", Name: "Binance"}}, nil
}

func newTestMarketHandler(err error) *MarketHandler {
	currencies := service.NewCurrencyService(&staticRates{}, time.Hour)
	return NewMarketHandler(service.NewMarketService(&stubMarket{err: err}, currencies, time.Minute))
}

func TestListCoins_SearchAndCurrency(t *testing.T) {
	h := newTestMarketHandler(nil)

	c, rec := newRequest(http.MethodGet, "/api/v1/market/coins?search=BIT&currency=eur", nil, nil)
	require.NoError(t, h.ListCoins(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	coins := decodeBody[[]domain.Coin](t, rec)
	require.Len(t, coins, 1)
	assert.Equal(t, "bitcoin", coins[0].ID)
	assert.InDelta(t, 30000, coins[0].CurrentPrice, 0.001)
}

func TestListCoins_UnsupportedQuote(t *testing.T) {
	h := newTestMarketHandler(nil)

	c, rec := newRequest(http.MethodGet, "/api/v1/market/coins?currency=GBP", nil, nil)
	require.NoError(t, h.ListCoins(c))
	assertProblem(t, rec, http.StatusBadRequest, ErrorTypeValidation)
}

func TestGetCoin(t *testing.T) {
	h := newTestMarketHandler(nil)

	c, rec := newRequest(http.MethodGet, "/", nil, nil)
	withParams(c, "id", "bitcoin")
	require.NoError(t, h.GetCoin(c))
	require.Equal(t, http.StatusOK, rec.Code)

	detail := decodeBody[domain.CoinDetail](t, rec)
	assert.Equal(t, []float64{0, 0.5, 1}, detail.Chart.Points)

	c, rec = newRequest(http.MethodGet, "/", nil, nil)
	withParams(c, "id", "dogecoin")
	require.NoError(t, h.GetCoin(c))
	assertProblem(t, rec, http.StatusNotFound, ErrorTypeNotFound)
}

func TestConvertCoin(t *testing.T) {
	h := newTestMarketHandler(nil)

	c, rec := newRequest(http.MethodGet, "/?amount=0.5", nil, nil)
	withParams(c, "id", "ethereum")
	require.NoError(t, h.ConvertCoin(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 1500, decodeBody[domain.CoinConversion](t, rec).Value, 0.001)

	c, rec = newRequest(http.MethodGet, "/?amount=-1", nil, nil)
	withParams(c, "id", "ethereum")
	require.NoError(t, h.ConvertCoin(c))
	assertProblem(t, rec, http.StatusBadRequest, ErrorTypeValidation)
}

func TestNFTsAndExchanges(t *testing.T) {
	h := newTestMarketHandler(nil)

	c, rec := newRequest(http.MethodGet, "/api/v1/market/nfts?search=ape", nil, nil)
	require.NoError(t, h.ListNFTs(c))
	nfts := decodeBody[[]domain.NFT](t, rec)
	require.Len(t, nfts, 1)
	assert.Equal(t, "apes", nfts[0].ID)

	c, rec = newRequest(http.MethodGet, "/api/v1/market/exchanges", nil, nil)
	require.NoError(t, h.ListExchanges(c))
	assert.Len(t, decodeBody[[]domain.Exchange](t, rec), 1)
}

func TestMarket_UpstreamDown(t *testing.T) {
	h := newTestMarketHandler(errors.New("rate limited"))

	c, rec := newRequest(http.MethodGet, "/api/v1/market/coins", nil, nil)
	require.NoError(t, h.ListCoins(c))
	assertProblem(t, rec, http.StatusBadGateway, ErrorTypeBadGateway)
}
