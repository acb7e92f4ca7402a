package domain

import (
	"context"
	"errors"
)

var (
	ErrCoinNotFound           = errors.New("coin not found")
	ErrMarketDataUnavailable  = errors.New("market data unavailable")
	ErrUnsupportedMarketQuote = errors.New("quote currency must be one of: USD, EUR, RUB, KZT")
)

// MarketQuoteCurrencies are the currencies coin prices can be shown in
var MarketQuoteCurrencies = []string{"USD", "EUR", "RUB", "KZT"}

// IsMarketQuoteCurrency reports whether code is a supported quote currency
func IsMarketQuoteCurrency(code string) bool {
	for _, c := range MarketQuoteCurrencies {
		if c == code {
			return true
		}
	}
	return false
}

// Coin mirrors a CoinGecko /coins/markets entry (USD quoted)
type Coin struct {
	ID                       string         `json:"id"`
	Symbol                   string         `json:"symbol"`
	Name                     string         `json:"name"`
	Image                    string         `json:"image"`
	CurrentPrice             float64        `json:"current_price"`
	PriceChangePercentage24h float64        `json:"price_change_percentage_24h"`
	SparklineIn7d            *SparklineData `json:"sparkline_in_7d,omitempty"`
	MarketCap                float64        `json:"market_cap"`
	TotalVolume              float64        `json:"total_volume"`
	CirculatingSupply        float64        `json:"circulating_supply"`
}

type SparklineData struct {
	Price []float64 `json:"price"`
}

// NFT mirrors a CoinGecko /nfts/list entry
type NFT struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Image          string  `json:"image"`
	FloorPrice     float64 `json:"floor_price"`
	PriceChange24h float64 `json:"price_change_24h"`
	Collection     string  `json:"collection"`
}

// Exchange mirrors a CoinGecko /exchanges entry
type Exchange struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Image             string  `json:"image"`
	TradeVolume24hBTC float64 `json:"trade_volume_24h_btc"`
	TrustScore        int     `json:"trust_score"`
}

// ChartSeries is a sparkline prepared for drawing: points are scaled into [0,1]
type ChartSeries struct {
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
	Points []float64 `json:"points"`
}

// MarketDataProvider fetches raw market data from the upstream API
type MarketDataProvider interface {
	FetchCoins(ctx context.Context) ([]Coin, error)
	FetchNFTs(ctx context.Context) ([]NFT, error)
	FetchExchanges(ctx context.Context) ([]Exchange, error)
}

// CoinDetail is a coin with its chart prepared for drawing
type CoinDetail struct {
	Coin
	Currency string      `json:"currency"`
	Chart    ChartSeries `json:"chart"`
}

// CoinConversion is the value of an amount of coins in a quote currency
type CoinConversion struct {
	CoinID   string  `json:"coinId"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Value    float64 `json:"value"`
}
