package coingecko

import (
	"context"
	"fmt"
	"strings"

	"github.com/dafibh/wishflow/wishflow-backend/internal/client/httpclient"
	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
)

const (
	coinsPath     = "/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=100&page=1&sparkline=true"
	nftsPath      = "/nfts/list?order=market_cap_desc&per_page=100&page=1"
	exchangesPath = "/exchanges?order=volume_desc"
)

// Client reads public market data. It implements domain.MarketDataProvider.
type Client struct {
	http    *httpclient.Client
	baseURL string
}

// New creates a client rooted at baseURL (e.g. https://api.coingecko.com/api/v3)
func New(http *httpclient.Client, baseURL string) *Client {
	return &Client{http: http, baseURL: strings.TrimRight(baseURL, "/")}
}

// FetchCoins returns the top 100 coins by market cap with 7 day sparklines
func (c *Client) FetchCoins(ctx context.Context) ([]domain.Coin, error) {
	var coins []domain.Coin
	if err := c.http.GetJSON(ctx, c.baseURL+coinsPath, &coins); err != nil {
		return nil, fmt.Errorf("fetch coins: %w", err)
	}
	return coins, nil
}

// FetchNFTs returns the top 100 NFT collections by market cap
func (c *Client) FetchNFTs(ctx context.Context) ([]domain.NFT, error) {
	var nfts []domain.NFT
	if err := c.http.GetJSON(ctx, c.baseURL+nftsPath, &nfts); err != nil {
		return nil, fmt.Errorf("fetch nfts: %w", err)
	}
	return nfts, nil
}

// FetchExchanges returns exchanges ordered by volume
func (c *Client) FetchExchanges(ctx context.Context) ([]domain.Exchange, error) {
	var exchanges []domain.Exchange
	if err := c.http.GetJSON(ctx, c.baseURL+exchangesPath, &exchanges); err != nil {
		return nil, fmt.Errorf("fetch exchanges: %w", err)
	}
	return exchanges, nil
}
