package exchangerate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dafibh/wishflow/wishflow-backend/internal/client/httpclient"
	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// latestResponse is the payload of exchangerate-api.com /v4/latest/<base>
type latestResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// Client fetches USD-based rates. It implements domain.ExchangeRateProvider.
type Client struct {
	http *httpclient.Client
	url  string
	now  func() time.Time
}

// New creates a client for the given latest-rates URL
func New(http *httpclient.Client, url string) *Client {
	return &Client{http: http, url: url, now: time.Now}
}

// FetchRates downloads the latest rate table
func (c *Client) FetchRates(ctx context.Context) (*domain.RateTable, error) {
	var body latestResponse
	if err := c.http.GetJSON(ctx, c.url, &body); err != nil {
		return nil, fmt.Errorf("fetch exchange rates: %w", err)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("fetch exchange rates: empty rate table")
	}

	base := strings.ToUpper(body.Base)
	if base == "" {
		base = domain.DefaultCurrency
	}
	return &domain.RateTable{
		Base:      base,
		Rates:     body.Rates,
		FetchedAt: c.now(),
	}, nil
}
