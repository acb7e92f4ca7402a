package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrRatesUnavailable    = errors.New("exchange rates unavailable")
)

// DefaultCurrency is used when neither the request nor the user names one
const DefaultCurrency = "USD"

// Currency describes a currency users can pick
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// SupportedCurrencies lists the currencies offered for items and settings
var SupportedCurrencies = []Currency{
	{Code: "USD", Name: "US Dollar", Symbol: "$"},
	{Code: "EUR", Name: "Euro", Symbol: "€"},
	{Code: "GBP", Name: "British Pound", Symbol: "£"},
	{Code: "JPY", Name: "Japanese Yen", Symbol: "¥"},
	{Code: "KZT", Name: "Kazakhstani Tenge", Symbol: "₸"},
	{Code: "RUB", Name: "Russian Ruble", Symbol: "₽"},
	{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥"},
}

// IsSupportedCurrency reports whether code is one of SupportedCurrencies
func IsSupportedCurrency(code string) bool {
	for _, c := range SupportedCurrencies {
		if c.Code == code {
			return true
		}
	}
	return false
}

// RateTable holds conversion rates relative to Base (1 Base = Rates[code] code)
type RateTable struct {
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	FetchedAt time.Time                  `json:"fetchedAt"`
}

// ExchangeRateProvider fetches a fresh USD-based rate table
type ExchangeRateProvider interface {
	FetchRates(ctx context.Context) (*RateTable, error)
}
