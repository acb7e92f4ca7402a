package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/dafibh/wishflow/wishflow-backend/internal/service"
	"github.com/dafibh/wishflow/wishflow-backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CurrencyHandler serves currency metadata and conversions
type CurrencyHandler struct {
	currencyService *service.CurrencyService
}

// NewCurrencyHandler creates a new CurrencyHandler
func NewCurrencyHandler(currencyService *service.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{currencyService: currencyService}
}

// ConversionResponse is the result of a currency conversion
type ConversionResponse struct {
	Amount    string `json:"amount"`
	From      string `json:"from"`
	To        string `json:"to"`
	Result    string `json:"result"`
	Formatted string `json:"formatted"`
}

// GetCurrencies godoc
// @Summary Supported currencies
// @Tags currency
// @Produce json
// @Success 200 {array} domain.Currency
// @Router /currencies [get]
func (h *CurrencyHandler) GetCurrencies(c echo.Context) error {
	return c.JSON(http.StatusOK, h.currencyService.Currencies())
}

// Convert godoc
// @Summary Convert an amount between currencies
// @Tags currency
// @Produce json
// @Param amount query string true "Amount"
// @Param from query string true "Source currency"
// @Param to query string true "Target currency"
// @Success 200 {object} ConversionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Router /currency/convert [get]
func (h *CurrencyHandler) Convert(c echo.Context) error {
	amount, err := decimal.NewFromString(c.QueryParam("amount"))
	if err != nil {
		return NewFieldError(c, "amount", "Amount must be a number")
	}
	from := strings.ToUpper(strings.TrimSpace(c.QueryParam("from")))
	to := strings.ToUpper(strings.TrimSpace(c.QueryParam("to")))
	if !domain.IsSupportedCurrency(from) {
		return NewFieldError(c, "from", "Unsupported currency")
	}
	if !domain.IsSupportedCurrency(to) {
		return NewFieldError(c, "to", "Unsupported currency")
	}

	result, err := h.currencyService.Convert(c.Request().Context(), amount, from, to)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRatesUnavailable):
			return NewBadGatewayError(c, "Exchange rates are unavailable")
		case errors.Is(err, domain.ErrUnsupportedCurrency):
			return NewValidationError(c, "No exchange rate for the requested currency", nil)
		}
		log.Error().Err(err).Str("from", from).Str("to", to).Msg("Failed to convert currency")
		return NewInternalError(c, "Failed to convert currency")
	}

	return c.JSON(http.StatusOK, ConversionResponse{
		Amount:    amount.String(),
		From:      from,
		To:        to,
		Result:    result.StringFixed(2),
		Formatted: util.FormatMoney(result, to),
	})
}
