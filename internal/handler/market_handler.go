package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/dafibh/wishflow/wishflow-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// MarketHandler serves cached crypto market data
type MarketHandler struct {
	marketService *service.MarketService
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(marketService *service.MarketService) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

func marketError(c echo.Context, err error, msg string) error {
	switch {
	case errors.Is(err, domain.ErrCoinNotFound):
		return NewNotFoundError(c, "Coin not found")
	case errors.Is(err, domain.ErrUnsupportedMarketQuote):
		return NewFieldError(c, "currency", "Currency must be one of: USD, EUR, RUB, KZT")
	case errors.Is(err, domain.ErrInvalidInput):
		return NewFieldError(c, "amount", "Amount must be a non-negative number")
	case errors.Is(err, domain.ErrMarketDataUnavailable):
		log.Warn().Err(err).Msg("Market data upstream unavailable")
		return NewBadGatewayError(c, "Market data is unavailable")
	}
	log.Error().Err(err).Msg(msg)
	return NewInternalError(c, msg)
}

// ListCoins godoc
// @Summary Top coins by market cap
// @Tags market
// @Produce json
// @Param search query string false "Case-insensitive name filter"
// @Param currency query string false "USD (default), EUR, RUB or KZT"
// @Success 200 {array} domain.Coin
// @Failure 400 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Router /market/coins [get]
func (h *MarketHandler) ListCoins(c echo.Context) error {
	coins, err := h.marketService.ListCoins(c.Request().Context(), c.QueryParam("search"), c.QueryParam("currency"))
	if err != nil {
		return marketError(c, err, "Failed to list coins")
	}
	if coins == nil {
		coins = []domain.Coin{}
	}
	return c.JSON(http.StatusOK, coins)
}

// GetCoin godoc
// @Summary Coin detail with 7 day chart
// @Tags market
// @Produce json
// @Param id path string true "Coin ID"
// @Param currency query string false "USD (default), EUR, RUB or KZT"
// @Success 200 {object} domain.CoinDetail
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Router /market/coins/{id} [get]
func (h *MarketHandler) GetCoin(c echo.Context) error {
	coin, err := h.marketService.GetCoin(c.Request().Context(), c.Param("id"), c.QueryParam("currency"))
	if err != nil {
		return marketError(c, err, "Failed to load coin")
	}
	return c.JSON(http.StatusOK, coin)
}

// ConvertCoin godoc
// @Summary Value an amount of coins
// @Tags market
// @Produce json
// @Param id path string true "Coin ID"
// @Param amount query number true "Amount of coins"
// @Param currency query string false "USD (default), EUR, RUB or KZT"
// @Success 200 {object} domain.CoinConversion
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Router /market/coins/{id}/convert [get]
func (h *MarketHandler) ConvertCoin(c echo.Context) error {
	amount, err := strconv.ParseFloat(c.QueryParam("amount"), 64)
	if err != nil {
		return NewFieldError(c, "amount", "Amount must be a number")
	}

	conversion, err := h.marketService.ConvertCoin(c.Request().Context(), c.Param("id"), amount, c.QueryParam("currency"))
	if err != nil {
		return marketError(c, err, "Failed to convert coin")
	}
	return c.JSON(http.StatusOK, conversion)
}

// ListNFTs godoc
// @Summary NFT collections
// @Tags market
// @Produce json
// @Param search query string false "Case-insensitive name filter"
// @Success 200 {array} domain.NFT
// @Failure 502 {object} ProblemDetails
// @Router /market/nfts [get]
func (h *MarketHandler) ListNFTs(c echo.Context) error {
	nfts, err := h.marketService.ListNFTs(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return marketError(c, err, "Failed to list NFTs")
	}
	if nfts == nil {
		nfts = []domain.NFT{}
	}
	return c.JSON(http.StatusOK, nfts)
}

// ListExchanges godoc
// @Summary Exchanges by volume
// @Tags market
// @Produce json
// @Param search query string false "Case-insensitive name filter"
// @Success 200 {array} domain.Exchange
// @Failure 502 {object} ProblemDetails
// @Router /market/exchanges [get]
func (h *MarketHandler) ListExchanges(c echo.Context) error {
	exchanges, err := h.marketService.ListExchanges(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return marketError(c, err, "Failed to list exchanges")
	}
	if exchanges == nil {
		exchanges = []domain.Exchange{}
	}
	return c.JSON(http.StatusOK, exchanges)
}
