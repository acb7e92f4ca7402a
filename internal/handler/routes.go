package handler

import (
	"github.com/dafibh/wishflow/wishflow-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// Handlers groups the HTTP handlers mounted under /api/v1
type Handlers struct {
	Auth      *AuthHandler
	Profile   *ProfileHandler
	Category  *CategoryHandler
	Wishlist  *WishlistHandler
	Item      *WishItemHandler
	Note      *NoteHandler
	Share     *ShareHandler
	Dashboard *DashboardHandler
	Currency  *CurrencyHandler
	Market    *MarketHandler
}

// RegisterRoutes sets up all API routes. authLimit guards register and login.
func RegisterRoutes(e *echo.Echo, sessionAuth *middleware.SessionAuthMiddleware, authLimit echo.MiddlewareFunc, h Handlers) {
	api := e.Group("/api/v1")
	requireAuth := sessionAuth.Authenticate()

	// Auth routes
	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register, authLimit, sessionAuth.Optional())
	auth.POST("/login", h.Auth.Login, authLimit, sessionAuth.Optional())
	auth.POST("/logout", h.Auth.Logout, requireAuth)
	auth.POST("/logout-all", h.Auth.LogoutAll, requireAuth)
	auth.GET("/me", h.Auth.Me, requireAuth)

	// User settings (protected)
	user := api.Group("/user", requireAuth)
	user.GET("/settings", h.Profile.GetSettings)
	user.PATCH("/settings", h.Profile.UpdateSettings)

	// Category routes (protected)
	categories := api.Group("/categories", requireAuth)
	categories.GET("", h.Category.GetCategories)
	categories.POST("", h.Category.CreateCategory)
	categories.DELETE("/:id", h.Category.DeleteCategory)

	// Wishlist routes (protected)
	wishlists := api.Group("/wishlists", requireAuth)
	wishlists.POST("", h.Wishlist.CreateWishlist)
	wishlists.GET("", h.Wishlist.GetWishlists)
	wishlists.GET("/:id", h.Wishlist.GetWishlist)
	wishlists.PATCH("/:id", h.Wishlist.UpdateWishlist)
	wishlists.DELETE("/:id", h.Wishlist.DeleteWishlist)
	wishlists.GET("/:id/items", h.Item.GetItems)
	wishlists.POST("/:id/items", h.Item.CreateItem)

	// Item routes (protected)
	items := api.Group("/items", requireAuth)
	items.POST("/preview", h.Item.PreviewLink)
	items.PATCH("/:id", h.Item.UpdateItem)
	items.DELETE("/:id", h.Item.DeleteItem)
	items.POST("/:id/move", h.Item.MoveItem)
	items.PUT("/:id/image", h.Item.SetImage)
	items.DELETE("/:id/image", h.Item.RemoveImage)
	items.GET("/:id/notes", h.Note.GetNotes)
	items.POST("/:id/notes", h.Note.CreateNote)
	items.PATCH("/:id/notes/:noteId", h.Note.UpdateNote)
	items.DELETE("/:id/notes/:noteId", h.Note.DeleteNote)

	// Dashboard routes (protected)
	dashboard := api.Group("/dashboard", requireAuth)
	dashboard.GET("", h.Dashboard.GetSummary)
	dashboard.GET("/activity", h.Dashboard.GetActivity)

	// Public sharing
	api.GET("/shared/:id", h.Share.GetShared, sessionAuth.Optional())
	api.GET("/discover", h.Share.Discover)

	// Currency (public)
	api.GET("/currencies", h.Currency.GetCurrencies)
	api.GET("/currency/convert", h.Currency.Convert)

	// Market data (public)
	market := api.Group("/market")
	market.GET("/coins", h.Market.ListCoins)
	market.GET("/coins/:id", h.Market.GetCoin)
	market.GET("/coins/:id/convert", h.Market.ConvertCoin)
	market.GET("/nfts", h.Market.ListNFTs)
	market.GET("/exchanges", h.Market.ListExchanges)
}
