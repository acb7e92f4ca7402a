package domain

import "github.com/google/uuid"

// MoneyValue is an amount in a currency with its display form
type MoneyValue struct {
	Amount    string `json:"amount"`
	Formatted string `json:"formatted"`
	Currency  string `json:"currency"`
}

// RecentActivityEntry describes a recently updated item
type RecentActivityEntry struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Timestamp string    `json:"timestamp"`
}

// PopularItem is an item ranked by how many notes it has
type PopularItem struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	WishlistTitle string    `json:"wishlistTitle"`
	NoteCount     int       `json:"noteCount"`
}

// DashboardSummary aggregates a user's wishlists
type DashboardSummary struct {
	TotalWishlists int                   `json:"totalWishlists"`
	TotalItems     int                   `json:"totalItems"`
	CompletedItems int                   `json:"completedItems"`
	CompletionRate int                   `json:"completionRate"`
	TotalValue     MoneyValue            `json:"totalValue"`
	RecentActivity []RecentActivityEntry `json:"recentActivity"`
	PopularItems   []PopularItem         `json:"popularItems"`
	Currency       string                `json:"currency"`
}
