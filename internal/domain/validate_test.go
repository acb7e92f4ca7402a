package domain

import (
	"strings"
	"testing"
)

func TestWishlistValidate_CountsCharacters(t *testing.T) {
	w := &Wishlist{Title: strings.Repeat("ж", 200)}
	if err := w.Validate(); err != nil {
		t.Fatalf("Expected 200 Cyrillic characters to pass, got %v", err)
	}

	w.Title = strings.Repeat("ж", MaxTitleLength+1)
	if err := w.Validate(); err != ErrWishlistTitleTooLong {
		t.Fatalf("Expected ErrWishlistTitleTooLong, got %v", err)
	}
}

func TestWishItemValidate_CountsCharacters(t *testing.T) {
	item := &WishItem{Title: strings.Repeat("ж", 200), Currency: "USD"}
	if err := item.Validate(); err != nil {
		t.Fatalf("Expected 200 Cyrillic characters to pass, got %v", err)
	}

	desc := strings.Repeat("日", MaxDescriptionLength)
	item.Description = &desc
	if err := item.Validate(); err != nil {
		t.Fatalf("Expected description at the limit to pass, got %v", err)
	}

	item.Title = strings.Repeat("ж", MaxTitleLength+1)
	if err := item.Validate(); err != ErrWishItemTitleTooLong {
		t.Fatalf("Expected ErrWishItemTitleTooLong, got %v", err)
	}
}
