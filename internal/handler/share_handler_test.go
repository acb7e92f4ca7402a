package handler

import (
	"net/http"
	"testing"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/google/uuid"
)

func TestGetShared_PublicWishlist(t *testing.T) {
	f := newAppFixture(false)
	f.addItem("Camera", "100", "USD")
	h := NewShareHandler(f.shareService)

	c, rec := newRequest(http.MethodGet, "/", nil, nil)
	withParams(c, "id", f.wishlist.ID.String())
	if err := h.GetShared(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	shared := decodeBody[domain.SharedWishlist](t, rec)
	if shared.Owner.Name != "Alice" {
		t.Errorf("Expected owner Alice, got %s", shared.Owner.Name)
	}
	if shared.IsOwner {
		t.Error("Expected anonymous viewer not to be the owner")
	}
	if len(shared.Items) != 1 {
		t.Errorf("Expected 1 item, got %d", len(shared.Items))
	}
}

func TestGetShared_OwnerFlag(t *testing.T) {
	f := newAppFixture(false)
	h := NewShareHandler(f.shareService)

	c, rec := newRequest(http.MethodGet, "/", nil, f.user)
	withParams(c, "id", f.wishlist.ID.String())
	if err := h.GetShared(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if shared := decodeBody[domain.SharedWishlist](t, rec); !shared.IsOwner {
		t.Error("Expected the owner flag for the owner")
	}
}

func TestGetShared_PrivateAndMissing(t *testing.T) {
	f := newAppFixture(false)
	f.wishlist.IsPrivate = true
	h := NewShareHandler(f.shareService)

	c, rec := newRequest(http.MethodGet, "/", nil, nil)
	withParams(c, "id", f.wishlist.ID.String())
	if err := h.GetShared(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	problem := assertProblem(t, rec, http.StatusForbidden, ErrorTypeForbidden)
	if problem.Detail != "This wishlist is private" {
		t.Errorf("Unexpected detail %q", problem.Detail)
	}

	c, rec = newRequest(http.MethodGet, "/", nil, nil)
	withParams(c, "id", uuid.NewString())
	if err := h.GetShared(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	assertProblem(t, rec, http.StatusNotFound, ErrorTypeNotFound)
}

func TestDiscover_OnlyPublic(t *testing.T) {
	f := newAppFixture(false)
	f.wishlists.AddWishlist(&domain.Wishlist{UserID: f.user.ID, Title: "Secret", IsPrivate: true, CategoryID: 1})
	h := NewShareHandler(f.shareService)

	c, rec := newRequest(http.MethodGet, "/api/v1/discover", nil, nil)
	if err := h.Discover(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	wishlists := decodeBody[[]domain.PublicWishlist](t, rec)
	if len(wishlists) != 1 || wishlists[0].Title != "Gadgets" {
		t.Fatalf("Expected only the public wishlist, got %+v", wishlists)
	}
	if wishlists[0].OwnerName != "Alice" {
		t.Errorf("Expected owner name Alice, got %s", wishlists[0].OwnerName)
	}
}
