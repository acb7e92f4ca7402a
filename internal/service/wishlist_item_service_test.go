package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/dafibh/wishflow/wishflow-backend/internal/testutil"
	"github.com/dafibh/wishflow/wishflow-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type recordingPublisher struct {
	events []websocket.Event
}

func (p *recordingPublisher) Publish(userID uuid.UUID, event websocket.Event) {
	p.events = append(p.events, event)
}

type itemFixture struct {
	users      *testutil.MockUserRepository
	wishlists  *testutil.MockWishlistRepository
	items      *testutil.MockWishItemRepository
	notes      *testutil.MockNoteRepository
	activities *testutil.MockActivityRepository
	storage    *testutil.MockImageStorage
	rates      *fakeRateProvider
	publisher  *recordingPublisher
	service    *WishItemService
	user       *domain.User
	wishlist   *domain.Wishlist
}

func newItemFixture() *itemFixture {
	f := &itemFixture{
		users:     testutil.NewMockUserRepository(),
		wishlists: testutil.NewMockWishlistRepository(),
		storage:   testutil.NewMockImageStorage(),
		rates:     &fakeRateProvider{rates: testRates()},
		publisher: &recordingPublisher{},
	}
	f.wishlists.Users = f.users
	f.items = testutil.NewMockWishItemRepository(f.wishlists)
	f.notes = testutil.NewMockNoteRepository(f.items)
	f.activities = testutil.NewMockActivityRepository(f.wishlists)

	currencies, _ := newTestCurrencyService(f.rates)
	f.service = NewWishItemService(
		f.items,
		f.wishlists,
		f.notes,
		f.users,
		currencies,
		NewActivityService(f.activities),
		NewImageService(f.storage),
	)
	f.service.SetEventPublisher(f.publisher)

	f.user = &domain.User{Name: "Alice", Email: "alice@example.com", PreferredCurrency: "EUR"}
	f.users.AddUser(f.user)
	f.wishlist = &domain.Wishlist{UserID: f.user.ID, Title: "Gadgets", CategoryID: 1}
	f.wishlists.AddWishlist(f.wishlist)
	return f
}

func (f *itemFixture) addItem(title string, price string, currency string) *domain.WishItem {
	item := &domain.WishItem{WishlistID: f.wishlist.ID, Title: title, Currency: currency}
	if price != "" {
		p := decimal.RequireFromString(price)
		item.Price = &p
	}
	f.items.AddItem(item)
	return item
}

func titles(details []*domain.ItemDetails) string {
	names := make([]string, len(details))
	for i, d := range details {
		names[i] = d.Title
	}
	return strings.Join(names, ",")
}

func TestCreateItem_DefaultsToPreferredCurrency(t *testing.T) {
	f := newItemFixture()
	price := decimal.RequireFromString("19.999")
	url := "  https://shop.example.com/p/1  "

	item, err := f.service.CreateItem(context.Background(), f.user.ID, f.wishlist.ID, CreateItemInput{
		Title: " Headphones ",
		Price: &price,
		URL:   &url,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if item.Title != "Headphones" {
		t.Errorf("Expected trimmed title, got '%s'", item.Title)
	}
	if item.Currency != "EUR" {
		t.Errorf("Expected preferred currency EUR, got %s", item.Currency)
	}
	if item.Price == nil || item.Price.String() != "20" {
		t.Errorf("Expected price rounded to 20, got %v", item.Price)
	}
	if item.URL == nil || *item.URL != "https://shop.example.com/p/1" {
		t.Errorf("Expected trimmed url, got %v", item.URL)
	}
	if len(f.publisher.events) != 1 || f.publisher.events[0].Type != "item.created" {
		t.Errorf("Expected one item.created event, got %v", f.publisher.events)
	}
	if types := f.activities.Types(); len(types) != 1 || types[0] != domain.ActivityItemAdded {
		t.Errorf("Expected item_added activity, got %v", types)
	}
}

func TestCreateItem_Validation(t *testing.T) {
	f := newItemFixture()
	negative := decimal.NewFromInt(-1)
	badURL := "ftp://example.com/file"

	tests := []struct {
		name  string
		input CreateItemInput
		want  error
	}{
		{"empty title", CreateItemInput{Title: "  "}, domain.ErrWishItemTitleEmpty},
		{"negative price", CreateItemInput{Title: "A", Price: &negative}, domain.ErrWishItemNegativePrice},
		{"bad currency", CreateItemInput{Title: "A", Currency: "XYZ"}, domain.ErrUnsupportedCurrency},
		{"bad url", CreateItemInput{Title: "A", URL: &badURL}, domain.ErrWishItemInvalidURL},
	}
	for _, tt := range tests {
		_, err := f.service.CreateItem(context.Background(), f.user.ID, f.wishlist.ID, tt.input)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestCreateItem_OtherUsersWishlist(t *testing.T) {
	f := newItemFixture()

	_, err := f.service.CreateItem(context.Background(), uuid.New(), f.wishlist.ID, CreateItemInput{Title: "A"})
	if !errors.Is(err, domain.ErrWishlistNotFound) {
		t.Fatalf("Expected ErrWishlistNotFound, got %v", err)
	}
}

func TestListItems_ConvertsAndSorts(t *testing.T) {
	f := newItemFixture()
	f.addItem("cheap", "10", "USD")
	f.addItem("unpriced", "", "USD")
	f.addItem("pricey", "10", "EUR")

	items, err := f.service.ListItems(context.Background(), f.user.ID, f.wishlist.ID, ListItemsInput{Sort: "price-desc", Currency: "usd"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := titles(items); got != "pricey,cheap,unpriced" {
		t.Errorf("Expected pricey,cheap,unpriced, got %s", got)
	}
	if items[0].ConvertedPrice == nil || items[0].ConvertedPrice.Amount != "20.00" {
		t.Errorf("Expected 10 EUR converted to 20.00 USD, got %+v", items[0].ConvertedPrice)
	}
	if items[0].ConvertedPrice.Formatted != "$20" {
		t.Errorf("Expected formatted '$20', got %s", items[0].ConvertedPrice.Formatted)
	}
	if items[2].ConvertedPrice != nil {
		t.Errorf("Expected no converted price for unpriced item")
	}
}

func TestListItems_DateOrderAndDefaultCurrency(t *testing.T) {
	f := newItemFixture()
	f.addItem("first", "2", "USD")
	f.addItem("second", "", "USD")

	items, err := f.service.ListItems(context.Background(), f.user.ID, f.wishlist.ID, ListItemsInput{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := titles(items); got != "second,first" {
		t.Errorf("Expected newest first, got %s", got)
	}
	if items[1].ConvertedPrice == nil || items[1].ConvertedPrice.Currency != "EUR" {
		t.Errorf("Expected conversion into preferred EUR, got %+v", items[1].ConvertedPrice)
	}

	items, _ = f.service.ListItems(context.Background(), f.user.ID, f.wishlist.ID, ListItemsInput{Sort: "date-asc"})
	if got := titles(items); got != "first,second" {
		t.Errorf("Expected oldest first, got %s", got)
	}
}

func TestListItems_RatesUnavailable(t *testing.T) {
	f := newItemFixture()
	f.rates.err = errors.New("upstream down")
	f.addItem("a", "5", "USD")
	f.addItem("b", "1", "EUR")

	items, err := f.service.ListItems(context.Background(), f.user.ID, f.wishlist.ID, ListItemsInput{Sort: "price-asc", Currency: "EUR"})
	if err != nil {
		t.Fatalf("Expected listing to succeed without rates, got %v", err)
	}
	if got := titles(items); got != "b,a" {
		t.Errorf("Expected convertible price first, got %s", got)
	}
	if items[1].ConvertedPrice != nil {
		t.Errorf("Expected failed conversion to leave convertedPrice empty")
	}
}

func TestListItems_InvalidOptions(t *testing.T) {
	f := newItemFixture()

	if _, err := f.service.ListItems(context.Background(), f.user.ID, f.wishlist.ID, ListItemsInput{Sort: "name"}); !errors.Is(err, domain.ErrInvalidSort) {
		t.Errorf("Expected ErrInvalidSort, got %v", err)
	}
	if _, err := f.service.ListItems(context.Background(), f.user.ID, f.wishlist.ID, ListItemsInput{Currency: "XYZ"}); !errors.Is(err, domain.ErrUnsupportedCurrency) {
		t.Errorf("Expected ErrUnsupportedCurrency, got %v", err)
	}
}

func TestListItems_IncludesNotes(t *testing.T) {
	f := newItemFixture()
	item := f.addItem("a", "", "USD")
	f.notes.Create(context.Background(), &domain.Note{ItemID: item.ID, Content: "**bold**"})

	items, err := f.service.ListItems(context.Background(), f.user.ID, f.wishlist.ID, ListItemsInput{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(items[0].Notes) != 1 {
		t.Fatalf("Expected 1 note, got %d", len(items[0].Notes))
	}
	if !strings.Contains(items[0].Notes[0].ContentHTML, "<strong>bold</strong>") {
		t.Errorf("Expected rendered markdown, got %s", items[0].Notes[0].ContentHTML)
	}
}

func TestUpdateItem_PartialUpdate(t *testing.T) {
	f := newItemFixture()
	item := f.addItem("Keyboard", "50", "USD")
	title := "Mechanical keyboard"

	updated, err := f.service.UpdateItem(context.Background(), f.user.ID, item.ID, UpdateItemInput{Title: &title})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Title != title {
		t.Errorf("Expected title updated, got '%s'", updated.Title)
	}
	if updated.Price == nil || !updated.Price.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Expected price unchanged, got %v", updated.Price)
	}

	updated, err = f.service.UpdateItem(context.Background(), f.user.ID, item.ID, UpdateItemInput{ClearPrice: true})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Price != nil {
		t.Errorf("Expected price cleared, got %v", updated.Price)
	}
}

func TestUpdateItem_CompletionRecordsActivity(t *testing.T) {
	f := newItemFixture()
	item := f.addItem("Book", "", "USD")
	done := true

	if _, err := f.service.UpdateItem(context.Background(), f.user.ID, item.ID, UpdateItemInput{Completed: &done}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := f.service.UpdateItem(context.Background(), f.user.ID, item.ID, UpdateItemInput{Completed: &done}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	types := f.activities.Types()
	if len(types) != 2 || types[0] != domain.ActivityItemCompleted || types[1] != domain.ActivityItemUpdated {
		t.Errorf("Expected item_completed then item_updated, got %v", types)
	}
}

func TestUpdateItem_NotOwner(t *testing.T) {
	f := newItemFixture()
	item := f.addItem("Book", "", "USD")
	title := "x"

	_, err := f.service.UpdateItem(context.Background(), uuid.New(), item.ID, UpdateItemInput{Title: &title})
	if !errors.Is(err, domain.ErrWishItemNotFound) {
		t.Fatalf("Expected ErrWishItemNotFound, got %v", err)
	}
}

func TestMoveItem(t *testing.T) {
	f := newItemFixture()
	item := f.addItem("Lamp", "", "USD")
	target := &domain.Wishlist{UserID: f.user.ID, Title: "Home"}
	f.wishlists.AddWishlist(target)
	foreign := &domain.Wishlist{UserID: uuid.New(), Title: "Theirs"}
	f.wishlists.AddWishlist(foreign)

	moved, err := f.service.MoveItem(context.Background(), f.user.ID, item.ID, target.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if moved.WishlistID != target.ID {
		t.Errorf("Expected item in target wishlist, got %s", moved.WishlistID)
	}

	if _, err := f.service.MoveItem(context.Background(), f.user.ID, item.ID, foreign.ID); !errors.Is(err, domain.ErrWishlistNotFound) {
		t.Errorf("Expected ErrWishlistNotFound for foreign target, got %v", err)
	}
}

func TestSetAndRemoveImage(t *testing.T) {
	f := newItemFixture()
	item := f.addItem("Camera", "", "USD")
	data, filename := createTestImage(400, 300, "png")

	withImage, err := f.service.SetImage(context.Background(), f.user.ID, item.ID, data, filename)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if withImage.Image == nil || !strings.Contains(withImage.Image.Thumbnail, "_thumb.jpg") {
		t.Fatalf("Expected presigned thumbnail URL, got %+v", withImage.Image)
	}
	prefix := "users/" + f.user.ID.String() + "/items/" + item.ID.String()
	if paths := f.storage.Paths(prefix); len(paths) != 3 {
		t.Fatalf("Expected 3 stored variants, got %v", paths)
	}

	// replacing the image removes the old variants
	if _, err := f.service.SetImage(context.Background(), f.user.ID, item.ID, data, filename); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if paths := f.storage.Paths(prefix); len(paths) != 3 {
		t.Errorf("Expected old variants replaced, got %v", paths)
	}

	cleared, err := f.service.RemoveImage(context.Background(), f.user.ID, item.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cleared.Image != nil {
		t.Errorf("Expected image cleared, got %+v", cleared.Image)
	}
	if paths := f.storage.Paths(prefix); len(paths) != 0 {
		t.Errorf("Expected variants deleted, got %v", paths)
	}
}

func TestSetImage_StorageDisabled(t *testing.T) {
	f := newItemFixture()
	f.service.images = NewImageService(nil)
	item := f.addItem("Camera", "", "USD")
	data, filename := createTestImage(400, 300, "png")

	_, err := f.service.SetImage(context.Background(), f.user.ID, item.ID, data, filename)
	if !errors.Is(err, ErrImageStorageNotConfigured) {
		t.Fatalf("Expected ErrImageStorageNotConfigured, got %v", err)
	}
}

func TestDeleteItem_CascadesNotesAndImage(t *testing.T) {
	f := newItemFixture()
	item := f.addItem("Camera", "", "USD")
	data, filename := createTestImage(400, 300, "png")
	if _, err := f.service.SetImage(context.Background(), f.user.ID, item.ID, data, filename); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	f.notes.Create(context.Background(), &domain.Note{ItemID: item.ID, Content: "note"})

	if err := f.service.DeleteItem(context.Background(), f.user.ID, item.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(f.items.Items) != 0 || len(f.notes.Notes) != 0 {
		t.Errorf("Expected item and notes deleted")
	}
	if len(f.storage.Objects) != 0 {
		t.Errorf("Expected image variants deleted, got %d objects", len(f.storage.Objects))
	}
	last := f.publisher.events[len(f.publisher.events)-1]
	if last.Type != "item.deleted" {
		t.Errorf("Expected item.deleted event, got %s", last.Type)
	}
}

func TestDeleteItem_StorageFailureDoesNotFailDelete(t *testing.T) {
	f := newItemFixture()
	item := f.addItem("Camera", "", "USD")
	data, filename := createTestImage(400, 300, "png")
	if _, err := f.service.SetImage(context.Background(), f.user.ID, item.ID, data, filename); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	f.storage.DeleteErr = errors.New("bucket unavailable")

	if err := f.service.DeleteItem(context.Background(), f.user.ID, item.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(f.items.Items) != 0 {
		t.Errorf("Expected item deleted")
	}
	if f.storage.DeleteManyCalls != 1 {
		t.Errorf("Expected 1 batch delete attempt, got %d", f.storage.DeleteManyCalls)
	}
}
