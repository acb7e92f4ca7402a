package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/dafibh/wishflow/wishflow-backend/internal/middleware"
	"github.com/dafibh/wishflow/wishflow-backend/internal/service"
	"github.com/dafibh/wishflow/wishflow-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// staticRates serves a fixed USD rate table, or err
type staticRates struct {
	err error
}

func (p *staticRates) FetchRates(ctx context.Context) (*domain.RateTable, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &domain.RateTable{Base: "USD", Rates: map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.RequireFromString("0.5"),
		"GBP": decimal.RequireFromString("0.8"),
	}}, nil
}

// appFixture wires real services over the in-memory repositories
type appFixture struct {
	users      *testutil.MockUserRepository
	sessions   *testutil.MockSessionRepository
	categories *testutil.MockCategoryRepository
	wishlists  *testutil.MockWishlistRepository
	items      *testutil.MockWishItemRepository
	notes      *testutil.MockNoteRepository
	activities *testutil.MockActivityRepository
	storage    *testutil.MockImageStorage
	rates      *staticRates

	auth       *service.AuthService
	currencies *service.CurrencyService
	sessionMW  *middleware.SessionAuthMiddleware

	wishlistService  *service.WishlistService
	itemService      *service.WishItemService
	noteService      *service.NoteService
	shareService     *service.ShareService
	dashboardService *service.DashboardService

	user     *domain.User
	wishlist *domain.Wishlist
}

func newAppFixture(withStorage bool) *appFixture {
	f := &appFixture{
		users:     testutil.NewMockUserRepository(),
		sessions:  testutil.NewMockSessionRepository(),
		wishlists: testutil.NewMockWishlistRepository(),
		storage:   testutil.NewMockImageStorage(),
		rates:     &staticRates{},
	}
	f.wishlists.Users = f.users
	f.items = testutil.NewMockWishItemRepository(f.wishlists)
	f.notes = testutil.NewMockNoteRepository(f.items)
	f.categories = testutil.NewMockCategoryRepository(f.wishlists)
	f.activities = testutil.NewMockActivityRepository(f.wishlists)

	images := service.NewImageService(nil)
	if withStorage {
		images = service.NewImageService(f.storage)
	}

	f.auth = service.NewAuthService(f.users, f.sessions, time.Hour)
	f.sessionMW = middleware.NewSessionAuthMiddleware(f.auth, nil, "wishflow_session")
	f.currencies = service.NewCurrencyService(f.rates, time.Hour)
	activities := service.NewActivityService(f.activities)
	categories := service.NewCategoryService(f.categories)

	f.wishlistService = service.NewWishlistService(f.wishlists, f.items, categories, activities, images)
	f.itemService = service.NewWishItemService(f.items, f.wishlists, f.notes, f.users, f.currencies, activities, images)
	f.noteService = service.NewNoteService(f.notes, f.items, activities)
	f.shareService = service.NewShareService(f.wishlists, f.items, f.notes, f.users, f.itemService)
	f.dashboardService = service.NewDashboardService(f.wishlists, f.items, f.users, f.currencies, activities)

	f.user = &domain.User{Name: "Alice", Email: "alice@example.com", PreferredCurrency: "USD"}
	f.users.AddUser(f.user)
	f.wishlist = &domain.Wishlist{UserID: f.user.ID, Title: "Gadgets", CategoryID: 1}
	f.wishlists.AddWishlist(f.wishlist)
	return f
}

func (f *appFixture) addItem(title, price, currency string) *domain.WishItem {
	item := &domain.WishItem{WishlistID: f.wishlist.ID, Title: title, Currency: currency}
	if price != "" {
		p := decimal.RequireFromString(price)
		item.Price = &p
	}
	f.items.AddItem(item)
	return item
}

// newRequest builds an echo context for the handler under test. A non-nil user
// is attached as the authenticated user.
func newRequest(method, target string, body any, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	e := echo.New()
	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		middleware.SetAuthContext(c, user, nil)
	}
	return c, rec
}

func withParams(c echo.Context, pairs ...string) echo.Context {
	var names, values []string
	for i := 0; i+1 < len(pairs); i += 2 {
		names = append(names, pairs[i])
		values = append(values, pairs[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("Failed to unmarshal response %q: %v", rec.Body.String(), err)
	}
	return v
}

func assertProblem(t *testing.T, rec *httptest.ResponseRecorder, status int, problemType string) ProblemDetails {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("Expected status %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	problem := decodeBody[ProblemDetails](t, rec)
	if problem.Type != problemType {
		t.Errorf("Expected problem type %s, got %s", problemType, problem.Type)
	}
	return problem
}

// testPNG encodes a solid w x h PNG
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}
