package handler

import (
	"bytes"
	"encoding/base64"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dafibh/wishflow/wishflow-backend/internal/client/httpclient"
	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/dafibh/wishflow/wishflow-backend/internal/middleware"
	"github.com/dafibh/wishflow/wishflow-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItemHandler(f *appFixture) *WishItemHandler {
	cfg := service.PreviewClientConfig()
	cfg.BlockPrivateNetworks = false
	preview := service.NewLinkPreviewService(httpclient.New(cfg))
	return NewWishItemHandler(f.itemService, preview)
}

func TestCreateItem_PriceAsString(t *testing.T) {
	f := newAppFixture(false)
	h := newTestItemHandler(f)

	c, rec := newRequest(http.MethodPost, "/", `{"title":"Headphones","price":"199.999","currency":"eur","url":"https://shop.example.com/h"}`, f.user)
	withParams(c, "id", f.wishlist.ID.String())

	require.NoError(t, h.CreateItem(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	item := decodeBody[domain.ItemDetails](t, rec)
	assert.Equal(t, "Headphones", item.Title)
	assert.Equal(t, "EUR", item.Currency)
	require.NotNil(t, item.Price)
	assert.Equal(t, "200", item.Price.String())
	assert.Empty(t, item.Notes)
}

func TestCreateItem_DefaultsToPreferredCurrency(t *testing.T) {
	f := newAppFixture(false)
	f.user.PreferredCurrency = "GBP"
	h := newTestItemHandler(f)

	c, rec := newRequest(http.MethodPost, "/", `{"title":"Book"}`, f.user)
	withParams(c, "id", f.wishlist.ID.String())

	require.NoError(t, h.CreateItem(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "GBP", decodeBody[domain.ItemDetails](t, rec).Currency)
}

func TestCreateItem_ValidationErrors(t *testing.T) {
	f := newAppFixture(false)
	h := newTestItemHandler(f)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"negative price", `{"title":"Book","price":-1}`, "price"},
		{"bad url", `{"title":"Book","url":"ftp://example.com"}`, "url"},
		{"unsupported currency", `{"title":"Book","currency":"XYZ"}`, "currency"},
		{"missing title", `{"title":""}`, "title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newRequest(http.MethodPost, "/", tt.body, f.user)
			withParams(c, "id", f.wishlist.ID.String())

			require.NoError(t, h.CreateItem(c))
			problem := assertProblem(t, rec, http.StatusBadRequest, ErrorTypeValidation)
			require.NotEmpty(t, problem.Errors)
			assert.Equal(t, tt.field, problem.Errors[0].Field)
		})
	}
}

func TestGetItems_ConvertsAndSorts(t *testing.T) {
	f := newAppFixture(false)
	f.addItem("Cheap", "10", "USD")
	f.addItem("Pricey", "30", "EUR")
	h := newTestItemHandler(f)

	c, rec := newRequest(http.MethodGet, "/?sort=price-desc&currency=USD", nil, f.user)
	withParams(c, "id", f.wishlist.ID.String())

	require.NoError(t, h.GetItems(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	items := decodeBody[[]domain.ItemDetails](t, rec)
	require.Len(t, items, 2)
	assert.Equal(t, "Pricey", items[0].Title)
	require.NotNil(t, items[0].ConvertedPrice)
	assert.Equal(t, "60.00", items[0].ConvertedPrice.Amount)
}

func TestGetItems_InvalidSort(t *testing.T) {
	f := newAppFixture(false)
	h := newTestItemHandler(f)

	c, rec := newRequest(http.MethodGet, "/?sort=random", nil, f.user)
	withParams(c, "id", f.wishlist.ID.String())

	require.NoError(t, h.GetItems(c))
	assertProblem(t, rec, http.StatusBadRequest, ErrorTypeValidation)
}

func TestUpdateItem_NullPriceClears(t *testing.T) {
	f := newAppFixture(false)
	item := f.addItem("Camera", "100", "USD")
	h := newTestItemHandler(f)

	c, rec := newRequest(http.MethodPatch, "/", `{"price":null,"completed":true}`, f.user)
	withParams(c, "id", item.ID.String())

	require.NoError(t, h.UpdateItem(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decodeBody[domain.ItemDetails](t, rec)
	assert.Nil(t, updated.Price)
	assert.True(t, updated.Completed)
	assert.Equal(t, "Camera", updated.Title)
}

func TestUpdateItem_AbsentPriceKeeps(t *testing.T) {
	f := newAppFixture(false)
	item := f.addItem("Camera", "100", "USD")
	h := newTestItemHandler(f)

	c, rec := newRequest(http.MethodPatch, "/", `{"title":"Film camera"}`, f.user)
	withParams(c, "id", item.ID.String())

	require.NoError(t, h.UpdateItem(c))
	updated := decodeBody[domain.ItemDetails](t, rec)
	require.NotNil(t, updated.Price)
	assert.Equal(t, "100", updated.Price.String())
	assert.Equal(t, "Film camera", updated.Title)
}

func TestUpdateItem_InvalidPrice(t *testing.T) {
	f := newAppFixture(false)
	item := f.addItem("Camera", "100", "USD")
	h := newTestItemHandler(f)

	c, rec := newRequest(http.MethodPatch, "/", `{"price":"lots"}`, f.user)
	withParams(c, "id", item.ID.String())

	require.NoError(t, h.UpdateItem(c))
	problem := assertProblem(t, rec, http.StatusBadRequest, ErrorTypeValidation)
	assert.Equal(t, "price", problem.Errors[0].Field)
}

func TestMoveItem(t *testing.T) {
	f := newAppFixture(false)
	item := f.addItem("Camera", "100", "USD")
	target := &domain.Wishlist{UserID: f.user.ID, Title: "Later", CategoryID: 1}
	f.wishlists.AddWishlist(target)
	h := newTestItemHandler(f)

	c, rec := newRequest(http.MethodPost, "/", map[string]string{"wishlistId": target.ID.String()}, f.user)
	withParams(c, "id", item.ID.String())

	require.NoError(t, h.MoveItem(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, target.ID, decodeBody[domain.ItemDetails](t, rec).WishlistID)
}

func TestDeleteItem_NotFound(t *testing.T) {
	f := newAppFixture(false)
	item := f.addItem("Camera", "100", "USD")
	h := newTestItemHandler(f)

	c, rec := newRequest(http.MethodDelete, "/", nil, f.user)
	withParams(c, "id", item.ID.String())
	require.NoError(t, h.DeleteItem(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newRequest(http.MethodDelete, "/", nil, f.user)
	withParams(c, "id", item.ID.String())
	require.NoError(t, h.DeleteItem(c))
	assertProblem(t, rec, http.StatusNotFound, ErrorTypeNotFound)
}

func TestSetImage_DataURL(t *testing.T) {
	f := newAppFixture(true)
	item := f.addItem("Camera", "100", "USD")
	h := newTestItemHandler(f)

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(testPNG(t, 120, 80))
	c, rec := newRequest(http.MethodPut, "/", SetImageRequest{Image: dataURL}, f.user)
	withParams(c, "id", item.ID.String())

	require.NoError(t, h.SetImage(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decodeBody[domain.ItemDetails](t, rec)
	require.NotNil(t, updated.Image)
	assert.NotEmpty(t, updated.Image.Thumbnail)
	assert.Len(t, f.storage.Paths(""), 3)
}

func TestSetImage_Multipart(t *testing.T) {
	f := newAppFixture(true)
	item := f.addItem("Camera", "100", "USD")
	h := newTestItemHandler(f)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(testPNG(t, 64, 64))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetAuthContext(c, f.user, nil)
	withParams(c, "id", item.ID.String())

	require.NoError(t, h.SetImage(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotNil(t, decodeBody[domain.ItemDetails](t, rec).Image)
}

func TestSetImage_TooSmall(t *testing.T) {
	f := newAppFixture(true)
	item := f.addItem("Camera", "100", "USD")
	h := newTestItemHandler(f)

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(testPNG(t, 20, 20))
	c, rec := newRequest(http.MethodPut, "/", SetImageRequest{Image: dataURL}, f.user)
	withParams(c, "id", item.ID.String())

	require.NoError(t, h.SetImage(c))
	problem := assertProblem(t, rec, http.StatusBadRequest, ErrorTypeValidation)
	assert.Equal(t, "image", problem.Errors[0].Field)
}

func TestSetImage_StorageDisabled(t *testing.T) {
	f := newAppFixture(false)
	item := f.addItem("Camera", "100", "USD")
	h := newTestItemHandler(f)

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(testPNG(t, 120, 80))
	c, rec := newRequest(http.MethodPut, "/", SetImageRequest{Image: dataURL}, f.user)
	withParams(c, "id", item.ID.String())

	require.NoError(t, h.SetImage(c))
	assertProblem(t, rec, http.StatusServiceUnavailable, ErrorTypeUnavailable)
}

func TestRemoveImage(t *testing.T) {
	f := newAppFixture(true)
	item := f.addItem("Camera", "100", "USD")
	h := newTestItemHandler(f)

	_, err := f.itemService.SetImage(t.Context(), f.user.ID, item.ID, testPNG(t, 60, 60), "a.png")
	require.NoError(t, err)

	c, rec := newRequest(http.MethodDelete, "/", nil, f.user)
	withParams(c, "id", item.ID.String())

	require.NoError(t, h.RemoveImage(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Nil(t, decodeBody[domain.ItemDetails](t, rec).Image)
	assert.Empty(t, f.storage.Paths(""))
}

func TestPreviewLink(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head>
			<meta property="og:title" content="Espresso Machine">
			<meta property="product:price:amount" content="349.00">
			<meta property="product:price:currency" content="USD">
		</head></html>`))
	}))
	defer page.Close()

	f := newAppFixture(false)
	h := newTestItemHandler(f)

	c, rec := newRequest(http.MethodPost, "/api/v1/items/preview", PreviewRequest{URL: page.URL + "/espresso"}, f.user)
	require.NoError(t, h.PreviewLink(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	preview := decodeBody[domain.LinkPreview](t, rec)
	assert.Equal(t, "Espresso Machine", preview.Title)

	c, rec = newRequest(http.MethodPost, "/api/v1/items/preview", PreviewRequest{URL: page.URL + "/broken"}, f.user)
	require.NoError(t, h.PreviewLink(c))
	assertProblem(t, rec, http.StatusBadGateway, ErrorTypeBadGateway)

	c, rec = newRequest(http.MethodPost, "/api/v1/items/preview", PreviewRequest{URL: "javascript:alert(1)"}, f.user)
	require.NoError(t, h.PreviewLink(c))
	assertProblem(t, rec, http.StatusBadRequest, ErrorTypeValidation)
}
