package service

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/dafibh/wishflow/wishflow-backend/internal/client/httpclient"
	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	previewTimeout  = 10 * time.Second
	previewMaxBytes = 2 << 20
)

// PreviewClientConfig is the outbound configuration for fetching product pages
func PreviewClientConfig() httpclient.Config {
	cfg := httpclient.DefaultConfig("link_preview")
	cfg.Timeout = previewTimeout
	cfg.MaxBodyBytes = previewMaxBytes
	cfg.BlockPrivateNetworks = true
	return cfg
}

// LinkPreviewService scrapes OpenGraph metadata from product pages
type LinkPreviewService struct {
	http *httpclient.Client
}

// NewLinkPreviewService creates a new LinkPreviewService
func NewLinkPreviewService(http *httpclient.Client) *LinkPreviewService {
	return &LinkPreviewService{http: http}
}

// Preview fetches rawURL and extracts title, description, image and
// product price for pre-filling an item
func (s *LinkPreviewService) Preview(ctx context.Context, rawURL string) (*domain.LinkPreview, error) {
	rawURL = strings.TrimSpace(rawURL)
	if !domain.IsHTTPURL(rawURL) {
		return nil, domain.ErrWishItemInvalidURL
	}
	pageURL, _ := url.Parse(rawURL)

	resp, err := s.http.Get(ctx, rawURL, nil)
	if err != nil {
		log.Warn().Err(err).Str("url", rawURL).Msg("Link preview fetch failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrPreviewUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: upstream status %d", domain.ErrPreviewUnavailable, resp.StatusCode)
	}

	body, err := s.http.ReadBody(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPreviewUnavailable, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPreviewUnavailable, err)
	}

	return extractPreview(doc, pageURL), nil
}

func extractPreview(doc *goquery.Document, pageURL *url.URL) *domain.LinkPreview {
	preview := &domain.LinkPreview{
		URL:         pageURL.String(),
		Title:       metaContent(doc, "og:title", "twitter:title"),
		Description: metaContent(doc, "og:description", "twitter:description", "description"),
		SiteName:    metaContent(doc, "og:site_name"),
	}
	if preview.Title == "" {
		preview.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	preview.Title = truncateRunes(preview.Title, domain.MaxTitleLength)

	if image := metaContent(doc, "og:image", "og:image:url", "twitter:image"); image != "" {
		if ref, err := url.Parse(image); err == nil {
			resolved := pageURL.ResolveReference(ref)
			if resolved.Scheme == "http" || resolved.Scheme == "https" {
				preview.ImageURL = resolved.String()
			}
		}
	}

	if amount := metaContent(doc, "product:price:amount", "og:price:amount"); amount != "" {
		if price, err := decimal.NewFromString(strings.ReplaceAll(amount, ",", "")); err == nil && !price.IsNegative() {
			p := price.StringFixed(2)
			preview.Price = &p
		}
	}
	currency := strings.ToUpper(metaContent(doc, "product:price:currency", "og:price:currency"))
	if domain.IsSupportedCurrency(currency) {
		preview.Currency = currency
	}

	return preview
}

// metaContent returns the first non-empty content of a meta tag matched by
// property or name, trying keys in order
func metaContent(doc *goquery.Document, keys ...string) string {
	for _, key := range keys {
		var value string
		doc.Find(fmt.Sprintf(`meta[property=%q], meta[name=%q]`, key, key)).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			value = strings.TrimSpace(sel.AttrOr("content", ""))
			return value == ""
		})
		if value != "" {
			return value
		}
	}
	return ""
}

// truncateRunes cuts s to at most n characters without splitting one
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
