package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/google/uuid"
)

var (
	clockMu sync.Mutex
	clock   = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
)

// Now returns a strictly increasing timestamp so ordering in mocks is deterministic
func Now() time.Time {
	clockMu.Lock()
	defer clockMu.Unlock()
	clock = clock.Add(time.Second)
	return clock
}

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	ByID map[uuid.UUID]*domain.User
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{ByID: make(map[uuid.UUID]*domain.User)}
}

// AddUser adds a user directly to the mock
func (m *MockUserRepository) AddUser(user *domain.User) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.PreferredCurrency == "" {
		user.PreferredCurrency = domain.DefaultCurrency
	}
	m.ByID[user.ID] = user
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range m.ByID {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error) {
	for _, user := range m.ByID {
		if user.Auth0ID != nil && *user.Auth0ID == auth0ID {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if _, err := m.GetByEmail(ctx, user.Email); err == nil {
		return nil, domain.ErrEmailTaken
	}
	user.ID = uuid.New()
	user.CreatedAt = Now()
	user.UpdatedAt = user.CreatedAt
	if user.PreferredCurrency == "" {
		user.PreferredCurrency = domain.DefaultCurrency
	}
	m.ByID[user.ID] = user
	return user, nil
}

func (m *MockUserRepository) UpdateSettings(ctx context.Context, id uuid.UUID, name, email, preferredCurrency string) (*domain.User, error) {
	user, ok := m.ByID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if other, err := m.GetByEmail(ctx, email); err == nil && other.ID != id {
		return nil, domain.ErrEmailTaken
	}
	user.Name = name
	user.Email = email
	user.PreferredCurrency = preferredCurrency
	user.UpdatedAt = Now()
	return user, nil
}

func (m *MockUserRepository) LinkAuth0ID(ctx context.Context, id uuid.UUID, auth0ID string) (*domain.User, error) {
	user, ok := m.ByID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.Auth0ID = &auth0ID
	return user, nil
}

// MockSessionRepository is a mock implementation of domain.SessionRepository
type MockSessionRepository struct {
	mu       sync.Mutex
	Sessions map[string]*domain.Session
}

// NewMockSessionRepository creates a new MockSessionRepository
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{Sessions: make(map[string]*domain.Session)}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sessions[session.Token] = session
	return nil
}

func (m *MockSessionRepository) Get(ctx context.Context, token string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.Sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if !session.ExpiresAt.IsZero() && time.Now().After(session.ExpiresAt) {
		delete(m.Sessions, token)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (m *MockSessionRepository) Touch(ctx context.Context, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.Sessions[token]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.ExpiresAt = time.Now().Add(ttl)
	return nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Sessions, token)
	return nil
}

func (m *MockSessionRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, session := range m.Sessions {
		if session.UserID == userID {
			delete(m.Sessions, token)
		}
	}
	return nil
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository.
// It starts with the shared default category (ID 1).
type MockCategoryRepository struct {
	Categories map[int32]*domain.Category
	Wishlists  *MockWishlistRepository
	nextID     int32
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository(wishlists *MockWishlistRepository) *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: map[int32]*domain.Category{
			1: {ID: 1, Name: "General", IsDefault: true, CreatedAt: Now()},
		},
		Wishlists: wishlists,
		nextID:    2,
	}
}

func (m *MockCategoryRepository) visible(userID uuid.UUID, c *domain.Category) bool {
	return c.IsDefault || (c.UserID != nil && *c.UserID == userID)
}

func (m *MockCategoryRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	var result []*domain.Category
	for _, c := range m.Categories {
		if m.visible(userID, c) {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, userID uuid.UUID, id int32) (*domain.Category, error) {
	if c, ok := m.Categories[id]; ok && m.visible(userID, c) {
		return c, nil
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) GetDefault(ctx context.Context) (*domain.Category, error) {
	for _, c := range m.Categories {
		if c.IsDefault {
			return c, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	category.ID = m.nextID
	m.nextID++
	category.CreatedAt = Now()
	m.Categories[category.ID] = category
	return category, nil
}

func (m *MockCategoryRepository) DeleteAndReassign(ctx context.Context, userID uuid.UUID, id int32, defaultID int32) error {
	c, ok := m.Categories[id]
	if !ok || c.IsDefault || c.UserID == nil || *c.UserID != userID {
		return domain.ErrCategoryNotFound
	}
	if m.Wishlists != nil {
		for _, w := range m.Wishlists.Wishlists {
			if w.CategoryID == id {
				w.CategoryID = defaultID
			}
		}
	}
	delete(m.Categories, id)
	return nil
}

// MockWishlistRepository is a mock implementation of domain.WishlistRepository
type MockWishlistRepository struct {
	Wishlists map[uuid.UUID]*domain.Wishlist
	Users     *MockUserRepository
	Items     *MockWishItemRepository
	ListErr   error
}

// NewMockWishlistRepository creates a new MockWishlistRepository
func NewMockWishlistRepository() *MockWishlistRepository {
	return &MockWishlistRepository{Wishlists: make(map[uuid.UUID]*domain.Wishlist)}
}

// AddWishlist adds a wishlist directly to the mock
func (m *MockWishlistRepository) AddWishlist(wishlist *domain.Wishlist) {
	if wishlist.ID == uuid.Nil {
		wishlist.ID = uuid.New()
	}
	if wishlist.CreatedAt.IsZero() {
		wishlist.CreatedAt = Now()
		wishlist.UpdatedAt = wishlist.CreatedAt
	}
	m.Wishlists[wishlist.ID] = wishlist
}

func (m *MockWishlistRepository) Create(ctx context.Context, wishlist *domain.Wishlist) (*domain.Wishlist, error) {
	wishlist.ID = uuid.New()
	wishlist.CreatedAt = Now()
	wishlist.UpdatedAt = wishlist.CreatedAt
	m.Wishlists[wishlist.ID] = wishlist
	return wishlist, nil
}

func (m *MockWishlistRepository) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*domain.Wishlist, error) {
	if w, ok := m.Wishlists[id]; ok && w.UserID == userID {
		return w, nil
	}
	return nil, domain.ErrWishlistNotFound
}

func (m *MockWishlistRepository) GetAnyByID(ctx context.Context, id uuid.UUID) (*domain.Wishlist, error) {
	if w, ok := m.Wishlists[id]; ok {
		return w, nil
	}
	return nil, domain.ErrWishlistNotFound
}

func (m *MockWishlistRepository) itemCount(id uuid.UUID) int {
	if m.Items == nil {
		return 0
	}
	count := 0
	for _, item := range m.Items.Items {
		if item.WishlistID == id {
			count++
		}
	}
	return count
}

func (m *MockWishlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WishlistWithStats, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var result []*domain.WishlistWithStats
	for _, w := range m.Wishlists {
		if w.UserID == userID {
			result = append(result, &domain.WishlistWithStats{Wishlist: *w, ItemCount: m.itemCount(w.ID)})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *MockWishlistRepository) ListPublic(ctx context.Context) ([]*domain.PublicWishlist, error) {
	var result []*domain.PublicWishlist
	for _, w := range m.Wishlists {
		if w.IsPrivate {
			continue
		}
		entry := &domain.PublicWishlist{Wishlist: *w, ItemCount: m.itemCount(w.ID)}
		if m.Users != nil {
			if owner, ok := m.Users.ByID[w.UserID]; ok {
				entry.OwnerName = owner.Name
			}
		}
		result = append(result, entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *MockWishlistRepository) Update(ctx context.Context, wishlist *domain.Wishlist) (*domain.Wishlist, error) {
	existing, ok := m.Wishlists[wishlist.ID]
	if !ok || existing.UserID != wishlist.UserID {
		return nil, domain.ErrWishlistNotFound
	}
	wishlist.UpdatedAt = Now()
	m.Wishlists[wishlist.ID] = wishlist
	return wishlist, nil
}

func (m *MockWishlistRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	w, ok := m.Wishlists[id]
	if !ok || w.UserID != userID {
		return domain.ErrWishlistNotFound
	}
	delete(m.Wishlists, id)
	if m.Items != nil {
		for itemID, item := range m.Items.Items {
			if item.WishlistID == id {
				m.Items.deleteCascade(itemID)
			}
		}
	}
	return nil
}

// MockWishItemRepository is a mock implementation of domain.WishItemRepository
type MockWishItemRepository struct {
	Items     map[uuid.UUID]*domain.WishItem
	Wishlists *MockWishlistRepository
	Notes     *MockNoteRepository
}

// NewMockWishItemRepository creates a new MockWishItemRepository linked to its wishlists
func NewMockWishItemRepository(wishlists *MockWishlistRepository) *MockWishItemRepository {
	m := &MockWishItemRepository{Items: make(map[uuid.UUID]*domain.WishItem), Wishlists: wishlists}
	wishlists.Items = m
	return m
}

// AddItem adds an item directly to the mock
func (m *MockWishItemRepository) AddItem(item *domain.WishItem) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = Now()
		item.UpdatedAt = item.CreatedAt
	}
	if item.Currency == "" {
		item.Currency = domain.DefaultCurrency
	}
	m.Items[item.ID] = item
}

func (m *MockWishItemRepository) ownerOf(item *domain.WishItem) uuid.UUID {
	if w, ok := m.Wishlists.Wishlists[item.WishlistID]; ok {
		return w.UserID
	}
	return uuid.Nil
}

func (m *MockWishItemRepository) deleteCascade(id uuid.UUID) {
	delete(m.Items, id)
	if m.Notes != nil {
		for noteID, note := range m.Notes.Notes {
			if note.ItemID == id {
				delete(m.Notes.Notes, noteID)
			}
		}
	}
}

func (m *MockWishItemRepository) Create(ctx context.Context, item *domain.WishItem) (*domain.WishItem, error) {
	item.ID = uuid.New()
	item.CreatedAt = Now()
	item.UpdatedAt = item.CreatedAt
	m.Items[item.ID] = item
	return item, nil
}

func (m *MockWishItemRepository) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*domain.WishItem, error) {
	if item, ok := m.Items[id]; ok && m.ownerOf(item) == userID {
		return item, nil
	}
	return nil, domain.ErrWishItemNotFound
}

func (m *MockWishItemRepository) sorted(filter func(*domain.WishItem) bool) []*domain.WishItem {
	var result []*domain.WishItem
	for _, item := range m.Items {
		if filter(item) {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

func (m *MockWishItemRepository) ListByWishlist(ctx context.Context, wishlistID uuid.UUID) ([]*domain.WishItem, error) {
	return m.sorted(func(item *domain.WishItem) bool { return item.WishlistID == wishlistID }), nil
}

func (m *MockWishItemRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WishItem, error) {
	return m.sorted(func(item *domain.WishItem) bool { return m.ownerOf(item) == userID }), nil
}

func (m *MockWishItemRepository) ListRecentlyUpdated(ctx context.Context, userID uuid.UUID, limit int32) ([]*domain.RecentItem, error) {
	items, _ := m.ListByUser(ctx, userID)
	sort.Slice(items, func(i, j int) bool { return items[i].UpdatedAt.After(items[j].UpdatedAt) })
	if int(limit) < len(items) {
		items = items[:limit]
	}
	result := make([]*domain.RecentItem, 0, len(items))
	for _, item := range items {
		recent := &domain.RecentItem{WishItem: *item}
		if w, ok := m.Wishlists.Wishlists[item.WishlistID]; ok {
			recent.WishlistTitle = w.Title
		}
		if m.Notes != nil {
			for _, note := range m.Notes.Notes {
				if note.ItemID == item.ID {
					recent.NoteCount++
				}
			}
		}
		result = append(result, recent)
	}
	return result, nil
}

func (m *MockWishItemRepository) ListImagePathsByWishlist(ctx context.Context, wishlistID uuid.UUID) ([]string, error) {
	var paths []string
	for _, item := range m.Items {
		if item.WishlistID == wishlistID && item.ImagePath != nil {
			paths = append(paths, *item.ImagePath)
		}
	}
	return paths, nil
}

func (m *MockWishItemRepository) Update(ctx context.Context, item *domain.WishItem) (*domain.WishItem, error) {
	if _, ok := m.Items[item.ID]; !ok {
		return nil, domain.ErrWishItemNotFound
	}
	item.UpdatedAt = Now()
	m.Items[item.ID] = item
	return item, nil
}

func (m *MockWishItemRepository) SetImagePath(ctx context.Context, id uuid.UUID, imagePath *string) (*domain.WishItem, error) {
	item, ok := m.Items[id]
	if !ok {
		return nil, domain.ErrWishItemNotFound
	}
	item.ImagePath = imagePath
	item.UpdatedAt = Now()
	return item, nil
}

func (m *MockWishItemRepository) Move(ctx context.Context, id uuid.UUID, targetWishlistID uuid.UUID) (*domain.WishItem, error) {
	item, ok := m.Items[id]
	if !ok {
		return nil, domain.ErrWishItemNotFound
	}
	item.WishlistID = targetWishlistID
	item.UpdatedAt = Now()
	return item, nil
}

func (m *MockWishItemRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	item, ok := m.Items[id]
	if !ok || m.ownerOf(item) != userID {
		return domain.ErrWishItemNotFound
	}
	m.deleteCascade(id)
	return nil
}

// MockNoteRepository is a mock implementation of domain.NoteRepository
type MockNoteRepository struct {
	Notes map[uuid.UUID]*domain.Note
	Items *MockWishItemRepository
}

// NewMockNoteRepository creates a new MockNoteRepository linked to its items
func NewMockNoteRepository(items *MockWishItemRepository) *MockNoteRepository {
	m := &MockNoteRepository{Notes: make(map[uuid.UUID]*domain.Note), Items: items}
	items.Notes = m
	return m
}

func (m *MockNoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	note.ID = uuid.New()
	note.CreatedAt = Now()
	note.UpdatedAt = note.CreatedAt
	m.Notes[note.ID] = note
	return note, nil
}

func (m *MockNoteRepository) list(filter func(*domain.Note) bool) []*domain.Note {
	var result []*domain.Note
	for _, note := range m.Notes {
		if filter(note) {
			result = append(result, note)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

func (m *MockNoteRepository) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*domain.Note, error) {
	return m.list(func(n *domain.Note) bool { return n.ItemID == itemID }), nil
}

func (m *MockNoteRepository) ListByWishlist(ctx context.Context, wishlistID uuid.UUID) ([]*domain.Note, error) {
	return m.list(func(n *domain.Note) bool {
		item, ok := m.Items.Items[n.ItemID]
		return ok && item.WishlistID == wishlistID
	}), nil
}

func (m *MockNoteRepository) Update(ctx context.Context, itemID uuid.UUID, id uuid.UUID, content string) (*domain.Note, error) {
	note, ok := m.Notes[id]
	if !ok || note.ItemID != itemID {
		return nil, domain.ErrNoteNotFound
	}
	note.Content = content
	note.UpdatedAt = Now()
	return note, nil
}

func (m *MockNoteRepository) Delete(ctx context.Context, itemID uuid.UUID, id uuid.UUID) error {
	note, ok := m.Notes[id]
	if !ok || note.ItemID != itemID {
		return domain.ErrNoteNotFound
	}
	delete(m.Notes, id)
	return nil
}

// MockActivityRepository is a mock implementation of domain.ActivityRepository
type MockActivityRepository struct {
	mu         sync.Mutex
	Activities []*domain.Activity
	Wishlists  *MockWishlistRepository
}

// NewMockActivityRepository creates a new MockActivityRepository
func NewMockActivityRepository(wishlists *MockWishlistRepository) *MockActivityRepository {
	return &MockActivityRepository{Wishlists: wishlists}
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	activity.ID = uuid.New()
	activity.CreatedAt = Now()
	m.Activities = append(m.Activities, activity)
	return nil
}

func (m *MockActivityRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int32) ([]*domain.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Activity
	for i := len(m.Activities) - 1; i >= 0 && len(result) < int(limit); i-- {
		a := m.Activities[i]
		if a.UserID != userID {
			continue
		}
		if a.WishlistID != nil && m.Wishlists != nil {
			if w, ok := m.Wishlists.Wishlists[*a.WishlistID]; ok {
				title := w.Title
				a.WishlistTitle = &title
			}
		}
		result = append(result, a)
	}
	return result, nil
}

// Types returns the recorded activity types in insertion order
func (m *MockActivityRepository) Types() []domain.ActivityType {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]domain.ActivityType, len(m.Activities))
	for i, a := range m.Activities {
		types[i] = a.Type
	}
	return types
}

// MockImageStorage is an in-memory implementation of storage.ImageRepository
type MockImageStorage struct {
	mu        sync.Mutex
	Objects   map[string][]byte
	UploadErr error
	DeleteErr error
	// DeleteManyCalls counts batch deletes
	DeleteManyCalls int
}

// NewMockImageStorage creates a new MockImageStorage
func NewMockImageStorage() *MockImageStorage {
	return &MockImageStorage{Objects: make(map[string][]byte)}
}

func (m *MockImageStorage) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, data); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[objectPath] = buf.Bytes()
	return objectPath, nil
}

func (m *MockImageStorage) Delete(ctx context.Context, objectPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, objectPath)
	return nil
}

func (m *MockImageStorage) DeleteMany(ctx context.Context, objectPaths []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteManyCalls++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for _, p := range objectPaths {
		delete(m.Objects, p)
	}
	return nil
}

func (m *MockImageStorage) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.test/%s?expires=%d", objectPath, int(expiry.Seconds())), nil
}

// Paths returns stored object paths with the given prefix
func (m *MockImageStorage) Paths(prefix string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var paths []string
	for p := range m.Objects {
		if strings.HasPrefix(p, prefix) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}
