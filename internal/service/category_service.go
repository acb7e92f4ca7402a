package service

import (
	"context"
	"unicode/utf8"

	"github.com/dafibh/wishflow/wishflow-backend/internal/domain"
	"github.com/dafibh/wishflow/wishflow-backend/internal/util"
	"github.com/google/uuid"
)

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List returns the default category and the user's own, ordered by name
func (s *CategoryService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	return s.categoryRepo.List(ctx, userID)
}

// Create creates a category owned by the user
func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, name string) (*domain.Category, error) {
	name = util.StripTags(name)
	if name == "" {
		return nil, domain.ErrCategoryNameEmpty
	}
	if utf8.RuneCountInString(name) > domain.MaxCategoryNameLength {
		return nil, domain.ErrCategoryNameTooLong
	}

	owner := userID
	return s.categoryRepo.Create(ctx, &domain.Category{
		UserID: &owner,
		Name:   name,
	})
}

// Delete removes one of the user's categories. Its wishlists move to the
// default category.
func (s *CategoryService) Delete(ctx context.Context, userID uuid.UUID, id int32) error {
	category, err := s.categoryRepo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if category.IsDefault {
		return domain.ErrCannotDeleteDefaultCategory
	}

	def, err := s.categoryRepo.GetDefault(ctx)
	if err != nil {
		return err
	}
	return s.categoryRepo.DeleteAndReassign(ctx, userID, id, def.ID)
}

// resolveCategory returns the category ID to store for a wishlist: the
// requested one if visible to the user, else the default
func (s *CategoryService) resolveCategory(ctx context.Context, userID uuid.UUID, id *int32) (int32, error) {
	if id == nil {
		def, err := s.categoryRepo.GetDefault(ctx)
		if err != nil {
			return 0, err
		}
		return def.ID, nil
	}
	category, err := s.categoryRepo.GetByID(ctx, userID, *id)
	if err != nil {
		if err == domain.ErrCategoryNotFound {
			return 0, domain.ErrInvalidCategory
		}
		return 0, err
	}
	return category.ID, nil
}
