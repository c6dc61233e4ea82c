package service

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/category"
)

// ErrDuplicateCategory is returned when a (name, user) pair already exists.
var ErrDuplicateCategory = errors.New("category already exists")

// CategoryService handles category business logic.
type CategoryService struct {
	storage *storage.Storage
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(store *storage.Storage) *CategoryService {
	return &CategoryService{storage: store}
}

// CreateCategory creates a new category, enforcing the (name, user)
// uniqueness invariant. The pre-check gives a clean error for the common
// case; the unique index catches the race.
func (s *CategoryService) CreateCategory(ctx context.Context, create category.CategoryCreate) (*category.Category, error) {
	existing, err := s.storage.Categories.FindOwnedByName(ctx, create.Name, create.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateCategory
	}

	created, err := s.storage.Categories.Insert(ctx, &create)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}
	return created, nil
}

// GetCategory retrieves a category owned by userID, or nil when absent.
func (s *CategoryService) GetCategory(ctx context.Context, id, userID uuid.UUID) (*category.Category, error) {
	return s.storage.Categories.FindOwned(ctx, id, userID)
}

// ListCategories returns the user's categories grouped by type then name.
func (s *CategoryService) ListCategories(ctx context.Context, userID uuid.UUID) ([]*category.Category, error) {
	return s.storage.Categories.List(ctx, userID)
}

// UpdateCategory changes name and/or type. Returns nil when the category
// does not exist for userID.
func (s *CategoryService) UpdateCategory(ctx context.Context, id, userID uuid.UUID, update category.CategoryUpdate) (*category.Category, error) {
	updated, err := s.storage.Categories.Update(ctx, id, userID, &update)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}
	return updated, nil
}

// DeleteCategory removes a category and reports whether it existed.
func (s *CategoryService) DeleteCategory(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	return s.storage.Categories.Delete(ctx, id, userID)
}
