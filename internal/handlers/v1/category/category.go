package category

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/storage/category"
)

// Category is the API response model for a category.
type Category struct {
	ID        string `json:"id" doc:"Category UUID"`
	Name      string `json:"name" doc:"Category name, unique per user"`
	Type      string `json:"type" doc:"income or expense"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt string `json:"updatedAt" doc:"RFC3339 last modification time"`
}

func fromRecord(record *category.Category) Category {
	return Category{
		ID:        record.ID.String(),
		Name:      record.Name,
		Type:      string(record.Type),
		CreatedAt: record.CreatedAt.Format(time.RFC3339),
		UpdatedAt: record.UpdatedAt.Format(time.RFC3339),
	}
}

// categoryService is the interface the handlers need from the service layer.
type categoryService interface {
	CreateCategory(ctx context.Context, create category.CategoryCreate) (*category.Category, error)
	GetCategory(ctx context.Context, id, userID uuid.UUID) (*category.Category, error)
	ListCategories(ctx context.Context, userID uuid.UUID) ([]*category.Category, error)
	UpdateCategory(ctx context.Context, id, userID uuid.UUID, update category.CategoryUpdate) (*category.Category, error)
	DeleteCategory(ctx context.Context, id, userID uuid.UUID) (bool, error)
}
