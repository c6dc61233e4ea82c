package category

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Type enumerates the direction of money flow a category labels.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Valid reports whether t is a known category type.
func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Category represents a category record. (Name, UserID) is unique.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Type      Type
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryCreate is the input for creating a new category.
type CategoryCreate struct {
	UserID uuid.UUID
	Name   string
	Type   Type
}

// CategoryUpdate carries the mutable category fields.
type CategoryUpdate struct {
	Name *string
	Type *Type
}

// ITable defines the interface for category storage operations.
// This abstraction allows swapping the implementation without changing callers.
type ITable interface {
	FindOwned(ctx context.Context, id, userID uuid.UUID) (*Category, error)
	FindOwnedByName(ctx context.Context, name string, userID uuid.UUID) (*Category, error)
	List(ctx context.Context, userID uuid.UUID) ([]*Category, error)
	Insert(ctx context.Context, create *CategoryCreate) (*Category, error)
	Update(ctx context.Context, id, userID uuid.UUID, update *CategoryUpdate) (*Category, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

type row struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Name      string    `db:"name"`
	Type      string    `db:"type"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func rowToCategory(r row) *Category {
	return &Category{
		ID:        r.ID,
		UserID:    r.UserID,
		Name:      r.Name,
		Type:      Type(r.Type),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
