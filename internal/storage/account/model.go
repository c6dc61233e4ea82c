package account

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Type enumerates the kinds of financial containers a user can hold.
type Type string

const (
	TypeSavings    Type = "savings"
	TypeCurrent    Type = "current"
	TypeCredit     Type = "credit"
	TypeCash       Type = "cash"
	TypeInvestment Type = "investment"
	TypeLoan       Type = "loan"
	TypeOther      Type = "other"
)

// Valid reports whether t is one of the known account types.
func (t Type) Valid() bool {
	switch t {
	case TypeSavings, TypeCurrent, TypeCredit, TypeCash, TypeInvestment, TypeLoan, TypeOther:
		return true
	}
	return false
}

// Account represents an account record.
type Account struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Type      Type
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	UserID  uuid.UUID
	Name    string
	Type    Type
	Balance decimal.Decimal
}

// AccountUpdate carries the mutable account fields. Balance is absent on
// purpose: only the ledger engine may move a balance.
type AccountUpdate struct {
	Name *string
	Type *Type
}

// ITable defines the interface for account storage operations.
// This abstraction allows swapping the implementation without changing callers.
type ITable interface {
	FindOwned(ctx context.Context, id, userID uuid.UUID) (*Account, error)
	FindOwnedForUpdate(ctx context.Context, id, userID uuid.UUID) (*Account, error)
	List(ctx context.Context, userID uuid.UUID) ([]*Account, error)
	Insert(ctx context.Context, create *AccountCreate) (*Account, error)
	Update(ctx context.Context, id, userID uuid.UUID, update *AccountUpdate) (*Account, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

// row mirrors the accounts table for scanning.
type row struct {
	ID        uuid.UUID       `db:"id"`
	UserID    uuid.UUID       `db:"user_id"`
	Name      string          `db:"name"`
	Type      string          `db:"type"`
	Balance   decimal.Decimal `db:"balance"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

func rowToAccount(r row) *Account {
	return &Account{
		ID:        r.ID,
		UserID:    r.UserID,
		Name:      r.Name,
		Type:      Type(r.Type),
		Balance:   r.Balance,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
