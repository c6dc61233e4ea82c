package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// FlowType enumerates the direction of a transaction.
type FlowType string

const (
	FlowIncome  FlowType = "income"
	FlowExpense FlowType = "expense"
)

// Valid reports whether t is a known flow type.
func (t FlowType) Valid() bool {
	return t == FlowIncome || t == FlowExpense
}

// Transaction represents a ledger record. Amount and Type are fixed at
// creation; only the category reference may change afterwards.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AccountID   uuid.UUID
	CategoryID  uuid.UUID
	Type        FlowType
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TransactionCreate is the input for persisting a new ledger record.
type TransactionCreate struct {
	UserID      uuid.UUID
	AccountID   uuid.UUID
	CategoryID  uuid.UUID
	Type        FlowType
	Amount      decimal.Decimal
	Description string
}

// Filter narrows a ledger listing. Nil fields are ignored.
type Filter struct {
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	Type       *FlowType
	StartDate  *time.Time
	EndDate    *time.Time
}

// ITable defines the interface for ledger storage operations.
// This abstraction allows swapping the implementation without changing callers.
type ITable interface {
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	FindOwned(ctx context.Context, id, userID, accountID uuid.UUID) (*Transaction, error)
	List(ctx context.Context, userID uuid.UUID, filter *Filter) ([]*Transaction, error)
	UpdateCategory(ctx context.Context, id, categoryID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsForAccount(ctx context.Context, accountID uuid.UUID) (bool, error)
}

type row struct {
	ID          uuid.UUID       `db:"id"`
	UserID      uuid.UUID       `db:"user_id"`
	AccountID   uuid.UUID       `db:"account_id"`
	CategoryID  uuid.UUID       `db:"category_id"`
	Type        string          `db:"type"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func rowToTransaction(r row) *Transaction {
	return &Transaction{
		ID:          r.ID,
		UserID:      r.UserID,
		AccountID:   r.AccountID,
		CategoryID:  r.CategoryID,
		Type:        FlowType(r.Type),
		Amount:      r.Amount,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
