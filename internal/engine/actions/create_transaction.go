package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/engine"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// CreateTransaction applies a new income or expense to an account: the
// balance moves and the ledger record is inserted in the same database
// transaction. Validation order is fixed and the first failure wins.
type CreateTransaction struct {
	UserID      uuid.UUID
	AccountID   uuid.UUID
	CategoryID  uuid.UUID
	Type        transaction.FlowType
	Amount      decimal.Decimal
	Description string

	// Populated on success.
	Created    *transaction.Transaction
	NewBalance decimal.Decimal
}

func (a *CreateTransaction) Name() string { return "create_transaction" }

func (a *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Amount.LessThanOrEqual(decimal.Zero) {
		return engine.ErrInvalidAmount
	}

	// Row lock: concurrent operations on the same account queue up here.
	account, err := writer.Accounts.FindOwnedForUpdate(ctx, a.AccountID, a.UserID)
	if err != nil {
		return err
	}
	if account == nil {
		// Absent and not-owned look the same so account IDs don't leak.
		return engine.ErrForbidden
	}

	category, err := writer.Categories.FindOwned(ctx, a.CategoryID, a.UserID)
	if err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("%w: invalid category", engine.ErrNotFound)
	}

	if string(category.Type) != string(a.Type) {
		return engine.TypeMismatch(string(category.Type), string(a.Type))
	}

	newBalance := account.Balance.Add(a.Amount)
	if a.Type == transaction.FlowExpense {
		if account.Balance.LessThan(a.Amount) {
			return engine.ErrInsufficientBalance
		}
		newBalance = account.Balance.Sub(a.Amount)
	}

	// Balance first, ledger record second; the commit makes both durable
	// together.
	if err := writer.Accounts.UpdateBalance(ctx, a.AccountID, newBalance); err != nil {
		return err
	}

	created, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		UserID:      a.UserID,
		AccountID:   a.AccountID,
		CategoryID:  a.CategoryID,
		Type:        a.Type,
		Amount:      a.Amount,
		Description: a.Description,
	})
	if err != nil {
		return err
	}

	a.Created = created
	a.NewBalance = newBalance
	return nil
}
