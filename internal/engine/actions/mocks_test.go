package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/account"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// Hand-rolled testify mocks for the table interfaces, wired into a Writer
// so actions can be exercised without a database.

type mockAccountTable struct {
	mock.Mock
}

func (m *mockAccountTable) FindOwned(ctx context.Context, id, userID uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *mockAccountTable) FindOwnedForUpdate(ctx context.Context, id, userID uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *mockAccountTable) List(ctx context.Context, userID uuid.UUID) ([]*account.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *mockAccountTable) Insert(ctx context.Context, create *account.AccountCreate) (*account.Account, error) {
	args := m.Called(ctx, create)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *mockAccountTable) Update(ctx context.Context, id, userID uuid.UUID, update *account.AccountUpdate) (*account.Account, error) {
	args := m.Called(ctx, id, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *mockAccountTable) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	args := m.Called(ctx, id, balance)
	return args.Error(0)
}

func (m *mockAccountTable) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

type mockCategoryTable struct {
	mock.Mock
}

func (m *mockCategoryTable) FindOwned(ctx context.Context, id, userID uuid.UUID) (*category.Category, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *mockCategoryTable) FindOwnedByName(ctx context.Context, name string, userID uuid.UUID) (*category.Category, error) {
	args := m.Called(ctx, name, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *mockCategoryTable) List(ctx context.Context, userID uuid.UUID) ([]*category.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *mockCategoryTable) Insert(ctx context.Context, create *category.CategoryCreate) (*category.Category, error) {
	args := m.Called(ctx, create)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *mockCategoryTable) Update(ctx context.Context, id, userID uuid.UUID, update *category.CategoryUpdate) (*category.Category, error) {
	args := m.Called(ctx, id, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *mockCategoryTable) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

type mockTransactionTable struct {
	mock.Mock
}

func (m *mockTransactionTable) Insert(ctx context.Context, create *transaction.TransactionCreate) (*transaction.Transaction, error) {
	args := m.Called(ctx, create)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *mockTransactionTable) FindOwned(ctx context.Context, id, userID, accountID uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *mockTransactionTable) List(ctx context.Context, userID uuid.UUID, filter *transaction.Filter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Transaction), args.Error(1)
}

func (m *mockTransactionTable) UpdateCategory(ctx context.Context, id, categoryID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, categoryID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTransactionTable) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockTransactionTable) ExistsForAccount(ctx context.Context, accountID uuid.UUID) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

type fakeTx struct{}

func (fakeTx) Commit(ctx context.Context) error   { return nil }
func (fakeTx) Rollback(ctx context.Context) error { return nil }

type testTables struct {
	accounts     *mockAccountTable
	categories   *mockCategoryTable
	transactions *mockTransactionTable
}

func newTestWriter() (*storage.Writer, testTables) {
	tables := testTables{
		accounts:     new(mockAccountTable),
		categories:   new(mockCategoryTable),
		transactions: new(mockTransactionTable),
	}
	writer := &storage.Writer{
		Tx:           fakeTx{},
		Accounts:     tables.accounts,
		Categories:   tables.categories,
		Transactions: tables.transactions,
	}
	return writer, tables
}
