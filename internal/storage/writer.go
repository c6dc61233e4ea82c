package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-server/internal/storage/account"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// Tx is the slice of bob.Tx the Writer needs. Kept small so tests can stand
// in a fake.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer gives the engine transactional access to every table. All reads
// and writes made through it see and join the same database transaction.
type Writer struct {
	Tx           Tx
	Accounts     account.ITable
	Categories   category.ITable
	Transactions transaction.ITable
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		Tx:           tx,
		Accounts:     account.NewTable(tx),
		Categories:   category.NewTable(tx),
		Transactions: transaction.NewTable(tx),
	}
}

func (w *Writer) Commit() error {
	return w.Tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.Tx.Rollback(context.Background())
}
