package storage

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-server/internal/config"
	"github.com/carson-networks/finance-server/internal/storage/account"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// Storage bundles the database handle with autocommit table gateways.
// Multi-record mutations go through Write instead, which hands out a
// transactional Writer.
type Storage struct {
	DB  *sql.DB
	bdb bob.DB

	Accounts     account.ITable
	Categories   category.ITable
	Transactions transaction.ITable
}

func NewStorage(env *config.Config) *Storage {
	db, err := sql.Open("postgres", env.ConnectionString())
	if err != nil {
		log.Fatal(err)
	}

	bdb := bob.NewDB(db)
	return &Storage{
		DB:           db,
		bdb:          bdb,
		Accounts:     account.NewTable(bdb),
		Categories:   category.NewTable(bdb),
		Transactions: transaction.NewTable(bdb),
	}
}

// Write opens a database transaction and returns a Writer scoped to it.
// The caller must finish with exactly one of Commit or Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bdb.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewWriter(tx), nil
}
