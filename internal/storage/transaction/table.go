package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

// Table provides access to the transactions table.
type Table struct {
	exec bob.Executor
}

var _ ITable = (*Table)(nil)

func NewTable(exec bob.Executor) *Table {
	return &Table{exec: exec}
}

// Insert persists a new ledger record and returns it.
func (t *Table) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	query := psql.Insert(
		im.Into("transactions", "user_id", "account_id", "category_id", "type", "amount", "description"),
		im.Values(psql.Arg(
			create.UserID,
			create.AccountID,
			create.CategoryID,
			string(create.Type),
			create.Amount,
			create.Description,
		)),
		im.Returning("id", "user_id", "account_id", "category_id", "type", "amount", "description", "created_at", "updated_at"),
	)

	r, err := bob.One(ctx, t.exec, query, scan.StructMapper[row]())
	if err != nil {
		return nil, err
	}
	return rowToTransaction(r), nil
}

// FindOwned retrieves the transaction only when it belongs to userID and
// sits on accountID. Returns nil when no such record exists.
func (t *Table) FindOwned(ctx context.Context, id, userID, accountID uuid.UUID) (*Transaction, error) {
	query := psql.Select(
		sm.Columns("id", "user_id", "account_id", "category_id", "type", "amount", "description", "created_at", "updated_at"),
		sm.From("transactions"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("account_id").EQ(psql.Arg(accountID))),
	)

	r, err := bob.One(ctx, t.exec, query, scan.StructMapper[row]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rowToTransaction(r), nil
}

// List returns the user's transactions matching the filter, newest first.
func (t *Table) List(ctx context.Context, userID uuid.UUID, filter *Filter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns("id", "user_id", "account_id", "category_id", "type", "amount", "description", "created_at", "updated_at"),
		sm.From("transactions"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	}

	if filter != nil {
		if filter.AccountID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("account_id").EQ(psql.Arg(*filter.AccountID))))
		}
		if filter.CategoryID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("category_id").EQ(psql.Arg(*filter.CategoryID))))
		}
		if filter.Type != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("type").EQ(psql.Arg(string(*filter.Type)))))
		}
		if filter.StartDate != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("created_at").GTE(psql.Arg(*filter.StartDate))))
		}
		if filter.EndDate != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("created_at").LTE(psql.Arg(*filter.EndDate))))
		}
	}

	queryMods = append(queryMods,
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
	)

	rows, err := bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[row]())
	if err != nil {
		return nil, err
	}

	result := make([]*Transaction, len(rows))
	for i, r := range rows {
		result[i] = rowToTransaction(r)
	}
	return result, nil
}

// UpdateCategory swaps the category reference and reports whether a row was
// updated. All other fields are immutable after creation. A false return
// means the record vanished after the caller's read, typically a concurrent
// delete racing the update.
func (t *Table) UpdateCategory(ctx context.Context, id, categoryID uuid.UUID) (bool, error) {
	query := psql.Update(
		um.Table("transactions"),
		um.SetCol("category_id").ToArg(categoryID),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	res, err := bob.Exec(ctx, t.exec, query)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes the ledger record and reports whether a row was deleted.
// Callers must treat a false return as the record already being gone.
func (t *Table) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := psql.Delete(
		dm.From("transactions"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	res, err := bob.Exec(ctx, t.exec, query)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ExistsForAccount reports whether any ledger record references accountID.
// Account deletion is blocked while this is true.
func (t *Table) ExistsForAccount(ctx context.Context, accountID uuid.UUID) (bool, error) {
	query := psql.Select(
		sm.Columns(psql.Raw("count(*)")),
		sm.From("transactions"),
		sm.Where(psql.Quote("account_id").EQ(psql.Arg(accountID))),
	)

	count, err := bob.One(ctx, t.exec, query, scan.SingleColumnMapper[int64])
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
