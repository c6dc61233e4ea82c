package account

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var columns = []string{"id", "user_id", "name", "type", "balance", "created_at", "updated_at"}

// Table provides access to the accounts table. It works over both the
// database handle and an open transaction since both satisfy bob.Executor.
type Table struct {
	exec bob.Executor
}

var _ ITable = (*Table)(nil)

func NewTable(exec bob.Executor) *Table {
	return &Table{exec: exec}
}

func (t *Table) findOwned(ctx context.Context, id, userID uuid.UUID, forUpdate bool) (*Account, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(toAnySlice(columns)...),
		sm.From("accounts"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}

	r, err := bob.One(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[row]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rowToAccount(r), nil
}

// FindOwned retrieves the account only when it belongs to userID. Absent and
// not-owned are indistinguishable: both return nil.
func (t *Table) FindOwned(ctx context.Context, id, userID uuid.UUID) (*Account, error) {
	return t.findOwned(ctx, id, userID, false)
}

// FindOwnedForUpdate is FindOwned with a row lock, so concurrent balance
// read-modify-write cycles on the same account serialize.
func (t *Table) FindOwnedForUpdate(ctx context.Context, id, userID uuid.UUID) (*Account, error) {
	return t.findOwned(ctx, id, userID, true)
}

// List returns all accounts owned by userID, newest first.
func (t *Table) List(ctx context.Context, userID uuid.UUID) ([]*Account, error) {
	query := psql.Select(
		sm.Columns(toAnySlice(columns)...),
		sm.From("accounts"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
	)

	rows, err := bob.All(ctx, t.exec, query, scan.StructMapper[row]())
	if err != nil {
		return nil, err
	}

	result := make([]*Account, len(rows))
	for i, r := range rows {
		result[i] = rowToAccount(r)
	}
	return result, nil
}

// Insert creates a new account and returns the persisted record.
func (t *Table) Insert(ctx context.Context, create *AccountCreate) (*Account, error) {
	query := psql.Insert(
		im.Into("accounts", "user_id", "name", "type", "balance"),
		im.Values(psql.Arg(create.UserID, create.Name, string(create.Type), create.Balance)),
		im.Returning(toAnySlice(columns)...),
	)

	r, err := bob.One(ctx, t.exec, query, scan.StructMapper[row]())
	if err != nil {
		return nil, err
	}
	return rowToAccount(r), nil
}

// Update changes the account's details and returns the new record, or nil
// when the account does not exist for userID.
func (t *Table) Update(ctx context.Context, id, userID uuid.UUID, update *AccountUpdate) (*Account, error) {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table("accounts"),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	}
	if update.Name != nil {
		queryMods = append(queryMods, um.SetCol("name").ToArg(*update.Name))
	}
	if update.Type != nil {
		queryMods = append(queryMods, um.SetCol("type").ToArg(string(*update.Type)))
	}

	res, err := bob.Exec(ctx, t.exec, psql.Update(queryMods...))
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, nil
	}

	return t.FindOwned(ctx, id, userID)
}

// UpdateBalance sets the account's balance. Only the ledger engine calls
// this, inside a transaction holding the account's row lock.
func (t *Table) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	query := psql.Update(
		um.Table("accounts"),
		um.SetCol("balance").ToArg(balance),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	_, err := bob.Exec(ctx, t.exec, query)
	return err
}

// Delete removes the account and reports whether a row was deleted.
func (t *Table) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	query := psql.Delete(
		dm.From("accounts"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		dm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
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

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
