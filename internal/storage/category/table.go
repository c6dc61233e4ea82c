package category

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

// Table provides access to the categories table.
type Table struct {
	exec bob.Executor
}

var _ ITable = (*Table)(nil)

func NewTable(exec bob.Executor) *Table {
	return &Table{exec: exec}
}

func (t *Table) one(ctx context.Context, queryMods ...bob.Mod[*dialect.SelectQuery]) (*Category, error) {
	queryMods = append(queryMods,
		sm.Columns("id", "user_id", "name", "type", "created_at", "updated_at"),
		sm.From("categories"),
	)

	r, err := bob.One(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[row]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rowToCategory(r), nil
}

// FindOwned retrieves the category only when it belongs to userID.
// Returns nil when absent or owned by another user.
func (t *Table) FindOwned(ctx context.Context, id, userID uuid.UUID) (*Category, error) {
	return t.one(ctx,
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
}

// FindOwnedByName looks a category up by its unique (name, user) pair.
func (t *Table) FindOwnedByName(ctx context.Context, name string, userID uuid.UUID) (*Category, error) {
	return t.one(ctx,
		sm.Where(psql.Quote("name").EQ(psql.Arg(name))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
}

// List returns all categories owned by userID, grouped by type then name.
func (t *Table) List(ctx context.Context, userID uuid.UUID) ([]*Category, error) {
	query := psql.Select(
		sm.Columns("id", "user_id", "name", "type", "created_at", "updated_at"),
		sm.From("categories"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy("type").Asc(),
		sm.OrderBy("name").Asc(),
	)

	rows, err := bob.All(ctx, t.exec, query, scan.StructMapper[row]())
	if err != nil {
		return nil, err
	}

	result := make([]*Category, len(rows))
	for i, r := range rows {
		result[i] = rowToCategory(r)
	}
	return result, nil
}

// Insert creates a new category. The unique (user_id, name) index rejects
// duplicates; callers detect that with storage.IsUniqueViolation.
func (t *Table) Insert(ctx context.Context, create *CategoryCreate) (*Category, error) {
	query := psql.Insert(
		im.Into("categories", "user_id", "name", "type"),
		im.Values(psql.Arg(create.UserID, create.Name, string(create.Type))),
		im.Returning("id", "user_id", "name", "type", "created_at", "updated_at"),
	)

	r, err := bob.One(ctx, t.exec, query, scan.StructMapper[row]())
	if err != nil {
		return nil, err
	}
	return rowToCategory(r), nil
}

// Update changes the category's details and returns the new record, or nil
// when the category does not exist for userID.
func (t *Table) Update(ctx context.Context, id, userID uuid.UUID, update *CategoryUpdate) (*Category, error) {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table("categories"),
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

// Delete removes the category and reports whether a row was deleted.
func (t *Table) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	query := psql.Delete(
		dm.From("categories"),
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
