package namespace

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// MySQL keeps items in the namespace_items table, one row per (scope, key).
// The table is created by database.EnsureSchema.
type MySQL struct {
	db    *sql.DB
	scope string
}

// NewMySQL opens the namespace for one scope.
func NewMySQL(db *sql.DB, scope string) *MySQL { return &MySQL{db: db, scope: scope} }

// MySQLFactory returns a Factory backed by db.
func MySQLFactory(db *sql.DB) Factory {
	return func(scope string) Namespace { return NewMySQL(db, scope) }
}

func (m *MySQL) GetItem(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := m.db.QueryRowContext(ctx,
		"SELECT item_value FROM namespace_items WHERE scope=? AND item_key=? LIMIT 1",
		m.scope, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: mysql get %s: %v", ErrUnavailable, key, err)
	}
	return v, true, nil
}

func (m *MySQL) SetItem(ctx context.Context, key, value string) error {
	_, err := m.db.ExecContext(ctx,
		"INSERT INTO namespace_items (scope, item_key, item_value) VALUES (?,?,?) ON DUPLICATE KEY UPDATE item_value=VALUES(item_value)",
		m.scope, key, value)
	if err != nil {
		return fmt.Errorf("%w: mysql set %s: %v", ErrUnavailable, key, err)
	}
	return nil
}

func (m *MySQL) RemoveItem(ctx context.Context, key string) error {
	_, err := m.db.ExecContext(ctx,
		"DELETE FROM namespace_items WHERE scope=? AND item_key=?",
		m.scope, key)
	if err != nil {
		return fmt.Errorf("%w: mysql del %s: %v", ErrUnavailable, key, err)
	}
	return nil
}
