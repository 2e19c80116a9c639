package carts

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	vals []any
	err  error
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.vals[i]))
	}
	return nil
}

type noRows struct{}

func (noRows) Close()                                       {}
func (noRows) Err() error                                   { return nil }
func (noRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (noRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (noRows) Next() bool                                   { return false }
func (noRows) Scan(...any) error                            { return nil }
func (noRows) Values() ([]any, error)                       { return nil, nil }
func (noRows) RawValues() [][]byte                          { return nil }
func (noRows) Conn() *pgx.Conn                              { return nil }

// scriptedDB answers QueryRow by the first matching SQL prefix and fails
// Exec for statements containing execFail.
type scriptedDB struct {
	rows     map[string]row
	execFail string
	execs    []string
}

func (db *scriptedDB) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	db.execs = append(db.execs, sql)
	if db.execFail != "" && strings.Contains(sql, db.execFail) {
		return pgconn.CommandTag{}, errors.New("current transaction is aborted")
	}
	return pgconn.NewCommandTag("OK"), nil
}

func (db *scriptedDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return noRows{}, nil
}

func (db *scriptedDB) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	trimmed := strings.TrimSpace(sql)
	for prefix, r := range db.rows {
		if strings.HasPrefix(trimmed, prefix) {
			return r
		}
	}
	return row{err: pgx.ErrNoRows}
}

func TestGetOrCreateNeverRaisesUniqueViolation(t *testing.T) {
	now := time.Now()
	db := &scriptedDB{rows: map[string]row{
		"SELECT id, owner_id": {vals: []any{int64(7), int64(42), now, now}},
	}}

	c, err := NewRepository(db).GetOrCreate(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(7), c.ID)
	assert.Empty(t, c.Items)

	require.Len(t, db.execs, 1)
	assert.Contains(t, db.execs[0], "ON CONFLICT (owner_id) DO NOTHING")
}

func TestAddItemReportsTouchFailure(t *testing.T) {
	db := &scriptedDB{
		rows: map[string]row{
			"INSERT INTO cart_items": {vals: []any{int64(1), int64(3), "Lamp", 2, int64(1200), time.Now()}},
		},
		execFail: "UPDATE carts",
	}

	item := &CartItem{ListingID: 9, SellerID: 3, Title: "Lamp", Quantity: 2, PriceCents: 1200}
	err := NewRepository(db).AddItem(context.Background(), 7, item)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "touch cart")
}
