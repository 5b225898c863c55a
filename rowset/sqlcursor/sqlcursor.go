// Package sqlcursor adapts a database/sql result to the rowset.Cursor
// capability. It is the one concrete cursor adapter for the database/sql
// driver family; other driver families get their own adapter package.
package sqlcursor

import (
	"context"
	"database/sql"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/rowset/rowset-go/rowset"
)

// Opener executes queries against a *sql.DB and exposes their results as
// rowset cursors. It implements rowset.CursorOpener.
type Opener struct {
	db *sql.DB
}

// NewOpener wraps db. The caller keeps ownership of db; the opener only
// owns the per-query rows handles it creates.
func NewOpener(db *sql.DB) *Opener {
	return &Opener{db: db}
}

// OpenCursor implements rowset.CursorOpener.
func (o *Opener) OpenCursor(ctx context.Context, query string) (rowset.Cursor, error) {
	rows, err := o.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	columns, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, err
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		rows.Close()
		return nil, err
	}

	return &cursor{
		rows:    rows,
		columns: columns,
		decimal: lo.Map(types, func(ct *sql.ColumnType, _ int) bool {
			return isDecimalType(ct.DatabaseTypeName())
		}),
	}, nil
}

// cursor is the database/sql implementation of rowset.Cursor.
type cursor struct {
	rows    *sql.Rows
	columns []string
	// decimal marks columns scanned through decimal.NullDecimal so
	// arbitrary-precision values survive the trip to JSON.
	decimal []bool
	values  []interface{}
}

func (c *cursor) Columns() []string {
	return c.columns
}

func (c *cursor) Next() (bool, error) {
	if !c.rows.Next() {
		c.values = nil
		if err := c.rows.Err(); err != nil {
			return false, err
		}
		return false, nil
	}

	dest := make([]interface{}, len(c.columns))
	for i := range dest {
		if c.decimal[i] {
			dest[i] = &decimal.NullDecimal{}
		} else {
			dest[i] = new(interface{})
		}
	}
	if err := c.rows.Scan(dest...); err != nil {
		return false, err
	}

	c.values = make([]interface{}, len(dest))
	for i, d := range dest {
		switch v := d.(type) {
		case *decimal.NullDecimal:
			if v.Valid {
				c.values[i] = v.Decimal
			} else {
				c.values[i] = nil
			}
		case *interface{}:
			c.values[i] = normalize(*v)
		}
	}
	return true, nil
}

func (c *cursor) Value(i int) interface{} {
	return c.values[i]
}

func (c *cursor) Close() error {
	return c.rows.Close()
}

// normalize converts driver-native values to their JSON-friendly form.
// Drivers hand text columns back as []byte; those become strings.
func normalize(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func isDecimalType(name string) bool {
	switch strings.ToUpper(name) {
	case "NUMERIC", "DECIMAL", "NUMBER", "MONEY":
		return true
	}
	return false
}
