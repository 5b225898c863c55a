package sqlcursor

// An in-memory database/sql driver so the adapter can be tested hermetically,
// without a live database.

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"sync"
)

type memDriver struct {
	mu        sync.Mutex
	databases map[string]*memDB
}

var memory = &memDriver{databases: map[string]*memDB{}}

func init() {
	sql.Register("rowsetmem", memory)
}

// memDB is one fake database, addressed by DSN.
type memDB struct {
	results map[string]*memResult
	errs    map[string]error
}

// memResult is the canned result for one query text. playback entries are
// either []driver.Value (a row) or error (returned mid-iteration).
type memResult struct {
	columns   []string
	typeNames []string
	playback  []interface{}
}

func registerMemDB(dsn string) *memDB {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	db := &memDB{
		results: map[string]*memResult{},
		errs:    map[string]error{},
	}
	memory.databases[dsn] = db
	return db
}

func (d *memDriver) Open(dsn string) (driver.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	db, ok := d.databases[dsn]
	if !ok {
		return nil, fmt.Errorf("unknown mem database %q", dsn)
	}
	return &memConn{db: db}, nil
}

type memConn struct {
	db *memDB
}

var _ driver.QueryerContext = (*memConn)(nil)

func (c *memConn) Prepare(query string) (driver.Stmt, error) {
	return nil, fmt.Errorf("prepare is not supported by the mem driver")
}

func (c *memConn) Close() error {
	return nil
}

func (c *memConn) Begin() (driver.Tx, error) {
	return nil, fmt.Errorf("transactions are not supported by the mem driver")
}

func (c *memConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	if err := c.db.errs[query]; err != nil {
		return nil, err
	}
	res, ok := c.db.results[query]
	if !ok {
		return nil, fmt.Errorf("no canned result for query %q", query)
	}
	return &memRows{result: res}, nil
}

type memRows struct {
	result *memResult
	pos    int
}

var _ driver.RowsColumnTypeDatabaseTypeName = (*memRows)(nil)

func (r *memRows) Columns() []string {
	return r.result.columns
}

func (r *memRows) ColumnTypeDatabaseTypeName(i int) string {
	return r.result.typeNames[i]
}

func (r *memRows) Close() error {
	return nil
}

func (r *memRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.result.playback) {
		return io.EOF
	}
	entry := r.result.playback[r.pos]
	r.pos++
	switch v := entry.(type) {
	case []driver.Value:
		copy(dest, v)
		return nil
	case error:
		return v
	default:
		return fmt.Errorf("mem playback entry %d has unknown type %T", r.pos-1, entry)
	}
}
