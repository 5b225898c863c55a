package rowset

import "context"

// Cursor is the capability a data-access layer must provide: a sequential,
// forward-only source of rows. Implementations are not safe for concurrent
// use; a Cursor has exactly one reader.
//
// Exactly one concrete Cursor adapter should exist per supported driver
// family, chosen when the opener is constructed. See the sqlcursor package
// for the database/sql adapter.
type Cursor interface {
	// Columns returns the ordered column names of the result. The slice is
	// stable for the lifetime of the cursor and must not be mutated.
	Columns() []string

	// Next advances the cursor to the next row. It returns false with a nil
	// error when the result is exhausted.
	Next() (bool, error)

	// Value returns the value of column i for the current row. A SQL NULL is
	// returned as nil. The value is only valid until the next call to Next.
	Value(i int) interface{}

	// Close releases the cursor and its underlying connection resource.
	// Close is idempotent.
	Close() error
}

// CursorOpener executes a query and hands back a Cursor over its result.
// It is injected into New; there is no process-wide connection factory.
type CursorOpener interface {
	OpenCursor(ctx context.Context, query string) (Cursor, error)
}

// OpenerFunc adapts a function to the CursorOpener interface.
type OpenerFunc func(ctx context.Context, query string) (Cursor, error)

// OpenCursor implements CursorOpener.
func (f OpenerFunc) OpenCursor(ctx context.Context, query string) (Cursor, error) {
	return f(ctx, query)
}
