package rowset

// reader.go holds RowIterator, the lazy single-pass sequence of rows pulled
// from a Cursor. All three consumption modes (ToDocument, DocumentIterator,
// Dispatch) are built on top of it.

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rowset/rowset-go/rowset/errors"
)

// RowIterator is used to iterate over the Row objects of one query result.
// It is single-pass and owned by a single consumer: it cannot be rewound or
// shared between two concurrent readers. The iterator owns the underlying
// Cursor and releases it exactly once, on exhaustion, error, cancellation
// or Stop.
type RowIterator struct {
	op     errors.Op
	ctx    context.Context
	cancel context.CancelFunc
	cursor Cursor

	columns []string
	ordinal int

	mu sync.Mutex
	// err holds an error that was encountered. Once this is set, all calls
	// on RowIterator will just return the error here.
	err  error
	done bool

	releaseOnce sync.Once

	log     zerolog.Logger
	queryID string
}

func newRowIterator(ctx context.Context, cursor Cursor, op errors.Op, log zerolog.Logger, queryID string) *RowIterator {
	ctx, cancel := context.WithCancel(ctx)
	return &RowIterator{
		op:      op,
		ctx:     ctx,
		cancel:  cancel,
		cursor:  cursor,
		columns: cursor.Columns(),
		log:     log,
		queryID: queryID,
	}
}

// ColumnNames returns the ordered column names of the result.
func (r *RowIterator) ColumnNames() []string {
	return r.columns
}

// Next gets the next Row from the result. io.EOF is returned if there are no
// more entries in the output. Once Next() returns a non-EOF error, all
// subsequent calls will return the same error.
func (r *RowIterator) Next() (*Row, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return nil, r.err
	}
	if r.done {
		return nil, io.EOF
	}

	if err := r.ctx.Err(); err != nil {
		return nil, r.fail(errors.E(r.op, errors.KCancelled, err))
	}

	ok, err := r.cursor.Next()
	if err != nil {
		// The cursor may have failed because the caller cancelled; surface
		// that as cancellation, not as a data error.
		if ctxErr := r.ctx.Err(); ctxErr != nil {
			return nil, r.fail(errors.E(r.op, errors.KCancelled, ctxErr))
		}
		return nil, r.fail(errors.E(r.op, errors.KDataAccess, err))
	}
	if !ok {
		r.done = true
		r.release()
		return nil, io.EOF
	}

	values := make([]interface{}, len(r.columns))
	for i := range r.columns {
		values[i] = r.cursor.Value(i)
	}
	row := &Row{columns: r.columns, values: values, ordinal: r.ordinal}
	r.ordinal++
	return row, nil
}

// Do calls f for every row in the result, in order. If f returns a non-nil
// error, iteration stops and that error is returned.
func (r *RowIterator) Do(f func(row *Row) error) error {
	for {
		row, err := r.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err := f(row); err != nil {
			return err
		}
	}
}

// Stop is called to stop any further iteration and release the underlying
// cursor. Always defer a Stop() call after receiving a RowIterator. Stop is
// idempotent and safe to call after exhaustion.
func (r *RowIterator) Stop() {
	r.cancel()
	r.release()
}

// fail records err as the iterator's terminal error and releases the cursor.
// Callers must hold r.mu.
func (r *RowIterator) fail(err error) error {
	r.err = err
	r.release()
	return err
}

func (r *RowIterator) release() {
	r.releaseOnce.Do(func() {
		if err := r.cursor.Close(); err != nil {
			r.log.Warn().Str("query_id", r.queryID).Err(err).Msg("cursor close failed")
		}
		r.log.Debug().Str("query_id", r.queryID).Int("rows", r.ordinal).Msg("cursor released")
	})
}
