package rowset

// rowset.go holds the Client, the public entry points for turning a query
// result into JSON: whole-result aggregation, lazy per-row streaming, and
// bounded-parallelism dispatch to a caller callback.

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rowset/rowset-go/rowset/errors"
)

// DefaultTableName is the table envelope key used when a caller does not
// configure one.
const DefaultTableName = "Table"

// Client converts query results into JSON documents without holding the
// whole result in memory (except in RunToDocument, which aggregates by
// design). Client is safe for concurrent use; each call operates on its own
// cursor.
type Client struct {
	opener CursorOpener
	log    zerolog.Logger
}

// Option is an optional argument to New.
type Option func(c *Client)

// WithLogger sets the structured logger the client emits to. By default
// nothing is logged.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a Client using opener to execute queries. The opener is an
// explicit injected collaborator; swapping drivers is done by constructing
// a different opener, not by mutating shared state.
func New(opener CursorOpener, options ...Option) (*Client, error) {
	if opener == nil {
		return nil, errors.ES(errors.OpUnknown, errors.KClientArgs, "a CursorOpener must be provided")
	}
	c := &Client{
		opener: opener,
		log:    zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Query validates the statement against the read-only gate, opens a cursor
// for it and returns a RowIterator over the result. Always defer a Stop()
// call after receiving a RowIterator.
func (c *Client) Query(ctx context.Context, query string) (*RowIterator, error) {
	return c.open(ctx, errors.OpQuery, query)
}

// RunToDocument executes query and aggregates the whole result into one
// JSON document under the table envelope key. Memory cost is proportional
// to the full result size; use StreamRows for a memory-bounded alternative.
func (c *Client) RunToDocument(ctx context.Context, query string, options ...QueryOption) (string, error) {
	o := resolveOptions(options)
	iter, err := c.open(ctx, errors.OpQuery, query)
	if err != nil {
		return "", err
	}
	defer iter.Stop()
	return iter.ToDocument(o.table)
}

// StreamRows executes query and returns a lazy sequence of per-row JSON
// documents, each wrapping one row under the table envelope key as a
// one-element list. Always defer a Stop() call on the returned iterator.
func (c *Client) StreamRows(ctx context.Context, query string, options ...QueryOption) (*DocumentIterator, error) {
	o := resolveOptions(options)
	iter, err := c.open(ctx, errors.OpStream, query)
	if err != nil {
		return nil, err
	}
	return &DocumentIterator{ri: iter, table: o.table}, nil
}

// DispatchParallel executes query and invokes f on every row, running up to
// MaxConcurrency callbacks concurrently. Rows are pulled sequentially, so
// callback start order follows row order modulo the concurrency window;
// completion order is unconstrained. See RowIterator.Dispatch for the
// failure and cancellation contract.
func (c *Client) DispatchParallel(ctx context.Context, query string, f RowFunc, options ...QueryOption) error {
	o := resolveOptions(options)
	if f == nil {
		return errors.ES(errors.OpDispatch, errors.KClientArgs, "a row callback must be provided")
	}
	iter, err := c.open(ctx, errors.OpDispatch, query)
	if err != nil {
		return err
	}
	return iter.Dispatch(f, o.maxConcurrency)
}

func (c *Client) open(ctx context.Context, op errors.Op, query string) (*RowIterator, error) {
	if err := validateReadOnly(op, query); err != nil {
		return nil, err
	}

	queryID := uuid.NewString()
	c.log.Debug().Str("query_id", queryID).Str("op", op.String()).Msg("opening cursor")

	cursor, err := c.opener.OpenCursor(ctx, query)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.E(op, errors.KCancelled, ctxErr)
		}
		return nil, errors.E(op, errors.KDataAccess, err)
	}
	return newRowIterator(ctx, cursor, op, c.log, queryID), nil
}
