package rowset

// dispatch.go holds the bounded-parallelism consumer: rows are pulled
// sequentially off the iterator (the cursor stays single-reader) and each
// row's callback runs in its own goroutine, with a semaphore capping how
// many run at once.

import (
	"fmt"
	"io"
	"sync"

	"github.com/rowset/rowset-go/rowset/errors"
)

// RowFunc is a caller-supplied row processor invoked by Dispatch. It may be
// called from multiple goroutines concurrently, one call per row.
type RowFunc func(row *Row) error

// DefaultMaxConcurrency is the callback concurrency used when a caller does
// not configure one.
const DefaultMaxConcurrency = 4

// Dispatch drains the iterator, invoking f on every row with at most
// maxConcurrency invocations in flight. Rows are pulled one at a time and
// callbacks are started in row order, but callback completion order is
// unconstrained.
//
// If a callback fails, no further rows are admitted, already-launched
// callbacks run to completion, and the first failure by completion time is
// returned wrapped with Kind KCallback; any sibling failures are logged and
// counted in the returned error's message. Cancellation likewise stops
// admission, drains in-flight callbacks, releases the cursor and returns a
// KCancelled error.
func (r *RowIterator) Dispatch(f RowFunc, maxConcurrency int) error {
	if maxConcurrency < 1 {
		return errors.ES(errors.OpDispatch, errors.KClientArgs, "maxConcurrency must be a positive integer, got %d", maxConcurrency)
	}

	var (
		sem = make(chan struct{}, maxConcurrency)
		wg  sync.WaitGroup

		mu       sync.Mutex
		first    error
		siblings int
		// failed is closed when the first callback failure is recorded, so
		// the pull loop stops admitting new rows.
		failed     = make(chan struct{})
		failedOnce sync.Once
	)

	record := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if first == nil {
			first = err
			failedOnce.Do(func() { close(failed) })
			return
		}
		siblings++
		r.log.Error().Str("query_id", r.queryID).Err(err).Msg("concurrent row callback failed")
	}

	var pullErr error
pull:
	for {
		select {
		case <-failed:
			break pull
		default:
		}

		row, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			pullErr = err
			break
		}

		// Admission control: blocks while the concurrency budget is
		// exhausted, until a previously launched callback finishes.
		select {
		case sem <- struct{}{}:
		case <-r.ctx.Done():
			pullErr = errors.E(r.op, errors.KCancelled, r.ctx.Err())
			break pull
		case <-failed:
			break pull
		}

		wg.Add(1)
		go func(row *Row) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := f(row); err != nil {
				record(err)
			}
		}(row)
	}

	// Graceful drain: in-flight callbacks always run to completion, even
	// after a failure or cancellation.
	wg.Wait()
	r.Stop()

	mu.Lock()
	defer mu.Unlock()
	if first != nil {
		err := first
		if siblings > 0 {
			err = fmt.Errorf("%w (%d concurrent callback failure(s) also occurred)", first, siblings)
		}
		return errors.E(r.op, errors.KCallback, err)
	}
	return pullErr
}
