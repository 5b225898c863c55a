/*
Package rowset streams rows from a relational query cursor into JSON output.

A result can be consumed in exactly one of three ways: aggregated into one
JSON document, emitted lazily as one JSON document per row, or dispatched
row by row to a caller-supplied callback with a bounded degree of
parallelism. All three modes pull from the same single-pass RowIterator and
never hold more than the current row in memory (aggregation excepted, which
buffers the whole result by design).

# Create a client

Creating a client requires a CursorOpener, usually the database/sql adapter
from the sqlcursor package:

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		panic("add error handling")
	}
	client, err := rowset.New(sqlcursor.NewOpener(db))
	if err != nil {
		panic("add error handling")
	}

Only SELECT and WITH statements are accepted; anything else fails the
read-only gate before a cursor is opened.

# Whole result as one document

	doc, err := client.RunToDocument(ctx, "select id, name from people", rowset.TableName("PEOPLE"))

This buffers every row, trading memory for a single document of the shape
{"PEOPLE":[{"id":1,"name":"A"},...]}.

# One document per row

	docs, err := client.StreamRows(ctx, "select id, name from people")
	if err != nil {
		panic("add error handling")
	}
	defer docs.Stop()

	err = docs.Do(func(doc string) error {
		fmt.Println(doc)
		return nil
	})

# Parallel processing

	err := client.DispatchParallel(ctx, "select id, name from people",
		func(row *rowset.Row) error {
			return process(row)
		},
		rowset.MaxConcurrency(8),
	)

Rows are pulled sequentially and handed to up to MaxConcurrency concurrent
callback invocations. The first callback failure is reported after all
in-flight callbacks have drained.

Cancellation is cooperative: pass a cancellable context and the pipeline
stops pulling rows, drains outstanding work, releases the cursor and
returns an error of Kind KCancelled.
*/
package rowset
