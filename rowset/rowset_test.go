package rowset

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowset/rowset-go/rowset/errors"
)

func TestValidateReadOnly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc  string
		query string
		err   bool
	}{
		{desc: "plain select", query: "select * from t"},
		{desc: "uppercase select", query: "SELECT 1"},
		{desc: "leading whitespace", query: "   \n\tselect * from t"},
		{desc: "with statement", query: "with cte as (select 1) select * from cte"},
		{desc: "optimizer hint", query: "/*+ FULL(t) */ select * from t"},
		{desc: "block comment then select", query: "/* a\nmultiline comment */ select 1"},
		{desc: "line comment then select", query: "-- note\nselect 1"},
		{desc: "update", query: "update T set x=1", err: true},
		{desc: "insert", query: "insert into t values (1)", err: true},
		{desc: "delete", query: "delete from t", err: true},
		{desc: "ddl", query: "drop table t", err: true},
		{desc: "select hidden in comment", query: "/* select */ drop table t", err: true},
		{desc: "selectish prefix", query: "selection from t", err: true},
		{desc: "empty", query: "", err: true},
	}

	for _, test := range tests {
		err := ValidateReadOnly(test.query)
		switch {
		case err == nil && test.err:
			t.Errorf("TestValidateReadOnly(%s): got err == nil, want err != nil", test.desc)
		case err != nil && !test.err:
			t.Errorf("TestValidateReadOnly(%s): got err == %s, want err == nil", test.desc, err)
		case err != nil:
			assert.Equal(t, errors.KNotReadOnly, errors.GetKind(err))
		}
	}
}

// singleUse returns an opener that serves cursor for any read query.
func singleUse(cursor Cursor) CursorOpener {
	return OpenerFunc(func(ctx context.Context, query string) (Cursor, error) {
		return cursor, nil
	})
}

func TestNewRequiresOpener(t *testing.T) {
	t.Parallel()

	_, err := New(nil)
	require.Error(t, err)
	assert.Equal(t, errors.KClientArgs, errors.GetKind(err))
}

func TestRunToDocument(t *testing.T) {
	t.Parallel()

	cursor := newTestCursor(t,
		[]interface{}{1, "A"},
		[]interface{}{2, nil},
	)
	client, err := New(singleUse(cursor))
	require.NoError(t, err)

	doc, err := client.RunToDocument(context.Background(), "select id, name from t")
	require.NoError(t, err)

	assert.Equal(t, `{"Table":[{"ID":1,"NAME":"A"},{"ID":2,"NAME":null}]}`, doc)
	assert.Equal(t, 1, cursor.Closed())
}

func TestRunToDocumentTableName(t *testing.T) {
	t.Parallel()

	client, err := New(singleUse(newTestCursor(t)))
	require.NoError(t, err)

	doc, err := client.RunToDocument(context.Background(), "select 1", TableName("PEOPLE"))
	require.NoError(t, err)
	assert.Equal(t, `{"PEOPLE":[]}`, doc)
}

func TestReadOnlyGateBlocksBeforeOpen(t *testing.T) {
	t.Parallel()

	opened := false
	opener := OpenerFunc(func(ctx context.Context, query string) (Cursor, error) {
		opened = true
		return nil, fmt.Errorf("should not be reached")
	})
	client, err := New(opener)
	require.NoError(t, err)

	_, err = client.RunToDocument(context.Background(), "update T set x=1")
	require.Error(t, err)
	assert.Equal(t, errors.KNotReadOnly, errors.GetKind(err))
	assert.False(t, opened, "no cursor may be opened for a non-read-only statement")

	_, err = client.StreamRows(context.Background(), "update T set x=1")
	assert.Equal(t, errors.KNotReadOnly, errors.GetKind(err))

	err = client.DispatchParallel(context.Background(), "update T set x=1", func(row *Row) error { return nil })
	assert.Equal(t, errors.KNotReadOnly, errors.GetKind(err))
	assert.False(t, opened)
}

func TestOpenFailureIsDataAccess(t *testing.T) {
	t.Parallel()

	opener := OpenerFunc(func(ctx context.Context, query string) (Cursor, error) {
		return nil, fmt.Errorf("connection refused")
	})
	client, err := New(opener)
	require.NoError(t, err)

	_, err = client.RunToDocument(context.Background(), "select 1")
	require.Error(t, err)
	assert.Equal(t, errors.KDataAccess, errors.GetKind(err))
}

func TestStreamRows(t *testing.T) {
	t.Parallel()

	cursor := newTestCursor(t,
		[]interface{}{1, "A"},
		[]interface{}{2, "B"},
	)
	client, err := New(singleUse(cursor))
	require.NoError(t, err)

	docs, err := client.StreamRows(context.Background(), "select id, name from t", TableName("T"))
	require.NoError(t, err)
	defer docs.Stop()

	var got []string
	require.NoError(t, docs.Do(func(doc string) error {
		got = append(got, doc)
		return nil
	}))
	assert.Equal(t, []string{
		`{"T":[{"ID":1,"NAME":"A"}]}`,
		`{"T":[{"ID":2,"NAME":"B"}]}`,
	}, got)
}

func TestDispatchParallelEndToEnd(t *testing.T) {
	t.Parallel()

	const n = 25
	cursor := dispatchCursor(t, n)
	client, err := New(singleUse(cursor))
	require.NoError(t, err)

	var calls int64
	err = client.DispatchParallel(context.Background(), "select id, name from t",
		func(row *Row) error {
			atomic.AddInt64(&calls, 1)
			return nil
		},
		MaxConcurrency(5),
	)
	require.NoError(t, err)
	assert.Equal(t, int64(n), atomic.LoadInt64(&calls))
	assert.Equal(t, 1, cursor.Closed())
}

func TestDispatchParallelRequiresCallback(t *testing.T) {
	t.Parallel()

	client, err := New(singleUse(newTestCursor(t)))
	require.NoError(t, err)

	err = client.DispatchParallel(context.Background(), "select 1", nil)
	require.Error(t, err)
	assert.Equal(t, errors.KClientArgs, errors.GetKind(err))
}
