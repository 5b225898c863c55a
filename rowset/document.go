package rowset

// document.go holds the two JSON consumption modes: full aggregation into a
// single table document and lazy per-row document streaming. Both share the
// table envelope shape {"<table>":[<row>,...]}.

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/rowset/rowset-go/rowset/errors"
)

// encodeEnvelope serializes rows under the table envelope key. Row objects
// keep cursor column order; see Row.MarshalJSON.
func encodeEnvelope(table string, rows []*Row) (string, error) {
	if rows == nil {
		rows = []*Row{}
	}
	buf := bytes.Buffer{}
	buf.WriteByte('{')
	key, err := json.Marshal(table)
	if err != nil {
		return "", err
	}
	buf.Write(key)
	buf.WriteByte(':')
	list, err := json.Marshal(rows)
	if err != nil {
		return "", err
	}
	buf.Write(list)
	buf.WriteByte('}')
	return buf.String(), nil
}

// ToDocument drains the iterator and returns the whole result as one JSON
// document under the table envelope key. Memory cost is proportional to the
// full result size; callers that need a memory bound should stream instead.
// On error the partial result is discarded.
func (r *RowIterator) ToDocument(table string) (string, error) {
	var rows []*Row
	err := r.Do(func(row *Row) error {
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return "", err
	}
	doc, err := encodeEnvelope(table, rows)
	if err != nil {
		return "", errors.E(r.op, errors.KInternal, err)
	}
	return doc, nil
}

// DocumentIterator is a lazy sequence of JSON documents, one per row, each
// wrapping that single row under the table envelope key as a one-element
// list. It is single-pass and inherits termination, error and cancellation
// behavior from the RowIterator it wraps.
type DocumentIterator struct {
	ri    *RowIterator
	table string
}

// Next returns the JSON document for the next row. io.EOF is returned when
// the result is exhausted.
func (d *DocumentIterator) Next() (string, error) {
	row, err := d.ri.Next()
	if err != nil {
		return "", err
	}
	doc, err := encodeEnvelope(d.table, []*Row{row})
	if err != nil {
		return "", errors.E(d.ri.op, errors.KInternal, err)
	}
	return doc, nil
}

// Do calls f for every document in the sequence, in row order. If f returns
// a non-nil error, iteration stops and that error is returned.
func (d *DocumentIterator) Do(f func(doc string) error) error {
	for {
		doc, err := d.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err := f(doc); err != nil {
			return err
		}
	}
}

// Stop stops any further iteration and releases the underlying cursor.
// Always defer a Stop() call after receiving a DocumentIterator.
func (d *DocumentIterator) Stop() {
	d.ri.Stop()
}
