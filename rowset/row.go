package rowset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Row represents one row of a query result: an ordered mapping of column
// name to value. Within one result every Row has the same ordered column
// set. Methods are not thread-safe.
type Row struct {
	columns []string
	values  []interface{}
	ordinal int
}

// ColumnNames returns a list of all column names, in cursor order.
func (r *Row) ColumnNames() []string {
	return r.columns
}

// Values returns the row's values, in cursor column order. A SQL NULL is
// represented as nil.
func (r *Row) Values() []interface{} {
	return r.values
}

// Value returns the value at the given column index.
func (r *Row) Value(i int) interface{} {
	return r.values[i]
}

// ValueByName returns the value of the named column. The second return is
// false if no such column exists.
func (r *Row) ValueByName(name string) (interface{}, bool) {
	i := lo.IndexOf(r.columns, name)
	if i < 0 {
		return nil, false
	}
	return r.values[i], true
}

// Ordinal returns the zero-based position of the row within the result.
func (r *Row) Ordinal() int {
	return r.ordinal
}

// Size returns the number of columns contained in the Row.
func (r *Row) Size() int {
	return len(r.columns)
}

// MarshalJSON encodes the row as a JSON object whose field order matches
// cursor column order. nil values encode as JSON null.
func (r *Row) MarshalJSON() ([]byte, error) {
	buf := bytes.Buffer{}
	buf.WriteByte('{')
	for i, name := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String implements fmt.Stringer.
func (r *Row) String() string {
	b := strings.Builder{}
	for i, name := range r.columns {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", name, r.values[i])
	}
	return b.String()
}
