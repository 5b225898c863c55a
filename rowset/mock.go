package rowset

// MockCursor provides an in-memory Cursor for tests. This is useful when
// building fakes of a data-access layer for hermetic tests of code that
// consumes a Client.

import (
	"fmt"
)

// MockCursor implements Cursor over a fixed set of rows. Rows and errors
// are replayed in the order they were added. The zero value is not usable;
// use NewMockCursor.
type MockCursor struct {
	columns []string
	// playback entries are either []interface{} (a row) or error.
	playback []interface{}
	pos      int
	current  []interface{}
	closed   int
}

// NewMockCursor creates a MockCursor with the given ordered column names.
func NewMockCursor(columns []string) (*MockCursor, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("columns is zero length")
	}
	seen := make(map[string]bool, len(columns))
	for i, name := range columns {
		if name == "" {
			return nil, fmt.Errorf("columns[%d] is an empty string", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("columns[%d](%s) is already defined", i, name)
		}
		seen[name] = true
	}
	return &MockCursor{columns: columns}, nil
}

// Row adds a row of values to be replayed. Use nil for a SQL NULL.
func (m *MockCursor) Row(values ...interface{}) error {
	if len(values) != len(m.columns) {
		return fmt.Errorf("row has %d values, want %d", len(values), len(m.columns))
	}
	m.playback = append(m.playback, values)
	return nil
}

// Error adds an error to be replayed from Next after the rows added so far.
func (m *MockCursor) Error(err error) {
	m.playback = append(m.playback, err)
}

// Columns implements Cursor.
func (m *MockCursor) Columns() []string {
	return m.columns
}

// Next implements Cursor.
func (m *MockCursor) Next() (bool, error) {
	if m.pos >= len(m.playback) {
		m.current = nil
		return false, nil
	}
	entry := m.playback[m.pos]
	m.pos++
	switch v := entry.(type) {
	case []interface{}:
		m.current = v
		return true, nil
	case error:
		m.current = nil
		return false, v
	default:
		return false, fmt.Errorf("mock playback entry %d has unknown type %T", m.pos-1, entry)
	}
}

// Value implements Cursor.
func (m *MockCursor) Value(i int) interface{} {
	return m.current[i]
}

// Close implements Cursor. It records the call; use Closed to assert on it.
func (m *MockCursor) Close() error {
	m.closed++
	return nil
}

// Closed returns how many times Close was called.
func (m *MockCursor) Closed() int {
	return m.closed
}
