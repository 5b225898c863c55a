package rowset

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockCursorValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc    string
		columns []string
		err     bool
	}{
		{desc: "no columns", columns: nil, err: true},
		{desc: "empty name", columns: []string{"A", ""}, err: true},
		{desc: "duplicate name", columns: []string{"A", "A"}, err: true},
		{desc: "valid", columns: []string{"A", "B"}},
	}

	for _, test := range tests {
		_, err := NewMockCursor(test.columns)
		switch {
		case err == nil && test.err:
			t.Errorf("TestNewMockCursorValidation(%s): got err == nil, want err != nil", test.desc)
		case err != nil && !test.err:
			t.Errorf("TestNewMockCursorValidation(%s): got err == %s, want err == nil", test.desc, err)
		}
	}
}

func TestMockCursorRowLengthMismatch(t *testing.T) {
	t.Parallel()

	m, err := NewMockCursor([]string{"A", "B"})
	require.NoError(t, err)
	assert.Error(t, m.Row(1))
	assert.Error(t, m.Row(1, 2, 3))
	assert.NoError(t, m.Row(1, 2))
}

func TestMockCursorReplay(t *testing.T) {
	t.Parallel()

	m, err := NewMockCursor([]string{"A"})
	require.NoError(t, err)
	require.NoError(t, m.Row(1))
	m.Error(fmt.Errorf("boom"))

	ok, err := m.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, m.Value(0))

	_, err = m.Next()
	assert.EqualError(t, err, "boom")
}
