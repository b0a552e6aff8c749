package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = []string{"Timestamp", "Title", "Message", "PostedBy"}

func TestOpen_MissingFileLeavesHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notices.csv")

	s, err := Open(path, testSchema)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Timestamp,Title,Message,PostedBy\n", string(data))
}

func TestAppendReloadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notices.csv")

	s, err := Open(path, testSchema)
	require.NoError(t, err)

	rows := [][]string{
		{"2025-12-01T10:00:00Z", "First", "Hello", "Admin"},
		{"2025-12-02T11:00:00Z", "Second", "World, with, commas", "Asha"},
		{"2025-12-03T12:00:00Z", "", "", ""},
	}
	for _, row := range rows {
		require.NoError(t, s.Append(row))
	}

	reloaded, err := Open(path, testSchema)
	require.NoError(t, err)
	assert.Equal(t, rows, reloaded.All())
}

func TestAppend_ColumnCountMismatch(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "notices.csv"), testSchema)
	require.NoError(t, err)

	err = s.Append([]string{"only", "three", "fields"})
	assert.ErrorIs(t, err, ErrColumnCount)
	assert.Equal(t, 0, s.Len())
}

func TestOpen_UnparsableFileSelfHeals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notices.csv")
	require.NoError(t, os.WriteFile(path, []byte("\"broken\ncsv,,\"junk"), 0o644))

	s, err := Open(path, testSchema)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Timestamp,Title,Message,PostedBy\n", string(data))
}

func TestOpen_WrongHeaderSelfHeals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notices.csv")
	require.NoError(t, os.WriteFile(path, []byte("A,B\n1,2\n"), 0o644))

	s, err := Open(path, testSchema)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestAll_ReturnsCopies(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "notices.csv"), testSchema)
	require.NoError(t, err)
	require.NoError(t, s.Append([]string{"t", "a", "b", "c"}))

	snapshot := s.All()
	snapshot[0][1] = "mutated"

	assert.Equal(t, "a", s.All()[0][1])
}

func TestExport_IncludesHeader(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "notices.csv"), testSchema)
	require.NoError(t, err)
	require.NoError(t, s.Append([]string{"t1", "Title", "Msg", "Admin"}))

	data, err := s.Export()
	require.NoError(t, err)
	assert.Equal(t, "Timestamp,Title,Message,PostedBy\nt1,Title,Msg,Admin\n", string(data))
}

func TestAppend_Concurrent(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "notices.csv"), testSchema)
	require.NoError(t, err)

	const n = 20
	done := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			done <- s.Append([]string{"t", "x", "y", "z"})
		}()
	}
	for i := 0; i < n; i++ {
		require.NoError(t, <-done)
	}
	assert.Equal(t, n, s.Len())
}
