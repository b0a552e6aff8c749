// Package store implements the append-only tabular record store backing
// registrations and announcements. Rows live in a CSV file with a fixed
// header; a missing or unparsable file is silently reinitialized to a
// header-only file.
package store

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sync"
)

// ErrColumnCount is returned by Append when a row does not match the
// store's schema width.
var ErrColumnCount = errors.New("row does not match schema column count")

// Store is an ordered append-only sequence of rows under a fixed column
// schema. All access is serialized through a single mutex, so concurrent
// appends from different sessions cannot interleave the read-modify-write
// cycle against the backing file.
type Store struct {
	mu     sync.Mutex
	path   string
	schema []string
	rows   [][]string
}

// Open loads the store at path under the given schema. If the file is
// absent, fails to parse, or carries a different header, the store is
// reset to empty and a header-only file is written in its place. Open
// only fails when the fresh file cannot be written.
func Open(path string, schema []string) (*Store, error) {
	s := &Store{path: path, schema: schema}

	rows, ok := readRows(path, schema)
	if !ok {
		if err := s.persist(); err != nil {
			return nil, fmt.Errorf("initialize store %s: %w", path, err)
		}
		return s, nil
	}
	s.rows = rows
	return s, nil
}

// readRows loads data rows from path, reporting ok=false when the file
// is missing, unparsable, or headed by the wrong columns.
func readRows(path string, schema []string) ([][]string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil || len(records) == 0 {
		return nil, false
	}
	if !equal(records[0], schema) {
		return nil, false
	}
	return records[1:], true
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Schema returns the store's column names.
func (s *Store) Schema() []string {
	out := make([]string, len(s.schema))
	copy(out, s.schema)
	return out
}

// Len returns the number of data rows.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// All returns an ordered snapshot of every data row.
func (s *Store) All() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([][]string, len(s.rows))
	for i, r := range s.rows {
		row := make([]string, len(r))
		copy(row, r)
		out[i] = row
	}
	return out
}

// Append adds one row at the end of the sequence and rewrites the
// backing file. The only validation is the column count; empty strings
// are acceptable in any field. Existing rows are never mutated.
func (s *Store) Append(row []string) error {
	if len(row) != len(s.schema) {
		return fmt.Errorf("%w: got %d, want %d", ErrColumnCount, len(row), len(s.schema))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows = append(s.rows, row)
	if err := s.persist(); err != nil {
		// keep memory and file consistent
		s.rows = s.rows[:len(s.rows)-1]
		return fmt.Errorf("persist store %s: %w", s.path, err)
	}
	return nil
}

// Export returns the full store, header included, encoded as CSV.
func (s *Store) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.encode()
}

// persist rewrites the whole file from the in-memory sequence. The
// caller must hold s.mu (or have exclusive access during Open).
func (s *Store) persist() error {
	data, err := s.encode()
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s *Store) encode() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(s.schema); err != nil {
		return nil, err
	}
	if err := w.WriteAll(s.rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
