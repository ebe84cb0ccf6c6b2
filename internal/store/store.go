// Package store persists the record collection shared between the collection
// and enrichment phases as a flat CSV file.
package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"schoolscout/internal/model"
)

// Store is an ordered collection of records together with the column order of
// the persisted file. The column set is the union of all fields seen so far;
// well-known fields keep their canonical order, portal-specific extras sort
// after them.
type Store struct {
	Columns []string
	Records []model.Record

	colSet map[string]bool
}

// New creates an empty store.
func New() *Store {
	return &Store{colSet: make(map[string]bool)}
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.Records)
}

// Append adds a record and unions its fields into the column set.
func (s *Store) Append(rec model.Record) {
	for _, col := range model.FieldOrder {
		if _, ok := rec[col]; ok {
			s.addColumn(col)
		}
	}
	var extras []string
	for col := range rec {
		if !s.colSet[col] {
			extras = append(extras, col)
		}
	}
	sort.Strings(extras)
	for _, col := range extras {
		s.addColumn(col)
	}
	s.Records = append(s.Records, rec)
}

func (s *Store) addColumn(col string) {
	if s.colSet[col] {
		return
	}
	s.colSet[col] = true
	s.Columns = append(s.Columns, col)
}

// Save writes the store to path, replacing any previous content. The write
// goes to a temporary file in the same directory followed by a rename, so an
// interrupted run never leaves a truncated or corrupt file behind.
func (s *Store) Save(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".schoolscout-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	if len(s.Columns) > 0 {
		_ = w.Write(s.Columns)
	}
	row := make([]string, len(s.Columns))
	for _, rec := range s.Records {
		for i, col := range s.Columns {
			row[i] = rec.Get(col)
		}
		_ = w.Write(row)
	}
	w.Flush()

	if err := w.Error(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write records: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// Load reads a store from a CSV file previously written by Save (or by any
// tool producing a header row plus data rows). Short rows read as records
// with the trailing fields empty.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	s := New()
	if len(rows) == 0 {
		return s, nil
	}

	for _, col := range rows[0] {
		s.addColumn(col)
	}
	for _, row := range rows[1:] {
		rec := model.NewRecord()
		for i, col := range s.Columns {
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		s.Records = append(s.Records, rec)
	}
	return s, nil
}
