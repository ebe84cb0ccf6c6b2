package store

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"schoolscout/internal/model"
)

func TestStore_ColumnUnion(t *testing.T) {
	s := New()

	r1 := model.NewRecord()
	r1.Set(model.FieldName, "Alpha")
	r1.Set(model.FieldAddress, "1 Main St")
	s.Append(r1)

	r2 := model.NewRecord()
	r2.Set(model.FieldName, "Beta")
	r2.Set(model.FieldPhone, "(512) 555-0100")
	r2.Set("zz_extra", "x")
	r2.Set("aa_extra", "y")
	s.Append(r2)

	// Well-known fields in canonical order, extras sorted after them.
	want := []string{model.FieldName, model.FieldAddress, model.FieldPhone, "aa_extra", "zz_extra"}
	if !reflect.DeepEqual(s.Columns, want) {
		t.Errorf("columns = %v, want %v", s.Columns, want)
	}
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schools.csv")

	s := New()
	r1 := model.NewRecord()
	r1.Set(model.FieldName, "Alpha, The \"First\"")
	r1.Set(model.FieldAddress, "1 Main St\nSuite 2")
	r1.Set(model.FieldPhone, "")
	s.Append(r1)

	r2 := model.NewRecord()
	r2.Set(model.FieldName, "Beta")
	s.Append(r2)

	if err := s.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", loaded.Len())
	}
	if got := loaded.Records[0].Get(model.FieldName); got != "Alpha, The \"First\"" {
		t.Errorf("quoted value did not roundtrip: %q", got)
	}
	if got := loaded.Records[0].Get(model.FieldAddress); got != "1 Main St\nSuite 2" {
		t.Errorf("multiline value did not roundtrip: %q", got)
	}
	// Missing fields render as empty cells and read back empty.
	if got := loaded.Records[1].Get(model.FieldAddress); got != "" {
		t.Errorf("missing field should be empty, got %q", got)
	}
	if !reflect.DeepEqual(loaded.Columns, s.Columns) {
		t.Errorf("columns = %v, want %v", loaded.Columns, s.Columns)
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schools.csv")

	s := New()
	rec := model.NewRecord()
	rec.Set(model.FieldName, "Alpha")
	s.Append(rec)

	if err := s.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	rec2 := model.NewRecord()
	rec2.Set(model.FieldName, "Beta")
	s.Append(rec2)
	if err := s.Save(path); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Len() != 2 {
		t.Errorf("expected whole-file overwrite with 2 records, got %d", loaded.Len())
	}
}

func TestStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schools.csv")

	s := New()
	rec := model.NewRecord()
	rec.Set(model.FieldName, "Alpha")
	s.Append(rec)

	if err := s.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestStore_EmptySave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := New().Save(path); err != nil {
		t.Fatalf("save empty store: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Len() != 0 {
		t.Errorf("expected empty store, got %d records", loaded.Len())
	}
}

func TestLoad_ShortRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.csv")
	content := "name,address,phone\nAlpha,1 Main St\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", loaded.Len())
	}
	if got := loaded.Records[0].Get(model.FieldPhone); got != "" {
		t.Errorf("short row trailing field should be empty, got %q", got)
	}
}
