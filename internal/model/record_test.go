package model

import "testing"

func TestRecord_SetTrims(t *testing.T) {
	rec := NewRecord()
	rec.Set(FieldName, "  Alpha Elementary  ")
	if got := rec.Get(FieldName); got != "Alpha Elementary" {
		t.Errorf("expected trimmed value, got %q", got)
	}
}

func TestRecord_MergeMissing(t *testing.T) {
	rec := NewRecord()
	rec.Set(FieldName, "Alpha Elementary")
	rec.Set(FieldPhone, "(512) 555-0100")
	rec.Set(FieldWebsite, "")

	filled := rec.MergeMissing(map[string]string{
		FieldPhone:   "(999) 999-9999",
		FieldWebsite: "https://alpha.example.org",
	})

	if len(filled) != 1 || filled[0] != FieldWebsite {
		t.Errorf("expected only website filled, got %v", filled)
	}
	if got := rec.Get(FieldPhone); got != "(512) 555-0100" {
		t.Errorf("populated phone was overwritten: %q", got)
	}
	if got := rec.Get(FieldWebsite); got != "https://alpha.example.org" {
		t.Errorf("website not filled: %q", got)
	}
}

func TestRecord_MergeMissing_IgnoresEmptyValues(t *testing.T) {
	rec := NewRecord()
	filled := rec.MergeMissing(map[string]string{FieldPhone: "   "})
	if len(filled) != 0 {
		t.Errorf("expected no fields filled, got %v", filled)
	}
	if _, ok := rec[FieldPhone]; ok {
		t.Error("blank value should not create the field")
	}
}

func TestRecord_Complete(t *testing.T) {
	rec := NewRecord()
	rec.Set(FieldPhone, "(512) 555-0100")
	if rec.Complete() {
		t.Error("record without website should not be complete")
	}
	rec.Set(FieldWebsite, "https://alpha.example.org")
	if !rec.Complete() {
		t.Error("record with phone and website should be complete")
	}
}

func TestRecord_Clone(t *testing.T) {
	rec := NewRecord()
	rec.Set(FieldName, "Alpha")
	clone := rec.Clone()
	clone.Set(FieldName, "Beta")
	if rec.Get(FieldName) != "Alpha" {
		t.Error("clone should be independent of the original")
	}
}
