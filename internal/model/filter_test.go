package model

import "testing"

func TestFilterSet_EmptyAcceptsAll(t *testing.T) {
	f := NewFilterSet()
	if !f.Matches("Grade 9-12") {
		t.Error("empty filter should accept every category")
	}
	if !f.Matches("") {
		t.Error("empty filter should accept empty categories")
	}
}

func TestFilterSet_Matches(t *testing.T) {
	f := NewFilterSet("Kindergarten", "Early Education")

	cases := []struct {
		category string
		want     bool
	}{
		{"Kindergarten - Grade 5", true},
		{"Prekindergarten - Grade 8", true}, // label is a substring
		{"kindergarten", true},              // case-insensitive
		{"Early Education", true},
		{"Grade 9-12", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := f.Matches(tc.category); got != tc.want {
			t.Errorf("Matches(%q) = %v, want %v", tc.category, got, tc.want)
		}
	}
}

func TestFilterSet_DropsBlankLabels(t *testing.T) {
	f := NewFilterSet("  ", "Kindergarten", "")
	if got := len(f.Labels()); got != 1 {
		t.Errorf("expected 1 label, got %d", got)
	}
	if f.Empty() {
		t.Error("filter with one label should not be empty")
	}
}
