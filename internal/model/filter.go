package model

import "strings"

// FilterSet is a set of category labels (typically grade levels) constraining
// which listing rows are collected. An empty set accepts every row.
type FilterSet struct {
	labels []string
}

// NewFilterSet builds a filter set from the given labels. Blank labels are
// dropped.
func NewFilterSet(labels ...string) FilterSet {
	var kept []string
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label != "" {
			kept = append(kept, label)
		}
	}
	return FilterSet{labels: kept}
}

// Empty reports whether the set has no labels.
func (f FilterSet) Empty() bool {
	return len(f.labels) == 0
}

// Labels returns a copy of the filter labels.
func (f FilterSet) Labels() []string {
	out := make([]string, len(f.labels))
	copy(out, f.labels)
	return out
}

// Matches reports whether a row's category text satisfies the filter.
// The match is a case-insensitive membership test: any label appearing in the
// category text accepts the row. An empty filter accepts everything.
func (f FilterSet) Matches(category string) bool {
	if f.Empty() {
		return true
	}
	category = strings.ToLower(category)
	for _, label := range f.labels {
		if strings.Contains(category, strings.ToLower(label)) {
			return true
		}
	}
	return false
}

func (f FilterSet) String() string {
	return strings.Join(f.labels, ", ")
}
