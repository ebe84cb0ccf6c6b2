package model

import "strings"

// Well-known record fields. Portals may add fields of their own; the store
// derives its column set from whatever fields actually appear on records.
const (
	FieldName     = "name"
	FieldURL      = "url"
	FieldDistrict = "district"
	FieldAddress  = "address"
	FieldGrades   = "grades"
	FieldPhone    = "phone"
	FieldWebsite  = "website"
	FieldPage     = "page_number"
)

// FieldOrder is the canonical column order for the well-known fields.
// Portal-specific extras sort after these.
var FieldOrder = []string{
	FieldName,
	FieldURL,
	FieldDistrict,
	FieldAddress,
	FieldGrades,
	FieldPhone,
	FieldWebsite,
	FieldPage,
}

// EnrichmentFields are the fields the enrichment phase is responsible for.
var EnrichmentFields = []string{FieldPhone, FieldWebsite}

// Record is a single school listing: a mapping from field name to value.
// Missing fields read as the empty string. Records are created during
// collection and mutated in place during enrichment; fields are added,
// never removed.
type Record map[string]string

// NewRecord creates an empty record.
func NewRecord() Record {
	return make(Record)
}

// Get returns the value of a field, or "" if the field is absent.
func (r Record) Get(field string) string {
	return r[field]
}

// Set stores a trimmed value. Empty values are kept as empty strings rather
// than dropped, so the column still appears in the output file.
func (r Record) Set(field, value string) {
	r[field] = strings.TrimSpace(value)
}

// Has reports whether the field is present and non-empty.
func (r Record) Has(field string) bool {
	return strings.TrimSpace(r[field]) != ""
}

// MergeMissing copies values from extra into r, but only into fields that are
// currently empty. Populated fields are never overwritten. Returns the names
// of the fields that were filled.
func (r Record) MergeMissing(extra map[string]string) []string {
	var filled []string
	for field, value := range extra {
		if strings.TrimSpace(value) == "" || r.Has(field) {
			continue
		}
		r.Set(field, value)
		filled = append(filled, field)
	}
	return filled
}

// Complete reports whether every enrichment field is already populated.
// Complete records are skipped by the enricher.
func (r Record) Complete() bool {
	for _, field := range EnrichmentFields {
		if !r.Has(field) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
