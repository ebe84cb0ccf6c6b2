package portal

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"schoolscout/internal/model"
)

const texasListingPage = `<html><body>
<table><tbody>
<tr>
  <td><a href="/schools/alpha">Alpha Elementary</a></td>
  <td><a href="/districts/1">Alpha ISD</a></td>
  <td><div>1 Main St, Austin, TX</div></td>
  <td>Kindergarten - Grade 5</td>
</tr>
<tr>
  <td><a href="/schools/beta">Beta High</a></td>
  <td><a href="/districts/2">Beta ISD</a></td>
  <td></td>
  <td>Grade 9-12</td>
</tr>
</tbody></table>
<button aria-label="Go to next page" class="MuiButtonBase-root">&gt;</button>
</body></html>`

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestTexas_ListingURL(t *testing.T) {
	tx := NewTexas()
	u, err := tx.ListingURL(model.NewFilterSet("Kindergarten", "Early Education"))
	if err != nil {
		t.Fatalf("ListingURL: %v", err)
	}
	for _, want := range []string{"view=schools", "lng=en", "page=1", "grade=Kindergarten", "grade=Early+Education"} {
		if !strings.Contains(u, want) {
			t.Errorf("listing URL %q missing %q", u, want)
		}
	}
}

func TestTexas_ParseListing(t *testing.T) {
	tx := NewTexas()
	records, err := tx.ParseListing(parseDoc(t, texasListingPage))
	if err != nil {
		t.Fatalf("ParseListing: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if got := first.Get(model.FieldName); got != "Alpha Elementary" {
		t.Errorf("name = %q", got)
	}
	if got := first.Get(model.FieldURL); got != texasBaseURL+"/schools/alpha" {
		t.Errorf("relative href not resolved: %q", got)
	}
	if got := first.Get(model.FieldDistrict); got != "Alpha ISD" {
		t.Errorf("district = %q", got)
	}
	if got := first.Get(model.FieldGrades); got != "Kindergarten - Grade 5" {
		t.Errorf("grades = %q", got)
	}

	// Rows missing a cell keep the record with the field empty.
	second := records[1]
	if got := second.Get(model.FieldAddress); got != "" {
		t.Errorf("missing address should be empty, got %q", got)
	}
	if got := second.Get(model.FieldName); got != "Beta High" {
		t.Errorf("partial row should still be kept: name = %q", got)
	}

	// Enrichment columns are pre-seeded empty so the CSV schema is stable
	// across both phases.
	if _, ok := first[model.FieldPhone]; !ok {
		t.Error("phone column should be pre-seeded")
	}
}

func TestTexas_ParseListing_NoRows(t *testing.T) {
	tx := NewTexas()
	if _, err := tx.ParseListing(parseDoc(t, "<html><body><p>maintenance</p></body></html>")); err == nil {
		t.Error("expected error when the listing table is absent")
	}
}

func TestTexas_NextPageURL(t *testing.T) {
	tx := NewTexas()
	current := "https://txschools.gov/?page=1&view=schools"

	next, ok := tx.NextPageURL(parseDoc(t, texasListingPage), current)
	if !ok {
		t.Fatal("expected next page")
	}
	if !strings.Contains(next, "page=2") {
		t.Errorf("next URL should advance page: %q", next)
	}

	// Advancing again keeps incrementing.
	next2, ok := tx.NextPageURL(parseDoc(t, texasListingPage), next)
	if !ok || !strings.Contains(next2, "page=3") {
		t.Errorf("expected page=3, got %q (ok=%v)", next2, ok)
	}
}

func TestTexas_NextPageURL_Terminates(t *testing.T) {
	tx := NewTexas()
	current := "https://txschools.gov/?page=7"

	cases := []struct {
		name string
		html string
	}{
		{"absent", `<html><body></body></html>`},
		{"disabled attribute", `<html><body><button aria-label="Go to next page" disabled></button></body></html>`},
		{"disabled class", `<html><body><button aria-label="Go to next page" class="MuiButtonBase-root Mui-disabled"></button></body></html>`},
	}
	for _, tc := range cases {
		if _, ok := tx.NextPageURL(parseDoc(t, tc.html), current); ok {
			t.Errorf("%s: pagination should terminate", tc.name)
		}
	}
}

func TestTexas_ParseDetail(t *testing.T) {
	tx := NewTexas()
	doc := parseDoc(t, `<html><body>
<div><span>PHONE:</span><span> (512) 555-0100 </span></div>
<a class="MuiButtonBase-root" href="https://alpha.example.org">School Website</a>
</body></html>`)

	fields, err := tx.ParseDetail(doc)
	if err != nil {
		t.Fatalf("ParseDetail: %v", err)
	}
	if got := fields[model.FieldPhone]; got != "(512) 555-0100" {
		t.Errorf("phone = %q", got)
	}
	if got := fields[model.FieldWebsite]; got != "https://alpha.example.org" {
		t.Errorf("website = %q", got)
	}
}

func TestTexas_ParseDetail_InlinePhone(t *testing.T) {
	tx := NewTexas()
	doc := parseDoc(t, `<html><body><p>Phone: (512) 555-0199</p></body></html>`)

	fields, err := tx.ParseDetail(doc)
	if err != nil {
		t.Fatalf("ParseDetail: %v", err)
	}
	if got := fields[model.FieldPhone]; got != "(512) 555-0199" {
		t.Errorf("phone = %q", got)
	}
}

func TestTexas_ParseDetail_Miss(t *testing.T) {
	tx := NewTexas()
	if _, err := tx.ParseDetail(parseDoc(t, "<html><body><p>nothing here</p></body></html>")); err == nil {
		t.Error("expected error when no contact fields are present")
	}
}

func TestTexas_DetailURL(t *testing.T) {
	tx := NewTexas()

	rec := model.NewRecord()
	rec.Set(model.FieldURL, "https://txschools.gov/schools/alpha")
	u, err := tx.DetailURL(rec)
	if err != nil || u != "https://txschools.gov/schools/alpha" {
		t.Errorf("DetailURL = %q, %v", u, err)
	}

	if _, err := tx.DetailURL(model.NewRecord()); err == nil {
		t.Error("expected error for record without URL")
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry()

	p, err := r.Lookup("Texas")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if p.Name() != "texas" {
		t.Errorf("name = %q", p.Name())
	}

	if _, err := r.Lookup("atlantis"); err == nil {
		t.Error("expected error for unknown portal")
	}
}
