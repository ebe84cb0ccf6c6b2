package portal

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"schoolscout/internal/model"
)

const texasBaseURL = "https://txschools.gov"

var texasPhonePattern = regexp.MustCompile(`(?i)phone:\s*(.*)`)

// Texas scrapes the txschools.gov school directory. The listing is a plain
// table; pagination is a Material UI "Go to next page" button backed by a
// page query parameter, and detail pages carry a PHONE: label plus a website
// button.
type Texas struct {
	baseURL string
}

// NewTexas creates the Texas portal against the public site.
func NewTexas() *Texas {
	return &Texas{baseURL: texasBaseURL}
}

// NewTexasWithBaseURL creates the Texas portal against an alternate base URL.
func NewTexasWithBaseURL(baseURL string) *Texas {
	return &Texas{baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (t *Texas) Name() string {
	return "texas"
}

// ListingURL encodes the grade-level filters into the search request.
func (t *Texas) ListingURL(filters model.FilterSet) (string, error) {
	u, err := url.Parse(t.baseURL + "/")
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}
	q := u.Query()
	q.Set("view", "schools")
	q.Set("lng", "en")
	for _, label := range filters.Labels() {
		q.Add("grade", label)
	}
	q.Set("page", "1")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ParseListing extracts one record per table row. A row missing a cell yields
// empty fields, not a dropped row.
func (t *Texas) ParseListing(doc *goquery.Document) ([]model.Record, error) {
	rows := doc.Find("table tbody tr")
	if rows.Length() == 0 {
		return nil, errors.New("no listing rows found")
	}

	var records []model.Record
	rows.Each(func(_ int, row *goquery.Selection) {
		rec := model.NewRecord()
		link := row.Find("td:nth-child(1) a").First()
		rec.Set(model.FieldName, link.Text())
		rec.Set(model.FieldURL, t.absoluteURL(link.AttrOr("href", "")))
		rec.Set(model.FieldDistrict, row.Find("td:nth-child(2) a").First().Text())
		rec.Set(model.FieldAddress, row.Find("td:nth-child(3) div").First().Text())
		rec.Set(model.FieldGrades, row.Find("td:nth-child(4)").First().Text())
		rec.Set(model.FieldPhone, "")
		rec.Set(model.FieldWebsite, "")
		records = append(records, rec)
	})
	return records, nil
}

// NextPageURL terminates pagination when the next-page button is absent or
// disabled; otherwise it advances the page query parameter.
func (t *Texas) NextPageURL(doc *goquery.Document, current string) (string, bool) {
	button := doc.Find(`button[aria-label*='Go to next page']`).First()
	if button.Length() == 0 {
		return "", false
	}
	if _, disabled := button.Attr("disabled"); disabled {
		return "", false
	}
	if strings.Contains(button.AttrOr("class", ""), "disabled") {
		return "", false
	}

	u, err := url.Parse(current)
	if err != nil {
		return "", false
	}
	q := u.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page+1))
	u.RawQuery = q.Encode()
	return u.String(), true
}

// DetailURL uses the school link captured from the listing row. There is no
// stable school identifier in the listing beyond that URL.
func (t *Texas) DetailURL(rec model.Record) (string, error) {
	detail := rec.Get(model.FieldURL)
	if detail == "" {
		return "", errors.New("record has no detail URL")
	}
	return detail, nil
}

// ParseDetail pulls the phone number from the PHONE: label and the website
// from the first link button carrying an external href.
func (t *Texas) ParseDetail(doc *goquery.Document) (map[string]string, error) {
	phone := labeledValue(doc, texasPhonePattern)
	website := doc.Find(`a.MuiButtonBase-root[href]`).First().AttrOr("href", "")

	if phone == "" && website == "" {
		return nil, errors.New("no contact fields found")
	}

	fields := make(map[string]string)
	if phone != "" {
		fields[model.FieldPhone] = phone
	}
	if website != "" {
		fields[model.FieldWebsite] = website
	}
	return fields, nil
}

// absoluteURL resolves listing hrefs against the portal base URL.
func (t *Texas) absoluteURL(href string) string {
	if href == "" {
		return ""
	}
	base, err := url.Parse(t.baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
