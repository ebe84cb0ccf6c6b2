// Package portal defines the per-state extension surface for school
// directory portals and the HTTP session used to drive them.
package portal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"schoolscout/internal/model"
)

// Portal describes one state's education portal: where the listing lives, how
// rows and their fields are located, how pagination advances, and how a
// record's detail page is found. It is the sole extension point; supporting a
// new state means implementing this interface and registering it.
type Portal interface {
	// Name returns the portal name used for registry lookup.
	Name() string

	// ListingURL builds the first listing page URL with the filter criteria
	// encoded into the request.
	ListingURL(filters model.FilterSet) (string, error)

	// ParseListing extracts one record per listing row on the page. A row
	// missing an expected field yields a record with that field empty; rows
	// are never dropped for incompleteness.
	ParseListing(doc *goquery.Document) ([]model.Record, error)

	// NextPageURL resolves the URL of the next listing page from the page's
	// pagination control. ok is false when the control is absent or disabled,
	// which terminates pagination.
	NextPageURL(doc *goquery.Document, current string) (next string, ok bool)

	// DetailURL derives the detail page URL for a collected record.
	DetailURL(rec model.Record) (string, error)

	// ParseDetail extracts the supplemental fields from a detail page.
	ParseDetail(doc *goquery.Document) (map[string]string, error)
}

// Registry maps portal names to implementations. Selection is by explicit
// configuration; there is no dynamic discovery.
type Registry struct {
	portals map[string]Portal
}

// NewRegistry creates a registry with the built-in portals registered.
func NewRegistry() *Registry {
	r := &Registry{portals: make(map[string]Portal)}
	r.Register(NewTexas())
	return r
}

// Register adds a portal, replacing any previous portal with the same name.
func (r *Registry) Register(p Portal) {
	r.portals[strings.ToLower(p.Name())] = p
}

// Lookup returns the portal registered under name.
func (r *Registry) Lookup(name string) (Portal, error) {
	p, ok := r.portals[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown portal %q (available: %s)", name, strings.Join(r.Names(), ", "))
	}
	return p, nil
}

// Names returns the registered portal names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.portals))
	for name := range r.portals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
