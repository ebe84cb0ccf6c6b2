package portal

import "fmt"

// NavigationError indicates the portal endpoint was unreachable or its page
// did not have the expected structure. Fatal for a collection run when it
// happens on the first load.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigate %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}

// PageParseError indicates a single listing page's rows could not be
// extracted. The page is logged and skipped; pagination continues.
type PageParseError struct {
	Page int
	URL  string
	Err  error
}

func (e *PageParseError) Error() string {
	return fmt.Sprintf("parse page %d (%s): %v", e.Page, e.URL, e.Err)
}

func (e *PageParseError) Unwrap() error {
	return e.Err
}

// EnrichmentMissError indicates one record's detail lookup yielded no result
// or the expected fields were absent. The record is kept with its enrichment
// fields empty and processing continues.
type EnrichmentMissError struct {
	Name string
	Err  error
}

func (e *EnrichmentMissError) Error() string {
	return fmt.Sprintf("enrich %q: %v", e.Name, e.Err)
}

func (e *EnrichmentMissError) Unwrap() error {
	return e.Err
}
