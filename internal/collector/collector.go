// Package collector drives a portal's paginated listing and accumulates the
// basic school records.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"schoolscout/internal/model"
	"schoolscout/internal/portal"
	"schoolscout/internal/store"
)

// Collector walks every listing page of one portal, extracts a record per
// row, and persists the growing store incrementally.
type Collector struct {
	portal  portal.Portal
	session *portal.Session
	cfg     *model.Config
	log     *slog.Logger
}

// New creates a collector. The session is owned by the caller.
func New(p portal.Portal, s *portal.Session, cfg *model.Config) *Collector {
	return &Collector{
		portal:  p,
		session: s,
		cfg:     cfg,
		log:     slog.With("portal", p.Name()),
	}
}

// Run collects every listing row matching filters and writes the store to
// outputPath. An unreachable or structurally unexpected first page is fatal;
// a later page that cannot be parsed is logged and skipped while pagination
// can still advance. The store on disk is checkpointed every
// Crawl.CheckpointPages pages, so an interrupted run loses at most that many
// pages of work.
func (c *Collector) Run(ctx context.Context, filters model.FilterSet, outputPath string) (*store.Store, error) {
	pageURL, err := c.portal.ListingURL(filters)
	if err != nil {
		return nil, fmt.Errorf("build listing URL: %w", err)
	}

	c.log.Info("starting collection", "url", pageURL, "filters", filters.String(), "output", outputPath)

	st := store.New()
	seen := make(map[string]bool)
	page := 1

	for {
		if err := ctx.Err(); err != nil {
			_ = st.Save(outputPath)
			return st, err
		}

		doc, err := c.session.Get(ctx, pageURL)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			// Mid-run navigation failures end pagination; what is already
			// collected is kept.
			c.log.Warn("page load failed, stopping pagination", "page", page, "err", err)
			break
		}

		records, err := c.portal.ParseListing(doc)
		if err != nil {
			if page == 1 {
				return nil, &portal.NavigationError{URL: pageURL, Err: err}
			}
			perr := &portal.PageParseError{Page: page, URL: pageURL, Err: err}
			c.log.Warn("skipping page", "page", page, "err", perr)
		} else {
			kept := 0
			for _, rec := range records {
				if !filters.Matches(rec.Get(model.FieldGrades)) {
					continue
				}
				if key := rec.Get(model.FieldURL); key != "" {
					if seen[key] {
						continue
					}
					seen[key] = true
				}
				rec.Set(model.FieldPage, strconv.Itoa(page))
				st.Append(rec)
				kept++
			}
			c.log.Info("collected page", "page", page, "rows", len(records), "kept", kept, "total", st.Len())
		}

		if c.cfg.Crawl.CheckpointPages > 0 && page%c.cfg.Crawl.CheckpointPages == 0 {
			if err := st.Save(outputPath); err != nil {
				return nil, fmt.Errorf("checkpoint: %w", err)
			}
		}

		if c.cfg.Crawl.MaxPages > 0 && page >= c.cfg.Crawl.MaxPages {
			c.log.Warn("reached page bound, stopping", "pages", page)
			break
		}

		next, ok := c.portal.NextPageURL(doc, pageURL)
		if !ok {
			c.log.Info("reached last page", "pages", page)
			break
		}
		pageURL = next
		page++
	}

	if err := st.Save(outputPath); err != nil {
		return nil, fmt.Errorf("save records: %w", err)
	}
	c.log.Info("collection finished", "records", st.Len(), "output", outputPath)
	return st, nil
}
