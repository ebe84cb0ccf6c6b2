// Package enricher augments previously collected records with supplemental
// fields from each school's detail page.
package enricher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"schoolscout/internal/llm"
	"schoolscout/internal/model"
	"schoolscout/internal/portal"
	"schoolscout/internal/store"
)

// Enricher visits each record's detail page and merges phone/website into the
// record, one record at a time.
type Enricher struct {
	portal  portal.Portal
	session *portal.Session
	cfg     *model.Config
	contact *llm.ContactExtractor // nil unless the LLM fallback is enabled
	log     *slog.Logger
}

// New creates an enricher. contact may be nil.
func New(p portal.Portal, s *portal.Session, cfg *model.Config, contact *llm.ContactExtractor) *Enricher {
	return &Enricher{
		portal:  p,
		session: s,
		cfg:     cfg,
		contact: contact,
		log:     slog.With("portal", p.Name()),
	}
}

// Run loads the store at inputPath, enriches every incomplete record, and
// writes the result to outputPath (default: "enriched_" prefix on the input
// file name). Per-record failures are logged and swallowed; the store is
// checkpointed every Crawl.CheckpointRecords processed records. Enrichment is
// a monotonic merge: fields only ever go from empty to a value.
func (e *Enricher) Run(ctx context.Context, inputPath, outputPath string) error {
	st, err := store.Load(inputPath)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	if outputPath == "" {
		outputPath = EnrichedPath(inputPath)
	}

	e.log.Info("starting enrichment", "records", st.Len(), "input", inputPath, "output", outputPath)

	processed := 0
	misses := 0
	for i, rec := range st.Records {
		if err := ctx.Err(); err != nil {
			_ = st.Save(outputPath)
			return err
		}

		if rec.Complete() {
			e.log.Debug("skipping record, already complete", "name", rec.Get(model.FieldName))
			continue
		}

		if err := e.enrichRecord(ctx, rec); err != nil {
			misses++
			e.log.Warn("enrichment miss", "record", i+1, "name", rec.Get(model.FieldName), "err", err)
		}

		processed++
		if processed%10 == 0 {
			e.log.Info("progress", "processed", processed, "total", st.Len())
		}
		if e.cfg.Crawl.CheckpointRecords > 0 && processed%e.cfg.Crawl.CheckpointRecords == 0 {
			if err := st.Save(outputPath); err != nil {
				return fmt.Errorf("checkpoint: %w", err)
			}
		}
	}

	if err := st.Save(outputPath); err != nil {
		return fmt.Errorf("save records: %w", err)
	}

	phones, websites := 0, 0
	for _, rec := range st.Records {
		if rec.Has(model.FieldPhone) {
			phones++
		}
		if rec.Has(model.FieldWebsite) {
			websites++
		}
	}
	e.log.Info("enrichment finished",
		"records", st.Len(),
		"processed", processed,
		"misses", misses,
		"phones", phones,
		"websites", websites,
		"output", outputPath)
	return nil
}

// enrichRecord fetches the record's detail page and merges any supplemental
// fields into it. Populated fields are never overwritten.
func (e *Enricher) enrichRecord(ctx context.Context, rec model.Record) error {
	name := rec.Get(model.FieldName)

	detailURL, err := e.portal.DetailURL(rec)
	if err != nil {
		return &portal.EnrichmentMissError{Name: name, Err: err}
	}

	doc, err := e.session.Get(ctx, detailURL)
	if err != nil {
		return &portal.EnrichmentMissError{Name: name, Err: err}
	}

	fields, err := e.portal.ParseDetail(doc)
	if err != nil {
		// Selector extraction came up empty; let the LLM fallback read the
		// page text when one is configured.
		if e.contact != nil {
			if llmFields, lerr := e.contact.Extract(ctx, doc.Text()); lerr == nil && len(llmFields) > 0 {
				filled := rec.MergeMissing(llmFields)
				e.log.Debug("llm fallback filled fields", "name", name, "fields", filled)
				return nil
			}
		}
		return &portal.EnrichmentMissError{Name: name, Err: err}
	}

	if filled := rec.MergeMissing(fields); len(filled) > 0 {
		e.log.Debug("updated record", "name", name, "fields", filled)
	}
	return nil
}

// EnrichedPath derives the default output path for an input file.
func EnrichedPath(inputPath string) string {
	dir := filepath.Dir(inputPath)
	base := filepath.Base(inputPath)
	if strings.HasPrefix(base, "enriched_") {
		return inputPath
	}
	return filepath.Join(dir, "enriched_"+base)
}
