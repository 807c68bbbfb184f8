package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orbitfolio/internal/logging"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

// Source supplies the catalog as an ordered list of records.
type Source interface {
	Fetch(ctx context.Context) ([]Record, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]Record, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context) ([]Record, error) { return f(ctx) }

// Static is a fixed in-memory catalog.
type Static []Record

// Fetch returns a copy of the records.
func (s Static) Fetch(ctx context.Context) ([]Record, error) {
	out := make([]Record, len(s))
	for i, r := range s {
		out[i] = r.Clone()
	}
	return out, nil
}

// FetchOrEmpty performs the one-shot catalog fetch used at scene mount. It
// never blocks past timeout and never fails: a fetch error degrades to an
// empty catalog so the scene still renders its core. Invalid records and
// repeated ids are dropped one by one; the rest of the catalog is kept.
func FetchOrEmpty(ctx context.Context, src Source, timeout time.Duration) []Record {
	if src == nil {
		return []Record{}
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	timer := logging.StartTimer(logging.CategoryCatalog, "catalog fetch")
	defer timer.StopWithThreshold(500 * time.Millisecond)

	records, err := src.Fetch(ctx)
	if err != nil {
		logging.CatalogWarn("catalog fetch failed, rendering empty catalog: %v", err)
		return []Record{}
	}
	records = dropInvalid(records)
	logging.Catalog("catalog fetched: %d records", len(records))
	return records
}

// dropInvalid keeps valid records in order, skipping any whose id was
// already seen.
func dropInvalid(records []Record) []Record {
	out := make([]Record, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			logging.CatalogWarn("dropping record: %v", err)
			continue
		}
		if _, dup := seen[r.ID]; dup {
			logging.CatalogWarn("dropping record: %v", fmt.Errorf("%w: duplicate id %s", ErrInvalidRecord, r.ID))
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}
