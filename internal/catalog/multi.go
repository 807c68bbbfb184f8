package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Multi fetches several sources concurrently and concatenates their records
// in source order. When two sources carry the same id, the earlier source
// wins. Any source error fails the whole fetch.
type Multi []Source

// Fetch implements Source.
func (m Multi) Fetch(ctx context.Context) ([]Record, error) {
	results := make([][]Record, len(m))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range m {
		if src == nil {
			continue
		}
		g.Go(func() error {
			recs, err := src.Fetch(gctx)
			if err != nil {
				return err
			}
			results[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := []Record{}
	seen := make(map[string]struct{})
	for _, recs := range results {
		for _, r := range recs {
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
			out = append(out, r)
		}
	}
	return out, nil
}
