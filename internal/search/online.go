package search

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/skyseek/skyseek/internal/domain"
	"github.com/skyseek/skyseek/internal/logger"
	"github.com/skyseek/skyseek/internal/sources"
)

// MaxOnlineResults caps the merged online output.
const MaxOnlineResults = 30

// OnlineResult is the outcome of one online fan-out. Partial success
// is normal: failed sources are listed, never surfaced as an error.
type OnlineResult struct {
	Results        []domain.SearchableObject
	SourcesQueried []domain.SourceID
	Failed         []domain.SourceID
	Elapsed        time.Duration
}

// Online fans the query out to every given source in parallel. The
// timeout bounds the whole fan-out: when it expires, outstanding
// sources count as failed. Cancellation of ctx abandons the search.
func Online(ctx context.Context, query string, srcs []sources.Source, timeout time.Duration, log logger.Logger) OnlineResult {
	query = strings.TrimSpace(query)
	if len(query) < domain.MinQueryLength || len(srcs) == 0 {
		return OnlineResult{}
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var mu sync.Mutex
	perSource := make(map[domain.SourceID][]domain.SearchableObject, len(srcs))
	var queried, failed []domain.SourceID

	g, gctx := errgroup.WithContext(ctx)
	for _, src := range srcs {
		src := src
		g.Go(func() error {
			objs, err := src.Resolve(gctx, query)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// A cancelled search is not a source failure.
				if errors.Is(err, context.Canceled) {
					return nil
				}
				// One source failing must not fail the others.
				log.Warn("online source failed",
					logger.String("source", string(src.ID())),
					logger.Error(err))
				failed = append(failed, src.ID())
				return nil
			}
			queried = append(queried, src.ID())
			perSource[src.ID()] = objs
			return nil
		})
	}
	_ = g.Wait()

	// Concatenate in source registration order so output is
	// deterministic, then dedup by name, first occurrence wins.
	merged := make([]domain.SearchableObject, 0, MaxOnlineResults)
	seen := make(map[string]bool)
	for _, src := range srcs {
		for _, obj := range perSource[src.ID()] {
			key := strings.ToLower(obj.Name)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true

			obj.IsOnlineResult = true
			obj.Score = domain.Score(&obj, query)
			if obj.Score < domain.FuzzyThreshold {
				// The remote service matched something our scorer
				// cannot see (alias tables, coordinates). Keep it,
				// ranked at the inclusion floor.
				obj.Score = domain.FuzzyThreshold
			}
			merged = append(merged, obj)
		}
	}
	if len(merged) > MaxOnlineResults {
		merged = merged[:MaxOnlineResults]
	}

	return OnlineResult{
		Results:        merged,
		SourcesQueried: queried,
		Failed:         failed,
		Elapsed:        time.Since(start),
	}
}
