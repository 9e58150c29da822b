package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/skyseek/skyseek/internal/logger"
)

// RecentSearch is one persisted search.
type RecentSearch struct {
	Query       string    `json:"query"`
	ResultCount int       `json:"result_count"`
	Mode        string    `json:"mode"`
	At          time.Time `json:"at"`
}

// Store persists recent searches and per-query counters in Redis.
type Store struct {
	client *goredis.Client
	log    logger.Logger
	max    int64
	now    func() time.Time
}

// opTimeout bounds fire-and-forget writes so a stuck Redis never
// leaks goroutines.
const opTimeout = 2 * time.Second

// NewStore creates a store keeping at most max recent searches.
func NewStore(client *goredis.Client, log logger.Logger, max int) *Store {
	if max <= 0 {
		max = 50
	}
	return &Store{
		client: client,
		log:    log,
		max:    int64(max),
		now:    time.Now,
	}
}

// RecordSearch implements the engine's fire-and-forget recorder: it
// prepends the search to the recents list, trims the list and bumps
// the query counter. Errors are logged, never returned.
func (s *Store) RecordSearch(query string, resultCount int, mode string) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	entry := RecentSearch{Query: query, ResultCount: resultCount, Mode: mode, At: s.now()}
	payload, err := json.Marshal(entry)
	if err != nil {
		s.log.Error("marshal recent search", logger.Error(err))
		return
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, KeyRecents, string(payload))
	pipe.LTrim(ctx, KeyRecents, 0, s.max-1)
	pipe.Incr(ctx, QueryCountKey(query))
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warn("record recent search failed",
			logger.String("query", query),
			logger.Error(err))
	}
}

// Recent returns up to n recent searches, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]RecentSearch, error) {
	if n <= 0 || int64(n) > s.max {
		n = int(s.max)
	}

	raw, err := s.client.LRange(ctx, KeyRecents, 0, int64(n)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("read recents: %w", err)
	}

	out := make([]RecentSearch, 0, len(raw))
	for _, item := range raw {
		var entry RecentSearch
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			// Skip corrupted entries rather than failing the read.
			s.log.Warn("skipping malformed recents entry", logger.Error(err))
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

// QueryCount returns how many times a query has been searched.
func (s *Store) QueryCount(ctx context.Context, query string) (int64, error) {
	count, err := s.client.Get(ctx, QueryCountKey(query)).Int64()
	if err == goredis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read query count: %w", err)
	}
	return count, nil
}

// ClearRecents drops the recents list.
func (s *Store) ClearRecents(ctx context.Context) error {
	if err := s.client.Del(ctx, KeyRecents).Err(); err != nil {
		return fmt.Errorf("clear recents: %w", err)
	}
	return nil
}
