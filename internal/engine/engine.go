package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/skyseek/skyseek/internal/cache"
	"github.com/skyseek/skyseek/internal/catalog"
	"github.com/skyseek/skyseek/internal/domain"
	"github.com/skyseek/skyseek/internal/logger"
	"github.com/skyseek/skyseek/internal/metrics"
	"github.com/skyseek/skyseek/internal/search"
	"github.com/skyseek/skyseek/internal/sources"
)

// Mode selects which search stages run.
type Mode string

const (
	ModeLocal  Mode = "local"  // catalog only
	ModeHybrid Mode = "hybrid" // catalog first, then online merge
	ModeOnline Mode = "online" // remote sources only
)

// ParseMode maps a config string to a Mode, defaulting to hybrid.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLocal:
		return ModeLocal
	case ModeOnline:
		return ModeOnline
	default:
		return ModeHybrid
	}
}

// RecentRecorder persists settled searches. Implementations do their
// own error handling; the engine calls it fire-and-forget.
type RecentRecorder interface {
	RecordSearch(query string, resultCount int, mode string)
}

// Options are the engine tunables, fixed at construction.
type Options struct {
	DebounceDelay  time.Duration
	OnlineTimeout  time.Duration
	Mode           Mode
	EnabledSources map[domain.SourceID]bool
	GroupBySource  bool
}

// Deps are the engine collaborators. Targets, Live, Recents and Sched
// are optional; a nil Sched gets the timer-backed default.
type Deps struct {
	Log     logger.Logger
	Catalog *catalog.Index
	Sources *sources.Registry
	Cache   *cache.ResultCache
	Targets search.TargetProvider
	Live    search.LiveEngine
	Recents RecentRecorder
	Sched   Scheduler
}

// Engine orchestrates the two-stage search: debounced query intake,
// cache short-circuit, synchronous local stage, asynchronous online
// fan-out, merge, and the derived result views. All exported methods
// are safe for concurrent use.
type Engine struct {
	log      logger.Logger
	catalog  *catalog.Index
	registry *sources.Registry
	cache    *cache.ResultCache
	targets  search.TargetProvider
	live     search.LiveEngine
	recents  RecentRecorder
	sched    Scheduler
	opts     Options

	mu                sync.Mutex
	query             string
	mode              Mode
	filters           domain.SearchFilters
	sortBy            domain.SortOption
	groupBySource     bool
	results           []domain.SearchableObject
	selected          map[string]bool
	stats             domain.SearchStats
	localElapsed      time.Duration
	isSearching       bool
	isOnlineSearching bool
	onlineAvailable   bool

	// generation stamps each search; stale async completions compare
	// against it and discard themselves. Last query wins.
	generation     uint64
	cancelDebounce func()
	cancelOnline   context.CancelFunc
	onResults      func([]domain.SearchableObject)
	closed         bool
}

// New builds an engine. The mode defaults to hybrid when unset.
func New(deps Deps, opts Options) *Engine {
	if opts.Mode == "" {
		opts.Mode = ModeHybrid
	}
	if deps.Sched == nil {
		deps.Sched = NewTimerScheduler()
	}
	return &Engine{
		log:           deps.Log,
		catalog:       deps.Catalog,
		registry:      deps.Sources,
		cache:         deps.Cache,
		targets:       deps.Targets,
		live:          deps.Live,
		recents:       deps.Recents,
		sched:         deps.Sched,
		opts:          opts,
		mode:          opts.Mode,
		filters:       domain.DefaultFilters(),
		sortBy:        domain.SortByRelevance,
		groupBySource: opts.GroupBySource,
		selected:      make(map[string]bool),
	}
}

// OnResults registers a callback invoked outside the engine lock each
// time the visible result set settles. A panicking callback is
// recovered and logged; it never corrupts engine state.
func (e *Engine) OnResults(fn func([]domain.SearchableObject)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onResults = fn
}

// SetQuery records a query change and schedules the search after the
// debounce delay. An earlier pending search for a superseded query is
// cancelled. Clearing to empty skips the debounce and settles at once.
func (e *Engine) SetQuery(q string) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.query = q
	if e.cancelDebounce != nil {
		e.cancelDebounce()
		e.cancelDebounce = nil
	}
	if strings.TrimSpace(q) == "" {
		e.mu.Unlock()
		e.performSearch(q)
		return
	}
	e.cancelDebounce = e.sched.Schedule(e.opts.DebounceDelay, func() {
		e.performSearch(q)
	})
	e.mu.Unlock()
}

// Search runs the query immediately, bypassing the debounce.
func (e *Engine) Search(q string) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	if e.cancelDebounce != nil {
		e.cancelDebounce()
		e.cancelDebounce = nil
	}
	e.mu.Unlock()
	e.performSearch(q)
}

// ClearSearch drops the query, results, selection and any in-flight
// work.
func (e *Engine) ClearSearch() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.generation++
	if e.cancelDebounce != nil {
		e.cancelDebounce()
		e.cancelDebounce = nil
	}
	if e.cancelOnline != nil {
		e.cancelOnline()
		e.cancelOnline = nil
	}
	e.query = ""
	e.results = nil
	e.selected = make(map[string]bool)
	e.stats = domain.SearchStats{}
	e.isSearching = false
	e.isOnlineSearching = false
	e.mu.Unlock()

	e.notify(nil)
}

// SetFilters merges a partial filter update and, when a query is
// active, re-runs the search synchronously. Filter changes never
// debounce: the user acted on the current query.
func (e *Engine) SetFilters(u domain.FilterUpdate) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.filters = u.Apply(e.filters)
	q := e.query
	if e.cancelDebounce != nil {
		e.cancelDebounce()
		e.cancelDebounce = nil
	}
	e.mu.Unlock()

	if strings.TrimSpace(q) != "" {
		e.performSearch(q)
	}
}

// SetMode switches the search mode and re-runs an active query.
func (e *Engine) SetMode(m Mode) {
	e.mu.Lock()
	if e.closed || e.mode == m {
		e.mu.Unlock()
		return
	}
	e.mode = m
	q := e.query
	if e.cancelDebounce != nil {
		e.cancelDebounce()
		e.cancelDebounce = nil
	}
	e.mu.Unlock()

	if strings.TrimSpace(q) != "" {
		e.performSearch(q)
	}
}

// SetSortBy changes the ordering of the result views. It does not
// re-run the search; views are derived on read.
func (e *Engine) SetSortBy(by domain.SortOption) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sortBy = by
}

// SetGroupBySource toggles grouping between object type and source.
func (e *Engine) SetGroupBySource(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.groupBySource = v
}

// performSearch is the single search entry point. It stamps a new
// generation, so every older pending or in-flight search becomes stale.
func (e *Engine) performSearch(query string) {
	trimmed := strings.TrimSpace(query)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.query = query
	e.generation++
	gen := e.generation
	if e.cancelOnline != nil {
		e.cancelOnline()
		e.cancelOnline = nil
	}
	e.isOnlineSearching = false
	filters := e.filters
	mode := e.mode
	e.mu.Unlock()

	if trimmed == "" {
		e.mu.Lock()
		if gen == e.generation && !e.closed {
			e.results = nil
			e.stats = domain.SearchStats{}
			e.isSearching = false
		}
		e.mu.Unlock()
		e.notifyCurrent(gen, nil)
		return
	}

	metrics.SearchesTotal.WithLabelValues(string(mode)).Inc()

	// Cache hit is a complete answer: no local scan, no fan-out. The
	// entry was stored under the filters in force back then, so the
	// active ones are re-applied before serving.
	if entry, ok := e.cache.Get(trimmed); ok {
		metrics.CacheTotal.WithLabelValues("hit").Inc()
		res := applyFilters(entry.Results, filters)

		e.mu.Lock()
		if gen != e.generation || e.closed {
			e.mu.Unlock()
			return
		}
		e.results = res
		e.stats = domain.ComputeStats(res, 0, 0)
		e.isSearching = false
		e.mu.Unlock()

		e.notifyCurrent(gen, res)
		metrics.ResultsReturned.Observe(float64(len(res)))
		return
	}
	metrics.CacheTotal.WithLabelValues("miss").Inc()

	e.mu.Lock()
	if gen != e.generation || e.closed {
		e.mu.Unlock()
		return
	}
	e.isSearching = true
	e.mu.Unlock()

	var local []domain.SearchableObject
	localStart := time.Now()
	if mode != ModeOnline && !filters.OnlineOnly {
		local = search.Local(trimmed, filters, e.catalog.All(), e.targets, e.live)
	}
	localElapsed := time.Since(localStart)

	var enabled []sources.Source
	if mode != ModeLocal && len(trimmed) >= domain.MinQueryLength {
		for _, s := range e.registry.Enabled(e.opts.EnabledSources) {
			if filters.SourceAllowed(s.ID()) {
				enabled = append(enabled, s)
			}
		}
	}

	e.mu.Lock()
	if gen != e.generation || e.closed {
		e.mu.Unlock()
		return
	}
	e.results = local
	e.localElapsed = localElapsed
	e.stats = domain.ComputeStats(local, localElapsed, 0)
	e.isSearching = false
	e.onlineAvailable = e.registry.AnyAvailable()

	if len(enabled) > 0 {
		ctx, cancelFn := context.WithCancel(context.Background())
		e.cancelOnline = cancelFn
		e.isOnlineSearching = true
		go e.runOnline(ctx, gen, trimmed, filters, mode, local, enabled)
	}
	e.mu.Unlock()

	e.notifyCurrent(gen, local)
	if len(enabled) == 0 {
		metrics.ResultsReturned.Observe(float64(len(local)))
		e.recordRecent(trimmed, len(local), mode)
	}
}

// runOnline executes the fan-out and folds the outcome back in, unless
// a newer generation superseded this search in the meantime.
func (e *Engine) runOnline(ctx context.Context, gen uint64, query string, filters domain.SearchFilters, mode Mode, local []domain.SearchableObject, srcs []sources.Source) {
	res := search.Online(ctx, query, srcs, e.opts.OnlineTimeout, e.log)

	for _, id := range res.Failed {
		metrics.SourceFailuresTotal.WithLabelValues(string(id)).Inc()
		e.registry.MarkUnavailable(id)
	}
	metrics.OnlineSearchDuration.Observe(res.Elapsed.Seconds())

	// Online hits honor the same type and magnitude filters the local
	// stage applied.
	filtered := make([]domain.SearchableObject, 0, len(res.Results))
	for _, o := range res.Results {
		if filters.TypeAllowed(o.Type) && filters.MagnitudePass(&o) {
			filtered = append(filtered, o)
		}
	}

	merged := domain.MergeResults(local, filtered)

	e.mu.Lock()
	if e.closed || gen != e.generation || ctx.Err() != nil {
		e.mu.Unlock()
		return
	}
	e.results = merged
	e.stats = domain.ComputeStats(merged, e.localElapsed, res.Elapsed)
	e.onlineAvailable = e.registry.AnyAvailable()
	// Cache only what at least one source actually answered, and do it
	// before the in-flight flag drops so observers never see a settled
	// search whose cache entry is still pending.
	if len(res.SourcesQueried) > 0 {
		e.cache.Put(query, merged, cache.OriginOnline)
	}
	e.isOnlineSearching = false
	e.cancelOnline = nil
	e.mu.Unlock()

	e.notifyCurrent(gen, merged)
	metrics.ResultsReturned.Observe(float64(len(merged)))
	e.recordRecent(query, len(merged), mode)
}

// SearchNow runs a full search synchronously and returns the merged
// results and their stats. It shares the cache, the recorder and the
// availability flags with the interactive path but never touches the
// interactive state, so API callers and the debounced UI path coexist.
func (e *Engine) SearchNow(ctx context.Context, query string, filters domain.SearchFilters, mode Mode) ([]domain.SearchableObject, domain.SearchStats) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, domain.SearchStats{}
	}
	if mode == "" {
		e.mu.Lock()
		mode = e.mode
		e.mu.Unlock()
	}

	metrics.SearchesTotal.WithLabelValues(string(mode)).Inc()

	if entry, ok := e.cache.Get(trimmed); ok {
		metrics.CacheTotal.WithLabelValues("hit").Inc()
		res := applyFilters(entry.Results, filters)
		metrics.ResultsReturned.Observe(float64(len(res)))
		return res, domain.ComputeStats(res, 0, 0)
	}
	metrics.CacheTotal.WithLabelValues("miss").Inc()

	var local []domain.SearchableObject
	localStart := time.Now()
	if mode != ModeOnline && !filters.OnlineOnly {
		local = search.Local(trimmed, filters, e.catalog.All(), e.targets, e.live)
	}
	localElapsed := time.Since(localStart)

	var enabled []sources.Source
	if mode != ModeLocal && len(trimmed) >= domain.MinQueryLength {
		for _, s := range e.registry.Enabled(e.opts.EnabledSources) {
			if filters.SourceAllowed(s.ID()) {
				enabled = append(enabled, s)
			}
		}
	}
	if len(enabled) == 0 {
		metrics.ResultsReturned.Observe(float64(len(local)))
		e.recordRecent(trimmed, len(local), mode)
		return local, domain.ComputeStats(local, localElapsed, 0)
	}

	res := search.Online(ctx, trimmed, enabled, e.opts.OnlineTimeout, e.log)
	for _, id := range res.Failed {
		metrics.SourceFailuresTotal.WithLabelValues(string(id)).Inc()
		e.registry.MarkUnavailable(id)
	}
	metrics.OnlineSearchDuration.Observe(res.Elapsed.Seconds())

	filtered := make([]domain.SearchableObject, 0, len(res.Results))
	for _, o := range res.Results {
		if filters.TypeAllowed(o.Type) && filters.MagnitudePass(&o) {
			filtered = append(filtered, o)
		}
	}
	merged := domain.MergeResults(local, filtered)

	if len(res.SourcesQueried) > 0 {
		e.cache.Put(trimmed, merged, cache.OriginOnline)
	}
	metrics.ResultsReturned.Observe(float64(len(merged)))
	e.recordRecent(trimmed, len(merged), mode)

	return merged, domain.ComputeStats(merged, localElapsed, res.Elapsed)
}

// applyFilters re-applies the active type and magnitude filters to a
// stored result set. A cached entry reflects the filters in force when
// it was written, which may have changed since.
func applyFilters(results []domain.SearchableObject, f domain.SearchFilters) []domain.SearchableObject {
	out := make([]domain.SearchableObject, 0, len(results))
	for _, o := range results {
		if f.TypeAllowed(o.Type) && f.MagnitudePass(&o) {
			out = append(out, o)
		}
	}
	return out
}

// notifyCurrent invokes the result callback only while gen is still the
// live generation, so a consumer never hears from a superseded search
// after a newer one has settled.
func (e *Engine) notifyCurrent(gen uint64, results []domain.SearchableObject) {
	e.mu.Lock()
	stale := e.closed || gen != e.generation
	e.mu.Unlock()
	if stale {
		return
	}
	e.notify(results)
}

func (e *Engine) notify(results []domain.SearchableObject) {
	e.mu.Lock()
	fn := e.onResults
	e.mu.Unlock()
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("result callback panicked", logger.String("panic", panicString(r)))
		}
	}()
	fn(results)
}

func (e *Engine) recordRecent(query string, count int, mode Mode) {
	if e.recents == nil {
		return
	}
	go e.recents.RecordSearch(query, count, string(mode))
}

// RefreshAvailability re-probes every source and refreshes the
// aggregate flag. Called by the background prober and the readiness
// probe.
func (e *Engine) RefreshAvailability(ctx context.Context) {
	e.registry.Probe(ctx)

	e.mu.Lock()
	e.onlineAvailable = e.registry.AnyAvailable()
	e.mu.Unlock()
}

// ToggleSelection flips the selection state of a result id.
func (e *Engine) ToggleSelection(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selected[id] {
		delete(e.selected, id)
		return
	}
	e.selected[id] = true
}

// SelectAll selects every current result.
func (e *Engine) SelectAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.results {
		e.selected[e.results[i].ResultID()] = true
	}
}

// ClearSelection drops the whole selection.
func (e *Engine) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selected = make(map[string]bool)
}

// SelectedItems returns the selected objects in current result order.
// Selections pointing at objects no longer in the results are skipped.
func (e *Engine) SelectedItems() []domain.SearchableObject {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]domain.SearchableObject, 0, len(e.selected))
	for i := range e.results {
		if e.selected[e.results[i].ResultID()] {
			out = append(out, e.results[i])
		}
	}
	return out
}

// SelectedCount returns the number of selected ids.
func (e *Engine) SelectedCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.selected)
}

// IsSelected reports whether a result id is selected.
func (e *Engine) IsSelected(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected[id]
}

// Results returns the visible result set ordered by the active sort
// option. The slice is a copy.
func (e *Engine) Results() []domain.SearchableObject {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.SortResults(e.results, e.sortBy)
}

// GroupedResults returns the sorted results bucketed by type, or by
// source when grouping by source is on.
func (e *Engine) GroupedResults() []domain.ResultGroup {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.GroupResults(domain.SortResults(e.results, e.sortBy), e.groupBySource)
}

// Stats returns the breakdown of the current result set.
func (e *Engine) Stats() domain.SearchStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// Query returns the current query string.
func (e *Engine) Query() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.query
}

// CurrentMode returns the active search mode.
func (e *Engine) CurrentMode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Filters returns the active filter set.
func (e *Engine) Filters() domain.SearchFilters {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filters
}

// SortBy returns the active sort option.
func (e *Engine) SortBy() domain.SortOption {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sortBy
}

// IsSearching reports whether a local stage is in flight.
func (e *Engine) IsSearching() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isSearching
}

// IsOnlineSearching reports whether an online fan-out is in flight.
func (e *Engine) IsOnlineSearching() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isOnlineSearching
}

// OnlineAvailable reports whether at least one remote source was up at
// the last check.
func (e *Engine) OnlineAvailable() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.onlineAvailable
}

// Close cancels pending and in-flight work and rejects further calls.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.generation++
	if e.cancelDebounce != nil {
		e.cancelDebounce()
		e.cancelDebounce = nil
	}
	if e.cancelOnline != nil {
		e.cancelOnline()
		e.cancelOnline = nil
	}
}

func panicString(r interface{}) string {
	if s, ok := r.(string); ok {
		return s
	}
	if err, ok := r.(error); ok {
		return err.Error()
	}
	return "unknown panic"
}
