package feed

import (
	"log/slog"
	"sync"
	"time"

	"transitheat.dev/reachability/internal/logging"
	"transitheat.dev/reachability/internal/transit"
)

// Manager owns the current transit graph and reloads it from its source on
// a schedule, hot-swapping the graph pointer under a lock the way the
// teacher's static GTFS manager hot-swaps its database handle. Readers
// never block on a reload because they only ever see a fully-built Graph.
type Manager struct {
	cfg           Config
	isLocalSource bool

	mu    sync.RWMutex
	graph *transit.Graph
	cache *transit.Cache

	shutdownChan chan struct{}
	shutdownOnce sync.Once
	wg           sync.WaitGroup
}

// NewManager loads the configured feed, builds the initial graph, and (for
// remote sources) starts a background reload loop.
func NewManager(cfg Config) (*Manager, error) {
	m := &Manager{
		cfg:           cfg,
		isLocalSource: isLocalSource(cfg.URL),
		shutdownChan:  make(chan struct{}),
	}

	graph, err := loadGraph(cfg)
	if err != nil {
		return nil, err
	}
	m.setGraph(graph)

	if !m.isLocalSource {
		m.wg.Add(1)
		go m.reloadPeriodically()
	}

	return m, nil
}

// NewTestManager builds a Manager directly from an already-built graph,
// with no feed source and no background reload loop. Intended for handler
// tests elsewhere in the module that need a *Manager without a real or
// fixture GTFS bundle.
func NewTestManager(graph *transit.Graph) *Manager {
	m := &Manager{
		isLocalSource: true,
		shutdownChan:  make(chan struct{}),
	}
	m.setGraph(graph)
	return m
}

func loadGraph(cfg Config) (*transit.Graph, error) {
	static, err := LoadStatic(cfg)
	if err != nil {
		return nil, err
	}
	return transit.Build(Adapt(static))
}

func (m *Manager) setGraph(graph *transit.Graph) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.graph = graph
	m.cache = transit.NewCache(func(origin string, instant time.Time) (transit.ReachabilityTable, error) {
		return transit.Reachability(graph, origin, instant)
	})
}

// Graph returns the currently active transit graph.
func (m *Manager) Graph() *transit.Graph {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.graph
}

// Reachability returns the reachability table for origin at instant,
// bucketed to the hour and served from the shared cache. Used by the tile
// renderer, where scrubbing within the same hour should reuse one search.
func (m *Manager) Reachability(origin string, instant time.Time) (transit.ReachabilityTable, error) {
	m.mu.RLock()
	cache := m.cache
	m.mu.RUnlock()

	return cache.Get(transit.CacheKey{Origin: origin, Bucket: transit.BucketHour(instant)})
}

// ReachabilityExact computes the reachability table for origin at the exact
// instant given, bypassing the hour-bucketed cache. Used by the dijkstras
// JSON endpoint, whose contract is a precise unix timestamp rather than a
// scrubbable hour.
func (m *Manager) ReachabilityExact(origin string, instant time.Time) (transit.ReachabilityTable, error) {
	return transit.Reachability(m.Graph(), origin, instant)
}

// ForceUpdate reloads the feed from its source and hot-swaps the graph and
// cache. Intended for the periodic reload loop but safe to call directly.
func (m *Manager) ForceUpdate() error {
	logger := slog.Default().With(slog.String("component", "feed_manager"))

	graph, err := loadGraph(m.cfg)
	if err != nil {
		logging.LogError(logger, "error reloading feed", err, slog.String("source", m.cfg.URL))
		return err
	}

	m.setGraph(graph)
	logging.LogOperation(logger, "feed_reloaded", slog.String("source", m.cfg.URL), slog.Int("stops", graph.StopCount()))
	return nil
}

func (m *Manager) reloadPeriodically() {
	defer m.wg.Done()

	logger := slog.Default().With(slog.String("component", "feed_reloader"))
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := m.ForceUpdate(); err != nil {
				continue
			}
		case <-m.shutdownChan:
			logging.LogOperation(logger, "shutting_down_feed_reloader")
			return
		}
	}
}

// Shutdown stops the background reload loop. Safe to call multiple times.
func (m *Manager) Shutdown() {
	m.shutdownOnce.Do(func() {
		close(m.shutdownChan)
		m.wg.Wait()
	})
}
