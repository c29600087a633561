// Package transit holds the time-expanded transit graph, the builder that
// folds a parsed feed into it, the time-dependent earliest-arrival search
// over it, and the single-slot cache that fronts repeated searches.
package transit

import (
	"sync"

	"transitheat.dev/reachability/internal/geo"
	"transitheat.dev/reachability/internal/gtfstime"
)

// StopIndex addresses a Stop within a Graph's arena.
type StopIndex int

// EdgeIndex addresses an Edge within a Graph's arena.
type EdgeIndex int

// Stop is a physical boarding location: identity plus coordinates plus the
// indices of edges departing from it. Stops are created during Build and
// never mutated or removed afterward; only their Edges slice grows as the
// builder discovers outgoing trips.
type Stop struct {
	ID     string
	Coords geo.Coordinates
	Edges  []EdgeIndex
}

// Edge is one scheduled vehicle movement from its owning stop to To. It does
// not carry its own arrival time: reaching To means consulting To's own
// outgoing edges, the arrival instant is the departure instant of this edge.
type Edge struct {
	Departure gtfstime.TimeOfDay
	Days      gtfstime.DaySet
	To        StopIndex
}

// Graph is the arena-indexed transit network: a flat stop list, a flat edge
// list, and an id-to-index map for origin lookups. It is immutable after
// Build returns, which is what lets it be shared lock-free across request
// goroutines.
type Graph struct {
	stops   []Stop
	edges   []Edge
	idIndex map[string]StopIndex

	spatialOnce  sync.Once
	spatialIndex *SpatialIndex
}

// StopCount returns the number of stops in the graph.
func (g *Graph) StopCount() int {
	return len(g.stops)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Stop returns the Stop at index i.
func (g *Graph) Stop(i StopIndex) Stop {
	return g.stops[i]
}

// Edge returns the Edge at index i.
func (g *Graph) Edge(i EdgeIndex) Edge {
	return g.edges[i]
}

// Lookup resolves a stop id to its index. ok is false if the id is unknown.
func (g *Graph) Lookup(id string) (StopIndex, bool) {
	idx, ok := g.idIndex[id]
	return idx, ok
}

// Stops returns every stop in the graph, in construction order. Callers must
// not mutate the returned Edges slices.
func (g *Graph) Stops() []Stop {
	return g.stops
}

// SpatialIndex returns the graph's r-tree stop index, building it on first
// use. Safe for concurrent callers.
func (g *Graph) SpatialIndex() *SpatialIndex {
	g.spatialOnce.Do(func() {
		g.spatialIndex = NewSpatialIndex(g.stops)
	})
	return g.spatialIndex
}
