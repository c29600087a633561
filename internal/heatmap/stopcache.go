package heatmap

import (
	"math"
	"time"

	"github.com/tidwall/rtree"

	"transitheat.dev/reachability/internal/geo"
)

// metersPerDegreeLat approximates how many meters one degree of latitude
// spans; used only to size the bounding-box query below, not for distance
// calculations themselves (those stay haversine-exact).
const metersPerDegreeLat = 111_320.0

// reachableStop pairs a stop's location with its transit arrival duration,
// the payload the spatial index carries per point.
type reachableStop struct {
	coords   geo.Coordinates
	duration time.Duration
}

// StopCache buckets the reachable stops of one reachability table into an
// r-tree so a tile render can restrict its per-pixel scan to stops within
// walking range of a coarse tile cell instead of scanning every reachable
// stop for every pixel. This is the spatial bucketing the heatmap
// component recommends as an optimization over the naive O(W*H*|R|) scan.
type StopCache struct {
	tree  rtree.RTree
	empty bool
}

// NewStopCache indexes every (coordinates, duration) pair in stops.
func NewStopCache(stops []reachableStop) *StopCache {
	c := &StopCache{empty: len(stops) == 0}
	for _, s := range stops {
		point := [2]float64{s.coords.Latitude, s.coords.Longitude}
		c.tree.Insert(point, point, s)
	}
	return c
}

// Empty reports whether the cache indexes no stops.
func (c *StopCache) Empty() bool {
	return c.empty
}

// Within returns every indexed stop whose coordinates fall inside the
// bounding box around center expanded by radiusMeters in every direction.
func (c *StopCache) Within(center geo.Coordinates, radiusMeters float64) []reachableStop {
	dLat := radiusMeters / metersPerDegreeLat
	cosLat := math.Cos(center.Latitude * math.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	dLon := radiusMeters / (metersPerDegreeLat * cosLat)

	min := [2]float64{center.Latitude - dLat, center.Longitude - dLon}
	max := [2]float64{center.Latitude + dLat, center.Longitude + dLon}

	var results []reachableStop
	c.tree.Search(min, max, func(_, _ [2]float64, data interface{}) bool {
		if s, ok := data.(reachableStop); ok {
			results = append(results, s)
		}
		return true
	})
	return results
}
