package transit

import "github.com/tidwall/rtree"

// SpatialIndex buckets every stop in a graph by coordinate, letting a bbox
// query over /api/stops avoid a full scan on large regional feeds. Grounded
// in the same rtree usage the heatmap renderer's StopCache applies to
// reachable-stop lookups, this time over the full stop set rather than a
// single reachability table.
type SpatialIndex struct {
	tree rtree.RTree
}

// NewSpatialIndex indexes every stop in stops by (latitude, longitude).
func NewSpatialIndex(stops []Stop) *SpatialIndex {
	idx := &SpatialIndex{}
	for _, s := range stops {
		point := [2]float64{s.Coords.Latitude, s.Coords.Longitude}
		idx.tree.Insert(point, point, s)
	}
	return idx
}

// WithinBBox returns every indexed stop whose coordinates fall within
// [minLat,maxLat] x [minLon,maxLon].
func (idx *SpatialIndex) WithinBBox(minLat, minLon, maxLat, maxLon float64) []Stop {
	var results []Stop
	idx.tree.Search(
		[2]float64{minLat, minLon},
		[2]float64{maxLat, maxLon},
		func(_, _ [2]float64, data interface{}) bool {
			if s, ok := data.(Stop); ok {
				results = append(results, s)
			}
			return true
		},
	)
	return results
}
