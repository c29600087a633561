// Package models holds the JSON wire types returned by the HTTP surface,
// kept separate from the domain types in internal/transit so that response
// shape can evolve independently of the graph representation.
package models

// Stop is the JSON shape of a single entry in the /api/stops listing.
type Stop struct {
	ID        string  `json:"id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DijkstraResponse is the JSON shape of /api/stops/{stop_id}/dijkstras/{unix_ts}:
// stop id mapped to earliest-arrival duration in seconds, origin included at 0.
type DijkstraResponse map[string]float64
