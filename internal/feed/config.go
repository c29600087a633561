// Package feed loads a GTFS static bundle through github.com/OneBusAway/go-gtfs
// and adapts its typed records into the minimal transit.Feed shape the graph
// builder consumes. This package is the isolation boundary for the one part
// of the system that depends on an external feed parser's exact field
// layout.
package feed

// Config describes where to obtain a static GTFS bundle and how to
// authenticate to it when it is remote.
type Config struct {
	URL             string
	AuthHeaderName  string
	AuthHeaderValue string
	Verbose         bool
}
