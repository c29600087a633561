package transit

import (
	"fmt"

	"transitheat.dev/reachability/internal/geo"
	"transitheat.dev/reachability/internal/gtfstime"
)

// FeedStop is one admitted or rejected stop record from a parsed feed.
// StopPoint is false for station/grouping records, which Build rejects
// silently rather than admitting as graph nodes.
type FeedStop struct {
	ID        string
	Coords    geo.Coordinates
	StopPoint bool
}

// FeedCalendar is a service id's seven-day validity mask.
type FeedCalendar struct {
	ServiceID string
	Days      gtfstime.DaySet
}

// FeedStopTime is one stop-time record within a trip's ordered sequence.
// Departure is nil when the feed left the field blank, which is only valid
// for the trip's terminal stop-time.
type FeedStopTime struct {
	StopID    string
	Departure *gtfstime.TimeOfDay
}

// FeedTrip is a scheduled trip: a service id and its ordered stop-times.
type FeedTrip struct {
	ID        string
	ServiceID string
	StopTimes []FeedStopTime
}

// Feed is the minimal shape the graph builder consumes. An external parser
// (internal/feed) is responsible for producing this from a GTFS bundle.
type Feed struct {
	Stops     []FeedStop
	Trips     []FeedTrip
	Calendars map[string]FeedCalendar
}

// Build folds a parsed feed into a Graph. Construction is strict: any
// structural violation aborts the build and returns the offending error,
// the builder never silently drops an edge it could not place.
func Build(feed Feed) (*Graph, error) {
	g := &Graph{
		idIndex: make(map[string]StopIndex, len(feed.Stops)),
	}

	for _, fs := range feed.Stops {
		if !fs.StopPoint {
			continue
		}
		if _, exists := g.idIndex[fs.ID]; exists {
			return nil, &DuplicateStopError{StopID: fs.ID}
		}
		idx := StopIndex(len(g.stops))
		g.stops = append(g.stops, Stop{ID: fs.ID, Coords: fs.Coords})
		g.idIndex[fs.ID] = idx
	}

	for _, trip := range feed.Trips {
		calendar, ok := feed.Calendars[trip.ServiceID]
		if !ok {
			return nil, &ParseError{Reason: fmt.Sprintf("service id %q not present in calendar (trip %q)", trip.ServiceID, trip.ID)}
		}
		if calendar.Days.Empty() {
			return nil, &ParseError{Reason: fmt.Sprintf("service id %q has an empty day set", trip.ServiceID)}
		}

		for i := 0; i < len(trip.StopTimes)-1; i++ {
			from := trip.StopTimes[i]
			to := trip.StopTimes[i+1]

			if from.Departure == nil {
				return nil, &ParseError{Reason: fmt.Sprintf("missing departure time on non-terminal stop-time, stop %q, trip %q", from.StopID, trip.ID)}
			}

			fromIdx, ok := g.idIndex[from.StopID]
			if !ok {
				return nil, &MissingDepartureStopError{StopID: from.StopID, TripID: trip.ID}
			}
			toIdx, ok := g.idIndex[to.StopID]
			if !ok {
				return nil, &MissingArrivalStopError{StopID: to.StopID, TripID: trip.ID}
			}

			edgeIdx := EdgeIndex(len(g.edges))
			g.edges = append(g.edges, Edge{
				Departure: *from.Departure,
				Days:      calendar.Days,
				To:        toIdx,
			})
			g.stops[fromIdx].Edges = append(g.stops[fromIdx].Edges, edgeIdx)
		}
	}

	return g, nil
}
