package transit

import "fmt"

// DuplicateStopError reports a feed stop id that was already admitted to
// the graph.
type DuplicateStopError struct {
	StopID string
}

func (e *DuplicateStopError) Error() string {
	return fmt.Sprintf("transit: duplicate stop id %q", e.StopID)
}

// MissingDepartureStopError reports a stop-time sequence whose departure
// side stop id was never admitted to the graph.
type MissingDepartureStopError struct {
	StopID string
	TripID string
}

func (e *MissingDepartureStopError) Error() string {
	return fmt.Sprintf("transit: departure stop %q not found for trip %q", e.StopID, e.TripID)
}

// MissingArrivalStopError reports a stop-time sequence whose arrival side
// stop id was never admitted to the graph.
type MissingArrivalStopError struct {
	StopID string
	TripID string
}

func (e *MissingArrivalStopError) Error() string {
	return fmt.Sprintf("transit: arrival stop %q not found for trip %q", e.StopID, e.TripID)
}

// MissingStopError reports a query against a stop id absent from the graph.
type MissingStopError struct {
	StopID string
}

func (e *MissingStopError) Error() string {
	return fmt.Sprintf("transit: stop %q not found", e.StopID)
}

// LocationTypeNotStopError reports a feed record rejected at ingest because
// it describes a station grouping rather than a boarding point. Build skips
// such records silently and does not return this error.
type LocationTypeNotStopError struct {
	StopID string
}

func (e *LocationTypeNotStopError) Error() string {
	return fmt.Sprintf("transit: stop %q is not a stop point", e.StopID)
}

// ParseError reports a malformed or incomplete feed record discovered while
// building the graph: a missing departure time on a non-terminal stop-time,
// or a service id absent from the calendar.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("transit: parse error: %s", e.Reason)
}

// PoisonError reports that the reachability cache's exclusive lock was held
// by a computation that panicked, leaving the cache's single slot in an
// unknown state. Treated as a fatal programming error by callers.
type PoisonError struct {
	Cause any
}

func (e *PoisonError) Error() string {
	return fmt.Sprintf("transit: reachability cache poisoned: %v", e.Cause)
}
