package transit

import (
	"container/heap"
	"time"

	"transitheat.dev/reachability/internal/gtfstime"
)

// ReachabilityTable maps stop id to the shortest travel duration from the
// query's origin stop, for every stop reachable within the search.
type ReachabilityTable map[string]time.Duration

type pqEntry struct {
	stop     StopIndex
	stopID   string
	duration time.Duration
}

type priorityQueue []pqEntry

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].duration != pq[j].duration {
		return pq[i].duration < pq[j].duration
	}
	// Ties resolve in stop-id order for deterministic test output.
	return pq[i].stopID < pq[j].stopID
}

func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(pqEntry))
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// Reachability runs the time-dependent earliest-arrival search from origin
// at startInstant over the graph, returning the duration to every stop that
// can be reached.
func Reachability(g *Graph, origin string, startInstant time.Time) (ReachabilityTable, error) {
	originIdx, ok := g.Lookup(origin)
	if !ok {
		return nil, &MissingStopError{StopID: origin}
	}

	pq := &priorityQueue{{stop: originIdx, stopID: origin, duration: 0}}
	heap.Init(pq)

	settled := make(map[StopIndex]bool)
	result := make(ReachabilityTable)

	for pq.Len() > 0 {
		entry := heap.Pop(pq).(pqEntry)
		if settled[entry.stop] {
			continue
		}
		settled[entry.stop] = true
		result[entry.stopID] = entry.duration

		u := g.Stop(entry.stop)
		now := startInstant.Add(entry.duration)

		// Per-target de-duplication: multiple edges from u may reach the
		// same v in this pop, keep only the earliest arrival before
		// enqueueing.
		bestForTarget := make(map[StopIndex]time.Duration)

		for _, edgeIdx := range u.Edges {
			edge := g.Edge(edgeIdx)
			if settled[edge.To] {
				continue
			}

			departureInstant, ok := resolveDeparture(edge, now)
			if !ok {
				// Traveler has missed this departure.
				continue
			}

			newDuration := departureInstant.Sub(startInstant)
			if best, exists := bestForTarget[edge.To]; !exists || newDuration < best {
				bestForTarget[edge.To] = newDuration
			}
		}

		for target, duration := range bestForTarget {
			heap.Push(pq, pqEntry{stop: target, stopID: g.Stop(target).ID, duration: duration})
		}
	}

	return result, nil
}

// resolveDeparture computes the next wall instant at which edge departs on
// or after now, honoring the GTFS rule that times >= 24:00:00 belong to the
// previous service day's calendar. A departure that has already passed on
// the candidate service day rolls forward to the next valid service day, so
// ok is always true.
func resolveDeparture(edge Edge, now time.Time) (instant time.Time, ok bool) {
	candidateDate := dateOnly(now)

	if edge.Departure.IsPastMidnight() {
		prevDay := gtfstime.PreviousServiceDay(candidateDate)
		if edge.Days.Active(gtfstime.WeekdayOf(prevDay)) {
			candidateDate = prevDay
		}
	}

	if !edge.Days.Active(gtfstime.WeekdayOf(candidateDate)) {
		candidateDate = edge.Days.NextValid(candidateDate)
	}

	departureInstant := edge.Departure.ToDateTime(candidateDate)
	if departureInstant.Before(now) {
		// This particular service day's departure has already passed;
		// the next valid service day starting the day after still honors
		// the "missed departure" rule from the caller's perspective.
		nextDate := edge.Days.NextValid(candidateDate.AddDate(0, 0, 1))
		departureInstant = edge.Departure.ToDateTime(nextDate)
	}

	return departureInstant, true
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
