package transit

import (
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitheat.dev/reachability/internal/gtfstime"
)

func TestReachabilityTrivialCase(t *testing.T) {
	g, err := Build(twoStopFeed())
	require.NoError(t, err)

	start := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC) // a Monday
	table, err := Reachability(g, "A", start)
	require.NoError(t, err)

	if table["A"] != 0 || table["B"] != 0 {
		t.Log(spew.Sdump(table))
	}
	assert.Equal(t, time.Duration(0), table["A"])
	assert.Equal(t, time.Duration(0), table["B"])
}

func TestReachabilityMissedDeparture(t *testing.T) {
	g, err := Build(twoStopFeed())
	require.NoError(t, err)

	start := time.Date(2024, time.January, 1, 9, 0, 1, 0, time.UTC) // one second late
	table, err := Reachability(g, "A", start)
	require.NoError(t, err)

	assert.Equal(t, time.Duration(0), table["A"])
	assert.Equal(t, 604799*time.Second, table["B"])
}

func TestReachabilityOriginAlwaysZero(t *testing.T) {
	g, err := Build(twoStopFeed())
	require.NoError(t, err)

	start := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	table, err := Reachability(g, "A", start)
	require.NoError(t, err)

	for stop, d := range table {
		assert.GreaterOrEqual(t, d, time.Duration(0), "stop %s should have non-negative duration", stop)
	}
	assert.Equal(t, time.Duration(0), table["A"])
}

func TestReachabilityUnknownOrigin(t *testing.T) {
	g, err := Build(twoStopFeed())
	require.NoError(t, err)

	_, err = Reachability(g, "ghost", time.Now())
	require.Error(t, err)
	var missingErr *MissingStopError
	assert.ErrorAs(t, err, &missingErr)
}

func TestReachabilityMonotonicity(t *testing.T) {
	g, err := Build(twoStopFeed())
	require.NoError(t, err)

	start := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	table, err := Reachability(g, "A", start)
	require.NoError(t, err)

	aIdx, _ := g.Lookup("A")
	stopA := g.Stop(aIdx)
	for _, edgeIdx := range stopA.Edges {
		edge := g.Edge(edgeIdx)
		toStop := g.Stop(edge.To)
		duration, reachable := table[toStop.ID]
		if !reachable {
			continue
		}
		departureInstant := start.Add(table["A"])
		arrival, ok := resolveDeparture(edge, departureInstant)
		require.True(t, ok)
		assert.LessOrEqual(t, duration, arrival.Sub(start))
	}
}

func TestReachabilityPostMidnightDeparture(t *testing.T) {
	feed := twoStopFeed()
	lateNight := gtfstime.TimeOfDay(26 * 3600) // 02:00 the following morning
	feed.Trips[0].StopTimes[0].Departure = &lateNight

	g, err := Build(feed)
	require.NoError(t, err)

	// Query at 01:00 on a Tuesday; the 02:00 trip belongs to Monday's
	// service day because Monday's DaySet covers it and it rolls into
	// Tuesday morning.
	start := time.Date(2024, time.January, 2, 1, 0, 0, 0, time.UTC)
	table, err := Reachability(g, "A", start)
	require.NoError(t, err)

	arrivalExpected := time.Date(2024, time.January, 2, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, arrivalExpected.Sub(start), table["B"])
}
