package feed

import (
	gtfsparse "github.com/OneBusAway/go-gtfs"

	"transitheat.dev/reachability/internal/geo"
	"transitheat.dev/reachability/internal/gtfstime"
	"transitheat.dev/reachability/internal/transit"
)

// stopTypePlatform is go-gtfs's StopType value for a physical boarding
// location, as opposed to a station, entrance, generic node or boarding
// area grouping. Only platforms are admitted as graph stops; everything
// else is rejected at ingest the way spec.md's "stop point" filter requires.
const stopTypePlatform = gtfsparse.StopType_Platform

// Adapt converts a parsed static feed into the minimal shape transit.Build
// consumes. It isolates every assumption this codebase makes about
// go-gtfs's exact field layout in one place.
func Adapt(static *gtfsparse.Static) transit.Feed {
	result := transit.Feed{
		Stops:     make([]transit.FeedStop, 0, len(static.Stops)),
		Trips:     make([]transit.FeedTrip, 0, len(static.Trips)),
		Calendars: make(map[string]transit.FeedCalendar, len(static.Services)),
	}

	for _, s := range static.Stops {
		result.Stops = append(result.Stops, adaptStop(s))
	}

	for _, svc := range static.Services {
		result.Calendars[svc.Id] = transit.FeedCalendar{
			ServiceID: svc.Id,
			Days: gtfstime.NewDaySet(
				svc.Monday, svc.Tuesday, svc.Wednesday, svc.Thursday,
				svc.Friday, svc.Saturday, svc.Sunday,
			),
		}
	}

	for _, trip := range static.Trips {
		result.Trips = append(result.Trips, adaptTrip(trip))
	}

	return result
}

func adaptStop(s gtfsparse.Stop) transit.FeedStop {
	var lat, lon float64
	if s.Latitude != nil {
		lat = *s.Latitude
	}
	if s.Longitude != nil {
		lon = *s.Longitude
	}

	return transit.FeedStop{
		ID:        s.Id,
		Coords:    geo.Coordinates{Latitude: lat, Longitude: lon},
		StopPoint: s.Type == stopTypePlatform,
	}
}

func adaptTrip(trip gtfsparse.ScheduledTrip) transit.FeedTrip {
	serviceID := ""
	if trip.Service != nil {
		serviceID = trip.Service.Id
	}

	stopTimes := make([]transit.FeedStopTime, 0, len(trip.StopTimes))
	for _, st := range trip.StopTimes {
		stopID := ""
		if st.Stop != nil {
			stopID = st.Stop.Id
		}

		var departure *gtfstime.TimeOfDay
		if st.DepartureTime != nil {
			d := gtfstime.TimeOfDay(int(st.DepartureTime.Seconds()))
			departure = &d
		}

		stopTimes = append(stopTimes, transit.FeedStopTime{
			StopID:    stopID,
			Departure: departure,
		})
	}

	return transit.FeedTrip{
		ID:        trip.ID,
		ServiceID: serviceID,
		StopTimes: stopTimes,
	}
}
