package uptime

import (
	"storemon/internal/models"
	"time"
)

// Interpolate turns sparse point observations into active/inactive minutes
// over the given business-hours subintervals. Observations must be
// ascending and may include history from before the first subinterval (the
// look-back source for subintervals with no in-range readings).
//
// Policy, per subinterval:
//   - no observations anywhere: the whole subinterval counts as active;
//   - observations exist but none in range: the most recent one strictly
//     before the subinterval start holds for the whole subinterval
//     (active when none precedes it);
//   - in-range observations: the segment from the subinterval start to the
//     first reading inherits that reading's status (back-filled), each
//     reading then holds until the next, and the last holds to the end.
//
// Inactive minutes are derived as subinterval length minus active minutes,
// so the two always sum to the exact business-covered duration.
func Interpolate(observations []models.Observation, periods []Interval) (active, inactive float64) {
	for _, p := range periods {
		length := p.End.Sub(p.Start).Minutes()
		inRange := observationsIn(observations, p)

		var a float64
		if len(inRange) > 0 {
			a = interpolatePeriod(inRange, p)
		} else if lastStatusBefore(observations, p.Start) == models.StatusActive {
			a = length
		}

		active += a
		inactive += length - a
	}
	return active, inactive
}

func observationsIn(observations []models.Observation, p Interval) []models.Observation {
	var out []models.Observation
	for _, o := range observations {
		if !o.Timestamp.Before(p.Start) && o.Timestamp.Before(p.End) {
			out = append(out, o)
		}
	}
	return out
}

func interpolatePeriod(inRange []models.Observation, p Interval) float64 {
	var active float64
	cursor := p.Start
	status := inRange[0].Status // back-fill from the first in-range reading

	for _, o := range inRange {
		if status == models.StatusActive {
			active += o.Timestamp.Sub(cursor).Minutes()
		}
		cursor = o.Timestamp
		status = o.Status
	}
	if status == models.StatusActive {
		active += p.End.Sub(cursor).Minutes()
	}
	return active
}

// lastStatusBefore scans backwards for the most recent observation strictly
// before t; the optimistic default when none precedes it is active.
func lastStatusBefore(observations []models.Observation, t time.Time) models.Status {
	for i := len(observations) - 1; i >= 0; i-- {
		if observations[i].Timestamp.Before(t) {
			return observations[i].Status
		}
	}
	return models.StatusActive
}
