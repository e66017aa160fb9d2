package uptime

import (
	"storemon/internal/models"
	"time"
)

// Interval is a half-open UTC time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func (iv Interval) Minutes() float64 {
	return iv.End.Sub(iv.Start).Minutes()
}

// BusinessWindows intersects the UTC range [start, end) with a store's
// weekly local-time schedule and returns disjoint, chronologically ordered
// UTC subintervals.
//
// Local days are walked starting at start's local calendar day; days
// without a rule contribute nothing. Endpoints are built with time.Date in
// the store's location, so each date uses the zone's actual offset (DST
// transitions included). Overnight rules (end before start) extend into the
// next local day and are emitted split at local midnight, as two adjacent
// intervals. An empty schedule means the store is open around the clock and
// yields the whole range as a single interval.
func BusinessWindows(start, end time.Time, sched models.Schedule, loc *time.Location) []Interval {
	if !start.Before(end) {
		return nil
	}
	if len(sched) == 0 {
		return []Interval{{Start: start, End: end}}
	}

	var out []Interval
	local := start.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	for day.Before(end) {
		nextDay := day.AddDate(0, 0, 1)

		if rule, ok := sched[models.DayOfWeek(day)]; ok {
			open := localClock(day, rule.Start, loc)
			var pieces []Interval
			if rule.Overnight() {
				closeAt := localClock(nextDay, rule.End, loc)
				pieces = []Interval{{Start: open, End: nextDay}, {Start: nextDay, End: closeAt}}
			} else {
				pieces = []Interval{{Start: open, End: localClock(day, rule.End, loc)}}
			}
			for _, p := range pieces {
				clipped, ok := clip(p, start, end)
				if !ok {
					continue
				}
				// An overnight spill can run past the point where the next
				// day's own rule opens; trim the overlap so the minutes are
				// not counted twice.
				if n := len(out); n > 0 && clipped.Start.Before(out[n-1].End) {
					clipped.Start = out[n-1].End
					if !clipped.Start.Before(clipped.End) {
						continue
					}
				}
				out = append(out, clipped)
			}
		}

		day = nextDay
	}
	return out
}

// localClock pins a wall-clock time onto day's date in loc.
func localClock(day time.Time, lt models.LocalTime, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), lt.Hour, lt.Minute, lt.Second, 0, loc)
}

func clip(iv Interval, start, end time.Time) (Interval, bool) {
	if iv.Start.Before(start) {
		iv.Start = start
	}
	if iv.End.After(end) {
		iv.End = end
	}
	if !iv.Start.Before(iv.End) {
		return Interval{}, false
	}
	return iv, true
}
