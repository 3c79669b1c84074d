// Package dayrange computes the absolute-time window of one calendar day in
// a fixed reference timezone. Every learner's "day" is anchored to the same
// canonical timezone regardless of where the learner or server runs.
package dayrange

import "time"

// Window returns the half-open interval [start, end) covering the calendar
// date of now in loc. start is local midnight, end is the following local
// midnight; both are absolute instants, so the window length varies across
// daylight-saving transitions (23h or 25h) instead of drifting the boundary.
func Window(now time.Time, loc *time.Location) (start, end time.Time) {
	local := now.In(loc)
	start = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	end = start.AddDate(0, 0, 1)
	return start, end
}

// Contains reports whether t falls inside [start, end)
func Contains(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
