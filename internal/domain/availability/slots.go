package availability

import "time"

// GenerateSlots enumerates candidate slot starts inside the half-open
// window [windowStart, windowEnd), stepping by duration from the window
// start. A slot is emitted only when it fits entirely:
// start+duration <= windowEnd.
//
// Inverted or empty windows and non-positive durations yield nil rather
// than an error, so one malformed schedule row cannot take down the
// resolution of a whole day. Output depends on nothing but the
// arguments; calling twice gives the identical sequence.
func GenerateSlots(windowStart, windowEnd time.Time, duration time.Duration) []time.Time {
	if duration <= 0 || !windowStart.Before(windowEnd) {
		return nil
	}

	var starts []time.Time
	for cur := windowStart; !cur.Add(duration).After(windowEnd); cur = cur.Add(duration) {
		starts = append(starts, cur)
	}
	return starts
}
