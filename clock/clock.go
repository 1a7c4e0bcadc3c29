// Package clock provides the millisecond tick counters that drive the
// runtime. Counters are free-running and wrap silently; all deadline
// comparisons must go through Elapsed or Until so that wraparound never
// breaks a long-lived schedule.
package clock

// Ticks is a free-running monotonic millisecond count. It wraps silently
// when it exceeds the representable range.
type Ticks uint32

// halfRange is the threshold that separates "already elapsed" from "still in
// the future" when comparing wrapped counters.
const halfRange = 1 << 31

// Elapsed reports whether deadline has passed at time now. The comparison is
// wraparound-safe as long as the deadline is within half the counter range of
// now, which holds for any schedule shorter than ~24 days at millisecond
// resolution.
func Elapsed(now, deadline Ticks) bool {
	return uint32(now-deadline) < halfRange
}

// Until returns the number of ticks from now until deadline. It returns 0 if
// the deadline has already elapsed.
func Until(deadline, now Ticks) Ticks {
	if Elapsed(now, deadline) {
		return 0
	}
	return deadline - now
}

// A Clock tells the current tick count and can block for a duration. Sleep is
// a busy-wait analog for code outside the runtime core; the core itself never
// sleeps, it models all waiting as timed events.
type Clock interface {
	Now() Ticks
	Sleep(d Ticks)
}
