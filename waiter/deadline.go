package waiter

import "time"

// Deadline is the absolute instant a wait gives up. It is fixed once when
// the wait starts and never recomputed, so total wait time stays bounded
// even when individual probes are slow.
type Deadline struct {
	expiry time.Time
}

// DeadlineFrom converts a timeout into an absolute deadline. A zero or
// negative timeout yields an already-expired deadline; the poll loop
// still runs its probe once, giving "check once, don't wait" semantics.
func DeadlineFrom(timeout time.Duration) Deadline {
	return Deadline{expiry: time.Now().Add(timeout)}
}

// DeadlineAt wraps an absolute instant.
func DeadlineAt(t time.Time) Deadline {
	return Deadline{expiry: t}
}

// Expired reports whether the deadline has passed.
func (d Deadline) Expired() bool {
	return !time.Now().Before(d.expiry)
}

// Remaining time until expiry, never negative.
func (d Deadline) Remaining() time.Duration {
	r := time.Until(d.expiry)
	if r < 0 {
		return 0
	}
	return r
}
