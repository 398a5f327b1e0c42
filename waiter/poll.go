package waiter

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"gitlab.com/uiwait/uiwait"
)

// ProbeFunc checks the UI once. A nil error means the condition is
// satisfied and ele carries the result (nil for conditions that have no
// element, like absence). A NotFoundErr means not satisfied yet. Any
// other error is fatal and aborts the poll immediately.
type ProbeFunc func(ctx context.Context) (uiwait.Element, error)

// Poll runs probe until it succeeds or the deadline expires.
//
// The probe always runs at least once, no matter what the deadline says,
// and a success is authoritative even when it lands past the deadline.
// Sleeps between probes are capped to the remaining time, so the loop
// overshoots the deadline by at most one interval. On expiry Poll returns
// the probe's last NotFoundErr; callers translate that into their own
// timeout failure.
func Poll(ctx context.Context, probe ProbeFunc, d Deadline, interval time.Duration) (uiwait.Element, error) {
	if interval <= 0 {
		interval = uiwait.Defaults().Interval
	}
	for {
		ele, err := probe(ctx)
		if err == nil {
			return ele, nil
		}
		if !uiwait.IsNotFound(err) {
			return nil, err
		}
		if d.Expired() {
			return nil, err
		}
		log.Debug().Err(err).Msg("condition not met, polling again")

		sleep := interval
		if remaining := d.Remaining(); remaining < sleep {
			sleep = remaining
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(sleep):
		}
	}
}
