package waiter

import (
	"time"

	"gitlab.com/uiwait/uiwait"
)

// Opt overrides wait settings for a single call. Per-call options win over
// the waiter instance config, which in turn wins over the process
// defaults.
type Opt func(*callOpts)

type callOpts struct {
	timeout   *time.Duration
	interval  *time.Duration
	warnAfter *time.Duration
	floor     *time.Duration
	handlers  []Handler
}

// Timeout sets the hard deadline for this call. Zero or negative is
// legal and means "probe once, don't wait".
func Timeout(d time.Duration) Opt {
	return func(o *callOpts) { o.timeout = &d }
}

// Interval sets the poll interval for this call.
func Interval(d time.Duration) Opt {
	return func(o *callOpts) { o.interval = &d }
}

// WarnAfter sets when this call logs a warning and captures diagnostics
// if still unsatisfied. Negative disables the warning.
func WarnAfter(d time.Duration) Opt {
	return func(o *callOpts) { o.warnAfter = &d }
}

// AbsenceFloor sets how long the target must stay absent before an
// absence wait on this call succeeds.
func AbsenceFloor(d time.Duration) Opt {
	return func(o *callOpts) { o.floor = &d }
}

// WithHandlers adds interrupt handlers consulted while this call polls.
func WithHandlers(hs ...Handler) Opt {
	return func(o *callOpts) { o.handlers = append(o.handlers, hs...) }
}

// resolve applies call > instance > process precedence. Per-call values
// are tracked by pointer so an explicit zero timeout ("probe once")
// survives the fallback logic.
func (o *callOpts) resolve(instance uiwait.Config) uiwait.Config {
	cfg := instance.Resolve()
	if o.timeout != nil {
		cfg.Timeout = *o.timeout
	}
	if o.interval != nil {
		cfg.Interval = *o.interval
	}
	if o.warnAfter != nil {
		cfg.WarnAfter = *o.warnAfter
	}
	if o.floor != nil {
		cfg.AbsenceFloor = *o.floor
	}
	return cfg
}
