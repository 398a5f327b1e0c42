package uiwait

import "time"

// Built-in wait defaults. Timeout/warn values follow the usual
// ten-seconds-hard, five-seconds-warn convention for UI automation.
const (
	DefaultTimeout   = 10 * time.Second
	DefaultInterval  = 200 * time.Millisecond
	DefaultWarnAfter = 5 * time.Second
)

// Config holds wait settings for one waiter/page-object instance. Zero
// fields fall back to the process-wide defaults, so callers only set what
// they want to override.
type Config struct {
	// Timeout is the hard deadline for a wait.
	Timeout time.Duration
	// Interval between polls.
	Interval time.Duration
	// WarnAfter is when a still-unsatisfied wait logs a warning and
	// captures diagnostics. Zero inherits; negative disables.
	WarnAfter time.Duration
	// AbsenceFloor is how long a target must stay absent before an
	// absence wait succeeds, guarding against "absent because it has not
	// appeared yet". Zero means absence succeeds on the first clear probe.
	AbsenceFloor time.Duration
}

var procDefaults = Config{
	Timeout:   DefaultTimeout,
	Interval:  DefaultInterval,
	WarnAfter: DefaultWarnAfter,
}

// SetDefaults replaces the process-wide wait defaults. Zero fields keep
// the built-in values. Call it once during setup, not while waits run.
func SetDefaults(cfg Config) {
	procDefaults = Config{
		Timeout:      DefaultTimeout,
		Interval:     DefaultInterval,
		WarnAfter:    DefaultWarnAfter,
		AbsenceFloor: cfg.AbsenceFloor,
	}
	if cfg.Timeout != 0 {
		procDefaults.Timeout = cfg.Timeout
	}
	if cfg.Interval != 0 {
		procDefaults.Interval = cfg.Interval
	}
	if cfg.WarnAfter != 0 {
		procDefaults.WarnAfter = cfg.WarnAfter
	}
}

// Defaults returns the current process-wide wait defaults.
func Defaults() Config {
	return procDefaults
}

// Resolve fills zero fields of c from the process defaults and returns
// the result. c itself is unchanged.
func (c Config) Resolve() Config {
	d := procDefaults
	if c.Timeout == 0 {
		c.Timeout = d.Timeout
	}
	if c.Interval == 0 {
		c.Interval = d.Interval
	}
	if c.WarnAfter == 0 {
		c.WarnAfter = d.WarnAfter
	}
	if c.AbsenceFloor == 0 {
		c.AbsenceFloor = d.AbsenceFloor
	}
	return c
}
