package uiwait

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// Condition is the kind of check a waiter runs, carried in timeout errors
// so failure messages say what was being waited for.
type Condition int8

// revive:disable:var-naming
const (
	CondPresent Condition = iota + 1
	CondAbsent
	CondPredicate
	CondPageLoaded
)

func (c Condition) String() string {
	switch c {
	case CondPresent:
		return "present"
	case CondAbsent:
		return "absent"
	case CondPredicate:
		return "predicate"
	case CondPageLoaded:
		return "page loaded"
	}
	return "unknown"
}

// NotFoundErr signals that no element matched a locator yet. The poll
// loop retries it; it never escapes a wait call.
type NotFoundErr struct {
	Message string
}

func (e *NotFoundErr) Error() string {
	return e.Message
}

// NotFound builds the retryable not-found signal for a locator.
func NotFound(loc Locator) *NotFoundErr {
	return &NotFoundErr{Message: "unable to find element " + loc.String()}
}

// IsNotFound reports whether err is, or wraps, a NotFoundErr.
func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*NotFoundErr)
	return ok
}

// UnsupportedStrategyErr means the active Finder does not recognize a
// locator's By. This is a configuration error: it is never retried and
// never converted into a timeout or a false/nil return.
type UnsupportedStrategyErr struct {
	By By
}

func (e *UnsupportedStrategyErr) Error() string {
	return "finder does not support lookup strategy " + e.By.String()
}

// IsUnsupportedStrategy reports whether err is, or wraps, an UnsupportedStrategyErr.
func IsUnsupportedStrategy(err error) bool {
	_, ok := errors.Cause(err).(*UnsupportedStrategyErr)
	return ok
}

// TimeoutErr is the typed failure a blocking waiter returns when its
// deadline expires. It carries enough context for a test framework to
// render a human-readable failure.
type TimeoutErr struct {
	Locator   string
	Condition Condition
	Timeout   time.Duration
}

func (e *TimeoutErr) Error() string {
	return fmt.Sprintf("wait for %s to be %s timed out after %s", e.Locator, e.Condition, e.Timeout)
}

// IsTimeout reports whether err is, or wraps, a TimeoutErr.
func IsTimeout(err error) bool {
	_, ok := errors.Cause(err).(*TimeoutErr)
	return ok
}
