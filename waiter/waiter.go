package waiter

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gitlab.com/uiwait/uiwait"
)

// Waiter binds the assert/wait vocabulary to one Finder. Blocking
// (Assert*) forms return a *uiwait.TimeoutErr when the deadline expires;
// non-blocking (Wait*/Is*) forms return a nil element or false instead.
// Both forms surface UnsupportedStrategyErr and fatal driver errors
// unconditionally.
//
// A Waiter wraps one driver session and is not safe for concurrent use.
type Waiter struct {
	finder    uiwait.Finder
	cfg       uiwait.Config
	displayed uiwait.Predicate
	capturer  uiwait.StateCapturer
	sink      uiwait.ArtifactSink
}

// New waiter over a finder. Zero cfg fields inherit the process defaults.
func New(finder uiwait.Finder, cfg uiwait.Config) *Waiter {
	return &Waiter{finder: finder, cfg: cfg}
}

// Finder this waiter polls against.
func (w *Waiter) Finder() uiwait.Finder {
	return w.finder
}

// Config returns the instance-level wait settings.
func (w *Waiter) Config() uiwait.Config {
	return w.cfg
}

// SetDisplayed installs the driver's visibility predicate, enabling the
// Visible wait forms.
func (w *Waiter) SetDisplayed(pred uiwait.Predicate) {
	w.displayed = pred
}

// SetCapture wires a state capturer and artifact sink so stalled waits
// can save a screenshot and page source when they cross the warn
// threshold. Both must be set for captures to happen.
func (w *Waiter) SetCapture(c uiwait.StateCapturer, sink uiwait.ArtifactSink) {
	w.capturer = c
	w.sink = sink
}

// AssertPresent blocks until the locator resolves to an element and
// returns it. On deadline it returns a *uiwait.TimeoutErr.
func (w *Waiter) AssertPresent(ctx context.Context, loc uiwait.Locator, opts ...Opt) (uiwait.Element, error) {
	o := collect(opts)
	return w.run(ctx, uiwait.CondPresent, loc.String(), o.resolve(w.cfg), o.handlers, w.presentProbe(loc))
}

// WaitPresent is the non-blocking presence form: a nil element and nil
// error on timeout. The element is returned (not a bare bool) so callers
// can use it without a second lookup.
func (w *Waiter) WaitPresent(ctx context.Context, loc uiwait.Locator, opts ...Opt) (uiwait.Element, error) {
	return nonBlocking(w.AssertPresent(ctx, loc, opts...))
}

// IsPresent reports whether the locator resolves within the timeout.
func (w *Waiter) IsPresent(ctx context.Context, loc uiwait.Locator, opts ...Opt) (bool, error) {
	ele, err := w.WaitPresent(ctx, loc, opts...)
	return ele != nil, err
}

// AssertAbsent blocks until nothing matches the locator. "Empty find_all
// result" and "not-found error" both count as absent, so finders of
// either style behave identically. With a non-zero absence floor the
// target must stay absent past the floor before the wait succeeds.
func (w *Waiter) AssertAbsent(ctx context.Context, loc uiwait.Locator, opts ...Opt) error {
	o := collect(opts)
	cfg := o.resolve(w.cfg)
	_, err := w.run(ctx, uiwait.CondAbsent, loc.String(), cfg, o.handlers, w.absentProbe(loc, cfg.AbsenceFloor, time.Now()))
	return err
}

// IsAbsent is the non-blocking absence form: false on timeout.
func (w *Waiter) IsAbsent(ctx context.Context, loc uiwait.Locator, opts ...Opt) (bool, error) {
	err := w.AssertAbsent(ctx, loc, opts...)
	if err == nil {
		return true, nil
	}
	if uiwait.IsTimeout(err) {
		return false, nil
	}
	return false, err
}

// AssertUntil blocks until the locator resolves AND the predicate holds
// for the resolved element. Mere presence never satisfies it.
func (w *Waiter) AssertUntil(ctx context.Context, loc uiwait.Locator, pred uiwait.Predicate, opts ...Opt) (uiwait.Element, error) {
	o := collect(opts)
	return w.run(ctx, uiwait.CondPredicate, loc.String(), o.resolve(w.cfg), o.handlers, w.predicateProbe(loc, pred))
}

// WaitUntil is the non-blocking predicate form: nil element on timeout.
func (w *Waiter) WaitUntil(ctx context.Context, loc uiwait.Locator, pred uiwait.Predicate, opts ...Opt) (uiwait.Element, error) {
	return nonBlocking(w.AssertUntil(ctx, loc, pred, opts...))
}

// AssertVisible blocks until the element is present and the driver's
// displayed predicate holds for it.
func (w *Waiter) AssertVisible(ctx context.Context, loc uiwait.Locator, opts ...Opt) (uiwait.Element, error) {
	if w.displayed == nil {
		return nil, errors.New("driver did not install a displayed predicate")
	}
	return w.AssertUntil(ctx, loc, w.displayed, opts...)
}

// WaitVisible is the non-blocking visibility form: nil element on timeout.
func (w *Waiter) WaitVisible(ctx context.Context, loc uiwait.Locator, opts ...Opt) (uiwait.Element, error) {
	return nonBlocking(w.AssertVisible(ctx, loc, opts...))
}

// AssertAnyPresent blocks until any one of the locators resolves and
// returns the first element found.
func (w *Waiter) AssertAnyPresent(ctx context.Context, locs []uiwait.Locator, opts ...Opt) (uiwait.Element, error) {
	o := collect(opts)
	return w.run(ctx, uiwait.CondPresent, describe(locs), o.resolve(w.cfg), o.handlers, w.anyProbe(locs))
}

// WaitAnyPresent is the non-blocking any-of form: nil element on timeout.
func (w *Waiter) WaitAnyPresent(ctx context.Context, locs []uiwait.Locator, opts ...Opt) (uiwait.Element, error) {
	return nonBlocking(w.AssertAnyPresent(ctx, locs, opts...))
}

// AssertAllPresent blocks until every locator resolves in the same poll
// cycle, returning the elements in locator order.
func (w *Waiter) AssertAllPresent(ctx context.Context, locs []uiwait.Locator, opts ...Opt) ([]uiwait.Element, error) {
	o := collect(opts)
	var found []uiwait.Element
	probe := func(ctx context.Context) (uiwait.Element, error) {
		eles := make([]uiwait.Element, 0, len(locs))
		for _, loc := range locs {
			ele, err := w.finder.FindOne(ctx, loc)
			if err != nil {
				return nil, err
			}
			eles = append(eles, ele)
		}
		found = eles
		return nil, nil
	}
	_, err := w.run(ctx, uiwait.CondPresent, describe(locs), o.resolve(w.cfg), o.handlers, probe)
	if err != nil {
		return nil, err
	}
	return found, nil
}

// run is the shared wait loop: resolve a deadline, wrap the probe with
// warn-threshold and handler consultation, poll, and translate a terminal
// not-found into the typed timeout failure.
func (w *Waiter) run(ctx context.Context, kind uiwait.Condition, desc string, cfg uiwait.Config, hs []Handler, probe ProbeFunc) (uiwait.Element, error) {
	d := DeadlineFrom(cfg.Timeout)
	warn := DeadlineFrom(cfg.WarnAfter)
	warned := cfg.WarnAfter < 0
	start := time.Now()

	wrapped := func(ctx context.Context) (uiwait.Element, error) {
		ele, err := probe(ctx)
		if err == nil || !uiwait.IsNotFound(err) {
			return ele, err
		}
		if !warned && warn.Expired() {
			warned = true
			w.warnStalled(ctx, kind, desc, time.Since(start))
		}
		var herr error
		if hs, herr = w.consult(ctx, hs); herr != nil {
			return nil, herr
		}
		return nil, err
	}

	ele, err := Poll(ctx, wrapped, d, cfg.Interval)
	if err != nil {
		if uiwait.IsNotFound(err) {
			return nil, &uiwait.TimeoutErr{Locator: desc, Condition: kind, Timeout: cfg.Timeout}
		}
		return nil, err
	}
	return ele, nil
}

func (w *Waiter) presentProbe(loc uiwait.Locator) ProbeFunc {
	return func(ctx context.Context) (uiwait.Element, error) {
		return w.finder.FindOne(ctx, loc)
	}
}

func (w *Waiter) absentProbe(loc uiwait.Locator, floor time.Duration, start time.Time) ProbeFunc {
	return func(ctx context.Context) (uiwait.Element, error) {
		eles, err := w.finder.FindAll(ctx, loc)
		if err != nil {
			// a finder that signals "no match" with an error instead of
			// an empty slice still counts as absent
			if !uiwait.IsNotFound(err) {
				return nil, err
			}
			eles = nil
		}
		if len(eles) > 0 {
			return nil, &uiwait.NotFoundErr{Message: loc.String() + " still present"}
		}
		if floor > 0 && time.Since(start) < floor {
			return nil, &uiwait.NotFoundErr{Message: loc.String() + " absent, inside minimum-absence floor"}
		}
		return nil, nil
	}
}

func (w *Waiter) predicateProbe(loc uiwait.Locator, pred uiwait.Predicate) ProbeFunc {
	return func(ctx context.Context) (uiwait.Element, error) {
		ele, err := w.finder.FindOne(ctx, loc)
		if err != nil {
			return nil, err
		}
		ok, err := pred(ele)
		if err != nil {
			return nil, errors.Wrap(err, "predicate failed")
		}
		if !ok {
			return nil, &uiwait.NotFoundErr{Message: loc.String() + " present but predicate not satisfied"}
		}
		return ele, nil
	}
}

func (w *Waiter) anyProbe(locs []uiwait.Locator) ProbeFunc {
	return func(ctx context.Context) (uiwait.Element, error) {
		for _, loc := range locs {
			ele, err := w.finder.FindOne(ctx, loc)
			if err == nil {
				return ele, nil
			}
			if !uiwait.IsNotFound(err) {
				return nil, err
			}
		}
		return nil, &uiwait.NotFoundErr{Message: "none of " + describe(locs) + " resolved"}
	}
}

func (w *Waiter) warnStalled(ctx context.Context, kind uiwait.Condition, desc string, elapsed time.Duration) {
	log.Warn().Str("condition", kind.String()).Str("locator", desc).Dur("elapsed", elapsed).Msg("wait still unsatisfied")
	if w.capturer == nil || w.sink == nil {
		return
	}
	if png, err := w.capturer.ScreenshotPNG(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to capture screenshot")
	} else if path, err := w.sink.SaveScreenshot(png, "wait_warn"); err != nil {
		log.Warn().Err(err).Msg("failed to save screenshot")
	} else {
		log.Info().Str("path", path).Msg("saved screenshot")
	}
	if source, ext, err := w.capturer.PageSource(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to capture page source")
	} else if path, err := w.sink.SavePageSource(source, ext, "wait_warn"); err != nil {
		log.Warn().Err(err).Msg("failed to save page source")
	} else {
		log.Info().Str("path", path).Msg("saved page source")
	}
}

func collect(opts []Opt) *callOpts {
	o := &callOpts{}
	for _, fn := range opts {
		fn(o)
	}
	return o
}

// nonBlocking converts a blocking result: timeouts become a nil element,
// everything else (UnsupportedStrategy included) passes through.
func nonBlocking(ele uiwait.Element, err error) (uiwait.Element, error) {
	if err != nil {
		if uiwait.IsTimeout(err) {
			return nil, nil
		}
		return nil, err
	}
	return ele, nil
}

func describe(locs []uiwait.Locator) string {
	parts := make([]string, len(locs))
	for i, loc := range locs {
		parts[i] = loc.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
