package uiwait

import "context"

// Element is an opaque handle to a UI element. The driver owns its
// lifetime; the core only hands it back to callers or to Predicates and
// never inspects it. Handles may go stale as the UI re-renders, so they
// must not be cached across wait calls.
type Element interface{}

// Predicate evaluates a condition against a found element. A returned
// error is fatal and aborts the wait that ran it.
type Predicate func(ele Element) (bool, error)

// Finder is the driver capability that resolves Locators to Elements.
//
// FindOne returns exactly one element, a NotFoundErr while no match
// exists yet, or an UnsupportedStrategyErr when it does not recognize the
// locator's By. FindAll returns an empty slice, never an error, when no
// match exists; this keeps "nothing there yet" distinct from "driver
// cannot run this lookup".
//
// A Finder wraps a single driver session and is not safe for concurrent
// use. Parallel tests need independent sessions, each with its own Finder.
type Finder interface {
	FindOne(ctx context.Context, loc Locator) (Element, error)
	FindAll(ctx context.Context, loc Locator) ([]Element, error)
}

// StateCapturer is implemented by drivers that can snapshot UI state for
// diagnostics (warn thresholds, failed assertions).
type StateCapturer interface {
	ScreenshotPNG(ctx context.Context) ([]byte, error)
	PageSource(ctx context.Context) (source, ext string, err error)
}

// ArtifactSink receives diagnostic captures. Implementations decide where
// they go (disk, test report attachment).
type ArtifactSink interface {
	SaveScreenshot(png []byte, label string) (string, error)
	SavePageSource(source, ext, label string) (string, error)
}
