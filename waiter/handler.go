package waiter

import (
	"context"

	"github.com/rs/zerolog/log"
	"gitlab.com/uiwait/uiwait"
)

// Handler pairs a locator with a function that clears whatever that
// locator points at, typically an error dialog or permission prompt that
// blocks the condition a wait is polling for. Handlers are consulted one
// per poll cycle, round-robin, so a stream of popups cannot starve the
// main condition.
type Handler struct {
	Locator uiwait.Locator
	// Handle runs against the element when the locator resolves. Return
	// keep=false to retire the handler from rotation, keep=true to
	// consult it again later. An error aborts the surrounding wait.
	Handle func(ele uiwait.Element) (keep bool, err error)
}

// consult checks the head handler and rotates the list. A handler whose
// target is not there yet stays in rotation; one whose Handle reported
// keep=false is dropped.
func (w *Waiter) consult(ctx context.Context, hs []Handler) ([]Handler, error) {
	if len(hs) == 0 {
		return hs, nil
	}
	h := hs[0]
	rest := append([]Handler(nil), hs[1:]...)

	ele, err := w.finder.FindOne(ctx, h.Locator)
	if err != nil {
		if uiwait.IsNotFound(err) {
			return append(rest, h), nil
		}
		return hs, err
	}

	keep, err := h.Handle(ele)
	if err != nil {
		return hs, err
	}
	log.Debug().Str("locator", h.Locator.String()).Bool("keep", keep).Msg("handler consulted")
	if keep {
		return append(rest, h), nil
	}
	return rest, nil
}
