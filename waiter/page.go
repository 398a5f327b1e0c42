package waiter

import (
	"context"

	"github.com/rs/zerolog/log"
	"gitlab.com/uiwait/uiwait"
)

// Page is the base type concrete page objects embed. It binds the wait
// vocabulary to one logical screen: a name for log and failure messages,
// the locators whose presence defines "we are on this screen", and
// optional entry handlers that clear dialogs blocking the transition.
//
// Page never caches element handles; every wait re-runs the lookup so a
// re-rendered UI cannot hand back stale elements. One Page instance
// belongs to one driver session and must not be shared across goroutines.
type Page struct {
	*Waiter
	Name     string
	Defining []uiwait.Locator
	Entry    []Handler
}

// NewPage constructs the base for a concrete page object. defining are
// the locators that must all be present for the page to count as loaded.
func NewPage(name string, finder uiwait.Finder, cfg uiwait.Config, defining ...uiwait.Locator) *Page {
	return &Page{
		Waiter:   New(finder, cfg),
		Name:     name,
		Defining: defining,
	}
}

// AssertLoaded blocks until every defining locator is present, consulting
// the page's entry handlers between polls. Concrete page objects with
// richer load conditions compose the waiter primitives instead of
// overriding this.
func (p *Page) AssertLoaded(ctx context.Context, opts ...Opt) error {
	if len(p.Defining) == 0 {
		log.Debug().Str("page", p.Name).Msg("no defining locators, treating page as loaded")
		return nil
	}
	if len(p.Entry) > 0 {
		opts = append([]Opt{WithHandlers(p.Entry...)}, opts...)
	}
	_, err := p.AssertAllPresent(ctx, p.Defining, opts...)
	if err != nil {
		if te, ok := err.(*uiwait.TimeoutErr); ok {
			te.Condition = uiwait.CondPageLoaded
			te.Locator = p.Name + " " + te.Locator
		}
		return err
	}
	log.Debug().Str("page", p.Name).Msg("page loaded")
	return nil
}

// IsLoaded is the non-blocking form of AssertLoaded.
func (p *Page) IsLoaded(ctx context.Context, opts ...Opt) (bool, error) {
	err := p.AssertLoaded(ctx, opts...)
	if err == nil {
		return true, nil
	}
	if uiwait.IsTimeout(err) {
		return false, nil
	}
	return false, err
}
