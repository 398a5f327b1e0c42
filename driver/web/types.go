package web

import (
	"strings"

	"github.com/pkg/errors"
	"gitlab.com/uiwait/uiwait"
)

// revive:exported
var (
	ErrNavigating = errors.New("error in navigation")
	ErrNoDocument = errors.New("unable to get document root")
)

// selectorFor maps a locator onto a CSS selector the DevTools DOM domain
// can evaluate. XPath is handled separately via the search API; mobile
// strategies have no web equivalent and are rejected.
func selectorFor(loc uiwait.Locator) (string, error) {
	switch loc.By {
	case uiwait.ByID:
		return "#" + loc.Value, nil
	case uiwait.ByName:
		return `[name="` + strings.Replace(loc.Value, `"`, `\"`, -1) + `"]`, nil
	case uiwait.ByCSS:
		return loc.Value, nil
	}
	return "", &uiwait.UnsupportedStrategyErr{By: loc.By}
}
