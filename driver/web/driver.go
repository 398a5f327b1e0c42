package web

import (
	"context"
	"encoding/base64"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/wirepair/gcd"
	"github.com/wirepair/gcd/gcdapi"
	"gitlab.com/uiwait/uiwait"
)

// Driver adapts one chromium tab, driven over the DevTools protocol, to
// the Finder and StateCapturer capabilities. It owns nothing: the caller
// decides whether the browser process is launched here or attached to.
type Driver struct {
	g *gcd.Gcd
	t *gcd.ChromeTarget
}

// NewDriver wraps an already-connected debugger target.
func NewDriver(g *gcd.Gcd, target *gcd.ChromeTarget) *Driver {
	return &Driver{g: g, t: target}
}

// Launch starts a chromium process, attaches to its first tab and enables
// the DOM and Page domains.
func Launch(chromePath, tmpDir, port string) (*Driver, error) {
	g := gcd.NewChromeDebugger()
	g.DeleteProfileOnExit()
	g.AddFlags([]string{"--headless", "--disable-gpu", "--no-first-run"})
	if err := g.StartProcess(chromePath, tmpDir, port); err != nil {
		return nil, errors.Wrap(err, "failed to start chromium")
	}
	target, err := g.GetFirstTab()
	if err != nil {
		g.ExitProcess()
		return nil, errors.Wrap(err, "failed to get first tab")
	}
	target.DOM.Enable()
	target.Page.Enable()
	return &Driver{g: g, t: target}, nil
}

// Attach connects to an already-running chromium debugger instance.
func Attach(host, port string) (*Driver, error) {
	g := gcd.NewChromeDebugger()
	if err := g.ConnectToInstance(host, port); err != nil {
		return nil, errors.Wrap(err, "failed to connect to instance")
	}
	target, err := g.GetFirstTab()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get first tab")
	}
	target.DOM.Enable()
	target.Page.Enable()
	return &Driver{g: g, t: target}, nil
}

// Close exits the browser process if this driver launched one.
func (d *Driver) Close() error {
	if d.g == nil {
		return nil
	}
	return d.g.ExitProcess()
}

// Navigate the tab to a url.
func (d *Driver) Navigate(ctx context.Context, url string) error {
	navParams := &gcdapi.PageNavigateParams{Url: url, TransitionType: "typed"}
	_, _, errText, err := d.t.Page.NavigateWithParams(navParams)
	if err != nil {
		return errors.Wrap(err, "failed to navigate")
	}
	if errText != "" {
		return errors.Wrap(ErrNavigating, errText)
	}
	return nil
}

// FindOne resolves the locator to a single DOM node. CSS-expressible
// strategies go through DOM.querySelector; xpath goes through the DOM
// search API. A zero node ID means chromium found nothing yet.
func (d *Driver) FindOne(ctx context.Context, loc uiwait.Locator) (uiwait.Element, error) {
	if loc.By == uiwait.ByXPath {
		nodeIDs, err := d.search(loc.Value)
		if err != nil {
			return nil, err
		}
		if len(nodeIDs) == 0 {
			return nil, uiwait.NotFound(loc)
		}
		return newElement(d, nodeIDs[0]), nil
	}

	selector, err := selectorFor(loc)
	if err != nil {
		return nil, err
	}
	doc, err := d.document()
	if err != nil {
		return nil, err
	}
	nodeID, err := d.t.DOM.QuerySelector(doc.NodeId, selector)
	if err != nil {
		return nil, errors.Wrap(err, "query selector failed")
	}
	if nodeID == 0 {
		return nil, uiwait.NotFound(loc)
	}
	return newElement(d, nodeID), nil
}

// FindAll resolves the locator to every matching DOM node. No match is an
// empty slice, never an error.
func (d *Driver) FindAll(ctx context.Context, loc uiwait.Locator) ([]uiwait.Element, error) {
	var nodeIDs []int
	var err error

	if loc.By == uiwait.ByXPath {
		nodeIDs, err = d.search(loc.Value)
		if err != nil {
			return nil, err
		}
	} else {
		selector, serr := selectorFor(loc)
		if serr != nil {
			return nil, serr
		}
		doc, derr := d.document()
		if derr != nil {
			return nil, derr
		}
		nodeIDs, err = d.t.DOM.QuerySelectorAll(doc.NodeId, selector)
		if err != nil {
			return nil, errors.Wrap(err, "query selector all failed")
		}
	}

	elements := make([]uiwait.Element, len(nodeIDs))
	for i, nodeID := range nodeIDs {
		elements[i] = newElement(d, nodeID)
	}
	return elements, nil
}

// ScreenshotPNG captures the viewport as png bytes.
func (d *Driver) ScreenshotPNG(ctx context.Context) ([]byte, error) {
	params := &gcdapi.PageCaptureScreenshotParams{
		Format:  "png",
		Quality: 100,
		Clip: &gcdapi.PageViewport{
			X:      0,
			Y:      0,
			Width:  1024,
			Height: 768,
			Scale:  float64(1)},
		FromSurface: true,
	}
	encoded, err := d.t.Page.CaptureScreenshotWithParams(params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to capture screenshot")
	}
	return base64.StdEncoding.DecodeString(encoded)
}

// PageSource serializes the current DOM.
func (d *Driver) PageSource(ctx context.Context) (string, string, error) {
	doc, err := d.document()
	if err != nil {
		return "", "", err
	}
	html, err := d.t.DOM.GetOuterHTMLWithParams(&gcdapi.DOMGetOuterHTMLParams{
		NodeId: doc.NodeId,
	})
	if err != nil {
		return "", "", errors.Wrap(err, "failed to serialize DOM")
	}
	return html, "html", nil
}

func (d *Driver) document() (*gcdapi.DOMNode, error) {
	doc, err := d.t.DOM.GetDocument(-1, false)
	if err != nil {
		return nil, errors.Wrap(ErrNoDocument, err.Error())
	}
	return doc, nil
}

func (d *Driver) search(query string) ([]int, error) {
	var s gcdapi.DOMPerformSearchParams
	s.Query = query
	ID, count, err := d.t.DOM.PerformSearchWithParams(&s)
	if err != nil {
		return nil, errors.Wrap(err, "DOM search failed")
	}
	if count < 1 {
		return []int{}, nil
	}

	var r gcdapi.DOMGetSearchResultsParams
	r.SearchId = ID
	r.FromIndex = 0
	r.ToIndex = count
	nodeIDs, errQuery := d.t.DOM.GetSearchResultsWithParams(&r)
	if errQuery != nil {
		return nil, errors.Wrap(errQuery, "DOM search results failed")
	}
	log.Debug().Str("query", query).Int("count", count).Msg("DOM search")
	return nodeIDs, nil
}
