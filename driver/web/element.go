package web

import (
	"github.com/pkg/errors"
	"github.com/wirepair/gcd/gcdapi"
	"gitlab.com/uiwait/uiwait"
)

// Element is a handle to one DOM node in the driven tab. The node ID is
// only meaningful while the document it came from is alive; handles are
// not reused across waits.
type Element struct {
	d      *Driver
	nodeID int
}

func newElement(d *Driver, nodeID int) *Element {
	return &Element{d: d, nodeID: nodeID}
}

// NodeID of the underlying DOM node.
func (e *Element) NodeID() int {
	return e.nodeID
}

// OuterHTML of the node.
func (e *Element) OuterHTML() (string, error) {
	html, err := e.d.t.DOM.GetOuterHTMLWithParams(&gcdapi.DOMGetOuterHTMLParams{
		NodeId: e.nodeID,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to get outer html")
	}
	return html, nil
}

// Displayed reports whether the node has a box model. Hidden or detached
// nodes have none; chromium answers that with an error, which is a
// negative here, not a failure.
func (e *Element) Displayed() (bool, error) {
	box, err := e.d.t.DOM.GetBoxModelWithParams(&gcdapi.DOMGetBoxModelParams{
		NodeId: e.nodeID,
	})
	if err != nil {
		return false, nil
	}
	return box != nil && box.Width > 0 && box.Height > 0, nil
}

// Displayed is the visibility predicate concrete web page objects install
// on their waiter.
func Displayed(ele uiwait.Element) (bool, error) {
	e, ok := ele.(*Element)
	if !ok {
		return false, errors.New("not a web element")
	}
	return e.Displayed()
}
