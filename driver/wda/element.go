package wda

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"gitlab.com/uiwait/uiwait"
)

// Element is a handle to one element reference in the agent's session.
type Element struct {
	d  *Driver
	id string
}

func newElement(d *Driver, id string) *Element {
	return &Element{d: d, id: id}
}

// ID of the element reference.
func (e *Element) ID() string {
	return e.id
}

// Text of the element as the agent reports it.
func (e *Element) Text(ctx context.Context) (string, error) {
	raw, err := e.d.get(ctx, e.d.sessionURL("/element/"+e.id+"/text"))
	if err != nil {
		return "", err
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", errors.Wrap(err, "malformed text response")
	}
	return text, nil
}

// Displayed reports the agent's visibility attribute for the element.
func (e *Element) Displayed(ctx context.Context) (bool, error) {
	raw, err := e.d.get(ctx, e.d.sessionURL("/element/"+e.id+"/displayed"))
	if err != nil {
		return false, err
	}
	var displayed bool
	if err := json.Unmarshal(raw, &displayed); err != nil {
		return false, errors.Wrap(err, "malformed displayed response")
	}
	return displayed, nil
}

// Displayed is the visibility predicate concrete mobile page objects
// install on their waiter.
func Displayed(ele uiwait.Element) (bool, error) {
	e, ok := ele.(*Element)
	if !ok {
		return false, errors.New("not a wda element")
	}
	return e.Displayed(context.Background())
}
