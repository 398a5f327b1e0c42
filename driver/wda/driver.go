// Package wda adapts a WebDriver-protocol automation agent (Appium,
// WebDriverAgent) to the uiwait Finder capability. Everything is plain
// JSON over HTTP against a session endpoint the caller already opened;
// session lifecycle stays with the caller.
package wda

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gitlab.com/uiwait/uiwait"
)

// strategies maps the core lookup strategies onto WebDriver "using"
// values. Anything missing here is an unsupported strategy for this
// driver family.
var strategies = map[uiwait.By]string{
	uiwait.ByID:              "id",
	uiwait.ByName:            "name",
	uiwait.ByCSS:             "css selector",
	uiwait.ByXPath:           "xpath",
	uiwait.ByAccessibilityID: "accessibility id",
	uiwait.ByPredicateString: "-ios predicate string",
	uiwait.ByClassChain:      "-ios class chain",
}

// Driver adapts one WebDriver session to the Finder and StateCapturer
// capabilities.
type Driver struct {
	base    string
	session string
	hc      *http.Client
}

// NewDriver for an open session. base is the agent root, e.g.
// "http://127.0.0.1:8100".
func NewDriver(base, sessionID string) *Driver {
	return &Driver{
		base:    base,
		session: sessionID,
		hc:      &http.Client{Timeout: 15 * time.Second},
	}
}

type findRequest struct {
	Using string `json:"using"`
	Value string `json:"value"`
}

type valueResponse struct {
	Value json.RawMessage `json:"value"`
}

type errorValue struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// FindOne resolves the locator to a single element reference.
func (d *Driver) FindOne(ctx context.Context, loc uiwait.Locator) (uiwait.Element, error) {
	using, ok := strategies[loc.By]
	if !ok {
		return nil, &uiwait.UnsupportedStrategyErr{By: loc.By}
	}
	raw, err := d.post(ctx, d.sessionURL("/element"), &findRequest{Using: using, Value: loc.Value})
	if err != nil {
		if uiwait.IsNotFound(err) {
			return nil, uiwait.NotFound(loc)
		}
		return nil, err
	}
	var ref map[string]string
	if err := json.Unmarshal(raw, &ref); err != nil {
		return nil, errors.Wrap(err, "malformed element response")
	}
	id := elementID(ref)
	if id == "" {
		return nil, uiwait.NotFound(loc)
	}
	return newElement(d, id), nil
}

// FindAll resolves the locator to every matching element reference; no
// match is an empty slice.
func (d *Driver) FindAll(ctx context.Context, loc uiwait.Locator) ([]uiwait.Element, error) {
	using, ok := strategies[loc.By]
	if !ok {
		return nil, &uiwait.UnsupportedStrategyErr{By: loc.By}
	}
	raw, err := d.post(ctx, d.sessionURL("/elements"), &findRequest{Using: using, Value: loc.Value})
	if err != nil {
		if uiwait.IsNotFound(err) {
			return []uiwait.Element{}, nil
		}
		return nil, err
	}
	var refs []map[string]string
	if err := json.Unmarshal(raw, &refs); err != nil {
		return nil, errors.Wrap(err, "malformed elements response")
	}
	elements := make([]uiwait.Element, 0, len(refs))
	for _, ref := range refs {
		if id := elementID(ref); id != "" {
			elements = append(elements, newElement(d, id))
		}
	}
	return elements, nil
}

// ScreenshotPNG captures the device screen.
func (d *Driver) ScreenshotPNG(ctx context.Context) ([]byte, error) {
	raw, err := d.get(ctx, d.sessionURL("/screenshot"))
	if err != nil {
		return nil, err
	}
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, errors.Wrap(err, "malformed screenshot response")
	}
	return base64.StdEncoding.DecodeString(encoded)
}

// PageSource dumps the UI hierarchy.
func (d *Driver) PageSource(ctx context.Context) (string, string, error) {
	raw, err := d.get(ctx, d.sessionURL("/source"))
	if err != nil {
		return "", "", err
	}
	var source string
	if err := json.Unmarshal(raw, &source); err != nil {
		return "", "", errors.Wrap(err, "malformed source response")
	}
	return source, "xml", nil
}

func (d *Driver) sessionURL(path string) string {
	return fmt.Sprintf("%s/session/%s%s", d.base, d.session, path)
}

func (d *Driver) post(ctx context.Context, url string, body interface{}) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode request")
	}
	req, err := http.NewRequest("POST", url, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	return d.do(req.WithContext(ctx))
}

func (d *Driver) get(ctx context.Context, url string) (json.RawMessage, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	return d.do(req.WithContext(ctx))
}

// do runs one agent call and peels the WebDriver envelope. Protocol-level
// "no such element" becomes the retryable not-found signal; "invalid
// selector" and friends become unsupported-strategy; everything else is a
// fatal driver error.
func (d *Driver) do(req *http.Request) (json.RawMessage, error) {
	resp, err := d.hc.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "agent request failed")
	}
	defer resp.Body.Close()

	var envelope valueResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, errors.Wrapf(err, "malformed agent response (status %d)", resp.StatusCode)
	}

	var werr errorValue
	if json.Unmarshal(envelope.Value, &werr) == nil && werr.Error != "" {
		switch werr.Error {
		case "no such element":
			return nil, &uiwait.NotFoundErr{Message: werr.Message}
		case "invalid selector", "invalid argument":
			return nil, errors.Wrap(&uiwait.UnsupportedStrategyErr{}, werr.Message)
		}
		return nil, errors.Errorf("agent error %q: %s", werr.Error, werr.Message)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, &uiwait.NotFoundErr{Message: "agent returned 404"}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("agent returned status %d", resp.StatusCode)
	}
	log.Debug().Str("url", req.URL.Path).Msg("agent call ok")
	return envelope.Value, nil
}

// elementID digs the element reference out of either the legacy JSONWP
// shape ("ELEMENT") or the W3C shape.
func elementID(ref map[string]string) string {
	if id, ok := ref["ELEMENT"]; ok {
		return id
	}
	if id, ok := ref["element-6066-11e4-a52e-4f735466cecf"]; ok {
		return id
	}
	return ""
}
