package wda_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gitlab.com/uiwait/driver/wda"
	"gitlab.com/uiwait/uiwait"
)

// mockAgent mimics a WebDriverAgent session endpoint: one button element,
// nothing else resolvable.
func mockAgent() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		path := r.URL.Path

		if strings.HasSuffix(path, "/element") && r.Method == "POST" {
			var req map[string]string
			json.NewDecoder(r.Body).Decode(&req)
			if req["value"] == "loginBtn" {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"value": map[string]interface{}{"ELEMENT": "elem-123"},
				})
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"value": map[string]interface{}{
					"error":   "no such element",
					"message": "unable to locate element",
				},
			})
			return
		}

		if strings.HasSuffix(path, "/elements") && r.Method == "POST" {
			var req map[string]string
			json.NewDecoder(r.Body).Decode(&req)
			if req["value"] == "loginBtn" {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"value": []map[string]interface{}{
						{"ELEMENT": "elem-123"},
						{"element-6066-11e4-a52e-4f735466cecf": "elem-456"},
					},
				})
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"value": []map[string]interface{}{},
			})
			return
		}

		if strings.Contains(path, "/element/elem-123/text") {
			json.NewEncoder(w).Encode(map[string]interface{}{"value": "Login"})
			return
		}

		if strings.Contains(path, "/element/elem-123/displayed") {
			json.NewEncoder(w).Encode(map[string]interface{}{"value": true})
			return
		}

		if strings.Contains(path, "/screenshot") {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"value": base64.StdEncoding.EncodeToString([]byte("fake-png-data")),
			})
			return
		}

		if strings.Contains(path, "/source") {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"value": "<AppiumAUT><XCUIElementTypeButton name=\"loginBtn\"/></AppiumAUT>",
			})
			return
		}

		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"value": nil})
	}))
}

func TestFindOne(t *testing.T) {
	srv := mockAgent()
	defer srv.Close()
	d := wda.NewDriver(srv.URL, "test-session")

	ele, err := d.FindOne(context.Background(), uiwait.NewLocator(uiwait.ByAccessibilityID, "loginBtn"))
	if err != nil {
		t.Fatalf("err: %s\n", err)
	}
	wdaEle, ok := ele.(*wda.Element)
	if !ok {
		t.Fatalf("expected a wda element, got %T\n", ele)
	}
	if wdaEle.ID() != "elem-123" {
		t.Fatalf("unexpected element id: %s\n", wdaEle.ID())
	}
}

func TestFindOneNotFound(t *testing.T) {
	srv := mockAgent()
	defer srv.Close()
	d := wda.NewDriver(srv.URL, "test-session")

	_, err := d.FindOne(context.Background(), uiwait.NewLocator(uiwait.ByAccessibilityID, "nopeBtn"))
	if !uiwait.IsNotFound(err) {
		t.Fatalf("expected a retryable not-found, got %v\n", err)
	}
}

func TestFindOneUnsupportedStrategy(t *testing.T) {
	srv := mockAgent()
	defer srv.Close()
	d := wda.NewDriver(srv.URL, "test-session")

	_, err := d.FindOne(context.Background(), uiwait.Locator{By: uiwait.By(42), Value: "x"})
	if !uiwait.IsUnsupportedStrategy(err) {
		t.Fatalf("expected unsupported strategy, got %v\n", err)
	}
}

func TestFindAll(t *testing.T) {
	srv := mockAgent()
	defer srv.Close()
	d := wda.NewDriver(srv.URL, "test-session")

	eles, err := d.FindAll(context.Background(), uiwait.NewLocator(uiwait.ByAccessibilityID, "loginBtn"))
	if err != nil {
		t.Fatalf("err: %s\n", err)
	}
	if len(eles) != 2 {
		t.Fatalf("expected both reference shapes parsed, got %d\n", len(eles))
	}
}

func TestFindAllEmptyIsNotAnError(t *testing.T) {
	srv := mockAgent()
	defer srv.Close()
	d := wda.NewDriver(srv.URL, "test-session")

	eles, err := d.FindAll(context.Background(), uiwait.NewLocator(uiwait.ByAccessibilityID, "nopeBtn"))
	if err != nil {
		t.Fatalf("no match must be an empty slice, not %v\n", err)
	}
	if len(eles) != 0 {
		t.Fatalf("expected no elements, got %d\n", len(eles))
	}
}

func TestElementText(t *testing.T) {
	srv := mockAgent()
	defer srv.Close()
	d := wda.NewDriver(srv.URL, "test-session")

	ele, err := d.FindOne(context.Background(), uiwait.NewLocator(uiwait.ByAccessibilityID, "loginBtn"))
	if err != nil {
		t.Fatalf("err: %s\n", err)
	}
	text, err := ele.(*wda.Element).Text(context.Background())
	if err != nil {
		t.Fatalf("err: %s\n", err)
	}
	if text != "Login" {
		t.Fatalf("unexpected text: %s\n", text)
	}
}

func TestDisplayedPredicate(t *testing.T) {
	srv := mockAgent()
	defer srv.Close()
	d := wda.NewDriver(srv.URL, "test-session")

	ele, err := d.FindOne(context.Background(), uiwait.NewLocator(uiwait.ByAccessibilityID, "loginBtn"))
	if err != nil {
		t.Fatalf("err: %s\n", err)
	}
	displayed, err := wda.Displayed(ele)
	if err != nil {
		t.Fatalf("err: %s\n", err)
	}
	if !displayed {
		t.Fatalf("agent reports the button visible\n")
	}
	if _, err := wda.Displayed("not-an-element"); err == nil {
		t.Fatalf("foreign element types must be rejected\n")
	}
}

func TestStateCapture(t *testing.T) {
	srv := mockAgent()
	defer srv.Close()
	d := wda.NewDriver(srv.URL, "test-session")

	png, err := d.ScreenshotPNG(context.Background())
	if err != nil {
		t.Fatalf("err: %s\n", err)
	}
	if string(png) != "fake-png-data" {
		t.Fatalf("screenshot not decoded: %q\n", png)
	}

	source, ext, err := d.PageSource(context.Background())
	if err != nil {
		t.Fatalf("err: %s\n", err)
	}
	if ext != "xml" || !strings.Contains(source, "XCUIElementTypeButton") {
		t.Fatalf("unexpected source dump: ext=%s source=%s\n", ext, source)
	}
}
