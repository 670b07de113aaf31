package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/loomui/loom"
	"github.com/loomui/loom/pkg/memdom"
	"github.com/loomui/loom/pkg/vdom"
)

type counter struct {
	vdom.Core[vdom.NoProps]
	clicks int
}

func (c *counter) Render() *vdom.VNode {
	return vdom.El("button",
		vdom.On("click", func() {
			c.SetState(func() { c.clicks++ })
		}),
		vdom.Textf("count:%d", c.clicks),
	)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New(Config{
		NewApp: func(doc *memdom.Document) *loom.App {
			return loom.New[counter](doc, vdom.NoProps{}, loom.Config{})
		},
		CheckOrigin: func(*http.Request) bool { return true },
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestNewWithoutFactoryPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a nil app factory")
		}
	}()
	New(Config{})
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok" {
		t.Errorf("body = %q, want ok", body)
	}
}

func TestIndexShell(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "/live") {
		t.Errorf("index shell does not reference the live endpoint")
	}
	if !strings.Contains(string(body), "data-loom") {
		t.Errorf("index shell does not delegate events by reference id")
	}
}

var refPattern = regexp.MustCompile(`data-loom="([^"]+)"`)

func readMarkup(t *testing.T, conn *websocket.Conn) markupFrame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	var frame markupFrame
	if err := json.Unmarshal(msg, &frame); err != nil {
		t.Fatalf("bad markup frame %q: %v", msg, err)
	}
	if frame.Type != "markup" {
		t.Fatalf("frame type = %q, want markup", frame.Type)
	}
	return frame
}

func TestLiveSessionEndToEnd(t *testing.T) {
	ts := newTestServer(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/live"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	initial := readMarkup(t, conn)
	if !strings.Contains(initial.HTML, "count:0") {
		t.Fatalf("initial markup = %q, want count:0", initial.HTML)
	}
	m := refPattern.FindStringSubmatch(initial.HTML)
	if m == nil {
		t.Fatalf("initial markup %q carries no reference id", initial.HTML)
	}

	click, _ := json.Marshal(eventFrame{Type: "event", Ref: m[1], Event: "click"})
	if err := conn.WriteMessage(websocket.TextMessage, click); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	updated := readMarkup(t, conn)
	if !strings.Contains(updated.HTML, "count:1") {
		t.Errorf("updated markup = %q, want count:1", updated.HTML)
	}
	if updated.Seq <= initial.Seq {
		t.Errorf("seq = %d, want > %d", updated.Seq, initial.Seq)
	}
}

func TestLiveSessionIgnoresStaleRef(t *testing.T) {
	ts := newTestServer(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/live"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	_ = readMarkup(t, conn)

	// A ref the server never issued is logged and skipped, and the session
	// keeps serving.
	stale, _ := json.Marshal(eventFrame{Type: "event", Ref: "h999", Event: "click"})
	if err := conn.WriteMessage(websocket.TextMessage, stale); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	live, _ := json.Marshal(eventFrame{Type: "event", Ref: "h1", Event: "click"})
	if err := conn.WriteMessage(websocket.TextMessage, live); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	updated := readMarkup(t, conn)
	if !strings.Contains(updated.HTML, "count:1") {
		t.Errorf("updated markup = %q, want count:1", updated.HTML)
	}
}
