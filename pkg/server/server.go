package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/loomui/loom"
	"github.com/loomui/loom/pkg/memdom"
	"github.com/loomui/loom/pkg/metrics"
)

// AppFactory builds a fresh App on the given per-session document. The
// server mounts the returned app on the document's body.
type AppFactory func(doc *memdom.Document) *loom.App

// Config configures a Server.
type Config struct {
	// NewApp builds the per-session app. Required.
	NewApp AppFactory

	// Logger receives structured session logs.
	// Default: slog.Default().
	Logger *slog.Logger

	// Metrics, when set, records session and frame counts and is served
	// on /metrics.
	Metrics *metrics.Metrics

	// EventBuffer is the per-session incoming event queue size.
	// Events beyond it are dropped. Default: 64.
	EventBuffer int

	// WriteTimeout bounds a single frame write. Default: 10s.
	WriteTimeout time.Duration

	// ReadLimit bounds a single incoming frame in bytes. Default: 64KiB.
	ReadLimit int64

	// CheckOrigin overrides the websocket origin check. Default: the
	// gorilla same-origin policy.
	CheckOrigin func(r *http.Request) bool
}

func (c *Config) applyDefaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.EventBuffer == 0 {
		c.EventBuffer = 64
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.ReadLimit == 0 {
		c.ReadLimit = 64 << 10
	}
}

// Server upgrades connections and runs one session per client.
type Server struct {
	cfg      Config
	upgrader websocket.Upgrader
}

// New creates a Server. It panics if cfg.NewApp is nil; a server with no
// app to serve is a programming error, not a runtime condition.
func New(cfg Config) *Server {
	if cfg.NewApp == nil {
		panic(ErrNoFactory)
	}
	cfg.applyDefaults()
	return &Server{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     cfg.CheckOrigin,
		},
	}
}

// Handler returns the HTTP surface: the client shell on /, the live
// websocket endpoint on /live, Prometheus metrics on /metrics, and a
// health probe on /healthz.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/live", s.handleLive)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/", s.handleIndex)
	return r
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.cfg.Logger.Error("websocket upgrade failed", "err", err)
		return
	}

	doc := memdom.NewDocument()
	app := s.cfg.NewApp(doc)

	sess := newSession(conn, app, doc, &s.cfg)
	s.cfg.Metrics.SessionOpened()
	defer s.cfg.Metrics.SessionClosed()

	go sess.readPump()
	if err := sess.run(r.Context()); err != nil {
		s.cfg.Logger.Error("session ended", "session", sess.id, "err", err)
	}
	sess.close()
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexShell))
}

// indexShell is the thin client: it mirrors markup frames into #app and
// reports clicks on ref-carrying elements back as event frames.
const indexShell = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>loom</title></head>
<body>
<div id="app"></div>
<script>
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/live");
  var app = document.getElementById("app");
  ws.onmessage = function (msg) {
    var frame = JSON.parse(msg.data);
    if (frame.type === "markup") {
      app.innerHTML = frame.html;
    }
  };
  app.addEventListener("click", function (ev) {
    var el = ev.target.closest("[data-loom]");
    if (el) {
      ws.send(JSON.stringify({type: "event", ref: el.dataset.loom, event: "click"}));
    }
  });
})();
</script>
</body>
</html>
`
