package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/loomui/loom"
	"github.com/loomui/loom/pkg/memdom"
)

// eventFrame is a client-to-server message addressing a bound handler.
type eventFrame struct {
	Type  string `json:"type"`
	Ref   string `json:"ref"`
	Event string `json:"event"`
}

// markupFrame is a server-to-client message carrying the mount point's
// serialized markup after a render pass.
type markupFrame struct {
	Type string `json:"type"`
	Seq  uint64 `json:"seq"`
	HTML string `json:"html"`
}

// session couples one connection with one app and one document. Its run
// loop is the only goroutine that mutates either.
type session struct {
	id  string
	app *loom.App
	doc *memdom.Document
	cfg *Config

	conn    *websocket.Conn
	writeMu sync.Mutex
	closed  atomic.Bool
	sendSeq atomic.Uint64

	events chan eventFrame
	logger *slog.Logger
}

func newSession(conn *websocket.Conn, app *loom.App, doc *memdom.Document, cfg *Config) *session {
	id := newSessionID()
	return &session{
		id:     id,
		app:    app,
		doc:    doc,
		cfg:    cfg,
		conn:   conn,
		events: make(chan eventFrame, cfg.EventBuffer),
		logger: cfg.Logger.With("session", id),
	}
}

func newSessionID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// readPump reads frames off the connection into the event queue until
// the connection errors. It is the queue's only sender and closes it on
// exit.
func (s *session) readPump() {
	defer close(s.events)
	s.conn.SetReadLimit(s.cfg.ReadLimit)

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "err", err)
			}
			return
		}

		var ev eventFrame
		if err := json.Unmarshal(msg, &ev); err != nil {
			s.logger.Warn("bad event frame", "err", err)
			continue
		}
		if ev.Type != "event" {
			s.logger.Warn("unknown frame type", "type", ev.Type)
			continue
		}

		select {
		case s.events <- ev:
		default:
			s.cfg.Metrics.EventDropped()
			s.logger.Warn("event dropped", "err", ErrEventQueueFull, "ref", ev.Ref)
		}
	}
}

// run mounts the app and drives the session until the client goes away,
// the context is cancelled, or a render pass fails.
func (s *session) run(ctx context.Context) error {
	if err := s.app.Mount(loom.AtNode(s.doc.Body())); err != nil {
		return err
	}
	if err := s.sendMarkup(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-s.events:
			if !ok {
				return nil
			}
			s.cfg.Metrics.EventReceived()
			if err := s.doc.Dispatch(ev.Ref, ev.Event); err != nil {
				// Stale refs race with re-renders; the next markup frame
				// resynchronizes the client.
				s.logger.Warn("dispatch failed", "ref", ev.Ref, "event", ev.Event, "err", err)
			}
			did, err := s.app.Flush(ctx)
			if err != nil {
				return err
			}
			if did {
				if err := s.sendMarkup(); err != nil {
					return err
				}
			}

		case <-s.app.Wake():
			if err := s.app.RenderPass(ctx); err != nil {
				return err
			}
			if err := s.sendMarkup(); err != nil {
				return err
			}
		}
	}
}

// sendMarkup streams the mount point's current markup to the client.
func (s *session) sendMarkup() error {
	if s.closed.Load() {
		return ErrSessionClosed
	}

	frame := markupFrame{
		Type: "markup",
		Seq:  s.sendSeq.Add(1),
		HTML: s.app.Markup(),
	}
	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return err
	}
	s.cfg.Metrics.FrameSent()
	return nil
}

func (s *session) close() {
	if s.closed.CompareAndSwap(false, true) {
		_ = s.conn.Close()
	}
}
