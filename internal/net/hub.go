// Package net shares a host board with read-only viewers over websockets and
// finds hosts on the local network.
package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"VectorBoard/internal/logging"
	"VectorBoard/internal/quadtree"
	"VectorBoard/internal/state"
)

// Path is where the hub accepts viewers.
const Path = "/ws"

const (
	sendBuffer = 256
	writeWait  = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// viewer is one connected websocket. Only its writer goroutine writes to
// conn.
type viewer struct {
	conn *websocket.Conn
	send chan state.Op
}

// Hub fans ops out to every connected viewer. It keeps a mirror of the host's
// strokes so a viewer joining late first receives everything drawn so far.
type Hub struct {
	mu      sync.RWMutex
	viewers map[*viewer]bool
	mirror  *state.Collection
}

// NewHub returns a hub with no viewers.
func NewHub() *Hub {
	return &Hub{
		viewers: make(map[*viewer]bool),
		mirror:  state.NewCollection(quadtree.Rect{}, quadtree.DefaultCapacity),
	}
}

// Len returns the number of connected viewers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

// Broadcast records op in the mirror and queues it for every viewer. A viewer
// that cannot keep up is disconnected.
func (h *Hub) Broadcast(op state.Op) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mirror.ApplyRemote(op)
	for v := range h.viewers {
		select {
		case v.send <- op:
		default:
			log.Printf("[HUB] Viewer %s is too slow, dropping", v.conn.RemoteAddr())
			h.drop(v)
		}
	}
}

// ServeHTTP upgrades the request and streams ops until the viewer leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[HUB] Upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	v := &viewer{conn: conn, send: make(chan state.Op, sendBuffer)}
	h.join(v)
	go h.write(v)

	// Viewers are read-only; reading only detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			logging.Logger().Debug("viewer read ended", "addr", conn.RemoteAddr().String(), "err", err)
			break
		}
	}
	h.mu.Lock()
	h.drop(v)
	h.mu.Unlock()
}

// join registers v and queues the current strokes as inserts, under the same
// lock as Broadcast so nothing is missed or repeated.
func (h *Hub) join(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	strokes := h.mirror.Strokes()
	if len(strokes) > sendBuffer {
		v.send = make(chan state.Op, len(strokes)+sendBuffer)
	}
	for _, s := range strokes {
		v.send <- state.Op{
			Type:    state.OpInsertStroke,
			Stroke:  s,
			Lamport: h.mirror.Clock().Now(),
			Site:    h.mirror.Clock().Site(),
		}
	}
	h.viewers[v] = true
	log.Printf("[HUB] Viewer joined: %s (%d strokes sent)", v.conn.RemoteAddr(), len(strokes))
}

// drop must be called with mu held.
func (h *Hub) drop(v *viewer) {
	if !h.viewers[v] {
		return
	}
	delete(h.viewers, v)
	close(v.send)
	log.Printf("[HUB] Viewer left: %s", v.conn.RemoteAddr())
}

func (h *Hub) write(v *viewer) {
	defer v.conn.Close()
	for op := range v.send {
		v.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := v.conn.WriteJSON(op); err != nil {
			log.Printf("[HUB] Error sending to %s: %v", v.conn.RemoteAddr(), err)
			return
		}
	}
	v.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for v := range h.viewers {
		h.drop(v)
	}
}

// Serve listens on addr and serves the hub at Path until ctx is cancelled.
func Serve(ctx context.Context, addr string, hub *Hub) error {
	mux := http.NewServeMux()
	mux.Handle(Path, hub)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[HUB] Listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("hub: serve %s: %w", addr, err)
	}
	return nil
}

// Follow connects to a hub at url and calls apply for every op received,
// until ctx is cancelled or the connection drops. Cancellation is not an
// error.
func Follow(ctx context.Context, url string, apply func(state.Op)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("follow %s: %w", url, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		var op state.Op
		if err := conn.ReadJSON(&op); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("follow %s: %w", url, err)
		}
		apply(op)
	}
}
