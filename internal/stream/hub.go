// Package stream serves simulation frames to websocket clients.
package stream

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/scene"
)

const (
	MessageTypeScene = "scene"
	MessageTypeFrame = "frame"

	writeTimeout = 2 * time.Second
	DefaultFPS   = 60
)

type BodyInfo struct {
	Name   string  `json:"name"`
	Kind   string  `json:"kind"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Color  string  `json:"color,omitempty"`
}

// Message is what clients receive: one scene message on connect, then one
// frame message per step.
type Message struct {
	Type   string        `json:"type"`
	Scene  string        `json:"scene"`
	Bodies []BodyInfo    `json:"bodies,omitempty"`
	Frame  *dynamo.Frame `json:"frame,omitempty"`
}

// conn serialises writes to one websocket connection.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteJSON(v)
}

func (c *conn) close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.Close()
}

// Hub tracks connected clients and fans frames out to them.
type Hub struct {
	upgrader websocket.Upgrader
	hello    Message

	mu      sync.RWMutex
	clients map[*conn]struct{}
	closed  bool
}

func NewHub(sc *scene.Scene) *Hub {
	bodies := make([]BodyInfo, len(sc.Bodies))
	for i, b := range sc.Bodies {
		bodies[i] = BodyInfo{Name: b.Name, Kind: string(b.Kind), Width: b.Width, Height: b.Height, Color: b.Color}
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		hello:   Message{Type: MessageTypeScene, Scene: sc.Name, Bodies: bodies},
		clients: make(map[*conn]struct{}),
	}
}

// ServeHTTP upgrades the request and keeps the client registered until it
// disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[stream] upgrade failed: %v", err)
		return
	}
	c := &conn{ws: ws}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = ws.Close()
		return
	}
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	log.Printf("[stream] client %s connected (%d total)", r.RemoteAddr, n)
	if err := c.writeJSON(h.hello); err != nil {
		h.drop(c)
		return
	}

	// Clients only listen; reading surfaces the close.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(c)
	log.Printf("[stream] client %s disconnected", r.RemoteAddr)
}

func (h *Hub) drop(c *conn) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		_ = c.close()
	}
}

func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends f to every client and returns how many received it.
// Clients that fail to receive are dropped.
func (h *Hub) Broadcast(f dynamo.Frame) int {
	msg := Message{Type: MessageTypeFrame, Scene: h.hello.Scene, Frame: &f}

	h.mu.RLock()
	targets := make([]*conn, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	sent := 0
	for _, c := range targets {
		if err := c.writeJSON(msg); err != nil {
			log.Printf("[stream] write failed, dropping client: %v", err)
			h.drop(c)
			continue
		}
		sent++
	}
	return sent
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := h.clients
	h.clients = make(map[*conn]struct{})
	h.mu.Unlock()

	for c := range clients {
		_ = c.close()
	}
}

// Run steps sim fps times per second and broadcasts every frame until ctx is
// done or cfg.Steps steps were taken (0 means no limit). It returns the
// number of steps taken.
func Run(ctx context.Context, hub *Hub, sim *dynamo.Simulator, cfg dynamo.Config, fps int) (int, error) {
	if err := sim.Validate(cfg); err != nil {
		return 0, err
	}
	if fps <= 0 {
		fps = DefaultFPS
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	steps := 0
	for {
		select {
		case <-ctx.Done():
			return steps, ctx.Err()
		case <-ticker.C:
		}

		if cfg.Steps > 0 && steps >= cfg.Steps {
			return steps, nil
		}
		f := sim.Advance(cfg)
		steps++
		if cfg.ValidateState && !f.IsValid() {
			return steps, &dynamo.SimulationError{Step: f.Step, Time: f.Time, Wrapped: dynamo.ErrInvalidState}
		}
		hub.Broadcast(f)
	}
}

// Serve exposes hub at /frames on addr until ctx is done.
func Serve(ctx context.Context, addr string, hub *Hub) error {
	mux := http.NewServeMux()
	mux.Handle("/frames", hub)

	srv := &http.Server{Addr: addr, Handler: mux}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[stream] listening on %s/frames", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
