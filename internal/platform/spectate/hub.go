// Package spectate streams running game sessions to read-only WebSocket
// watchers.
package spectate

import (
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/b2048/internal/core"
)

const (
	// Time allowed to write a message to the watcher.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the watcher.
	pongWait = 60 * time.Second

	// Send pings with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Watchers only send control frames.
	maxMessageSize = 512

	// Messages queued per watcher before it counts as slow.
	sendBuffer = 256
)

// Event names the hub adds on its own.
const (
	EventWelcome = "welcome"
	EventEnded   = "session_ended"
)

// Message is one JSON frame sent to watchers.
type Message struct {
	Session  string `json:"session"`
	Event    string `json:"event"`
	Data     any    `json:"data,omitempty"`
	Snapshot any    `json:"snapshot,omitempty"`
}

type watcher struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	session string
}

// Hub fans session events out to the watchers of each session.
// Publish and End never block on the network.
type Hub struct {
	mu       sync.Mutex
	watchers map[string]map[*watcher]struct{}
	last     map[string]any // latest snapshot of every live session
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewHub creates a hub. A nil logger discards output.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		watchers: make(map[string]map[*watcher]struct{}),
		last:     make(map[string]any),
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Watching is read-only, any page may embed it.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Publish sends one message per event. The snapshot rides on the last one.
func (h *Hub) Publish(session string, events []core.Event, snapshot any) {
	frames := make([][]byte, 0, len(events))
	for i, e := range events {
		msg := Message{Session: session, Event: e.Kind(), Data: e}
		if i == len(events)-1 {
			msg.Snapshot = snapshot
		}
		data, err := json.Marshal(msg)
		if err != nil {
			h.logger.Error("cannot encode event", "session", session, "event", e.Kind(), "error", err)
			continue
		}
		frames = append(frames, data)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if snapshot != nil {
		h.last[session] = snapshot
	}
	for w := range h.watchers[session] {
		for _, f := range frames {
			if !h.enqueue(w, f) {
				break
			}
		}
	}
}

// End tells the watchers of session that it is over and disconnects them.
func (h *Hub) End(session string) {
	data, err := json.Marshal(Message{Session: session, Event: EventEnded})
	if err != nil {
		h.logger.Error("cannot encode end", "session", session, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.last, session)
	for w := range h.watchers[session] {
		if h.enqueue(w, data) {
			h.removeLocked(w)
		}
	}
}

// Sessions returns the IDs of live sessions in sorted order.
func (h *Hub) Sessions() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	ids := make([]string, 0, len(h.last))
	for id := range h.last {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Watchers returns the number of watchers connected to session.
func (h *Hub) Watchers(session string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.watchers[session])
}

// enqueue queues data for w, dropping the watcher if its buffer is full.
// Must be called with h.mu held.
func (h *Hub) enqueue(w *watcher, data []byte) bool {
	select {
	case w.send <- data:
		return true
	default:
		h.logger.Warn("dropping slow watcher", "session", w.session)
		h.removeLocked(w)
		return false
	}
}

func (h *Hub) add(w *watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.watchers[w.session] == nil {
		h.watchers[w.session] = make(map[*watcher]struct{})
	}
	h.watchers[w.session][w] = struct{}{}

	if data, err := json.Marshal(Message{Session: w.session, Event: EventWelcome, Snapshot: h.last[w.session]}); err == nil {
		w.send <- data
	}

	h.logger.Info("watcher joined", "session", w.session, "watchers", len(h.watchers[w.session]))
}

func (h *Hub) remove(w *watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(w)
}

func (h *Hub) removeLocked(w *watcher) {
	ws, ok := h.watchers[w.session]
	if !ok {
		return
	}
	if _, ok := ws[w]; !ok {
		return
	}

	delete(ws, w)
	close(w.send)
	if len(ws) == 0 {
		delete(h.watchers, w.session)
	}
	h.logger.Info("watcher left", "session", w.session, "watchers", len(ws))
}

// Handler serves GET /watch?session=<id> and GET /sessions.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /watch", h.serveWatch)
	mux.HandleFunc("GET /sessions", h.serveSessions)
	return mux
}

func (h *Hub) serveSessions(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string][]string{"sessions": h.Sessions()}); err != nil {
		h.logger.Warn("cannot write sessions", "error", err)
	}
}

func (h *Hub) serveWatch(w http.ResponseWriter, r *http.Request) {
	session := r.URL.Query().Get("session")
	if session == "" {
		http.Error(w, "missing session parameter", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	wt := &watcher{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		session: session,
	}
	h.add(wt)

	go wt.writePump()
	go wt.readPump()
}

// readPump keeps the connection alive and notices when the watcher leaves.
func (w *watcher) readPump() {
	defer func() {
		w.hub.remove(w)
		w.conn.Close()
	}()

	w.conn.SetReadLimit(maxMessageSize)
	_ = w.conn.SetReadDeadline(time.Now().Add(pongWait))
	w.conn.SetPongHandler(func(string) error {
		return w.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		// Anything a watcher sends is ignored.
		if _, _, err := w.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				w.hub.logger.Debug("watcher read error", "session", w.session, "error", err)
			}
			return
		}
	}
}

// writePump sends queued messages and pings, one frame per message.
func (w *watcher) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		w.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-w.send:
			_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				_ = w.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := w.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := w.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
