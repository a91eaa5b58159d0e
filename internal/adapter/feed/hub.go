// Package feed streams zone lifecycle events to websocket subscribers.
package feed

import (
	"net/http"
	"sort"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"driftworld/internal/app/ports"
	"driftworld/internal/domain/world"
)

const sendBuffer = 64

const (
	EventZoneLoaded  = "zone_loaded"
	EventZoneEvicted = "zone_evicted"
)

// Event is one feed message. Biome and Template are only set on loads.
type Event struct {
	Event    string      `json:"event"`
	ZoneID   string      `json:"zone_id"`
	ZX       int         `json:"zx"`
	ZY       int         `json:"zy"`
	Biome    world.Biome `json:"biome,omitempty"`
	Template string      `json:"template,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan Event
}

// Hub fans zone lifecycle events out to websocket subscribers. It observes the
// streamer directly; a new subscriber first receives the resident set as a
// burst of zone_loaded events, then live traffic.
type Hub struct {
	log      *zap.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	clients  map[*client]struct{}
	resident map[string]Event
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		clients:  make(map[*client]struct{}),
		resident: make(map[string]Event),
	}
}

// ZoneLoaded implements ports.ZoneObserver. It runs on the tick goroutine, so
// delivery is queue-and-forget.
func (h *Hub) ZoneLoaded(z *world.Zone) {
	ev := Event{
		Event:    EventZoneLoaded,
		ZoneID:   z.ID,
		ZX:       z.Coord.X,
		ZY:       z.Coord.Y,
		Biome:    z.Template.Biome,
		Template: z.Template.Name,
	}
	h.mu.Lock()
	h.resident[z.ID] = ev
	h.broadcastLocked(ev)
	h.mu.Unlock()
}

// ZoneEvicted implements ports.ZoneObserver.
func (h *Hub) ZoneEvicted(coord world.ZoneCoord, zoneID string) {
	ev := Event{Event: EventZoneEvicted, ZoneID: zoneID, ZX: coord.X, ZY: coord.Y}
	h.mu.Lock()
	delete(h.resident, zoneID)
	h.broadcastLocked(ev)
	h.mu.Unlock()
}

// broadcastLocked queues the event on every subscriber. A subscriber whose
// buffer is full gets dropped rather than allowed to stall the tick goroutine.
func (h *Hub) broadcastLocked(ev Event) {
	for c := range h.clients {
		select {
		case c.send <- ev:
		default:
			delete(h.clients, c)
			close(c.send)
			h.log.Warn("feed subscriber too slow, dropping",
				zap.String("remote", c.conn.RemoteAddr().String()))
		}
	}
}

// ServeWS upgrades the request and subscribes the connection to the feed.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("feed upgrade failed", zap.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan Event, sendBuffer)}

	h.mu.Lock()
	for _, ev := range residentBurst(h.resident) {
		select {
		case c.send <- ev:
		default:
		}
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.log.Debug("feed subscriber connected",
		zap.String("remote", conn.RemoteAddr().String()))

	go h.writePump(c)
	go h.readPump(c)
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for ev := range c.send {
		if err := c.conn.WriteJSON(ev); err != nil {
			h.drop(c)
			return
		}
	}
}

// readPump discards inbound frames; the feed is one-way. A read error means
// the peer went away.
func (h *Hub) readPump(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.drop(c)
			return
		}
	}
}

// drop unsubscribes the client. Only the caller that removes it from the table
// closes the channel, so the write and read pumps cannot double-close.
func (h *Hub) drop(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
	}
	h.mu.Unlock()
	if ok {
		close(c.send)
	}
}

// Close drops every subscriber. The host calls it at shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// residentBurst lists resident events sorted by zone id so replay order is
// stable.
func residentBurst(resident map[string]Event) []Event {
	out := make([]Event, 0, len(resident))
	for _, ev := range resident {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ZoneID < out[j].ZoneID })
	return out
}

var _ ports.ZoneObserver = (*Hub)(nil)
