package notify

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// RoomStaff is the room every staff and admin socket joins.
const RoomStaff = "staff"

// Event types pushed to connected dashboards.
const (
	EventOrderCreated  = "order_created"
	EventLowInventory  = "low_inventory"
	EventBookingPlaced = "booking_placed"
)

type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
	At   int64  `json:"at"`
}

type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	Room   string
	UserID string
}

type broadcastMsg struct {
	Room string
	Data []byte
}

type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	stopOnce   sync.Once
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for room, conns := range h.rooms {
				for c := range conns {
					close(c.Send)
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = make(map[*Client]bool)
			}
			h.rooms[c.Room][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.Room]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.Room] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.Room], c)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Publish sends an event to every client in the room. Safe to call from any
// goroutine; a stopped hub drops the event.
func (h *Hub) Publish(room string, ev Event) {
	if ev.At == 0 {
		ev.At = time.Now().Unix()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("notify: marshal: %v", err)
		return
	}
	select {
	case h.broadcast <- broadcastMsg{Room: room, Data: data}:
	case <-h.done:
	}
}
