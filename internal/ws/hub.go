package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"

	"taskmanager/internal/models"
)

// Event is pushed to the owning user's open sockets whenever one of their
// tasks changes.
type Event struct {
	Type   string       `json:"type"`
	Task   *models.Task `json:"task,omitempty"`
	TaskID int          `json:"taskId,omitempty"`
}

// Client merepresentasikan satu koneksi dashboard milik seorang user.
type Client struct {
	UserID int
	Conn   *websocket.Conn
	mu     sync.Mutex
}

func (c *Client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(websocket.TextMessage, data)
}

type userEvent struct {
	userID int
	data   []byte
}

// Hub fans task events out per user. All registry mutation happens inside
// Run, so no lock is needed around the clients map.
type Hub struct {
	clients    map[int]map[*Client]bool
	events     chan userEvent
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[int]map[*Client]bool),
		events:     make(chan userEvent, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Publish queues an event for every socket owned by userID. Best effort:
// when the queue is full the event is dropped and the client refetches on
// its next action.
func (h *Hub) Publish(userID int, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	select {
	case h.events <- userEvent{userID: userID, data: data}:
	default:
	}
}

// Run menjalankan loop Hub untuk mengelola register, unregister, dan push.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			if h.clients[client.UserID] == nil {
				h.clients[client.UserID] = make(map[*Client]bool)
			}
			h.clients[client.UserID][client] = true
		case client := <-h.Unregister:
			if conns, ok := h.clients[client.UserID]; ok && conns[client] {
				delete(conns, client)
				if len(conns) == 0 {
					delete(h.clients, client.UserID)
				}
				client.Conn.Close()
			}
		case ev := <-h.events:
			for client := range h.clients[ev.userID] {
				if err := client.write(ev.data); err != nil {
					delete(h.clients[ev.userID], client)
					client.Conn.Close()
				}
			}
			if len(h.clients[ev.userID]) == 0 {
				delete(h.clients, ev.userID)
			}
		}
	}
}
