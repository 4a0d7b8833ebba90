package ws

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

type envelope struct {
	userID  uuid.UUID
	message []byte
}

// Hub fans events out to connected clients, keyed by the authenticated user
// so one user's events never reach another's sockets.
type Hub struct {
	clients    map[*Client]bool
	byUser     map[uuid.UUID]map[*Client]bool
	publish    chan envelope
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		byUser:     make(map[uuid.UUID]map[*Client]bool),
		publish:    make(chan envelope, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			if h.byUser[client.userID] == nil {
				h.byUser[client.userID] = make(map[*Client]bool)
			}
			h.byUser[client.userID][client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS connected | user=%s total_clients=%d", client.userID, total)
			}

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				delete(h.byUser[client.userID], client)
				if len(h.byUser[client.userID]) == 0 {
					delete(h.byUser, client.userID)
				}
				close(client.send)
			}
			total := len(h.clients)
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS disconnected | user=%s total_clients=%d", client.userID, total)
			}

		case env := <-h.publish:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.byUser[env.userID]))
			for c := range h.byUser[env.userID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- env.message:
				default:
					h.unregister <- client
				}
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Publish queues a message for every socket the user has open. Drops when
// the queue is full rather than blocking the caller.
func (h *Hub) Publish(userID uuid.UUID, message []byte) {
	if h == nil {
		return
	}
	select {
	case h.publish <- envelope{userID: userID, message: message}:
	default:
		if h.logger != nil {
			h.logger.Printf("WS publish dropped | reason=buffer_full user=%s", userID)
		}
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
