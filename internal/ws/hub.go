package ws

import (
	"encoding/json"
	"sync"

	"casino_webapp/internal/domain"
	"casino_webapp/internal/logger"
)

// Hub fans settled rounds out to every connected feed client. Results carry
// no user identity; the feed is a public ticker.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	broadcast chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*Client]struct{}),
		broadcast: make(chan []byte, 256),
	}
}

// Run consumes the broadcast queue. Slow clients are skipped, not waited on.
func (h *Hub) Run() {
	for msg := range h.broadcast {
		h.mu.RLock()
		for c := range h.clients {
			select {
			case c.Send <- msg:
			default:
				logger.Debug("feed client send buffer full, dropping message")
			}
		}
		h.mu.RUnlock()
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
	}
	h.mu.Unlock()
}

// ClientCount returns the number of connected feed clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// PublishResult queues a settled round for broadcast.
func (h *Hub) PublishResult(res *domain.RoundResult) {
	payload, err := json.Marshal(feedMessage{
		Type:       MsgRoundSettled,
		GameType:   res.GameType,
		Multiplier: res.Multiplier,
		Payout:     res.PayoutMinor,
		Won:        res.PayoutMinor > 0,
	})
	if err != nil {
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		logger.Warn("feed broadcast queue full, dropping result")
	}
}
