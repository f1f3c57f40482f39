package ws

import (
	"sync"
	"sync/atomic"

	"github.com/Wyydra/vtprovider/internal/telemetry"
	"github.com/rs/zerolog/log"
)

// Hub tracks connected controllers so they can be closed on shutdown.
type Hub struct {
	clients    map[Client]bool
	register   chan Client
	unregister chan Client
	quit       chan struct{}
	stop       sync.Once
	count      atomic.Int64
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[Client]bool),
		register:   make(chan Client),
		unregister: make(chan Client),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.quit:
			for client := range h.clients {
				if err := client.Close(); err != nil {
					log.Error().Err(err).Str("session_id", client.ID()).Msg("Error closing controller connection")
				}
				delete(h.clients, client)
			}
			h.setCount()
			return

		case client := <-h.register:
			h.clients[client] = true
			h.setCount()
			log.Info().Int("count", len(h.clients)).Str("session_id", client.ID()).Msg("Controller registered")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				h.setCount()
				log.Info().Int("count", len(h.clients)).Str("session_id", client.ID()).Msg("Controller unregistered")
			}
		}
	}
}

// Register returns false once the hub has stopped.
func (h *Hub) Register(c Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.quit:
		return false
	}
}

func (h *Hub) Unregister(c Client) {
	select {
	case h.unregister <- c:
	case <-h.quit:
	}
}

func (h *Hub) Len() int {
	return int(h.count.Load())
}

func (h *Hub) Stop() {
	h.stop.Do(func() { close(h.quit) })
}

func (h *Hub) setCount() {
	h.count.Store(int64(len(h.clients)))
	telemetry.Metrics.ActiveSessions.Set(float64(len(h.clients)))
}
