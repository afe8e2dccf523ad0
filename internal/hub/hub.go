// Package hub implements the real-time broadcast core: it owns the set of
// live WebSocket connections, accepts inbound chat messages, persists them,
// and fans every event out to all live connections.
package hub

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/chatapp/chat-api/internal/api/metrics"
	"github.com/chatapp/chat-api/internal/core/ports"
)

// Hub serializes all live-set mutations through its run loop: registration,
// removal, and fan-out each funnel through a single goroutine, so the client
// map never sees concurrent mutation from connection goroutines.
type Hub struct {
	chat ports.ChatService
	log  zerolog.Logger

	mu      sync.RWMutex
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	wg     sync.WaitGroup
}

func New(chat ports.ChatService, log zerolog.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		chat:       chat,
		log:        log,
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
}

// Run is the hub's event loop. Call it in its own goroutine; it returns only
// after Shutdown.
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.add(client)

		case client := <-h.unregister:
			h.remove(client)

		case payload := <-h.broadcast:
			h.fanOut(payload)
		}
	}
}

// add moves a connection from Authenticated to Active: it joins the live set,
// its pumps start, and every live connection, the new one included, hears
// the join announcement.
func (h *Hub) add(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	metrics.ConnectionsActive.Inc()
	h.log.Info().Str("username", client.identity.Username).Int("total", total).Msg("client joined")

	h.wg.Add(2)
	go func() {
		defer h.wg.Done()
		client.writePump()
	}()
	go func() {
		defer h.wg.Done()
		client.readPump()
	}()

	payload, err := marshalUserJoined(client.identity.Username)
	if err != nil {
		h.log.Error().Err(err).Msg("marshal join event")
		return
	}
	h.fanOut(payload)
}

// remove is idempotent: a connection may be unregistered by its own read
// pump and by a failed fan-out delivery.
func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}

	close(client.send)
	metrics.ConnectionsActive.Dec()
	// No user_left event: the join announcement is deliberately asymmetric.
	h.log.Info().Str("username", client.identity.Username).Int("total", total).Msg("client left")
}

// fanOut delivers one payload to a snapshot of the live set taken at dispatch
// time. Delivery is fire-and-forget: a connection whose send queue is full is
// treated as failed and removed, without blocking the others.
func (h *Hub) fanOut(payload []byte) {
	timer := prometheus.NewTimer(metrics.BroadcastFanoutDuration)
	defer timer.ObserveDuration()

	h.mu.RLock()
	snapshot := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		snapshot = append(snapshot, client)
	}
	h.mu.RUnlock()

	var failed []*Client
	for _, client := range snapshot {
		select {
		case client.send <- payload:
		default:
			failed = append(failed, client)
		}
	}

	for _, client := range failed {
		h.log.Warn().Str("username", client.identity.Username).Msg("send queue full, dropping client")
		h.remove(client)
	}
}

// Count returns the current size of the live set.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.clients = make(map[*Client]struct{})
	h.mu.Unlock()

	for _, client := range clients {
		// Closing send unblocks the write pump; closing the conn unblocks
		// the read pump.
		close(client.send)
		_ = client.conn.Close()
		metrics.ConnectionsActive.Dec()
	}
}

// Shutdown stops the run loop, closes every connection, and waits for the
// pump goroutines to drain, up to the given timeout.
func (h *Hub) Shutdown(timeout time.Duration) error {
	h.cancel()
	<-h.done

	drained := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		return nil
	case <-time.After(timeout):
		return context.DeadlineExceeded
	}
}
