package websocket

import (
	"context"
	"encoding/json"

	"notepad-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// ClusterChannel carries change payloads between instances.
	ClusterChannel = "notepad_changes"

	broadcastBuffer = 256
)

// clusterEnvelope tags a payload with the instance that produced it so an
// instance never re-delivers its own changes.
type clusterEnvelope struct {
	Origin  string          `json:"origin"`
	Message json.RawMessage `json:"message"`
}

// Hub owns the set of live clients. Only Run touches the client set.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	// rdb is nil on single-instance deployments.
	rdb        *redis.Client
	instanceID string
	onRemote   func()

	logger logger.ILogger
}

// NewHub builds a hub. onRemote runs for every change received from another
// instance before it is delivered to local clients.
func NewHub(rdb *redis.Client, log logger.ILogger, onRemote func()) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, broadcastBuffer),
		done:       make(chan struct{}),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		onRemote:   onRemote,
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				delete(h.clients, client)
				close(client.Send)
			}
			return

		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.logger.Info("Hub", "Client registered", map[string]interface{}{
				"client_id": client.ID,
				"clients":   len(h.clients),
			})

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"client_id": client.ID})
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					h.logger.Warn("Hub", "Client send buffer full, dropping client", map[string]interface{}{"client_id": client.ID})
					delete(h.clients, client)
					close(client.Send)
				}
			}
		}
	}
}

// Broadcast delivers payload to local clients and publishes it for other instances.
func (h *Hub) Broadcast(payload []byte) {
	h.deliverLocal(payload)

	if h.rdb == nil {
		return
	}
	data, err := json.Marshal(clusterEnvelope{Origin: h.instanceID, Message: payload})
	if err != nil {
		h.logger.Warn("Hub", "Failed to encode cluster message", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := h.rdb.Publish(context.Background(), ClusterChannel, data).Err(); err != nil {
		h.logger.Warn("Hub", "Failed to publish cluster message", map[string]interface{}{"error": err.Error()})
	}
}

func (h *Hub) deliverLocal(payload []byte) {
	select {
	case h.broadcast <- payload:
	case <-h.done:
	default:
		h.logger.Warn("Hub", "Broadcast queue full, dropping change", nil)
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, ClusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var envelope clusterEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			h.logger.Warn("Hub", "Redis message parse error", map[string]interface{}{"error": err.Error()})
			continue
		}
		if envelope.Origin == h.instanceID {
			continue
		}

		if h.onRemote != nil {
			h.onRemote()
		}
		h.deliverLocal(envelope.Message)
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}
