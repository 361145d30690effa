package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/dto"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisChannel = "session_events"

// Hub fans document-status updates out to the browsers watching a
// session. Connections are keyed by session so only the open session
// page receives its updates. With Redis configured, updates also reach
// clients connected to other instances.
type Hub struct {
	// SessionID -> connected clients (a session can be open in
	// several tabs or devices)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out, optional
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.SessionID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.SessionID]) == 0 {
					delete(h.clients, client.SessionID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// NotifyDocumentStatus pushes a document status change to every client
// watching the session. Implements the consumer's notifier contract.
func (h *Hub) NotifyDocumentStatus(sessionId uuid.UUID, event *dto.DocumentStatusEvent) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "document_status",
		"data": event,
	})

	h.sendLocal(sessionId, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"target_session_id": sessionId.String(),
			"message":           json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), redisChannel, payload)
	}
}

func (h *Hub) sendLocal(sessionId uuid.UUID, data []byte) {
	h.mu.RLock()
	clients := h.clients[sessionId]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// Run owns closing Send. Closing here too would double-close
			// once the unregister is processed.
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"session_id": sessionId})
			h.unregister <- client
		}
	}
}

// subscribeToRedis relays updates published by other instances to the
// clients connected here.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetSessionID string          `json:"target_session_id"`
			Message         json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("redis msg parse error: %v", err)
			continue
		}

		sessionId, err := uuid.Parse(payload.TargetSessionID)
		if err != nil {
			continue
		}
		h.sendLocal(sessionId, payload.Message)
	}
}
