package websocket

import (
	"testing"
	"time"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/dto"

	"github.com/google/uuid"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func (h *Hub) clientCount(sessionId uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionId])
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestHubDropsSlowClientWithoutPanic(t *testing.T) {
	hub := NewHub(nil, noopLogger{})
	go hub.Run()

	sessionId := uuid.New()
	// No reader and no buffer, so the first push already finds the
	// channel full.
	slow := &Client{Hub: hub, SessionID: sessionId, Send: make(chan []byte)}
	hub.register <- slow
	waitFor(t, func() bool { return hub.clientCount(sessionId) == 1 })

	event := &dto.DocumentStatusEvent{
		DocumentId:       uuid.New(),
		SessionId:        sessionId,
		FileName:         "calculus.pdf",
		ExtractionStatus: "completed",
		OccurredAt:       time.Now(),
	}
	hub.NotifyDocumentStatus(sessionId, event)
	waitFor(t, func() bool { return hub.clientCount(sessionId) == 0 })

	// The channel must be closed exactly once, by Run.
	select {
	case _, open := <-slow.Send:
		if open {
			t.Fatal("expected Send to be closed after the drop")
		}
	case <-time.After(time.Second):
		t.Fatal("Send never closed")
	}

	// A second push to the same session must be a clean no-op.
	hub.NotifyDocumentStatus(sessionId, event)
}

func TestHubDeliversToHealthyClient(t *testing.T) {
	hub := NewHub(nil, noopLogger{})
	go hub.Run()

	sessionId := uuid.New()
	client := &Client{Hub: hub, SessionID: sessionId, Send: make(chan []byte, 4)}
	hub.register <- client
	waitFor(t, func() bool { return hub.clientCount(sessionId) == 1 })

	// A client on some other session must not receive the update.
	other := &Client{Hub: hub, SessionID: uuid.New(), Send: make(chan []byte, 4)}
	hub.register <- other
	waitFor(t, func() bool { return hub.clientCount(other.SessionID) == 1 })

	hub.NotifyDocumentStatus(sessionId, &dto.DocumentStatusEvent{
		DocumentId:       uuid.New(),
		SessionId:        sessionId,
		FileName:         "algebra.pdf",
		ExtractionStatus: "processing",
		OccurredAt:       time.Now(),
	})

	select {
	case msg := <-client.Send:
		if len(msg) == 0 {
			t.Fatal("empty payload")
		}
	case <-time.After(time.Second):
		t.Fatal("update never delivered")
	}

	select {
	case <-other.Send:
		t.Fatal("update leaked to another session")
	default:
	}
}
