package studyclient

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/dto"
	"github.com/google/uuid"
)

type fakeChatAPI struct {
	mu           sync.Mutex
	chatId       uuid.UUID
	messages     []dto.MessageResponse
	sendErr      error
	onSend       func()
	onMessages   func()
	welcomeCalls int
	welcomeGate  chan struct{}
}

func (f *fakeChatAPI) Messages(ctx context.Context, chatId uuid.UUID) ([]dto.MessageResponse, error) {
	if f.onMessages != nil {
		f.onMessages()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]dto.MessageResponse, len(f.messages))
	copy(out, f.messages)
	return out, nil
}

func (f *fakeChatAPI) SendMessage(ctx context.Context, chatId uuid.UUID, content string) (*dto.SendMessageResponse, error) {
	if f.onSend != nil {
		f.onSend()
	}
	if f.sendErr != nil {
		return nil, f.sendErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	sent := dto.MessageResponse{Id: uuid.New(), ChatId: chatId, Role: "user", Content: content, CreatedAt: time.Now()}
	reply := dto.MessageResponse{Id: uuid.New(), ChatId: chatId, Role: "assistant", Content: "A derivative measures rate of change.", CreatedAt: time.Now()}
	f.messages = append(f.messages, sent, reply)
	return &dto.SendMessageResponse{Sent: &sent, Reply: &reply}, nil
}

func (f *fakeChatAPI) GenerateWelcome(ctx context.Context, chatId uuid.UUID, language string) (*dto.GenerateWelcomeResponse, error) {
	f.mu.Lock()
	f.welcomeCalls++
	f.mu.Unlock()
	if f.welcomeGate != nil {
		<-f.welcomeGate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	msg := dto.MessageResponse{Id: uuid.New(), ChatId: chatId, Role: "assistant", Content: "Welcome!", CreatedAt: time.Now()}
	f.messages = append(f.messages, msg)
	return &dto.GenerateWelcomeResponse{Message: &msg}, nil
}

func (f *fakeChatAPI) UndoMessage(ctx context.Context, chatId uuid.UUID) (*dto.UndoMessageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.messages) - 1; i >= 0; i-- {
		if f.messages[i].Role == "user" {
			content := f.messages[i].Content
			f.messages = f.messages[:i]
			return &dto.UndoMessageResponse{Content: content}, nil
		}
	}
	return nil, errors.New("no message to undo")
}

func TestThreadOptimisticMessageVisibleDuringSend(t *testing.T) {
	api := &fakeChatAPI{chatId: uuid.New()}
	thread := NewThread(api, api.chatId)

	var midFlight []Message
	var typing bool
	api.onSend = func() {
		midFlight = thread.Messages()
		typing = thread.AiTyping()
	}

	if err := thread.Send(context.Background(), "What is a derivative?"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if len(midFlight) != 1 {
		t.Fatalf("mid-flight message count = %d, want 1", len(midFlight))
	}
	if midFlight[0].Content != "What is a derivative?" || !midFlight[0].Pending {
		t.Errorf("mid-flight message = %+v", midFlight[0])
	}
	if !typing {
		t.Error("AiTyping() = false while the send was in flight")
	}
}

func TestThreadConvergesToServerListAfterSend(t *testing.T) {
	api := &fakeChatAPI{chatId: uuid.New()}
	thread := NewThread(api, api.chatId)

	if err := thread.Send(context.Background(), "What is a derivative?"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	messages := thread.Messages()
	if len(messages) != 2 {
		t.Fatalf("message count = %d, want 2 (user + assistant)", len(messages))
	}
	for _, m := range messages {
		if m.Pending {
			t.Errorf("residual optimistic entry: %+v", m)
		}
	}
	if messages[0].Content != "What is a derivative?" {
		t.Errorf("first message = %q", messages[0].Content)
	}
	if thread.AiTyping() {
		t.Error("AiTyping() = true after completion")
	}
}

func TestThreadHoldsSentMessageThroughRefetch(t *testing.T) {
	api := &fakeChatAPI{chatId: uuid.New()}
	thread := NewThread(api, api.chatId)

	// Observe the rendered thread while the post-send refetch is on the
	// wire. The sent message must still be visible at that point.
	var duringRefetch []Message
	api.onMessages = func() {
		duringRefetch = thread.Messages()
	}

	if err := thread.Send(context.Background(), "What is a derivative?"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	found := false
	for _, m := range duringRefetch {
		if m.Content == "What is a derivative?" {
			found = true
		}
	}
	if !found {
		t.Fatalf("sent message missing during refetch: %+v", duringRefetch)
	}

	// After the refetch lands the overlay is gone and only the server's
	// copy remains.
	final := thread.Messages()
	count := 0
	for _, m := range final {
		if m.Content == "What is a derivative?" {
			count++
			if m.Pending {
				t.Errorf("confirmed message still flagged pending: %+v", m)
			}
		}
	}
	if count != 1 {
		t.Errorf("sent message appears %d times after refetch, want 1", count)
	}
}

func TestThreadRestoresInputOnSendFailure(t *testing.T) {
	api := &fakeChatAPI{chatId: uuid.New(), sendErr: errors.New("request failed: connection reset")}
	thread := NewThread(api, api.chatId)

	err := thread.Send(context.Background(), "What is a derivative?")
	if err == nil {
		t.Fatal("Send() error = nil, want failure")
	}

	if got := thread.Input(); got != "What is a derivative?" {
		t.Errorf("Input() = %q, want the typed text restored", got)
	}
	if got := thread.Messages(); len(got) != 0 {
		t.Errorf("message count = %d, want 0 after rollback", len(got))
	}
	if thread.AiTyping() {
		t.Error("AiTyping() = true after failure")
	}
}

func TestThreadWelcomeFiresOnce(t *testing.T) {
	api := &fakeChatAPI{chatId: uuid.New(), welcomeGate: make(chan struct{})}
	thread := NewThread(api, api.chatId)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			thread.EnsureWelcome(context.Background(), "en")
		}()
	}

	// Give the first call time to reach the gate, then release it.
	time.Sleep(10 * time.Millisecond)
	close(api.welcomeGate)
	wg.Wait()

	if api.welcomeCalls != 1 {
		t.Errorf("welcome calls = %d, want 1", api.welcomeCalls)
	}

	// Later calls after completion stay no-ops.
	if err := thread.EnsureWelcome(context.Background(), "en"); err != nil {
		t.Fatalf("EnsureWelcome() error = %v", err)
	}
	if api.welcomeCalls != 1 {
		t.Errorf("welcome calls = %d after re-render, want 1", api.welcomeCalls)
	}
}

func TestThreadWelcomeSkippedWhenMessagesExist(t *testing.T) {
	api := &fakeChatAPI{chatId: uuid.New()}
	api.messages = []dto.MessageResponse{
		{Id: uuid.New(), ChatId: api.chatId, Role: "assistant", Content: "Hi", CreatedAt: time.Now()},
	}
	thread := NewThread(api, api.chatId)
	if err := thread.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	if err := thread.EnsureWelcome(context.Background(), "en"); err != nil {
		t.Fatalf("EnsureWelcome() error = %v", err)
	}
	if api.welcomeCalls != 0 {
		t.Errorf("welcome calls = %d, want 0", api.welcomeCalls)
	}
}

func TestThreadUndoRestoresInput(t *testing.T) {
	api := &fakeChatAPI{chatId: uuid.New()}
	thread := NewThread(api, api.chatId)

	if err := thread.Send(context.Background(), "Explain the chain rule"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if err := thread.Undo(context.Background()); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}

	if got := thread.Input(); got != "Explain the chain rule" {
		t.Errorf("Input() = %q, want the undone text", got)
	}
	if got := thread.Messages(); len(got) != 0 {
		t.Errorf("message count = %d, want 0 after undo", len(got))
	}
}
