package studyclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/dto"
	"github.com/google/uuid"
)

type chatAPI interface {
	Messages(ctx context.Context, chatId uuid.UUID) ([]dto.MessageResponse, error)
	SendMessage(ctx context.Context, chatId uuid.UUID, content string) (*dto.SendMessageResponse, error)
	GenerateWelcome(ctx context.Context, chatId uuid.UUID, language string) (*dto.GenerateWelcomeResponse, error)
	UndoMessage(ctx context.Context, chatId uuid.UUID) (*dto.UndoMessageResponse, error)
}

// Message is a thread entry as rendered. Pending entries carry a
// synthetic local id and exist only until the server confirms or
// rejects the send.
type Message struct {
	Id        string
	Role      string
	Content   string
	CreatedAt time.Time
	Pending   bool
}

// Thread manages one conversation: the server-confirmed message list,
// the optimistic overlay for in-flight sends, and the typing indicator.
// The confirmed list is only ever replaced wholesale by a refetch, never
// edited in place.
type Thread struct {
	api    chatAPI
	chatId uuid.UUID

	mu              sync.Mutex
	confirmed       []dto.MessageResponse
	pending         []Message
	input           string
	aiTyping        bool
	localSeq        int
	welcomeInFlight bool
	welcomeDone     bool
}

func NewThread(api chatAPI, chatId uuid.UUID) *Thread {
	return &Thread{api: api, chatId: chatId}
}

// Messages returns the rendered thread: confirmed messages followed by
// the optimistic overlay.
func (t *Thread) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Message, 0, len(t.confirmed)+len(t.pending))
	for _, m := range t.confirmed {
		out = append(out, Message{
			Id:        m.Id.String(),
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	out = append(out, t.pending...)
	return out
}

// Input returns the text the input box should show. It is set after a
// failed send or an undo so the user does not lose what they typed.
func (t *Thread) Input() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.input
}

func (t *Thread) ClearInput() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.input = ""
}

func (t *Thread) AiTyping() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.aiTyping
}

// Refresh replaces the confirmed list with the server's.
func (t *Thread) Refresh(ctx context.Context) error {
	messages, err := t.api.Messages(ctx, t.chatId)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.confirmed = messages
	t.mu.Unlock()
	return nil
}

// Send submits a user message. The message appears immediately as a
// pending entry. On success the overlay is held until the refetched
// thread replaces it in the same critical section, so readers never see
// the sent message vanish. On failure the overlay is dropped and the
// input box restored.
func (t *Thread) Send(ctx context.Context, content string) error {
	t.mu.Lock()
	t.localSeq++
	t.pending = append(t.pending, Message{
		Id:        fmt.Sprintf("local-%d", t.localSeq),
		Role:      "user",
		Content:   content,
		CreatedAt: time.Now(),
		Pending:   true,
	})
	t.aiTyping = true
	t.input = ""
	t.mu.Unlock()

	if _, err := t.api.SendMessage(ctx, t.chatId, content); err != nil {
		t.mu.Lock()
		t.pending = nil
		t.aiTyping = false
		t.input = content
		t.mu.Unlock()
		return err
	}

	messages, err := t.api.Messages(ctx, t.chatId)

	t.mu.Lock()
	if err == nil {
		t.confirmed = messages
		t.pending = nil
	}
	t.aiTyping = false
	t.mu.Unlock()
	return err
}

// EnsureWelcome asks the server for an opening assistant message when
// the thread is empty. Repeated calls while a request is in flight, or
// after one has succeeded, do nothing.
func (t *Thread) EnsureWelcome(ctx context.Context, language string) error {
	t.mu.Lock()
	if t.welcomeDone || t.welcomeInFlight || len(t.confirmed) > 0 {
		t.mu.Unlock()
		return nil
	}
	t.welcomeInFlight = true
	t.mu.Unlock()

	_, err := t.api.GenerateWelcome(ctx, t.chatId, language)

	t.mu.Lock()
	t.welcomeInFlight = false
	t.welcomeDone = err == nil
	t.mu.Unlock()

	if err != nil {
		return err
	}
	return t.Refresh(ctx)
}

// Undo removes the last user message and everything after it, then puts
// the undone text back into the input box.
func (t *Thread) Undo(ctx context.Context) error {
	undone, err := t.api.UndoMessage(ctx, t.chatId)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.input = undone.Content
	t.mu.Unlock()
	return t.Refresh(ctx)
}
