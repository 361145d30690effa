package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/entity"
	pktStorage "github.com/ArthurLoboLobo/projeto-estudos/pkg/storage"

	"github.com/google/uuid"
)

func TestSessionDeleteCascades(t *testing.T) {
	ctx := context.Background()

	var mu sync.Mutex
	var deletedPaths []string
	storageSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			mu.Lock()
			deletedPaths = append(deletedPaths, r.URL.Path)
			mu.Unlock()
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer storageSrv.Close()

	uow := newFakeUow()
	userId := uuid.New()
	sessionId := uuid.New()
	uow.sessions[sessionId] = &entity.Session{Id: sessionId, ProfileId: userId, Title: "algebra"}

	docA := uuid.New()
	docB := uuid.New()
	uow.documents[docA] = &entity.Document{Id: docA, SessionId: sessionId, FilePath: "uploads/a.pdf"}
	uow.documents[docB] = &entity.Document{Id: docB, SessionId: sessionId, FilePath: "uploads/b.pdf"}

	chatA := uuid.New()
	chatB := uuid.New()
	uow.chats[chatA] = &entity.Chat{Id: chatA, SessionId: sessionId, ChatType: entity.ChatTypeGeneralReview}
	uow.chats[chatB] = &entity.Chat{Id: chatB, SessionId: sessionId, ChatType: entity.ChatTypeTopicSpecific}

	svc := NewSessionService(uow, pktStorage.NewClient(storageSrv.URL, "test-key", "materials"), testLogger{})

	if err := svc.Delete(ctx, userId, sessionId); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if !uow.begun || !uow.committed {
		t.Errorf("expected transactional delete, begun=%v committed=%v", uow.begun, uow.committed)
	}
	if uow.rolledBack {
		t.Error("committed delete must not roll back")
	}
	if len(uow.deletedSessions) != 1 || uow.deletedSessions[0] != sessionId {
		t.Errorf("session row not deleted: %v", uow.deletedSessions)
	}
	if len(uow.deletedMessageChats) != 2 {
		t.Errorf("expected message cleanup for 2 chats, got %v", uow.deletedMessageChats)
	}
	for _, sessions := range map[string][]uuid.UUID{
		"chats":  uow.deletedChatSessions,
		"topics": uow.deletedTopicSessions,
		"plans":  uow.deletedPlanSessions,
		"chunks": uow.deletedChunkSessions,
		"docs":   uow.deletedDocSessions,
	} {
		if len(sessions) != 1 || sessions[0] != sessionId {
			t.Errorf("expected session-wide cleanup, got %v", sessions)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(deletedPaths) != 2 {
		t.Fatalf("expected 2 storage deletes, got %v", deletedPaths)
	}
}

func TestSessionDeleteRejectsForeignSession(t *testing.T) {
	ctx := context.Background()

	uow := newFakeUow()
	owner := uuid.New()
	sessionId := uuid.New()
	uow.sessions[sessionId] = &entity.Session{Id: sessionId, ProfileId: owner}

	svc := NewSessionService(uow, pktStorage.NewClient("http://storage.invalid", "k", "b"), testLogger{})

	err := svc.Delete(ctx, uuid.New(), sessionId)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if len(uow.deletedSessions) != 0 {
		t.Error("foreign session must not be deleted")
	}
}
