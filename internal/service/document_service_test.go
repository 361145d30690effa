package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/entity"
	pktStorage "github.com/ArthurLoboLobo/projeto-estudos/pkg/storage"

	"github.com/google/uuid"
)

type noopPublisher struct{}

func (noopPublisher) Publish(ctx context.Context, payload []byte) error { return nil }

func TestSignedUrlChecksOwnershipBeforeCache(t *testing.T) {
	ctx := context.Background()

	var mu sync.Mutex
	signCalls := 0
	storageSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && strings.Contains(r.URL.Path, "/storage/v1/object/sign/") {
			mu.Lock()
			signCalls++
			mu.Unlock()
			json.NewEncoder(w).Encode(map[string]string{
				"signedURL": "/object/sign/materials/uploads/a.pdf?token=abc",
			})
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer storageSrv.Close()

	uow := newFakeUow()
	owner := uuid.New()
	intruder := uuid.New()
	sessionId := uuid.New()
	documentId := uuid.New()
	uow.sessions[sessionId] = &entity.Session{Id: sessionId, ProfileId: owner}
	uow.documents[documentId] = &entity.Document{Id: documentId, SessionId: sessionId, FilePath: "uploads/a.pdf"}

	svc := NewDocumentService(uow, pktStorage.NewClient(storageSrv.URL, "test-key", "materials"), noopPublisher{}, testLogger{}, 0, time.Hour)

	res, err := svc.SignedUrl(ctx, owner, documentId)
	if err != nil {
		t.Fatalf("owner SignedUrl: %v", err)
	}
	if res.Url == "" {
		t.Fatal("owner got empty url")
	}

	// The owner's call populated the cache. A different user must still be
	// turned away rather than served the cached URL.
	if _, err := svc.SignedUrl(ctx, intruder, documentId); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound for non-owner, got %v", err)
	}

	again, err := svc.SignedUrl(ctx, owner, documentId)
	if err != nil {
		t.Fatalf("owner second SignedUrl: %v", err)
	}
	if again.Url != res.Url {
		t.Errorf("expected cached url, got %q then %q", res.Url, again.Url)
	}

	mu.Lock()
	defer mu.Unlock()
	if signCalls != 1 {
		t.Errorf("expected a single sign request, got %d", signCalls)
	}
}
