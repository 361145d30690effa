package studyclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/pkg/serverutils"
	"github.com/google/uuid"
)

func writeJSON(t *testing.T, w http.ResponseWriter, body any) {
	t.Helper()
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

func TestUploadRejectsNonPDFWithoutNetworkCall(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Upload(context.Background(), uuid.New(), "notes.docx", 1024, bytes.NewReader([]byte("x")))
	if !errors.Is(err, ErrNotPDF) {
		t.Fatalf("err = %v, want ErrNotPDF", err)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Errorf("server received %d requests, want 0", calls)
	}
}

func TestUploadRejectsOversizeWithoutNetworkCall(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Upload(context.Background(), uuid.New(), "big.pdf", 60<<20, bytes.NewReader(nil))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("err = %v, want ErrFileTooLarge", err)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Errorf("server received %d requests, want 0", calls)
	}
}

func TestUploadSendsValidFile(t *testing.T) {
	sessionId := uuid.New()
	docId := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/document/v1/upload" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("session_id"); got != sessionId.String() {
			t.Errorf("session_id = %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		file.Close()
		if header.Filename != "exam.pdf" {
			t.Errorf("filename = %q", header.Filename)
		}

		w.Header().Set("Content-Type", "application/json")
		body := serverutils.SuccessResponse("Success upload document", map[string]any{
			"id":                docId,
			"file_name":         "exam.pdf",
			"extraction_status": "pending",
		})
		writeJSON(t, w, body)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.SetToken("test-token")

	res, err := client.Upload(context.Background(), sessionId, "exam.pdf", 10<<20, bytes.NewReader([]byte("%PDF-1.4")))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if res.Id != docId {
		t.Errorf("Id = %v, want %v", res.Id, docId)
	}
	if res.ExtractionStatus != "pending" {
		t.Errorf("ExtractionStatus = %q", res.ExtractionStatus)
	}
}

func TestDoClassifiesJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		writeJSON(t, w, serverutils.ErrorResponse(http.StatusConflict, "session must be in PLANNING status"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GeneratePlan(context.Background(), uuid.New(), "en")
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
	if apiErr.Kind != ErrorWrongStage {
		t.Errorf("Kind = %v, want ErrorWrongStage", apiErr.Kind)
	}
}

func TestDoHandlesPlainTextErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		w.Write([]byte("Request Entity Too Large"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Sessions(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *APIError", err)
	}
	if apiErr.Message != "Request Entity Too Large" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Kind != ErrorOther {
		t.Errorf("Kind = %v, want ErrorOther", apiErr.Kind)
	}
}

func TestLoginInstallsToken(t *testing.T) {
	userId := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			w.Header().Set("Content-Type", "application/json")
			writeJSON(t, w, serverutils.SuccessResponse("Success login", map[string]any{
				"token": "issued-token",
				"user":  map[string]any{"id": userId, "email": "a@b.c"},
			}))
		case "/api/auth/me":
			if got := r.Header.Get("Authorization"); got != "Bearer issued-token" {
				t.Errorf("Authorization = %q", got)
			}
			w.Header().Set("Content-Type", "application/json")
			writeJSON(t, w, serverutils.SuccessResponse("Success", map[string]any{"id": userId, "email": "a@b.c"}))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	res, err := client.Login(context.Background(), "a@b.c", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.Token != "issued-token" {
		t.Errorf("Token = %q", res.Token)
	}

	if _, err := client.Me(context.Background()); err != nil {
		t.Fatalf("Me() error = %v", err)
	}
}
