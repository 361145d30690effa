package studyclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/dto"
	"github.com/google/uuid"
)

const maxUploadBytes = 50 << 20

// Client is a typed HTTP client for the study-assistant API. It speaks
// the server's success/error envelopes and attaches the bearer token to
// every request.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// SetToken installs the bearer token used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

type successEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}

	var envelope successEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

// decodeError parses an error response defensively: the server normally
// replies with a JSON envelope, but proxies and upload middleware can
// produce plain-text bodies.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	message := strings.TrimSpace(string(raw))
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var envelope errorEnvelope
		if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
			message = envelope.Message
		}
	}
	if message == "" {
		message = resp.Status
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    message,
		Kind:       classifyMessage(message),
	}
}

func withLanguage(path, language string) string {
	if language == "" {
		return path
	}
	return path + "?lang=" + language
}

// Auth

func (c *Client) Register(ctx context.Context, email, password string) (*dto.RegisterResponse, error) {
	var out dto.RegisterResponse
	req := dto.RegisterRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and installs the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	req := dto.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sessions

func (c *Client) Sessions(ctx context.Context) ([]dto.SessionResponse, error) {
	var out []dto.SessionResponse
	if err := c.do(ctx, http.MethodGet, "/api/session/v1", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Session(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	var out dto.SessionResponse
	if err := c.do(ctx, http.MethodGet, "/api/session/v1/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSession(ctx context.Context, title string, description *string) (*dto.CreateSessionResponse, error) {
	var out dto.CreateSessionResponse
	req := dto.CreateSessionRequest{Title: title, Description: description}
	if err := c.do(ctx, http.MethodPost, "/api/session/v1", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSession(ctx context.Context, id uuid.UUID, title string, description *string) (*dto.SessionResponse, error) {
	var out dto.SessionResponse
	req := dto.UpdateSessionRequest{Title: title, Description: description}
	if err := c.do(ctx, http.MethodPut, "/api/session/v1/"+id.String(), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSession(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/session/v1/"+id.String(), nil, nil)
}

// Documents

// Upload validates the file before any network traffic: only .pdf files
// up to 50MB are accepted.
func (c *Client) Upload(ctx context.Context, sessionId uuid.UUID, fileName string, size int64, content io.Reader) (*dto.UploadDocumentResponse, error) {
	if strings.ToLower(filepath.Ext(fileName)) != ".pdf" {
		return nil, ErrNotPDF
	}
	if size > maxUploadBytes {
		return nil, ErrFileTooLarge
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("session_id", sessionId.String()); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("read upload content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/document/v1/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp)
	}

	var envelope successEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	var out dto.UploadDocumentResponse
	if err := json.Unmarshal(envelope.Data, &out); err != nil {
		return nil, fmt.Errorf("decode upload response data: %w", err)
	}
	return &out, nil
}

func (c *Client) Documents(ctx context.Context, sessionId uuid.UUID) (*dto.ListDocumentsResponse, error) {
	var out dto.ListDocumentsResponse
	if err := c.do(ctx, http.MethodGet, "/api/document/v1/session/"+sessionId.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DocumentUrl(ctx context.Context, id uuid.UUID) (*dto.SignedUrlResponse, error) {
	var out dto.SignedUrlResponse
	if err := c.do(ctx, http.MethodGet, "/api/document/v1/"+id.String()+"/url", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/document/v1/"+id.String(), nil, nil)
}

// Study plans

func (c *Client) GeneratePlan(ctx context.Context, sessionId uuid.UUID, language string) (*dto.PlanResponse, error) {
	var out dto.PlanResponse
	req := dto.GeneratePlanRequest{SessionId: sessionId}
	if err := c.do(ctx, http.MethodPost, withLanguage("/api/plan/v1/generate", language), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RevisePlan(ctx context.Context, sessionId uuid.UUID, instruction, language string) (*dto.PlanResponse, error) {
	var out dto.PlanResponse
	req := dto.RevisePlanRequest{SessionId: sessionId, Instruction: instruction}
	if err := c.do(ctx, http.MethodPost, withLanguage("/api/plan/v1/revise", language), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UndoPlan(ctx context.Context, sessionId uuid.UUID) (*dto.PlanResponse, error) {
	var out dto.PlanResponse
	if err := c.do(ctx, http.MethodPost, "/api/plan/v1/"+sessionId.String()+"/undo", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTopicStatus(ctx context.Context, sessionId uuid.UUID, topicId, status string) (*dto.PlanResponse, error) {
	var out dto.PlanResponse
	req := dto.UpdateTopicStatusRequest{SessionId: sessionId, TopicId: topicId, Status: status}
	if err := c.do(ctx, http.MethodPut, "/api/plan/v1/topic-status", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Plan(ctx context.Context, sessionId uuid.UUID) (*dto.PlanResponse, error) {
	var out dto.PlanResponse
	if err := c.do(ctx, http.MethodGet, "/api/plan/v1/"+sessionId.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PlanHistory(ctx context.Context, sessionId uuid.UUID) ([]dto.PlanResponse, error) {
	var out []dto.PlanResponse
	if err := c.do(ctx, http.MethodGet, "/api/plan/v1/"+sessionId.String()+"/history", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) StartStudying(ctx context.Context, sessionId uuid.UUID, language string) (*dto.StartStudyingResponse, error) {
	var out dto.StartStudyingResponse
	if err := c.do(ctx, http.MethodPost, withLanguage("/api/plan/v1/"+sessionId.String()+"/start", language), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Topics

func (c *Client) Topics(ctx context.Context, sessionId uuid.UUID) ([]dto.TopicResponse, error) {
	var out []dto.TopicResponse
	if err := c.do(ctx, http.MethodGet, "/api/topic/v1/session/"+sessionId.String(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateTopicCompletion(ctx context.Context, id uuid.UUID, isCompleted bool) (*dto.TopicResponse, error) {
	var out dto.TopicResponse
	req := dto.UpdateTopicRequest{IsCompleted: isCompleted}
	if err := c.do(ctx, http.MethodPut, "/api/topic/v1/"+id.String()+"/completion", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Chats

func (c *Client) Chats(ctx context.Context, sessionId uuid.UUID) ([]dto.ChatResponse, error) {
	var out []dto.ChatResponse
	if err := c.do(ctx, http.MethodGet, "/api/chat/v1/session/"+sessionId.String(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Chat(ctx context.Context, id uuid.UUID) (*dto.ChatResponse, error) {
	var out dto.ChatResponse
	if err := c.do(ctx, http.MethodGet, "/api/chat/v1/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ChatByTopic(ctx context.Context, topicId uuid.UUID) (*dto.ChatResponse, error) {
	var out dto.ChatResponse
	if err := c.do(ctx, http.MethodGet, "/api/chat/v1/topic/"+topicId.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ReviewChat(ctx context.Context, sessionId uuid.UUID) (*dto.ChatResponse, error) {
	var out dto.ChatResponse
	if err := c.do(ctx, http.MethodGet, "/api/chat/v1/session/"+sessionId.String()+"/review", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Messages(ctx context.Context, chatId uuid.UUID) ([]dto.MessageResponse, error) {
	var out []dto.MessageResponse
	if err := c.do(ctx, http.MethodGet, "/api/chat/v1/"+chatId.String()+"/messages", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SendMessage(ctx context.Context, chatId uuid.UUID, content string) (*dto.SendMessageResponse, error) {
	var out dto.SendMessageResponse
	req := dto.SendMessageRequest{ChatId: chatId, Content: content}
	if err := c.do(ctx, http.MethodPost, "/api/chat/v1/message", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GenerateWelcome(ctx context.Context, chatId uuid.UUID, language string) (*dto.GenerateWelcomeResponse, error) {
	var out dto.GenerateWelcomeResponse
	if err := c.do(ctx, http.MethodPost, withLanguage("/api/chat/v1/"+chatId.String()+"/welcome", language), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UndoMessage(ctx context.Context, chatId uuid.UUID) (*dto.UndoMessageResponse, error) {
	var out dto.UndoMessageResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat/v1/"+chatId.String()+"/undo", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ClearMessages(ctx context.Context, chatId uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/chat/v1/"+chatId.String()+"/messages", nil, nil)
}
