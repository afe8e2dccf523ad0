package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chatapp/chat-api/internal/core/domain"
)

type stubChatService struct {
	history    []domain.Message
	historyErr error
}

func (s *stubChatService) Post(_ context.Context, userID int64, content string) (*domain.Message, error) {
	return nil, errors.New("not used")
}

func (s *stubChatService) History(_ context.Context) ([]domain.Message, error) {
	if s.historyErr != nil {
		return nil, s.historyErr
	}
	return s.history, nil
}

func TestMessageHandler_List(t *testing.T) {
	base := time.Date(2026, 1, 17, 3, 0, 0, 0, time.UTC)
	svc := &stubChatService{history: []domain.Message{
		{
			ID: 1, UserID: 1, Content: "hello", SentAt: base,
			User: &domain.User{ID: 1, Username: "alice", Email: "alice@example.com"},
		},
		{
			ID: 2, UserID: 2, Content: "hey", SentAt: base.Add(time.Minute),
			User: &domain.User{ID: 2, Username: "bob", Email: "bob@example.com"},
		},
	}}
	h := NewMessageHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got []domain.Message
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if got[0].Content != "hello" || got[0].User == nil || got[0].User.Username != "alice" {
		t.Fatalf("first message malformed: %+v", got[0])
	}
	if got[1].SentAt.Before(got[0].SentAt) {
		t.Fatalf("history out of order")
	}
}

func TestMessageHandler_List_StoreFailure(t *testing.T) {
	svc := &stubChatService{historyErr: errors.New("db down")}
	h := NewMessageHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err == nil {
		t.Fatalf("expected error to propagate")
	}
}
