package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"farmassist-backend/internal/llm"
	"farmassist-backend/internal/plaintext"
)

type stubChat struct {
	reply string
	err   error
	got   llm.ChatRequest
}

func (s *stubChat) Chat(ctx context.Context, req llm.ChatRequest) (string, error) {
	s.got = req
	return s.reply, s.err
}

func TestRespondCleansReplyAndPersists(t *testing.T) {
	llmStub := &stubChat{reply: "Use **fertilizer** on your maize.\n* water early"}
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, LLM: llmStub, Normalizer: plaintext.Default()}

	reply, err := svc.Respond(context.Background(), "user-1", "my maize leaves are yellow", "english", nil)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if reply != "Use plant food on your maize.\n- water early" {
		t.Fatalf("reply = %q", reply)
	}

	entries := repo.All()
	if len(entries) != 1 {
		t.Fatalf("persisted entries = %d, want 1", len(entries))
	}
	if entries[0].Response != reply {
		t.Fatalf("persisted response = %q", entries[0].Response)
	}
}

func TestRespondSelectsPromptByLanguage(t *testing.T) {
	tests := []struct {
		language string
		fragment string
	}{
		{"english", "friendly farming helper"},
		{"yoruba", "alawusa irugbin"},
		{"igbo", "onye nkwado"},
		{"hausa", "mataimakiyar noma"},
		{"french", "friendly farming helper"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.language, func(t *testing.T) {
			llmStub := &stubChat{reply: "ok"}
			svc := &Service{LLM: llmStub, Normalizer: plaintext.Default()}
			if _, err := svc.Respond(context.Background(), "", "hello", tt.language, nil); err != nil {
				t.Fatalf("Respond: %v", err)
			}
			if !strings.Contains(llmStub.got.System, tt.fragment) {
				t.Fatalf("system prompt for %q missing %q", tt.language, tt.fragment)
			}
		})
	}
}

func TestRespondPersistFailureDoesNotLoseReply(t *testing.T) {
	llmStub := &stubChat{reply: "plant early"}
	svc := &Service{Repo: failingRepo{}, LLM: llmStub, Normalizer: plaintext.Default()}

	reply, err := svc.Respond(context.Background(), "user-1", "when to plant?", "english", nil)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if reply != "plant early" {
		t.Fatalf("reply = %q", reply)
	}
}

func TestRespondLLMFailurePropagates(t *testing.T) {
	llmStub := &stubChat{err: errors.New("upstream down")}
	svc := &Service{LLM: llmStub, Normalizer: plaintext.Default()}

	if _, err := svc.Respond(context.Background(), "", "hello", "english", nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestChatEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	llmStub := &stubChat{reply: "water in the morning"}
	handler := NewHandler(&Service{LLM: llmStub, Normalizer: plaintext.Default()})

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))

	body, _ := json.Marshal(map[string]any{
		"message":  "when should I water?",
		"language": "english",
		"previousMessages": []map[string]any{
			{"content": "hello", "isUser": true},
			{"content": "hi, how can I help?", "isUser": false},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}
	var out struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Response != "water in the morning" {
		t.Fatalf("response = %q", out.Response)
	}

	if len(llmStub.got.History) != 2 || !llmStub.got.History[0].FromUser || llmStub.got.History[1].FromUser {
		t.Fatalf("history not forwarded: %+v", llmStub.got.History)
	}
}

func TestChatEndpointRequiresMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(&Service{LLM: &stubChat{}, Normalizer: plaintext.Default()})
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

type failingRepo struct{}

func (failingRepo) Create(ctx context.Context, entry Entry) error {
	return errors.New("insert failed")
}
