package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"

	"github.com/Osiris4002/ann-dhan/internal/infra/security"
	"github.com/Osiris4002/ann-dhan/internal/repository/memory"
	"github.com/Osiris4002/ann-dhan/internal/transport/http/handlers"
	"github.com/Osiris4002/ann-dhan/internal/transport/http/middleware"
	"github.com/Osiris4002/ann-dhan/internal/usecase"
)

type fixedGenerator struct {
	answer  string
	err     error
	prompts []string
}

func (g *fixedGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}

type chatFixture struct {
	router    *gin.Engine
	generator *fixedGenerator
	chats     *memory.ChatRepository
	identity  *memory.IdentityProvider
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zaptest.NewLogger(t)
	generator := &fixedGenerator{answer: "apply neem oil weekly"}
	chats := memory.NewChatRepository()
	identity := memory.NewIdentityProvider(security.NewDevTokenIssuer("test-secret", "ann-dhan", time.Minute))
	svc := usecase.NewChatService(chats, generator, 20, "You are Ann Dhan.", log)

	r := gin.New()
	api := r.Group("/api")
	handlers.NewChatHandler(svc, log).RegisterRoutes(api, middleware.OptionalAuth(identity, log))

	return &chatFixture{router: r, generator: generator, chats: chats, identity: identity}
}

func (f *chatFixture) post(t *testing.T, body any, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestChatAnonymous(t *testing.T) {
	f := newChatFixture(t)

	w := f.post(t, handlers.ChatRequest{Question: "leaves turning yellow", Crop: "rice"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp handlers.ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Answer != "apply neem oil weekly" {
		t.Fatalf("unexpected answer %q", resp.Answer)
	}

	// Anonymous calls must not persist anything.
	history, err := f.chats.History(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected no stored history, got %d messages", len(history))
	}
}

func TestChatEmptyQuestion(t *testing.T) {
	f := newChatFixture(t)

	w := f.post(t, handlers.ChatRequest{Question: "   "}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if len(f.generator.prompts) != 0 {
		t.Fatal("no generation may happen for an empty question")
	}
}

func TestChatGenerationFailure(t *testing.T) {
	f := newChatFixture(t)
	f.generator.err = errors.New("upstream quota exhausted")

	w := f.post(t, handlers.ChatRequest{Question: "when to sow wheat"}, "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "quota") {
		t.Fatalf("internal detail leaked to client: %s", w.Body.String())
	}
}

func TestChatAuthenticatedAppendsHistory(t *testing.T) {
	f := newChatFixture(t)

	identity, err := f.identity.Create(context.Background(), "+911234567890")
	if err != nil {
		t.Fatalf("create identity: %v", err)
	}
	token, err := f.identity.MintToken(context.Background(), identity.ID)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	w := f.post(t, handlers.ChatRequest{Question: "leaves turning yellow"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	history, err := f.chats.History(context.Background(), identity.ID, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected question and answer stored, got %d messages", len(history))
	}
	if history[0].Text != "leaves turning yellow" || history[1].Text != "apply neem oil weekly" {
		t.Fatalf("unexpected stored history: %+v", history)
	}
}

func TestChatGarbageBearerServedAnonymously(t *testing.T) {
	f := newChatFixture(t)

	w := f.post(t, handlers.ChatRequest{Question: "when to sow wheat"}, "not-a-token")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
