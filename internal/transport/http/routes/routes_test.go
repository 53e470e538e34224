package routes_test

import (
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
	"golang.org/x/crypto/bcrypt"

	"github.com/Osiris4002/ann-dhan/internal/infra/config"
	"github.com/Osiris4002/ann-dhan/internal/infra/security"
	"github.com/Osiris4002/ann-dhan/internal/repository/memory"
	"github.com/Osiris4002/ann-dhan/internal/transport/http/routes"
	"github.com/Osiris4002/ann-dhan/internal/usecase"
)

type staticGenerator struct{ answer string }

func (g staticGenerator) Generate(context.Context, string) (string, error) {
	return g.answer, nil
}

type staticChecker struct{ err error }

func (c staticChecker) HealthCheck(context.Context) error { return c.err }

func newEngine(t *testing.T, store routes.StoreChecker) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zaptest.NewLogger(t)
	users := memory.NewUserRepository()
	identity := memory.NewIdentityProvider(security.NewDevTokenIssuer("test-secret", "ann-dhan", time.Minute))
	hasher := security.NewBcryptPINHasher(bcrypt.MinCost)

	cfg := &config.AppConfig{
		App:  config.AppSettings{Env: "development"},
		CORS: config.CORSSettings{AllowedOrigins: []string{"*"}},
	}

	return routes.Register(routes.Dependencies{
		Config: cfg,
		Logger: log,
		Services: routes.ServiceSet{
			Auth: usecase.NewAuthService(users, identity, hasher, log),
			Chat: usecase.NewChatService(memory.NewChatRepository(), staticGenerator{answer: "ok"}, 20, "", log),
		},
		Identity: identity,
		Store:    store,
	})
}

func TestHealthz(t *testing.T) {
	r := newEngine(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestReadyz(t *testing.T) {
	t.Run("store reachable", func(t *testing.T) {
		r := newEngine(t, staticChecker{})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("store unreachable", func(t *testing.T) {
		r := newEngine(t, staticChecker{err: errors.New("firestore: connection refused")})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
		}

		var resp map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		// Dependency failures report a status, never the raw error.
		if strings.Contains(w.Body.String(), "connection refused") {
			t.Fatalf("internal detail leaked: %s", w.Body.String())
		}
	})
}

func TestUnknownRoute(t *testing.T) {
	r := newEngine(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestTraceHeadersOnAPIRoutes(t *testing.T) {
	r := newEngine(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Header().Get("X-Trace-ID") == "" {
		t.Fatal("expected a trace id header")
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected a request id header")
	}
}
