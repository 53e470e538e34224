package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	metrics, err := NewHTTPMetrics(HTTPMetricsOptions{Registerer: reg})
	if err != nil {
		t.Fatalf("new metrics: %v", err)
	}

	r := gin.New()
	r.Use(metrics.Handler())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	}

	got := testutil.ToFloat64(metrics.Requests.With(prometheus.Labels{
		"method": "GET",
		"route":  "/ping",
		"status": "200",
	}))
	if got != 3 {
		t.Fatalf("requests counter = %v, want 3", got)
	}

	if inflight := testutil.ToFloat64(metrics.InFlight); inflight != 0 {
		t.Fatalf("in-flight gauge = %v after requests finished", inflight)
	}
}

func TestHTTPMetricsReregistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	first, err := NewHTTPMetrics(HTTPMetricsOptions{Registerer: reg})
	if err != nil {
		t.Fatalf("first registration: %v", err)
	}

	second, err := NewHTTPMetrics(HTTPMetricsOptions{Registerer: reg})
	if err != nil {
		t.Fatalf("second registration: %v", err)
	}

	if first.Requests != second.Requests {
		t.Fatal("expected the existing requests collector to be reused")
	}
}

func TestNilMetricsHandlerPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var m *HTTPMetrics
	r := gin.New()
	r.Use(m.Handler())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
