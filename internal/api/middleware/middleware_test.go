package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestRequestLogger_LevelByStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "level=INFO"},
		{http.StatusNotFound, "level=WARN"},
		{http.StatusBadGateway, "level=ERROR"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tt.status)
			_, _ = w.Write([]byte("abc"))
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/news", nil))

		out := buf.String()
		if !strings.Contains(out, tt.level) {
			t.Errorf("статус %d: ожидали %s в %q", tt.status, tt.level, out)
		}
		if !strings.Contains(out, "bytes=3") || !strings.Contains(out, "path=/api/v1/news") {
			t.Errorf("неполная запись лога: %q", out)
		}
	}
}

func TestRequestLogger_QuietPaths(t *testing.T) {
	tests := []struct {
		path   string
		status int
		level  string
	}{
		{"/health/live", http.StatusOK, "level=DEBUG"},
		{"/health/ready", http.StatusServiceUnavailable, "level=ERROR"},
		{"/api/v1/home", http.StatusOK, "level=INFO"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		handler := RequestLogger(logger, "/health/live", "/health/ready")(
			http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(tt.status) }))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

		if out := buf.String(); !strings.Contains(out, tt.level) {
			t.Errorf("%s (%d): ожидали %s в %q", tt.path, tt.status, tt.level, out)
		}
	}
}

func TestRoutePattern(t *testing.T) {
	var got string
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req)
			got = routePattern(req)
		})
	})
	r.Get("/api/v1/team/{slug}", func(http.ResponseWriter, *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/team/ivan", nil))
	if got != "/api/v1/team/{slug}" {
		t.Errorf("routePattern() = %q", got)
	}

	if p := routePattern(httptest.NewRequest(http.MethodGet, "/x", nil)); p != "unmatched" {
		t.Errorf("без маршрута: %q", p)
	}
}
