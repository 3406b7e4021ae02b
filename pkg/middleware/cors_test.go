package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/voice-lab/pkg/middleware"
)

func corsConfig() *middleware.CORSConfig {
	cfg := &middleware.CORSConfig{
		Enabled:          true,
		Origins:          []string{"http://localhost:3000"},
		AllowCredentials: true,
	}
	cfg.Finalize(nil)
	return cfg
}

func corsHandler(cfg *middleware.CORSConfig, called *bool) http.Handler {
	return middleware.CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCORSAllowedOrigin(t *testing.T) {
	var called bool
	handler := corsHandler(corsConfig(), &called)

	req := httptest.NewRequest("GET", "/api/agents", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("next handler not called for allowed origin")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, PUT, PATCH, DELETE, OPTIONS" {
		t.Errorf("Allow-Methods = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type, Authorization" {
		t.Errorf("Allow-Headers = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "3600" {
		t.Errorf("Max-Age = %q", got)
	}
}

func TestCORSDisallowedOrigin(t *testing.T) {
	var called bool
	handler := corsHandler(corsConfig(), &called)

	req := httptest.NewRequest("GET", "/api/agents", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("next handler not called for disallowed origin")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want no header", got)
	}
}

func TestCORSDisabled(t *testing.T) {
	cfg := corsConfig()
	cfg.Enabled = false

	var called bool
	handler := corsHandler(cfg, &called)

	req := httptest.NewRequest("GET", "/api/agents", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("next handler not called when disabled")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want no header", got)
	}
}

func TestCORSPreflightTerminates(t *testing.T) {
	var called bool
	handler := corsHandler(corsConfig(), &called)

	req := httptest.NewRequest("OPTIONS", "/api/agents", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if called {
		t.Error("next handler called for preflight request")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestCORSConfigMerge(t *testing.T) {
	base := middleware.CORSConfig{
		Enabled: true,
		Origins: []string{"http://localhost:3000"},
		MaxAge:  3600,
	}

	base.Merge(&middleware.CORSConfig{
		Enabled: false,
		Origins: []string{"https://app.example.com"},
	})

	if base.Enabled {
		t.Error("Enabled should take overlay value")
	}
	if len(base.Origins) != 1 || base.Origins[0] != "https://app.example.com" {
		t.Errorf("Origins = %v", base.Origins)
	}
	if base.MaxAge != 3600 {
		t.Errorf("MaxAge = %d, want base value preserved", base.MaxAge)
	}
}

func TestCORSConfigEnv(t *testing.T) {
	env := &middleware.CORSEnv{
		Enabled: "TEST_CORS_ENABLED",
		Origins: "TEST_CORS_ORIGINS",
		MaxAge:  "TEST_CORS_MAX_AGE",
	}

	t.Setenv("TEST_CORS_ENABLED", "true")
	t.Setenv("TEST_CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("TEST_CORS_MAX_AGE", "120")

	var cfg middleware.CORSConfig
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if !cfg.Enabled {
		t.Error("Enabled = false, want env override")
	}
	if len(cfg.Origins) != 2 || cfg.Origins[0] != "http://a.test" || cfg.Origins[1] != "http://b.test" {
		t.Errorf("Origins = %v", cfg.Origins)
	}
	if cfg.MaxAge != 120 {
		t.Errorf("MaxAge = %d, want 120", cfg.MaxAge)
	}
}
