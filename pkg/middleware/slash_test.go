package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/voice-lab/pkg/middleware"
)

func TestTrimSlash(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		wantRedirect bool
		wantLocation string
	}{
		{"trailing slash redirects", "/api/agents/", true, "/api/agents"},
		{"no trailing slash passes", "/api/agents", false, ""},
		{"root preserved", "/", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			handler := middleware.TrimSlash()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if tt.wantRedirect {
				if called {
					t.Error("next handler called, want redirect")
				}
				if rec.Code != http.StatusMovedPermanently {
					t.Errorf("status = %d, want 301", rec.Code)
				}
				if got := rec.Header().Get("Location"); got != tt.wantLocation {
					t.Errorf("Location = %q, want %q", got, tt.wantLocation)
				}
			} else if !called {
				t.Error("next handler not called")
			}
		})
	}
}

func TestTrimSlashPreservesQuery(t *testing.T) {
	handler := middleware.TrimSlash()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/agents/?page=2", nil))

	if got := rec.Header().Get("Location"); got != "/api/agents?page=2" {
		t.Errorf("Location = %q, want query preserved", got)
	}
}

func TestAddSlash(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		wantRedirect bool
	}{
		{"missing slash redirects", "/docs", true},
		{"trailing slash passes", "/docs/", false},
		{"file extension passes", "/docs/openapi.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			handler := middleware.AddSlash()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if tt.wantRedirect && called {
				t.Error("next handler called, want redirect")
			}
			if !tt.wantRedirect && !called {
				t.Error("next handler not called")
			}
		})
	}
}
