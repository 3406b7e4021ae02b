package translate_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/voice-lab/internal/translate"
)

func TestTranslate(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"client": r.URL.Query().Get("client"),
			"sl":     r.URL.Query().Get("sl"),
			"tl":     r.URL.Query().Get("tl"),
			"q":      r.URL.Query().Get("q"),
		}
		w.Write([]byte(`[[["Hola ","Hello ",null,null,10],["mundo","world",null,null,10]],null,"en"]`))
	}))
	defer server.Close()

	client := translate.NewWithEndpoint(server.URL)

	result, err := client.Translate(context.Background(), "Hello world", "es")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}

	if result != "Hola mundo" {
		t.Errorf("result = %q, want concatenated segments", result)
	}
	if gotQuery["client"] != "gtx" || gotQuery["sl"] != "auto" || gotQuery["tl"] != "es" {
		t.Errorf("query = %v", gotQuery)
	}
	if gotQuery["q"] != "Hello world" {
		t.Errorf("q = %q", gotQuery["q"])
	}
}

func TestTranslate_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := translate.NewWithEndpoint(server.URL)

	if _, err := client.Translate(context.Background(), "Hello", "es"); err == nil {
		t.Error("Translate() error = nil, want upstream failure")
	}
}

func TestTranslate_MalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>blocked</html>"},
		{"empty array", "[]"},
		{"no segments", "[[]]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := translate.NewWithEndpoint(server.URL)
			if _, err := client.Translate(context.Background(), "Hello", "es"); err == nil {
				t.Error("Translate() error = nil, want parse failure")
			}
		})
	}
}
