package elevenlabs_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/voice-lab/internal/config"
	"github.com/JaimeStill/voice-lab/internal/elevenlabs"
)

func testClient(t *testing.T, handler http.HandlerFunc) *elevenlabs.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.ElevenLabsConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: "5s",
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return elevenlabs.New(cfg, logger)
}

func TestClientSendsAPIKey(t *testing.T) {
	var gotKey string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("xi-api-key")
		w.Write([]byte(`[]`))
	})

	if _, err := client.ListKnowledgeBase(context.Background()); err != nil {
		t.Fatalf("ListKnowledgeBase() error = %v", err)
	}
	if gotKey != "test-key" {
		t.Errorf("xi-api-key = %q", gotKey)
	}
}

func TestUpstreamErrorPassthrough(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":"invalid voice"}`))
	})

	_, err := client.ListKnowledgeBase(context.Background())

	var upstream *elevenlabs.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("error = %v, want UpstreamError", err)
	}
	if upstream.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("StatusCode = %d, want 422", upstream.StatusCode)
	}
	if upstream.Body != `{"detail":"invalid voice"}` {
		t.Errorf("Body = %q", upstream.Body)
	}
}

func TestListKnowledgeBase_Shapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bare array", `[{"id":"doc-1"},{"id":"doc-2"}]`, 2},
		{"wrapped object", `{"documents":[{"id":"doc-1"}]}`, 1},
		{"empty array", `[]`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			docs, err := client.ListKnowledgeBase(context.Background())
			if err != nil {
				t.Fatalf("ListKnowledgeBase() error = %v", err)
			}
			if len(docs) != tt.want {
				t.Errorf("docs = %d, want %d", len(docs), tt.want)
			}
		})
	}
}

func TestCreateAgent(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Write([]byte(`{"agent_id":"agent-123"}`))
	})

	agentID, err := client.CreateAgent(context.Background(), elevenlabs.CreateAgentRequest{
		Name:         "Support",
		Prompt:       "You are helpful.",
		FirstMessage: "Hi!",
		Language:     "en",
		Model:        "eleven-multilingual-v1",
		Temperature:  0.7,
		VoiceID:      "voice-1",
		KnowledgeBase: []elevenlabs.KnowledgeBaseRef{
			{Type: "file", ID: "doc-a", Name: "Document doc-a", UsageMode: "prompt"},
		},
	})
	if err != nil {
		t.Fatalf("CreateAgent() error = %v", err)
	}

	if agentID != "agent-123" {
		t.Errorf("agentID = %q", agentID)
	}
	if gotPath != "/v1/convai/agents/create" {
		t.Errorf("path = %q", gotPath)
	}

	cc, ok := gotPayload["conversation_config"].(map[string]any)
	if !ok {
		t.Fatalf("payload missing conversation_config: %v", gotPayload)
	}
	tts, ok := cc["tts"].(map[string]any)
	if !ok {
		t.Fatalf("conversation_config missing tts: %v", cc)
	}
	if tts["voice_id"] != "voice-1" {
		t.Errorf("tts.voice_id = %v", tts["voice_id"])
	}

	prompt, ok := cc["prompt"].(map[string]any)
	if !ok {
		t.Fatalf("conversation_config missing prompt: %v", cc)
	}
	kb, ok := prompt["knowledge_base"].([]any)
	if !ok || len(kb) != 1 {
		t.Fatalf("prompt.knowledge_base = %v, want single ref", prompt["knowledge_base"])
	}
	ref := kb[0].(map[string]any)
	if ref["id"] != "doc-a" || ref["usage_mode"] != "prompt" {
		t.Errorf("knowledge_base ref = %v", ref)
	}
}

func TestDocumentContent(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/convai/knowledge-base/doc-1/content" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte("raw document text"))
	})

	content, err := client.DocumentContent(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("DocumentContent() error = %v", err)
	}
	if content != "raw document text" {
		t.Errorf("content = %q", content)
	}
}

func TestCreateFileDocument_Multipart(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile(file) error = %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Filename != "notes.txt" {
			t.Errorf("filename = %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "file body" {
			t.Errorf("data = %q", data)
		}
		w.Write([]byte(`{"id":"doc-file"}`))
	})

	doc, err := client.CreateFileDocument(context.Background(), "notes.txt", []byte("file body"))
	if err != nil {
		t.Fatalf("CreateFileDocument() error = %v", err)
	}
	if doc.ID != "doc-file" {
		t.Errorf("ID = %q", doc.ID)
	}
}

func TestAccountHolder(t *testing.T) {
	t.Run("returns email", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"email":"owner@example.com"}`))
		})

		if got := client.AccountHolder(context.Background()); got != "owner@example.com" {
			t.Errorf("AccountHolder() = %q", got)
		}
	})

	t.Run("falls back on failure", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		if got := client.AccountHolder(context.Background()); got != elevenlabs.UnknownUser {
			t.Errorf("AccountHolder() = %q, want %q", got, elevenlabs.UnknownUser)
		}
	})
}

func TestOutboundCall(t *testing.T) {
	var gotPayload map[string]string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/twilio/outbound-call" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Write([]byte(`{"call_sid":"CA123"}`))
	})

	data, err := client.OutboundCall(context.Background(), "agent-1", "pn-1", "+15551234567")
	if err != nil {
		t.Fatalf("OutboundCall() error = %v", err)
	}
	if len(data) == 0 {
		t.Error("data empty")
	}

	if gotPayload["agent_id"] != "agent-1" {
		t.Errorf("agent_id = %q", gotPayload["agent_id"])
	}
	if gotPayload["agent_phone_number_id"] != "pn-1" {
		t.Errorf("agent_phone_number_id = %q", gotPayload["agent_phone_number_id"])
	}
	if gotPayload["phone_number"] != "+15551234567" {
		t.Errorf("phone_number = %q", gotPayload["phone_number"])
	}
}

func TestTextToSpeech(t *testing.T) {
	var gotPayload map[string]any
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/text-to-speech/voice-1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Write([]byte("binary-mp3"))
	})

	audio, err := client.TextToSpeech(context.Background(), "voice-1", "hello", "eleven_monolingual_v1",
		elevenlabs.VoiceSettings{Stability: 0.5, SimilarityBoost: 0.5})
	if err != nil {
		t.Fatalf("TextToSpeech() error = %v", err)
	}
	if string(audio) != "binary-mp3" {
		t.Errorf("audio = %q", audio)
	}

	if gotPayload["text"] != "hello" {
		t.Errorf("text = %v", gotPayload["text"])
	}
	if gotPayload["model_id"] != "eleven_monolingual_v1" {
		t.Errorf("model_id = %v", gotPayload["model_id"])
	}
}
