package chat

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/voice-lab/pkg/handlers"
	"github.com/JaimeStill/voice-lab/pkg/routes"
)

// Handler provides HTTP endpoints for chat completions.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a new chat HTTP handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger,
	}
}

// Routes returns the route group configuration for chat endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/api",
		Tags:        []string{"Chat"},
		Description: "Chat completion proxying",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/chat", Handler: h.Chat},
			{Method: "POST", Pattern: "/convo", Handler: h.Converse},
		},
	}
}

// Chat handles POST /api/chat, answering a single message.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	reply, err := h.sys.Chat(r.Context(), body.Message)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// Converse handles POST /api/convo, continuing a conversation history.
func (h *Handler) Converse(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Messages []Message `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	message, err := h.sys.Converse(r.Context(), body.Messages)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]string{"message": message})
}
