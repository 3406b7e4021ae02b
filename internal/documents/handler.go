package documents

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/voice-lab/internal/agents"
	"github.com/JaimeStill/voice-lab/pkg/handlers"
	"github.com/JaimeStill/voice-lab/pkg/routes"
)

// Handler provides HTTP endpoints for knowledge base operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a new documents HTTP handler.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group configuration for knowledge base endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/api/knowledge-base",
		Tags:        []string{"Knowledge Base"},
		Description: "Knowledge base document management",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "GET", Pattern: "/{id}", Handler: h.Content},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// List handles GET /api/knowledge-base, returning normalized documents.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

// Create handles POST /api/knowledge-base. JSON bodies carry {text} or
// {url}; multipart bodies carry a file upload.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")

	switch {
	case strings.Contains(contentType, "application/json"):
		h.createFromJSON(w, r)
	case strings.Contains(contentType, "multipart/form-data"):
		h.createFromFile(w, r)
	default:
		handlers.RespondError(w, h.logger, http.StatusBadRequest,
			fmt.Errorf("%w: unsupported content type %q", ErrValidation, contentType))
	}
}

func (h *Handler) createFromJSON(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
		URL  string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var result *CreateResult
	var err error
	switch {
	case body.Text != "":
		result, err = h.sys.CreateText(r.Context(), body.Text)
	case body.URL != "":
		result, err = h.sys.CreateURL(r.Context(), body.URL)
	default:
		err = fmt.Errorf("%w: text or url required", ErrValidation)
	}

	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) createFromFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadSize+1))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	if int64(len(data)) > h.maxUploadSize {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge,
			fmt.Errorf("file exceeds %d byte limit", h.maxUploadSize))
		return
	}

	result, err := h.sys.CreateFile(r.Context(), header.Filename, data)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Content handles GET /api/knowledge-base/{id}, returning the full document text.
func (h *Handler) Content(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	content, err := h.sys.Content(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]string{"id": id, "content": content})
}

// Delete handles DELETE /api/knowledge-base/{id}. A document still referenced
// by agents is refused with 409 and the referencing agents listed.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.sys.Delete(r.Context(), r.PathValue("id"))
	if err == nil {
		handlers.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
		return
	}

	var referenced *ReferencedError
	if errors.As(err, &referenced) {
		h.logger.Warn("document delete refused",
			"id", referenced.DocumentID, "referencing_agents", len(referenced.Agents))
		handlers.RespondJSON(w, http.StatusConflict, referencedResponse{
			Success:        false,
			RequiresAction: true,
			Agents:         referenced.Agents,
		})
		return
	}

	handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
}

type referencedResponse struct {
	Success        bool              `json:"success"`
	RequiresAction bool              `json:"requires_action"`
	Agents         []agents.AgentRef `json:"agents"`
}
