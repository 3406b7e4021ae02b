package telephony

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/voice-lab/pkg/handlers"
	"github.com/JaimeStill/voice-lab/pkg/routes"
)

// Handler provides HTTP endpoints for phone numbers and outbound calls.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a new telephony HTTP handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger,
	}
}

// Routes returns the route group configuration for telephony endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/api",
		Tags:        []string{"Telephony"},
		Description: "Phone number management and outbound calls",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/phone-numbers", Handler: h.ListPhoneNumbers},
			{Method: "POST", Pattern: "/phone-numbers", Handler: h.CreatePhoneNumber},
			{Method: "POST", Pattern: "/call", Handler: h.Call},
		},
	}
}

// ListPhoneNumbers handles GET /api/phone-numbers.
func (h *Handler) ListPhoneNumbers(w http.ResponseWriter, r *http.Request) {
	numbers, err := h.sys.ListPhoneNumbers(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"phone_numbers": numbers,
	})
}

// CreatePhoneNumber handles POST /api/phone-numbers.
func (h *Handler) CreatePhoneNumber(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PhoneNumber string `json:"phone_number"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	number, err := h.sys.CreatePhoneNumber(r.Context(), body.PhoneNumber, body.Description)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"id":           number.PhoneNumberID,
		"phone_number": number.PhoneNumber,
		"description":  number.Description,
		"created_at":   number.CreatedAt,
	})
}

// Call handles POST /api/call, fanning out across comma-separated numbers.
func (h *Handler) Call(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AgentID     string `json:"agent_id"`
		PhoneNumber string `json:"phone_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	results, err := h.sys.Call(r.Context(), body.AgentID, body.PhoneNumber)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Call results",
		"results": results,
	})
}
