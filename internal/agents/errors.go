package agents

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/voice-lab/internal/elevenlabs"
)

// Domain errors for agent operations.
var (
	ErrNotFound      = errors.New("agent not found")
	ErrDuplicate     = errors.New("agent already exists")
	ErrInvalidVoice  = errors.New("invalid voice id")
	ErrValidation    = errors.New("invalid agent request")
	ErrPartialCreate = errors.New("agent created upstream but not recorded locally")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes. Vendor
// errors pass the upstream status through.
func MapHTTPStatus(err error) int {
	var upstream *elevenlabs.UpstreamError
	if errors.As(err, &upstream) {
		return upstream.StatusCode
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidVoice) || errors.Is(err, ErrValidation) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrPartialCreate) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
