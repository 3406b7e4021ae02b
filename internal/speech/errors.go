// Package speech provides voice synthesis, transcription, voice cloning, and
// transcription history.
package speech

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/voice-lab/internal/elevenlabs"
)

// Domain errors for speech operations.
var (
	ErrMissingText   = errors.New("text required")
	ErrMissingVoice  = errors.New("voice id required")
	ErrMissingTarget = errors.New("target language required")
	ErrInvalidAudio  = errors.New("invalid audio file")
	ErrAudioTooLarge = errors.New("audio file too large")
)

// MapHTTPStatus maps domain errors to HTTP status codes. Vendor errors pass
// the upstream status through.
func MapHTTPStatus(err error) int {
	var upstream *elevenlabs.UpstreamError
	if errors.As(err, &upstream) {
		return upstream.StatusCode
	}
	switch {
	case errors.Is(err, ErrMissingText),
		errors.Is(err, ErrMissingVoice),
		errors.Is(err, ErrMissingTarget),
		errors.Is(err, ErrInvalidAudio),
		errors.Is(err, ErrAudioTooLarge):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
