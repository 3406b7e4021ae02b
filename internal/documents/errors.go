package documents

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JaimeStill/voice-lab/internal/agents"
	"github.com/JaimeStill/voice-lab/internal/elevenlabs"
)

// Domain errors for document operations.
var (
	ErrValidation = errors.New("invalid document request")
	ErrInvalidURL = errors.New("invalid url")
	ErrNoFile     = errors.New("no file uploaded")
)

// ReferencedError indicates a document cannot be deleted while agents still
// reference it. The referencing agents are reported so the caller can detach
// them first.
type ReferencedError struct {
	DocumentID string
	Agents     []agents.AgentRef
}

func (e *ReferencedError) Error() string {
	return fmt.Sprintf("document %s is referenced by %d agent(s)", e.DocumentID, len(e.Agents))
}

// MapHTTPStatus maps domain errors to HTTP status codes. Vendor errors pass
// the upstream status through; referenced documents map to 409.
func MapHTTPStatus(err error) int {
	var upstream *elevenlabs.UpstreamError
	if errors.As(err, &upstream) {
		return upstream.StatusCode
	}
	var referenced *ReferencedError
	if errors.As(err, &referenced) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidURL) || errors.Is(err, ErrNoFile) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
