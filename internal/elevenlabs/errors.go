package elevenlabs

import "fmt"

// UpstreamError captures a non-success response from the vendor API. The
// original status code and body are preserved so handlers can pass them
// through to callers.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("elevenlabs: status %d: %s", e.StatusCode, e.Body)
}
