// Package telephony provides phone number management and outbound call
// fan-out through the vendor's telephony integration.
package telephony

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/JaimeStill/voice-lab/internal/elevenlabs"
)

// Domain errors for telephony operations.
var (
	ErrMissingAgent   = errors.New("agent_id required")
	ErrMissingNumbers = errors.New("phone_number required")
)

// MapHTTPStatus maps domain errors to HTTP status codes. Vendor errors pass
// the upstream status through.
func MapHTTPStatus(err error) int {
	var upstream *elevenlabs.UpstreamError
	if errors.As(err, &upstream) {
		return upstream.StatusCode
	}
	if errors.Is(err, ErrMissingAgent) || errors.Is(err, ErrMissingNumbers) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Vendor is the subset of the vendor client the telephony service requires.
type Vendor interface {
	ListPhoneNumbers(ctx context.Context) ([]elevenlabs.PhoneNumber, error)
	CreatePhoneNumber(ctx context.Context, phoneNumber, description string) (*elevenlabs.PhoneNumber, error)
	OutboundCall(ctx context.Context, agentID, agentPhoneNumberID, phoneNumber string) (json.RawMessage, error)
}

// CallResult reports the outcome of one outbound call attempt.
type CallResult struct {
	PhoneNumber string          `json:"phone_number"`
	Success     bool            `json:"success"`
	Error       string          `json:"error,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
}

// System defines the telephony operations.
type System interface {
	ListPhoneNumbers(ctx context.Context) ([]elevenlabs.PhoneNumber, error)
	CreatePhoneNumber(ctx context.Context, phoneNumber, description string) (*elevenlabs.PhoneNumber, error)
	Call(ctx context.Context, agentID, phoneNumbers string) ([]CallResult, error)
}

type service struct {
	vendor        Vendor
	phoneNumberID string
	logger        *slog.Logger
}

// New creates the telephony service. The phoneNumberID identifies the
// provisioned number outbound calls originate from; empty defers to the
// vendor's default.
func New(vendor Vendor, phoneNumberID string, logger *slog.Logger) System {
	return &service{
		vendor:        vendor,
		phoneNumberID: phoneNumberID,
		logger:        logger.With("system", "telephony"),
	}
}

func (s *service) ListPhoneNumbers(ctx context.Context) ([]elevenlabs.PhoneNumber, error) {
	return s.vendor.ListPhoneNumbers(ctx)
}

func (s *service) CreatePhoneNumber(ctx context.Context, phoneNumber, description string) (*elevenlabs.PhoneNumber, error) {
	if strings.TrimSpace(phoneNumber) == "" {
		return nil, ErrMissingNumbers
	}
	return s.vendor.CreatePhoneNumber(ctx, phoneNumber, description)
}

// Call fans a comma-separated list of phone numbers out into parallel
// outbound call attempts. Each number succeeds or fails independently;
// partial success is normal.
func (s *service) Call(ctx context.Context, agentID, phoneNumbers string) ([]CallResult, error) {
	if agentID == "" {
		return nil, ErrMissingAgent
	}

	numbers := splitNumbers(phoneNumbers)
	if len(numbers) == 0 {
		return nil, ErrMissingNumbers
	}

	results := make([]CallResult, len(numbers))
	var wg sync.WaitGroup

	for i, number := range numbers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			data, err := s.vendor.OutboundCall(ctx, agentID, s.phoneNumberID, number)
			if err != nil {
				s.logger.Error("outbound call failed",
					"agent_id", agentID, "phone_number", number, "error", err)
				results[i] = CallResult{PhoneNumber: number, Error: err.Error()}
				return
			}
			results[i] = CallResult{PhoneNumber: number, Success: true, Data: data}
		}()
	}

	wg.Wait()
	return results, nil
}

// splitNumbers parses a comma-separated number list, trimming whitespace and
// stripping interior spaces from each number.
func splitNumbers(value string) []string {
	parts := strings.Split(value, ",")
	numbers := make([]string, 0, len(parts))
	for _, part := range parts {
		number := strings.ReplaceAll(strings.TrimSpace(part), " ", "")
		if number != "" {
			numbers = append(numbers, number)
		}
	}
	return numbers
}
