package elevenlabs

import (
	"context"
	"encoding/json"
	"net/http"
)

// PhoneNumber is a provisioned vendor phone number.
type PhoneNumber struct {
	PhoneNumberID string `json:"phone_number_id"`
	PhoneNumber   string `json:"phone_number"`
	Description   string `json:"description,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// ListPhoneNumbers returns the provisioned phone numbers for the account.
func (c *Client) ListPhoneNumbers(ctx context.Context) ([]PhoneNumber, error) {
	data, err := c.doRaw(ctx, http.MethodGet, "/v1/phone-numbers", "", nil)
	if err != nil {
		return nil, err
	}

	var numbers []PhoneNumber
	if err := json.Unmarshal(data, &numbers); err == nil {
		return numbers, nil
	}

	var wrapped struct {
		PhoneNumbers []PhoneNumber `json:"phone_numbers"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.PhoneNumbers, nil
}

// CreatePhoneNumber provisions a phone number with an optional description.
func (c *Client) CreatePhoneNumber(ctx context.Context, phoneNumber, description string) (*PhoneNumber, error) {
	payload := map[string]string{"phone_number": phoneNumber}
	if description != "" {
		payload["description"] = description
	}

	var result PhoneNumber
	if err := c.doJSON(ctx, http.MethodPost, "/v1/phone-numbers", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// OutboundCall starts an outbound call connecting the agent to the phone
// number, returning the vendor's call metadata. An agentPhoneNumberID selects
// the provisioned number to originate from when the account has several.
func (c *Client) OutboundCall(ctx context.Context, agentID, agentPhoneNumberID, phoneNumber string) (json.RawMessage, error) {
	payload := map[string]string{
		"agent_id":     agentID,
		"phone_number": phoneNumber,
	}
	if agentPhoneNumberID != "" {
		payload["agent_phone_number_id"] = agentPhoneNumberID
	}

	var result json.RawMessage
	if err := c.doJSON(ctx, http.MethodPost, "/v1/twilio/outbound-call", payload, &result); err != nil {
		return nil, err
	}
	return result, nil
}
