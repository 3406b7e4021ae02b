package elevenlabs

import (
	"context"
	"net/http"
)

// UnknownUser is the account holder fallback when the user lookup fails.
const UnknownUser = "Unknown User"

// AccountHolder returns the account holder's email address, or UnknownUser
// when the lookup fails or the account has no email.
func (c *Client) AccountHolder(ctx context.Context) string {
	var user struct {
		Email string `json:"email"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/user", nil, &user); err != nil {
		c.logger.Warn("account holder lookup failed", "error", err)
		return UnknownUser
	}
	if user.Email == "" {
		return UnknownUser
	}
	return user.Email
}
