package dto

import "time"

// TokenRequest asks for a signed caller identity. AdminSecret is only
// consulted when the requested account is the configured administrator.
type TokenRequest struct {
	AccountID   string `json:"accountId" binding:"required"`
	AdminSecret string `json:"adminSecret"`
}

// TokenResponse carries the issued JWT.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
