package services

import (
	"context"
	"fmt"
	"time"

	"github.com/geek-edu/courseledger/internal/apperrors"
	"github.com/geek-edu/courseledger/internal/core/domain"
	"github.com/geek-edu/courseledger/internal/dto"
	"github.com/geek-edu/courseledger/internal/utils"
)

// ErrInvalidCredentials rejects admin token requests with a wrong secret.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid admin secret", apperrors.ErrUnauthorized)

// AuthService issues signed caller identities. Identities are opaque account
// IDs; only the configured administrator account is secret-protected, wallet
// management proper lives outside this system.
type AuthService struct {
	adminAccount    domain.AccountID
	adminSecretHash string
	jwtSecret       string
	jwtExpiry       time.Duration
	jwtIssuer       string
}

// NewAuthService creates an AuthService. The admin secret is hashed once at
// startup and only the hash is kept.
func NewAuthService(adminAccount domain.AccountID, adminSecret, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) (*AuthService, error) {
	hash, err := utils.HashSecret(adminSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin secret: %w", err)
	}
	return &AuthService{
		adminAccount:    adminAccount,
		adminSecretHash: hash,
		jwtSecret:       jwtSecret,
		jwtExpiry:       jwtExpiry,
		jwtIssuer:       jwtIssuer,
	}, nil
}

// IssueToken returns a signed JWT whose subject is the requested account ID.
func (s *AuthService) IssueToken(_ context.Context, req dto.TokenRequest) (*dto.TokenResponse, error) {
	if req.AccountID == string(domain.NilAccount) {
		return nil, fmt.Errorf("%w: account ID must be set", apperrors.ErrValidation)
	}
	if domain.AccountID(req.AccountID) == s.adminAccount {
		if !utils.CheckSecretHash(req.AdminSecret, s.adminSecretHash) {
			return nil, ErrInvalidCredentials
		}
	}

	token, expiresAt, err := utils.GenerateJWT(req.AccountID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &dto.TokenResponse{Token: token, ExpiresAt: expiresAt}, nil
}
