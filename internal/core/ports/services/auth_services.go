package services

import (
	"context"

	"github.com/geek-edu/courseledger/internal/dto"
)

// AuthSvcFacade issues caller identities for the API layer. The JWT subject
// is the account ID every restricted operation checks capabilities against.
type AuthSvcFacade interface {
	// IssueToken returns a signed token for the requested account. Issuing a
	// token for the configured administrator account requires the admin
	// secret.
	IssueToken(ctx context.Context, req dto.TokenRequest) (*dto.TokenResponse, error)
}
