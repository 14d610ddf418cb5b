package services

import (
	"context"

	"github.com/geek-edu/courseledger/internal/core/domain"
)

// CertificateReaderSvc defines read operations on the certificate registry.
type CertificateReaderSvc interface {
	// HasCertificate reports whether account holds at least one certificate
	// for the given external course ID.
	HasCertificate(ctx context.Context, account domain.AccountID, courseID string) bool

	// GetCertificatesFor returns the certificate IDs held by account for the
	// course, in mint order. Empty slice if none; never an error.
	GetCertificatesFor(ctx context.Context, account domain.AccountID, courseID string) []uint64

	// MetadataOf returns the metadata reference of a certificate.
	MetadataOf(ctx context.Context, certificateID uint64) (string, error)

	// GetCertificate returns the full certificate record.
	GetCertificate(ctx context.Context, certificateID uint64) (*domain.Certificate, error)

	// HasRole reports whether account holds the given registry capability.
	HasRole(ctx context.Context, role domain.Role, account domain.AccountID) bool
}

// CertificateWriterSvc defines the mutating registry operations.
type CertificateWriterSvc interface {
	// MintCertificate issues the next certificate to target. Caller must hold
	// the minter capability.
	MintCertificate(ctx context.Context, caller, target domain.AccountID, courseID, metadataRef string) (*domain.Certificate, error)

	// GrantRole grants a registry capability. Admin only.
	GrantRole(ctx context.Context, caller domain.AccountID, role domain.Role, target domain.AccountID) error

	// RevokeRole revokes a registry capability. Admin only.
	RevokeRole(ctx context.Context, caller domain.AccountID, role domain.Role, target domain.AccountID) error
}

// CertificateSvcFacade combines all certificate registry interfaces.
type CertificateSvcFacade interface {
	CertificateReaderSvc
	CertificateWriterSvc
}
