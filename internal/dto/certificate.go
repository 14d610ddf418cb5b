package dto

import (
	"time"

	"github.com/geek-edu/courseledger/internal/core/domain"
)

// MintCertificateRequest issues a certificate directly (minter capability
// required); the market purchase flow builds the same request internally.
type MintCertificateRequest struct {
	Target      string `json:"target" binding:"required"`
	CourseID    string `json:"courseId" binding:"required"`
	MetadataRef string `json:"metadataRef" binding:"required,uri"`
}

// CertificateResponse defines the data returned for one certificate.
type CertificateResponse struct {
	CertificateID uint64    `json:"certificateId"`
	CourseID      string    `json:"courseId"`
	Owner         string    `json:"owner"`
	MetadataRef   string    `json:"metadataRef"`
	MintedAt      time.Time `json:"mintedAt"`
}

// HoldingsResponse answers the (account, course) index queries.
type HoldingsResponse struct {
	Account        string   `json:"account"`
	CourseID       string   `json:"courseId"`
	HasCertificate bool     `json:"hasCertificate"`
	CertificateIDs []uint64 `json:"certificateIds"`
}

// RoleStatusResponse answers a capability holder query.
type RoleStatusResponse struct {
	Account string `json:"account"`
	Role    string `json:"role"`
	Holds   bool   `json:"holds"`
}

// ToCertificateResponse converts a domain.Certificate to its response DTO.
func ToCertificateResponse(cert *domain.Certificate) CertificateResponse {
	return CertificateResponse{
		CertificateID: cert.CertificateID,
		CourseID:      cert.CourseID,
		Owner:         string(cert.Owner),
		MetadataRef:   cert.MetadataRef,
		MintedAt:      cert.MintedAt,
	}
}
