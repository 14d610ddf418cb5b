package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/geek-edu/courseledger/internal/apperrors"
	"github.com/geek-edu/courseledger/internal/core/domain"
	portsrepo "github.com/geek-edu/courseledger/internal/core/ports/repositories"
)

// ErrInvalidTarget rejects mints to the null identity.
var ErrInvalidTarget = fmt.Errorf("%w: invalid target account", apperrors.ErrValidation)

// certKey indexes certificates by holder and external course ID.
type certKey struct {
	account  domain.AccountID
	courseID string
}

// CertificateService owns all certificate records, the monotonic ID counter
// and the registry's capability set. IDs start at 1, strictly increase in
// commit order and are never reused, even across failed calls.
type CertificateService struct {
	mu sync.RWMutex

	roles        domain.RoleSet
	certificates map[uint64]*domain.Certificate
	byHolder     map[certKey][]uint64
	nextID       uint64

	recorder portsrepo.EventRecorder
}

// NewCertificateService creates a registry whose admin holds both the
// administrator and minter capabilities, mirroring a deployer that can mint
// until it delegates.
func NewCertificateService(admin domain.AccountID, recorder portsrepo.EventRecorder) *CertificateService {
	roles := domain.NewRoleSet()
	roles.Grant(domain.RoleAdmin, admin)
	roles.Grant(domain.RoleMinter, admin)
	return &CertificateService{
		roles:        roles,
		certificates: make(map[uint64]*domain.Certificate),
		byHolder:     make(map[certKey][]uint64),
		nextID:       1,
		recorder:     recorder,
	}
}

// HasRole reports whether account holds the given registry capability.
func (s *CertificateService) HasRole(_ context.Context, role domain.Role, account domain.AccountID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roles.Has(role, account)
}

// GrantRole grants a registry capability. Admin only.
func (s *CertificateService) GrantRole(ctx context.Context, caller domain.AccountID, role domain.Role, target domain.AccountID) error {
	if err := s.requireRoleArgs(role, target); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.roles.Has(domain.RoleAdmin, caller) {
		return fmt.Errorf("%w: registry administrator required", apperrors.ErrUnauthorized)
	}
	s.roles.Grant(role, target)
	return nil
}

// RevokeRole revokes a registry capability. Admin only.
func (s *CertificateService) RevokeRole(ctx context.Context, caller domain.AccountID, role domain.Role, target domain.AccountID) error {
	if err := s.requireRoleArgs(role, target); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.roles.Has(domain.RoleAdmin, caller) {
		return fmt.Errorf("%w: registry administrator required", apperrors.ErrUnauthorized)
	}
	s.roles.Revoke(role, target)
	return nil
}

func (s *CertificateService) requireRoleArgs(role domain.Role, target domain.AccountID) error {
	if role != domain.RoleAdmin && role != domain.RoleMinter {
		return fmt.Errorf("%w: unknown registry role %q", apperrors.ErrValidation, role)
	}
	if target == domain.NilAccount {
		return fmt.Errorf("%w: target account must be set", apperrors.ErrValidation)
	}
	return nil
}

// MintCertificate issues the next certificate to target. Caller must hold the
// minter capability; the target must be a real identity.
func (s *CertificateService) MintCertificate(ctx context.Context, caller, target domain.AccountID, courseID, metadataRef string) (*domain.Certificate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.roles.Has(domain.RoleMinter, caller) {
		return nil, fmt.Errorf("%w: minter capability required", apperrors.ErrUnauthorized)
	}
	if target == domain.NilAccount {
		return nil, ErrInvalidTarget
	}

	cert := &domain.Certificate{
		CertificateID: s.nextID,
		CourseID:      courseID,
		Owner:         target,
		MetadataRef:   metadataRef,
		MintedAt:      time.Now().UTC(),
	}
	s.certificates[cert.CertificateID] = cert
	key := certKey{account: target, courseID: courseID}
	s.byHolder[key] = append(s.byHolder[key], cert.CertificateID)
	s.nextID++

	s.recorder.Record(ctx, domain.NewEvent(domain.EventCertificateMinted, domain.CertificateMinted{
		CertificateID: cert.CertificateID,
		CourseID:      courseID,
		Owner:         target,
	}))

	out := *cert
	return &out, nil
}

// HasCertificate reports whether account holds at least one certificate for
// the course.
func (s *CertificateService) HasCertificate(_ context.Context, account domain.AccountID, courseID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byHolder[certKey{account: account, courseID: courseID}]) > 0
}

// GetCertificatesFor returns the certificate IDs for the (account, course)
// pair in mint order. Never an error; empty slice when none.
func (s *CertificateService) GetCertificatesFor(_ context.Context, account domain.AccountID, courseID string) []uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byHolder[certKey{account: account, courseID: courseID}]
	out := make([]uint64, len(ids))
	copy(out, ids)
	return out
}

// MetadataOf returns the metadata reference of a certificate.
func (s *CertificateService) MetadataOf(_ context.Context, certificateID uint64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cert, ok := s.certificates[certificateID]
	if !ok {
		return "", fmt.Errorf("%w: certificate %d", apperrors.ErrNotFound, certificateID)
	}
	return cert.MetadataRef, nil
}

// GetCertificate returns the full certificate record.
func (s *CertificateService) GetCertificate(_ context.Context, certificateID uint64) (*domain.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cert, ok := s.certificates[certificateID]
	if !ok {
		return nil, fmt.Errorf("%w: certificate %d", apperrors.ErrNotFound, certificateID)
	}
	out := *cert
	return &out, nil
}
