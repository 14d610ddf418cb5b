package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/geek-edu/courseledger/internal/apperrors"
	"github.com/geek-edu/courseledger/internal/core/domain"
	portsrepo "github.com/geek-edu/courseledger/internal/core/ports/repositories"
	portssvc "github.com/geek-edu/courseledger/internal/core/ports/services"
	"github.com/geek-edu/courseledger/internal/dto"
)

var (
	ErrEmptyExternalID = fmt.Errorf("%w: external course ID cannot be empty", apperrors.ErrValidation)
	ErrDuplicateCourse = fmt.Errorf("%w: course already exists", apperrors.ErrDuplicate)
	ErrCourseNotFound  = fmt.Errorf("%w: course does not exist", apperrors.ErrNotFound)
	ErrCourseInactive  = fmt.Errorf("%w: course is not active", apperrors.ErrConflict)
)

type purchaseKey struct {
	account    domain.AccountID
	externalID string
}

// CourseMarketService owns the course catalog and the external-ID index, and
// orchestrates purchases against the ledger and the certificate registry. It
// holds no ledger or registry state of its own; the treasury account is the
// market's identity on both.
type CourseMarketService struct {
	mu sync.Mutex

	owner           domain.AccountID
	treasury        domain.AccountID
	metadataBaseURI string

	courses       map[uint64]*domain.Course
	externalIndex map[string]uint64
	purchases     map[purchaseKey]bool
	courseCount   uint64

	ledger   portssvc.LedgerSvcFacade
	certs    portssvc.CertificateSvcFacade
	recorder portsrepo.EventRecorder
}

// NewCourseMarketService creates a market owned by owner. The treasury
// account receives purchase debits and must be granted the registry's minter
// capability during bootstrap.
func NewCourseMarketService(
	owner, treasury domain.AccountID,
	metadataBaseURI string,
	ledger portssvc.LedgerSvcFacade,
	certs portssvc.CertificateSvcFacade,
	recorder portsrepo.EventRecorder,
) *CourseMarketService {
	return &CourseMarketService{
		owner:           owner,
		treasury:        treasury,
		metadataBaseURI: strings.TrimSuffix(metadataBaseURI, "/"),
		courses:         make(map[uint64]*domain.Course),
		externalIndex:   make(map[string]uint64),
		purchases:       make(map[purchaseKey]bool),
		ledger:          ledger,
		certs:           certs,
		recorder:        recorder,
	}
}

// IsOwner reports whether account holds the market owner capability.
func (s *CourseMarketService) IsOwner(_ context.Context, account domain.AccountID) bool {
	return account == s.owner && account != domain.NilAccount
}

// AddCourse creates a catalog entry. Owner only; external IDs are unique
// among mapped courses.
func (s *CourseMarketService) AddCourse(ctx context.Context, caller domain.AccountID, req dto.AddCourseRequest) (*domain.Course, error) {
	if !s.IsOwner(ctx, caller) {
		return nil, fmt.Errorf("%w: market owner required", apperrors.ErrUnauthorized)
	}
	if req.ExternalID == "" {
		return nil, ErrEmptyExternalID
	}
	if !domain.IsIntegerAmount(req.Price) {
		return nil, fmt.Errorf("%w: price must be a non-negative integer", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.externalIndex[req.ExternalID] != domain.UnmappedCourseID {
		return nil, ErrDuplicateCourse
	}

	now := time.Now().UTC()
	course := &domain.Course{
		CourseID:   s.courseCount + 1,
		ExternalID: req.ExternalID,
		Name:       req.Name,
		Price:      req.Price,
		IsActive:   true,
		Creator:    caller,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	s.courses[course.CourseID] = course
	s.externalIndex[course.ExternalID] = course.CourseID
	s.courseCount++

	s.recorder.Record(ctx, domain.NewEvent(domain.EventCourseAdded, domain.CourseAdded{
		CourseID:   course.CourseID,
		ExternalID: course.ExternalID,
		Name:       course.Name,
	}))

	out := *course
	return &out, nil
}

// UpdateCourse rewrites every field of an existing entry and moves its
// external key. The mapping for the new external ID is overwritten
// unconditionally, even when it currently belongs to a different course;
// that matches the observed catalog behavior and is deliberately not
// guarded here.
func (s *CourseMarketService) UpdateCourse(ctx context.Context, caller domain.AccountID, req dto.UpdateCourseRequest) (*domain.Course, error) {
	if !s.IsOwner(ctx, caller) {
		return nil, fmt.Errorf("%w: market owner required", apperrors.ErrUnauthorized)
	}
	if req.OldExternalID == "" || req.NewExternalID == "" {
		return nil, ErrEmptyExternalID
	}
	if !domain.IsIntegerAmount(req.Price) {
		return nil, fmt.Errorf("%w: price must be a non-negative integer", apperrors.ErrValidation)
	}
	if req.IsActive == nil {
		return nil, fmt.Errorf("%w: isActive must be set", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	courseID := s.externalIndex[req.OldExternalID]
	if courseID == domain.UnmappedCourseID {
		return nil, ErrCourseNotFound
	}
	course := s.courses[courseID]

	course.ExternalID = req.NewExternalID
	course.Name = req.Name
	course.Price = req.Price
	course.IsActive = *req.IsActive
	course.LastUpdatedAt = time.Now().UTC()

	s.externalIndex[req.OldExternalID] = domain.UnmappedCourseID
	s.externalIndex[req.NewExternalID] = courseID

	s.recorder.Record(ctx, domain.NewEvent(domain.EventCourseUpdated, domain.CourseUpdated{
		CourseID:      courseID,
		OldExternalID: req.OldExternalID,
		NewExternalID: req.NewExternalID,
		Name:          course.Name,
		Price:         course.Price,
		IsActive:      course.IsActive,
	}))

	out := *course
	return &out, nil
}

// GetCourseByExternalID looks a course up by its external identifier.
func (s *CourseMarketService) GetCourseByExternalID(_ context.Context, externalID string) (*domain.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	courseID := s.externalIndex[externalID]
	if courseID == domain.UnmappedCourseID {
		return nil, ErrCourseNotFound
	}
	out := *s.courses[courseID]
	return &out, nil
}

// ListCourses returns the whole catalog in course-ID order, deactivated
// entries included.
func (s *CourseMarketService) ListCourses(_ context.Context) []domain.Course {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Course, 0, s.courseCount)
	for id := uint64(1); id <= s.courseCount; id++ {
		out = append(out, *s.courses[id])
	}
	return out
}

// HasPurchased reports whether account has purchased the course.
func (s *CourseMarketService) HasPurchased(_ context.Context, account domain.AccountID, externalID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.purchases[purchaseKey{account: account, externalID: externalID}]
}

// PurchaseCourse debits the caller by the course price and mints the
// completion certificate. The debit commits first; mint preconditions are
// verified before it so the second leg cannot fail, and if it ever does the
// debit is reversed before the error surfaces. Nothing is debited for an
// absent or inactive course.
func (s *CourseMarketService) PurchaseCourse(ctx context.Context, caller domain.AccountID, externalID string) (*domain.Certificate, error) {
	if caller == domain.NilAccount {
		return nil, fmt.Errorf("%w: caller must be set", apperrors.ErrValidation)
	}
	if externalID == "" {
		return nil, ErrEmptyExternalID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	courseID := s.externalIndex[externalID]
	if courseID == domain.UnmappedCourseID {
		return nil, ErrCourseNotFound
	}
	course := s.courses[courseID]
	if !course.IsActive {
		return nil, ErrCourseInactive
	}

	if !s.certs.HasRole(ctx, domain.RoleMinter, s.treasury) {
		return nil, fmt.Errorf("%w: market treasury lacks the minter capability", apperrors.ErrUnauthorized)
	}

	if err := s.ledger.Transfer(ctx, caller, s.treasury, course.Price); err != nil {
		return nil, fmt.Errorf("failed to debit course price: %w", err)
	}

	cert, err := s.certs.MintCertificate(ctx, s.treasury, caller, course.ExternalID, s.metadataRef(course.ExternalID))
	if err != nil {
		if rbErr := s.ledger.Transfer(ctx, s.treasury, caller, course.Price); rbErr != nil {
			return nil, fmt.Errorf("failed to refund debit after mint failure (%v): %w", rbErr, err)
		}
		return nil, fmt.Errorf("failed to mint certificate: %w", err)
	}

	s.purchases[purchaseKey{account: caller, externalID: course.ExternalID}] = true

	s.recorder.Record(ctx, domain.NewEvent(domain.EventCoursePurchased, domain.CoursePurchased{
		Buyer:      caller,
		CourseID:   course.CourseID,
		ExternalID: course.ExternalID,
		Price:      course.Price,
	}))
	return cert, nil
}

func (s *CourseMarketService) metadataRef(externalID string) string {
	return s.metadataBaseURI + "/" + externalID
}
