package services

import (
	"context"

	"github.com/geek-edu/courseledger/internal/core/domain"
	"github.com/geek-edu/courseledger/internal/dto"
)

// CourseMarketReaderSvc defines read operations on the course catalog.
type CourseMarketReaderSvc interface {
	// GetCourseByExternalID looks a course up by its external identifier.
	GetCourseByExternalID(ctx context.Context, externalID string) (*domain.Course, error)

	// ListCourses returns the whole catalog in course-ID order.
	ListCourses(ctx context.Context) []domain.Course

	// HasPurchased reports whether account has purchased the course.
	HasPurchased(ctx context.Context, account domain.AccountID, externalID string) bool

	// IsOwner reports whether account holds the market owner capability.
	IsOwner(ctx context.Context, account domain.AccountID) bool
}

// CourseMarketWriterSvc defines the mutating market operations.
type CourseMarketWriterSvc interface {
	// AddCourse creates a catalog entry. Owner only.
	AddCourse(ctx context.Context, caller domain.AccountID, req dto.AddCourseRequest) (*domain.Course, error)

	// UpdateCourse rewrites an existing entry and moves its external key.
	// Owner only.
	UpdateCourse(ctx context.Context, caller domain.AccountID, req dto.UpdateCourseRequest) (*domain.Course, error)

	// PurchaseCourse debits the caller by the course price and mints the
	// completion certificate, all-or-nothing.
	PurchaseCourse(ctx context.Context, caller domain.AccountID, externalID string) (*domain.Certificate, error)
}

// CourseMarketSvcFacade combines all course market interfaces.
type CourseMarketSvcFacade interface {
	CourseMarketReaderSvc
	CourseMarketWriterSvc
}
