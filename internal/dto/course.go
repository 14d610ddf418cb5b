package dto

import (
	"time"

	"github.com/geek-edu/courseledger/internal/core/domain"
	"github.com/geek-edu/courseledger/internal/utils"
	"github.com/shopspring/decimal"
)

// AddCourseRequest defines the data needed to create a catalog entry.
type AddCourseRequest struct {
	ExternalID string          `json:"externalId" binding:"required"`
	Name       string          `json:"name" binding:"required"`
	Price      decimal.Decimal `json:"price" binding:"required,integeramount"`
}

// UpdateCourseRequest rewrites an existing catalog entry. OldExternalID comes
// from the URL, not the body.
type UpdateCourseRequest struct {
	OldExternalID string          `json:"-"`
	NewExternalID string          `json:"newExternalId" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	Price         decimal.Decimal `json:"price" binding:"required,integeramount"`
	IsActive      *bool           `json:"isActive" binding:"required"`
}

// CourseResponse defines the data returned for a catalog entry.
type CourseResponse struct {
	CourseID       uint64          `json:"courseId"`
	ExternalID     string          `json:"externalId"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	FormattedPrice string          `json:"formattedPrice"`
	IsActive       bool            `json:"isActive"`
	Creator        string          `json:"creator"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ToCourseResponse converts a domain.Course to its response DTO.
func ToCourseResponse(course *domain.Course) CourseResponse {
	return CourseResponse{
		CourseID:       course.CourseID,
		ExternalID:     course.ExternalID,
		Name:           course.Name,
		Price:          course.Price,
		FormattedPrice: utils.FormatTokenAmount(course.Price),
		IsActive:       course.IsActive,
		Creator:        string(course.Creator),
		CreatedAt:      course.CreatedAt,
		LastUpdatedAt:  course.LastUpdatedAt,
	}
}

// ToListCourseResponse converts a slice of courses to response DTOs.
func ToListCourseResponse(courses []domain.Course) []CourseResponse {
	res := make([]CourseResponse, len(courses))
	for i := range courses {
		res[i] = ToCourseResponse(&courses[i])
	}
	return res
}

// PurchaseCourseResponse is returned after a successful purchase.
type PurchaseCourseResponse struct {
	Certificate CertificateResponse `json:"certificate"`
	Course      CourseResponse      `json:"course"`
}
