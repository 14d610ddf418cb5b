package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Course is a catalog entry. Courses are never physically deleted; they are
// deactivated via IsActive. The ExternalID is the key the rest of the
// platform knows the course by.
type Course struct {
	CourseID   uint64          `json:"courseId"` // internal, monotonic, starts at 1
	ExternalID string          `json:"externalId"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"` // in tokens
	IsActive   bool            `json:"isActive"`
	Creator    AccountID       `json:"creator"`
	AuditFields
}

// AuditFields holds standard audit information for catalog entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// UnmappedCourseID is the sentinel an external ID points at once its mapping
// has been cleared. Lookups treat it the same as an absent key.
const UnmappedCourseID uint64 = 0
