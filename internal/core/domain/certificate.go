package domain

import "time"

// Certificate is a uniquely numbered, non-transferable record tying an
// account to a completed course. Once minted, the owner never changes; there
// is no transfer or burn.
type Certificate struct {
	CertificateID uint64    `json:"certificateId"` // monotonic, starts at 1
	CourseID      string    `json:"courseId"`      // external course identifier
	Owner         AccountID `json:"owner"`
	MetadataRef   string    `json:"metadataRef"` // opaque URI
	MintedAt      time.Time `json:"mintedAt"`
}
