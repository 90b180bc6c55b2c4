package domain

// ReviewStatus tracks human review of a persisted parse result.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// AllowedExtensions maps accepted upload extensions to their content types.
var AllowedExtensions = map[string]string{
	"pdf":  "application/pdf",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
}

// ValidReviewStatus reports whether s is a known review status.
func ValidReviewStatus(s string) bool {
	switch ReviewStatus(s) {
	case ReviewPending, ReviewApproved, ReviewRejected:
		return true
	}
	return false
}
