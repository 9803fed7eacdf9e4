package domain

import "time"

type DamageReportStatus string

const (
	DamageStatusOpen     DamageReportStatus = "open"
	DamageStatusInReview DamageReportStatus = "in_review"
	DamageStatusResolved DamageReportStatus = "resolved"
)

func (s DamageReportStatus) Valid() bool {
	return s == DamageStatusOpen || s == DamageStatusInReview || s == DamageStatusResolved
}

type DamageReport struct {
	ID          int32              `json:"id"`
	BookingID   int32              `json:"booking_id"`
	UserID      int32              `json:"user_id"`
	Description string             `json:"description"`
	Status      DamageReportStatus `json:"status"`
	Images      []DamageImage      `json:"images,omitempty"`
	CreatedOn   time.Time          `json:"created_on"`
	UpdatedOn   time.Time          `json:"updated_on"`
}

type DamageImage struct {
	ID         int32  `json:"id"`
	ReportID   int32  `json:"report_id"`
	StorageKey string `json:"-"`
	URL        string `json:"url"`
}
