package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusActive, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo encodes the admin-driven booking lifecycle. Completed and
// cancelled are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusActive || next == BookingStatusCancelled
	case BookingStatusActive:
		return next == BookingStatusCompleted || next == BookingStatusCancelled
	default:
		return false
	}
}

type Booking struct {
	ID                int32         `json:"id"`
	VehicleID         int32         `json:"vehicle_id"`
	UserID            int32         `json:"user_id"`
	StartDate         time.Time     `json:"start_date"`
	EndDate           time.Time     `json:"end_date"`
	Days              int32         `json:"days"`
	TotalPriceCents   int64         `json:"total_price"`
	Status            BookingStatus `json:"status"`
	PickupLocationID  int32         `json:"pickup_location"`
	DropoffLocationID int32         `json:"dropoff_location"`
	CreatedOn         time.Time     `json:"created_on"`
	UpdatedOn         time.Time     `json:"updated_on"`
}
