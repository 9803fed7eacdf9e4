package pricing

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRange = errors.New("end date must be after start date")

// Days returns the billable rental duration between two dates.
//
// The canonical convention is inclusive: both the pickup day and the drop-off
// day are billable, so days = (end - start in whole days) + 1. Every caller
// (quote preview, booking creation, lifecycle jobs) uses this one function;
// there is no second day-counting rule anywhere in the codebase.
func Days(start, end time.Time) (int32, error) {
	s := truncateToDay(start)
	e := truncateToDay(end)
	if e.Before(s) {
		return 0, ErrInvalidRange
	}
	diff := int32(e.Sub(s).Hours() / 24)
	return diff + 1, nil
}

type ValidationResult struct {
	OK     bool
	Reason string
}

const ReasonBelowMinimum = "below-minimum"

// Validate gates a booking against the vehicle's minimum-hire-period.
// days == minDays passes; only days < minDays is rejected.
func Validate(days, minDays int32) ValidationResult {
	if days < minDays {
		return ValidationResult{OK: false, Reason: ReasonBelowMinimum}
	}
	return ValidationResult{OK: true}
}

// Total computes days * dailyRate. A non-positive day count yields zero; a
// zero total must never be persisted as a booking.
func Total(days int32, dailyRateCents int64) int64 {
	if days <= 0 {
		return 0
	}
	return int64(days) * dailyRateCents
}

// Quote is the server-computed rental preview. It mirrors exactly what
// booking creation validates, so a client that saw an OK quote and submits
// the same dates cannot be rejected on duration grounds.
type Quote struct {
	Days            int32  `json:"days"`
	TotalPriceCents int64  `json:"total_price"`
	IsValid         bool   `json:"is_valid"`
	Violation       string `json:"violation,omitempty"`
}

// Compute builds a quote for the given date range against a vehicle's daily
// rate and minimum-hire-period.
func Compute(start, end time.Time, dailyRateCents int64, minDays int32) Quote {
	days, err := Days(start, end)
	if err != nil {
		return Quote{Days: 0, TotalPriceCents: 0, IsValid: false, Violation: "invalid-range"}
	}
	if v := Validate(days, minDays); !v.OK {
		return Quote{Days: days, TotalPriceCents: 0, IsValid: false, Violation: v.Reason}
	}
	return Quote{Days: days, TotalPriceCents: Total(days, dailyRateCents), IsValid: true}
}

// MinimumMessage is the user-visible rejection for a too-short hire. It must
// name the vehicle's specific minimum.
func MinimumMessage(minDays int32) string {
	return fmt.Sprintf("minimum rental period for this vehicle is %d days", minDays)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
