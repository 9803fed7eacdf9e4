package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDays(t *testing.T) {
	t.Run("SameDayIsOneDay", func(t *testing.T) {
		days, err := Days(date("2025-06-01"), date("2025-06-01"))
		assert.NoError(t, err)
		assert.Equal(t, int32(1), days)
	})

	t.Run("ConsecutiveDaysAreTwoDays", func(t *testing.T) {
		days, err := Days(date("2025-06-01"), date("2025-06-02"))
		assert.NoError(t, err)
		assert.Equal(t, int32(2), days)
	})

	t.Run("WeekSpan", func(t *testing.T) {
		days, err := Days(date("2025-06-01"), date("2025-06-07"))
		assert.NoError(t, err)
		assert.Equal(t, int32(7), days)
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		_, err := Days(date("2025-06-05"), date("2025-06-01"))
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("TimeOfDayIgnored", func(t *testing.T) {
		start := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)
		end := time.Date(2025, 6, 2, 0, 1, 0, 0, time.UTC)
		days, err := Days(start, end)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), days)
	})

	t.Run("MonotonicInEndDate", func(t *testing.T) {
		start := date("2025-06-01")
		prev := int32(0)
		for i := 0; i < 30; i++ {
			days, err := Days(start, start.AddDate(0, 0, i))
			assert.NoError(t, err)
			assert.Greater(t, days, prev)
			prev = days
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("ExactlyMinimumPasses", func(t *testing.T) {
		assert.True(t, Validate(3, 3).OK)
	})

	t.Run("AboveMinimumPasses", func(t *testing.T) {
		assert.True(t, Validate(10, 3).OK)
	})

	t.Run("BelowMinimumFails", func(t *testing.T) {
		res := Validate(2, 3)
		assert.False(t, res.OK)
		assert.Equal(t, ReasonBelowMinimum, res.Reason)
	})
}

func TestTotal(t *testing.T) {
	t.Run("DaysTimesRate", func(t *testing.T) {
		assert.Equal(t, int64(135000), Total(3, 45000))
	})

	t.Run("ZeroDaysYieldsZero", func(t *testing.T) {
		assert.Equal(t, int64(0), Total(0, 45000))
	})

	t.Run("NegativeDaysYieldsZero", func(t *testing.T) {
		assert.Equal(t, int64(0), Total(-1, 45000))
	})
}

func TestCompute(t *testing.T) {
	t.Run("TwoDayWeekendRental", func(t *testing.T) {
		q := Compute(date("2025-06-01"), date("2025-06-02"), 45000, 1)
		assert.True(t, q.IsValid)
		assert.Equal(t, int32(2), q.Days)
		assert.Equal(t, int64(90000), q.TotalPriceCents)
		assert.Empty(t, q.Violation)
	})

	t.Run("BelowMinimumHasZeroTotal", func(t *testing.T) {
		q := Compute(date("2025-06-01"), date("2025-06-02"), 45000, 5)
		assert.False(t, q.IsValid)
		assert.Equal(t, int32(2), q.Days)
		assert.Equal(t, int64(0), q.TotalPriceCents)
		assert.Equal(t, ReasonBelowMinimum, q.Violation)
	})

	t.Run("InvertedRangeHasZeroTotal", func(t *testing.T) {
		q := Compute(date("2025-06-05"), date("2025-06-01"), 45000, 1)
		assert.False(t, q.IsValid)
		assert.Equal(t, int32(0), q.Days)
		assert.Equal(t, int64(0), q.TotalPriceCents)
		assert.Equal(t, "invalid-range", q.Violation)
	})
}

func TestMinimumMessage(t *testing.T) {
	assert.Equal(t, "minimum rental period for this vehicle is 3 days", MinimumMessage(3))
}
