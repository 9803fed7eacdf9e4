package jobs

import (
	"context"
	"time"

	"jobunya-carrental-backend/internal/logger"
)

// CompleteElapsedBookings marks active bookings as completed once their
// end_date has passed
func (jr *JobRunner) CompleteElapsedBookings() {
	jr.runWithRecovery("CompleteElapsedBookings", func() {
		ctx := context.Background()

		query := `
			UPDATE bookings
			SET status = 'completed',
			    updated_on = NOW()
			WHERE status = 'active'
			  AND end_date < $1
			RETURNING id, user_id, vehicle_id, end_date
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().UTC().Format("2006-01-02"))
		if err != nil {
			logger.Error("Failed to complete elapsed bookings", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var bookingID, userID, vehicleID int32
			var endDate string
			if err := rows.Scan(&bookingID, &userID, &vehicleID, &endDate); err != nil {
				logger.Error("Failed to scan elapsed booking", "error", err)
				continue
			}
			count++
			logger.Debug("Completed elapsed booking",
				"booking_id", bookingID,
				"user_id", userID,
				"vehicle_id", vehicleID,
				"end_date", endDate)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating elapsed bookings", "error", err)
			return
		}

		logger.Info("Marked bookings as completed", "count", count)
	})
}

// SendPickupReminders emails customers whose active booking starts tomorrow
func (jr *JobRunner) SendPickupReminders() {
	jr.runWithRecovery("SendPickupReminders", func() {
		ctx := context.Background()
		tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

		query := `
			SELECT u.email, u.full_name, v.name, b.start_date
			FROM bookings b
			JOIN users u ON u.id = b.user_id
			JOIN vehicles v ON v.id = b.vehicle_id
			WHERE b.status = 'active'
			  AND b.start_date = $1
		`

		rows, err := jr.db.QueryContext(ctx, query, tomorrow)
		if err != nil {
			logger.Error("Failed to query upcoming pickups", "error", err)
			return
		}
		defer rows.Close()

		sent := 0
		for rows.Next() {
			var email, name, vehicleName string
			var startDate time.Time
			if err := rows.Scan(&email, &name, &vehicleName, &startDate); err != nil {
				logger.Error("Failed to scan upcoming pickup", "error", err)
				continue
			}
			if err := jr.services.Email.SendPickupReminder(ctx, email, name, vehicleName, startDate.Format("2006-01-02")); err != nil {
				logger.Error("Failed to send pickup reminder", "email", email, "error", err)
				continue
			}
			sent++
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating upcoming pickups", "error", err)
			return
		}

		logger.Info("Sent pickup reminders", "count", sent)
	})
}
