package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jobunya-carrental-backend/internal/domain"
	"jobunya-carrental-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, vehicle_id, user_id, start_date, end_date, days, total_price_cents, status, pickup_location_id, dropoff_location_id, created_on, updated_on`

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (vehicle_id, user_id, start_date, end_date, days, total_price_cents, status, pickup_location_id, dropoff_location_id, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, b.VehicleID, b.UserID, b.StartDate, b.EndDate, b.Days, b.TotalPriceCents, b.Status, b.PickupLocationID, b.DropoffLocationID, now, now).Scan(&b.ID)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	b := &domain.Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.VehicleID, &b.UserID, &b.StartDate, &b.EndDate, &b.Days, &b.TotalPriceCents, &b.Status, &b.PickupLocationID, &b.DropoffLocationID, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	query := `UPDATE bookings SET status=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	return err
}

func (r *bookingRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	return err
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *bookingRepository) ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bookings, err := collectBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	return bookings, count, nil
}

func (r *bookingRepository) CountOverlapping(ctx context.Context, vehicleID int32, start, end string) (int32, error) {
	// Two inclusive ranges [a1,a2] and [b1,b2] overlap iff a1 <= b2 AND b1 <= a2.
	query := `SELECT count(*) FROM bookings
	          WHERE vehicle_id = $1
	            AND status IN ('pending', 'active')
	            AND start_date <= $3
	            AND end_date >= $2`
	var count int32
	err := r.db.QueryRowContext(ctx, query, vehicleID, start, end).Scan(&count)
	return count, err
}

func collectBookings(rows *sql.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.VehicleID, &b.UserID, &b.StartDate, &b.EndDate, &b.Days, &b.TotalPriceCents, &b.Status, &b.PickupLocationID, &b.DropoffLocationID, &b.CreatedOn, &b.UpdatedOn); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
