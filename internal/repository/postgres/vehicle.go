package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jobunya-carrental-backend/internal/domain"
	"jobunya-carrental-backend/internal/repository"

	"github.com/lib/pq"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, slug, name, category, price_per_day_cents, seats, transmission, fuel_type, min_days, available, features, created_on, updated_on`

func scanVehicle(row interface{ Scan(...interface{}) error }) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	err := row.Scan(&v.ID, &v.Slug, &v.Name, &v.Category, &v.PricePerDayCents, &v.Seats, &v.Transmission, &v.FuelType, &v.MinDays, &v.Available, pq.Array(&v.Features), &v.CreatedOn, &v.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (slug, name, category, price_per_day_cents, seats, transmission, fuel_type, min_days, available, features, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, v.Slug, v.Name, v.Category, v.PricePerDayCents, v.Seats, v.Transmission, v.FuelType, v.MinDays, v.Available, pq.Array(v.Features), now, now).Scan(&v.ID)
}

func (r *vehicleRepository) GetBySlug(ctx context.Context, slug string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE slug = $1`
	return scanVehicle(r.db.QueryRowContext(ctx, query, slug))
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	return scanVehicle(r.db.QueryRowContext(ctx, query, id))
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET name=$1, category=$2, price_per_day_cents=$3, seats=$4, transmission=$5, fuel_type=$6, min_days=$7, available=$8, features=$9, updated_on=$10 WHERE id=$11`
	_, err := r.db.ExecContext(ctx, query, v.Name, v.Category, v.PricePerDayCents, v.Seats, v.Transmission, v.FuelType, v.MinDays, v.Available, pq.Array(v.Features), time.Now(), v.ID)
	return err
}

func (r *vehicleRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	return err
}

func (r *vehicleRepository) List(ctx context.Context, filter domain.VehicleFilter, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, filter.Category)
		argIdx++
	}
	if filter.Transmission != "" {
		query += fmt.Sprintf(" AND transmission = $%d", argIdx)
		args = append(args, filter.Transmission)
		argIdx++
	}
	if filter.FuelType != "" {
		query += fmt.Sprintf(" AND fuel_type = $%d", argIdx)
		args = append(args, filter.FuelType)
		argIdx++
	}
	if filter.MaxPriceCents > 0 {
		query += fmt.Sprintf(" AND price_per_day_cents <= $%d", argIdx)
		args = append(args, filter.MaxPriceCents)
		argIdx++
	}
	if filter.AvailableOnly {
		query += " AND available = true"
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

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, count, rows.Err()
}

func (r *vehicleRepository) AddImage(ctx context.Context, image *domain.VehicleImage) error {
	query := `INSERT INTO vehicle_images (vehicle_id, storage_key, url, is_primary) VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRowContext(ctx, query, image.VehicleID, image.StorageKey, image.URL, image.IsPrimary).Scan(&image.ID)
}

func (r *vehicleRepository) GetImages(ctx context.Context, vehicleID int32) ([]domain.VehicleImage, error) {
	query := `SELECT id, vehicle_id, storage_key, url, is_primary FROM vehicle_images WHERE vehicle_id = $1 ORDER BY is_primary DESC, id`
	rows, err := r.db.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.VehicleImage
	for rows.Next() {
		var img domain.VehicleImage
		if err := rows.Scan(&img.ID, &img.VehicleID, &img.StorageKey, &img.URL, &img.IsPrimary); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *vehicleRepository) DeleteImages(ctx context.Context, vehicleID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM vehicle_images WHERE vehicle_id = $1`, vehicleID)
	return err
}
