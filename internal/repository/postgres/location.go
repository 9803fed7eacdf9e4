package postgres

import (
	"context"
	"database/sql"

	"jobunya-carrental-backend/internal/domain"
	"jobunya-carrental-backend/internal/repository"
)

type locationRepository struct {
	db *sql.DB
}

func NewLocationRepository(db *sql.DB) repository.LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, l *domain.Location) error {
	query := `INSERT INTO locations (name, address, city) VALUES ($1, $2, $3) RETURNING id`
	return r.db.QueryRowContext(ctx, query, l.Name, l.Address, l.City).Scan(&l.ID)
}

func (r *locationRepository) GetByID(ctx context.Context, id int32) (*domain.Location, error) {
	l := &domain.Location{}
	query := `SELECT id, name, address, city FROM locations WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&l.ID, &l.Name, &l.Address, &l.City)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *locationRepository) Update(ctx context.Context, l *domain.Location) error {
	query := `UPDATE locations SET name=$1, address=$2, city=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, l.Name, l.Address, l.City, l.ID)
	return err
}

func (r *locationRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id)
	return err
}

func (r *locationRepository) List(ctx context.Context) ([]domain.Location, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, address, city FROM locations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []domain.Location
	for rows.Next() {
		var l domain.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.City); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}
