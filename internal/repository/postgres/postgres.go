package postgres

import (
	"database/sql"

	"jobunya-carrental-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.VehicleRepository
	repository.BookingRepository
	repository.LocationRepository
	repository.DamageReportRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		VehicleRepository:      NewVehicleRepository(db),
		BookingRepository:      NewBookingRepository(db),
		LocationRepository:     NewLocationRepository(db),
		DamageReportRepository: NewDamageReportRepository(db),
	}
}
