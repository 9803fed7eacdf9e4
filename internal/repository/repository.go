package repository

import (
	"context"

	"jobunya-carrental-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id int32, passwordHash string) error
	MarkEmailVerified(ctx context.Context, id int32) error
	ListCustomers(ctx context.Context) ([]domain.User, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetBySlug(ctx context.Context, slug string) (*domain.Vehicle, error)
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter domain.VehicleFilter, page, pageSize int32) ([]domain.Vehicle, int32, error)

	AddImage(ctx context.Context, image *domain.VehicleImage) error
	GetImages(ctx context.Context, vehicleID int32) ([]domain.VehicleImage, error)
	DeleteImages(ctx context.Context, vehicleID int32) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error
	Delete(ctx context.Context, id int32) error
	ListByUser(ctx context.Context, userID int32) ([]domain.Booking, error)
	ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	// CountOverlapping counts non-cancelled bookings of a vehicle whose date
	// range intersects [start, end].
	CountOverlapping(ctx context.Context, vehicleID int32, start, end string) (int32, error)
}

type LocationRepository interface {
	Create(ctx context.Context, location *domain.Location) error
	GetByID(ctx context.Context, id int32) (*domain.Location, error)
	Update(ctx context.Context, location *domain.Location) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Location, error)
}

type DamageReportRepository interface {
	Create(ctx context.Context, report *domain.DamageReport) error
	GetByID(ctx context.Context, id int32) (*domain.DamageReport, error)
	UpdateStatus(ctx context.Context, id int32, status domain.DamageReportStatus) error
	ListByUser(ctx context.Context, userID int32) ([]domain.DamageReport, error)
	ListAll(ctx context.Context) ([]domain.DamageReport, error)

	AddImage(ctx context.Context, image *domain.DamageImage) error
	GetImages(ctx context.Context, reportID int32) ([]domain.DamageImage, error)
}
