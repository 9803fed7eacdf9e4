package service

import (
	"context"
	"mime/multipart"

	"jobunya-carrental-backend/internal/domain"
	"jobunya-carrental-backend/internal/pricing"
)

type RegisterInput struct {
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	LicenseNumber string `json:"license_number"`
	Password      string `json:"password"`
	Password2     string `json:"password2"`
	AgreeTerms    bool   `json:"agree_terms"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Session, error)
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, uid int32, token, newPassword, newPassword2 string) error
	VerifyEmail(ctx context.Context, uid int32, token string) error
	ChangePassword(ctx context.Context, userID int32, oldPassword, newPassword, newPassword2 string) error
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	ListCustomers(ctx context.Context) ([]domain.User, error)
}

type VehicleInput struct {
	Name         string
	Category     string
	PricePerDay  int64
	Seats        int32
	Transmission string
	FuelType     string
	MinDays      int32
	Available    bool
	Features     []string
}

type VehicleService interface {
	List(ctx context.Context, filter domain.VehicleFilter, page, pageSize int32) ([]domain.Vehicle, int32, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Vehicle, error)
	Create(ctx context.Context, in VehicleInput, images []*multipart.FileHeader) (*domain.Vehicle, error)
	Update(ctx context.Context, slug string, in VehicleInput, images []*multipart.FileHeader) (*domain.Vehicle, error)
	Delete(ctx context.Context, slug string) error
	QuoteBySlug(ctx context.Context, slug, startDate, endDate string) (*pricing.Quote, error)
}

type CreateBookingInput struct {
	VehicleID         int32  `json:"vehicle"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	PickupLocationID  int32  `json:"pickup_location"`
	DropoffLocationID int32  `json:"dropoff_location"`
}

type BookingService interface {
	Create(ctx context.Context, userID int32, in CreateBookingInput) (*domain.Booking, error)
	ListMine(ctx context.Context, userID int32) ([]domain.Booking, error)
	ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	UpdateStatus(ctx context.Context, bookingID int32, status domain.BookingStatus) (*domain.Booking, error)
	Delete(ctx context.Context, userID int32, role domain.Role, bookingID int32) error
}

type LocationService interface {
	List(ctx context.Context) ([]domain.Location, error)
	Create(ctx context.Context, name, address, city string) (*domain.Location, error)
	Update(ctx context.Context, id int32, name, address, city string) (*domain.Location, error)
	Delete(ctx context.Context, id int32) error
}

type DamageReportService interface {
	Create(ctx context.Context, userID, bookingID int32, description string, images []*multipart.FileHeader) (*domain.DamageReport, error)
	ListMine(ctx context.Context, userID int32) ([]domain.DamageReport, error)
	ListAll(ctx context.Context) ([]domain.DamageReport, error)
	Get(ctx context.Context, reportID int32) (*domain.DamageReport, error)
	UpdateStatus(ctx context.Context, reportID int32, status domain.DamageReportStatus) (*domain.DamageReport, error)
}

type EmailService interface {
	SendVerificationEmail(ctx context.Context, email, name string, uid int32, token string) error
	SendPasswordResetEmail(ctx context.Context, email, name string, uid int32, token string) error
	SendBookingConfirmation(ctx context.Context, email, name, vehicleName string, booking *domain.Booking) error
	SendBookingStatusUpdate(ctx context.Context, email, name, vehicleName string, status domain.BookingStatus) error
	SendPickupReminder(ctx context.Context, email, name, vehicleName, startDate string) error
	SendDamageStatusUpdate(ctx context.Context, email, name string, reportID int32, status domain.DamageReportStatus) error
}
