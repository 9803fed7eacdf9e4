package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobunya-carrental-backend/internal/domain"
	"jobunya-carrental-backend/internal/logger"
	"jobunya-carrental-backend/internal/pricing"
	"jobunya-carrental-backend/internal/repository"
)

var (
	ErrVehicleUnavailable  = errors.New("vehicle is not available for the selected dates")
	ErrMissingLocations    = errors.New("pickup and dropoff locations are required")
	ErrInvalidTransition   = errors.New("invalid booking status transition")
	ErrNotBookingOwner     = errors.New("booking belongs to another user")
	ErrBookingNotDeletable = errors.New("only pending or cancelled bookings can be deleted")
)

// ErrBelowMinimum carries the vehicle's specific minimum so the user-visible
// message can name it.
type ErrBelowMinimum struct {
	MinDays int32
}

func (e *ErrBelowMinimum) Error() string {
	return pricing.MinimumMessage(e.MinDays)
}

type bookingService struct {
	bookingRepo  repository.BookingRepository
	vehicleRepo  repository.VehicleRepository
	locationRepo repository.LocationRepository
	userRepo     repository.UserRepository
	emailSvc     EmailService
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	locationRepo repository.LocationRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		vehicleRepo:  vehicleRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
		emailSvc:     emailSvc,
	}
}

// Create validates and persists a booking. Duration, minimum-hire and total
// are computed server-side with the same calculator the quote endpoint uses;
// whatever a client pre-computed is ignored.
func (s *bookingService) Create(ctx context.Context, userID int32, in CreateBookingInput) (*domain.Booking, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}
	if !vehicle.Available {
		return nil, ErrVehicleUnavailable
	}

	start, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}

	days, err := pricing.Days(start, end)
	if err != nil {
		return nil, err
	}
	if v := pricing.Validate(days, vehicle.MinDays); !v.OK {
		return nil, &ErrBelowMinimum{MinDays: vehicle.MinDays}
	}

	if in.PickupLocationID == 0 || in.DropoffLocationID == 0 {
		return nil, ErrMissingLocations
	}
	if _, err := s.locationRepo.GetByID(ctx, in.PickupLocationID); err != nil {
		return nil, fmt.Errorf("unknown pickup location: %w", err)
	}
	if _, err := s.locationRepo.GetByID(ctx, in.DropoffLocationID); err != nil {
		return nil, fmt.Errorf("unknown dropoff location: %w", err)
	}

	overlapping, err := s.bookingRepo.CountOverlapping(ctx, vehicle.ID, in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, ErrVehicleUnavailable
	}

	booking := &domain.Booking{
		VehicleID:         vehicle.ID,
		UserID:            userID,
		StartDate:         start,
		EndDate:           end,
		Days:              days,
		TotalPriceCents:   pricing.Total(days, vehicle.PricePerDayCents),
		Status:            domain.BookingStatusPending,
		PickupLocationID:  in.PickupLocationID,
		DropoffLocationID: in.DropoffLocationID,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
		if err := s.emailSvc.SendBookingConfirmation(ctx, user.Email, user.FullName, vehicle.Name, booking); err != nil {
			logger.Warn("Failed to send booking confirmation", "booking_id", booking.ID, "error", err)
		}
	}

	return booking, nil
}

func (s *bookingService) ListMine(ctx context.Context, userID int32) ([]domain.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, userID)
}

func (s *bookingService) ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListAll(ctx, status, page, pageSize)
}

func (s *bookingService) UpdateStatus(ctx context.Context, bookingID int32, status domain.BookingStatus) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	booking.Status = status

	user, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err == nil {
		vehicleName := fmt.Sprintf("vehicle #%d", booking.VehicleID)
		if vehicle, err := s.vehicleRepo.GetByID(ctx, booking.VehicleID); err == nil {
			vehicleName = vehicle.Name
		}
		if err := s.emailSvc.SendBookingStatusUpdate(ctx, user.Email, user.FullName, vehicleName, status); err != nil {
			logger.Warn("Failed to send booking status update", "booking_id", bookingID, "error", err)
		}
	}

	return booking, nil
}

// Delete removes a booking. Customers may only delete their own pending or
// cancelled bookings; admins may delete any.
func (s *bookingService) Delete(ctx context.Context, userID int32, role domain.Role, bookingID int32) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if role != domain.RoleAdmin {
		if booking.UserID != userID {
			return ErrNotBookingOwner
		}
		if booking.Status != domain.BookingStatusPending && booking.Status != domain.BookingStatusCancelled {
			return ErrBookingNotDeletable
		}
	}
	return s.bookingRepo.Delete(ctx, bookingID)
}
