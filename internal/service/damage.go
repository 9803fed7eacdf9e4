package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"jobunya-carrental-backend/internal/domain"
	"jobunya-carrental-backend/internal/logger"
	"jobunya-carrental-backend/internal/repository"
	"jobunya-carrental-backend/internal/storage"
)

var (
	ErrEmptyDescription  = errors.New("damage description is required")
	ErrNotReportBooking  = errors.New("booking belongs to another user")
	ErrInvalidNextStatus = errors.New("invalid damage report status")
)

type damageReportService struct {
	damageRepo  repository.DamageReportRepository
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
	storageSvc  storage.Service
	emailSvc    EmailService
}

func NewDamageReportService(
	damageRepo repository.DamageReportRepository,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	storageSvc storage.Service,
	emailSvc EmailService,
) DamageReportService {
	return &damageReportService{
		damageRepo:  damageRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		storageSvc:  storageSvc,
		emailSvc:    emailSvc,
	}
}

// Create files a damage report against one of the caller's own bookings.
func (s *damageReportService) Create(ctx context.Context, userID, bookingID int32, description string, images []*multipart.FileHeader) (*domain.DamageReport, error) {
	if description == "" {
		return nil, ErrEmptyDescription
	}
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrNotReportBooking
	}

	report := &domain.DamageReport{
		BookingID:   bookingID,
		UserID:      userID,
		Description: description,
		Status:      domain.DamageStatusOpen,
	}
	if err := s.damageRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	for _, fh := range images {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded image: %w", err)
		}
		key, url, err := s.storageSvc.Save("damage-reports", fh.Filename, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		img := &domain.DamageImage{ReportID: report.ID, StorageKey: key, URL: url}
		if err := s.damageRepo.AddImage(ctx, img); err != nil {
			return nil, err
		}
	}

	report.Images, _ = s.damageRepo.GetImages(ctx, report.ID)
	return report, nil
}

func (s *damageReportService) ListMine(ctx context.Context, userID int32) ([]domain.DamageReport, error) {
	reports, err := s.damageRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.attachImages(ctx, reports)
	return reports, nil
}

func (s *damageReportService) ListAll(ctx context.Context) ([]domain.DamageReport, error) {
	reports, err := s.damageRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	s.attachImages(ctx, reports)
	return reports, nil
}

func (s *damageReportService) Get(ctx context.Context, reportID int32) (*domain.DamageReport, error) {
	report, err := s.damageRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	report.Images, _ = s.damageRepo.GetImages(ctx, report.ID)
	return report, nil
}

func (s *damageReportService) UpdateStatus(ctx context.Context, reportID int32, status domain.DamageReportStatus) (*domain.DamageReport, error) {
	if !status.Valid() {
		return nil, ErrInvalidNextStatus
	}
	report, err := s.damageRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if err := s.damageRepo.UpdateStatus(ctx, reportID, status); err != nil {
		return nil, err
	}
	report.Status = status

	if user, err := s.userRepo.GetByID(ctx, report.UserID); err == nil {
		if err := s.emailSvc.SendDamageStatusUpdate(ctx, user.Email, user.FullName, report.ID, status); err != nil {
			logger.Warn("Failed to send damage status update", "report_id", report.ID, "error", err)
		}
	}

	return report, nil
}

func (s *damageReportService) attachImages(ctx context.Context, reports []domain.DamageReport) {
	for i := range reports {
		images, err := s.damageRepo.GetImages(ctx, reports[i].ID)
		if err != nil {
			logger.Warn("Failed to load damage report images", "report_id", reports[i].ID, "error", err)
			continue
		}
		reports[i].Images = images
	}
}
