package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"regexp"
	"strings"
	"time"

	"jobunya-carrental-backend/internal/domain"
	"jobunya-carrental-backend/internal/logger"
	"jobunya-carrental-backend/internal/pricing"
	"jobunya-carrental-backend/internal/repository"
	"jobunya-carrental-backend/internal/storage"

	"github.com/google/uuid"
)

var ErrInvalidVehicle = errors.New("vehicle name, category and daily price are required")

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	storageSvc  storage.Service
}

func NewVehicleService(vehicleRepo repository.VehicleRepository, storageSvc storage.Service) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo, storageSvc: storageSvc}
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// makeSlug derives a URL-safe slug from a vehicle name with a short random
// suffix so that two vehicles with the same name get distinct slugs.
func makeSlug(name string) string {
	base := strings.Trim(slugStrip.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if base == "" {
		base = "vehicle"
	}
	return base + "-" + uuid.New().String()[:8]
}

func (s *vehicleService) List(ctx context.Context, filter domain.VehicleFilter, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	vehicles, total, err := s.vehicleRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	for i := range vehicles {
		images, err := s.vehicleRepo.GetImages(ctx, vehicles[i].ID)
		if err != nil {
			logger.Warn("Failed to load vehicle images", "vehicle_id", vehicles[i].ID, "error", err)
			continue
		}
		vehicles[i].Images = images
	}
	return vehicles, total, nil
}

func (s *vehicleService) GetBySlug(ctx context.Context, slug string) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	images, err := s.vehicleRepo.GetImages(ctx, vehicle.ID)
	if err != nil {
		return nil, err
	}
	vehicle.Images = images
	return vehicle, nil
}

func (s *vehicleService) Create(ctx context.Context, in VehicleInput, images []*multipart.FileHeader) (*domain.Vehicle, error) {
	if in.Name == "" || in.Category == "" || in.PricePerDay <= 0 {
		return nil, ErrInvalidVehicle
	}
	if in.MinDays < 1 {
		in.MinDays = 1
	}

	vehicle := &domain.Vehicle{
		Slug:             makeSlug(in.Name),
		Name:             in.Name,
		Category:         in.Category,
		PricePerDayCents: in.PricePerDay,
		Seats:            in.Seats,
		Transmission:     domain.Transmission(in.Transmission),
		FuelType:         domain.FuelType(in.FuelType),
		MinDays:          in.MinDays,
		Available:        in.Available,
		Features:         in.Features,
	}
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	if err := s.storeImages(ctx, vehicle.ID, images, true); err != nil {
		return nil, err
	}
	vehicle.Images, _ = s.vehicleRepo.GetImages(ctx, vehicle.ID)
	return vehicle, nil
}

// Update replaces the whole record, keeping the slug stable. When new images
// are uploaded they replace the existing set.
func (s *vehicleService) Update(ctx context.Context, slug string, in VehicleInput, images []*multipart.FileHeader) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if in.Name == "" || in.Category == "" || in.PricePerDay <= 0 {
		return nil, ErrInvalidVehicle
	}
	if in.MinDays < 1 {
		in.MinDays = 1
	}

	vehicle.Name = in.Name
	vehicle.Category = in.Category
	vehicle.PricePerDayCents = in.PricePerDay
	vehicle.Seats = in.Seats
	vehicle.Transmission = domain.Transmission(in.Transmission)
	vehicle.FuelType = domain.FuelType(in.FuelType)
	vehicle.MinDays = in.MinDays
	vehicle.Available = in.Available
	vehicle.Features = in.Features

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	if len(images) > 0 {
		old, _ := s.vehicleRepo.GetImages(ctx, vehicle.ID)
		if err := s.vehicleRepo.DeleteImages(ctx, vehicle.ID); err != nil {
			return nil, err
		}
		for _, img := range old {
			if err := s.storageSvc.Delete(img.StorageKey); err != nil {
				logger.Warn("Failed to delete stored image", "key", img.StorageKey, "error", err)
			}
		}
		if err := s.storeImages(ctx, vehicle.ID, images, true); err != nil {
			return nil, err
		}
	}

	vehicle.Images, _ = s.vehicleRepo.GetImages(ctx, vehicle.ID)
	return vehicle, nil
}

func (s *vehicleService) Delete(ctx context.Context, slug string) error {
	vehicle, err := s.vehicleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	images, _ := s.vehicleRepo.GetImages(ctx, vehicle.ID)
	if err := s.vehicleRepo.DeleteImages(ctx, vehicle.ID); err != nil {
		return err
	}
	for _, img := range images {
		if err := s.storageSvc.Delete(img.StorageKey); err != nil {
			logger.Warn("Failed to delete stored image", "key", img.StorageKey, "error", err)
		}
	}
	return s.vehicleRepo.Delete(ctx, vehicle.ID)
}

// QuoteBySlug computes the advisory rental preview with the same calculator
// booking creation uses.
func (s *vehicleService) QuoteBySlug(ctx context.Context, slug, startDate, endDate string) (*pricing.Quote, error) {
	vehicle, err := s.vehicleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}
	quote := pricing.Compute(start, end, vehicle.PricePerDayCents, vehicle.MinDays)
	return &quote, nil
}

func (s *vehicleService) storeImages(ctx context.Context, vehicleID int32, images []*multipart.FileHeader, firstIsPrimary bool) error {
	for i, fh := range images {
		f, err := fh.Open()
		if err != nil {
			return fmt.Errorf("failed to open uploaded image: %w", err)
		}
		key, url, err := s.storageSvc.Save("vehicles", fh.Filename, f)
		f.Close()
		if err != nil {
			return err
		}
		img := &domain.VehicleImage{
			VehicleID:  vehicleID,
			StorageKey: key,
			URL:        url,
			IsPrimary:  firstIsPrimary && i == 0,
		}
		if err := s.vehicleRepo.AddImage(ctx, img); err != nil {
			return err
		}
	}
	return nil
}
