package service

import (
	"context"
	"errors"

	"jobunya-carrental-backend/internal/domain"
	"jobunya-carrental-backend/internal/repository"
)

var ErrInvalidLocation = errors.New("location name and city are required")

type locationService struct {
	locationRepo repository.LocationRepository
}

func NewLocationService(locationRepo repository.LocationRepository) LocationService {
	return &locationService{locationRepo: locationRepo}
}

func (s *locationService) List(ctx context.Context) ([]domain.Location, error) {
	return s.locationRepo.List(ctx)
}

func (s *locationService) Create(ctx context.Context, name, address, city string) (*domain.Location, error) {
	if name == "" || city == "" {
		return nil, ErrInvalidLocation
	}
	loc := &domain.Location{Name: name, Address: address, City: city}
	if err := s.locationRepo.Create(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *locationService) Update(ctx context.Context, id int32, name, address, city string) (*domain.Location, error) {
	if name == "" || city == "" {
		return nil, ErrInvalidLocation
	}
	loc, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	loc.Name = name
	loc.Address = address
	loc.City = city
	if err := s.locationRepo.Update(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *locationService) Delete(ctx context.Context, id int32) error {
	return s.locationRepo.Delete(ctx, id)
}
