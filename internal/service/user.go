package service

import (
	"context"

	"jobunya-carrental-backend/internal/domain"
	"jobunya-carrental-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) ListCustomers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListCustomers(ctx)
}
