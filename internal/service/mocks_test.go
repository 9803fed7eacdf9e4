package service

import (
	"context"
	"time"

	"jobunya-carrental-backend/internal/domain"
	"jobunya-carrental-backend/internal/security"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) UpdatePassword(ctx context.Context, id int32, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}
func (m *MockUserRepo) MarkEmailVerified(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUserRepo) ListCustomers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetBySlug(ctx context.Context, slug string) (*domain.Vehicle, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}
func (m *MockVehicleRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockVehicleRepo) List(ctx context.Context, filter domain.VehicleFilter, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.Vehicle), args.Get(1).(int32), args.Error(2)
}
func (m *MockVehicleRepo) AddImage(ctx context.Context, image *domain.VehicleImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetImages(ctx context.Context, vehicleID int32) ([]domain.VehicleImage, error) {
	args := m.Called(ctx, vehicleID)
	return args.Get(0).([]domain.VehicleImage), args.Error(1)
}
func (m *MockVehicleRepo) DeleteImages(ctx context.Context, vehicleID int32) error {
	args := m.Called(ctx, vehicleID)
	return args.Error(0)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockBookingRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBookingRepo) ListByUser(ctx context.Context, userID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) CountOverlapping(ctx context.Context, vehicleID int32, start, end string) (int32, error) {
	args := m.Called(ctx, vehicleID, start, end)
	return args.Get(0).(int32), args.Error(1)
}

// MockLocationRepo
type MockLocationRepo struct {
	mock.Mock
}

func (m *MockLocationRepo) Create(ctx context.Context, location *domain.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}
func (m *MockLocationRepo) GetByID(ctx context.Context, id int32) (*domain.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}
func (m *MockLocationRepo) Update(ctx context.Context, location *domain.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}
func (m *MockLocationRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockLocationRepo) List(ctx context.Context) ([]domain.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Location), args.Error(1)
}

// MockSessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, user domain.User) (*domain.Session, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockSessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockSessionStore) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateActionToken(userID int32, purpose security.TokenPurpose, ttl time.Duration) (string, error) {
	args := m.Called(userID, purpose, ttl)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) ValidateActionToken(tokenString string, userID int32, purpose security.TokenPurpose) (*security.ActionClaims, error) {
	args := m.Called(tokenString, userID, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.ActionClaims), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendVerificationEmail(ctx context.Context, email, name string, uid int32, token string) error {
	args := m.Called(ctx, email, name, uid, token)
	return args.Error(0)
}
func (m *MockEmailService) SendPasswordResetEmail(ctx context.Context, email, name string, uid int32, token string) error {
	args := m.Called(ctx, email, name, uid, token)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingConfirmation(ctx context.Context, email, name, vehicleName string, booking *domain.Booking) error {
	args := m.Called(ctx, email, name, vehicleName, booking)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingStatusUpdate(ctx context.Context, email, name, vehicleName string, status domain.BookingStatus) error {
	args := m.Called(ctx, email, name, vehicleName, status)
	return args.Error(0)
}
func (m *MockEmailService) SendPickupReminder(ctx context.Context, email, name, vehicleName, startDate string) error {
	args := m.Called(ctx, email, name, vehicleName, startDate)
	return args.Error(0)
}
func (m *MockEmailService) SendDamageStatusUpdate(ctx context.Context, email, name string, reportID int32, status domain.DamageReportStatus) error {
	args := m.Called(ctx, email, name, reportID, status)
	return args.Error(0)
}
