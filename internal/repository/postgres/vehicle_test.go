package postgres

import (
	"context"
	"testing"
	"time"

	"jobunya-carrental-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestVehicleRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewVehicleRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		vehicle := &domain.Vehicle{
			Slug:             "toyota-corolla-1a2b3c4d",
			Name:             "Toyota Corolla",
			Category:         "economy",
			PricePerDayCents: 45000,
			Seats:            5,
			Transmission:     domain.TransmissionAutomatic,
			FuelType:         domain.FuelPetrol,
			MinDays:          1,
			Available:        true,
			Features:         []string{"air conditioning", "bluetooth"},
		}

		mock.ExpectQuery("INSERT INTO vehicles").
			WithArgs(vehicle.Slug, vehicle.Name, vehicle.Category, vehicle.PricePerDayCents, vehicle.Seats, vehicle.Transmission, vehicle.FuelType, vehicle.MinDays, vehicle.Available, pq.Array(vehicle.Features), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		err := repo.Create(ctx, vehicle)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), vehicle.ID)
	})
}

func TestVehicleRepository_GetBySlug(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewVehicleRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "slug", "name", "category", "price_per_day_cents", "seats", "transmission", "fuel_type", "min_days", "available", "features", "created_on", "updated_on"}).
			AddRow(1, "toyota-corolla-1a2b3c4d", "Toyota Corolla", "economy", 45000, 5, "automatic", "petrol", 1, true, "{bluetooth}", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM vehicles WHERE slug = \\$1").
			WithArgs("toyota-corolla-1a2b3c4d").
			WillReturnRows(rows)

		vehicle, err := repo.GetBySlug(ctx, "toyota-corolla-1a2b3c4d")
		assert.NoError(t, err)
		assert.NotNil(t, vehicle)
		assert.Equal(t, "Toyota Corolla", vehicle.Name)
		assert.Equal(t, int64(45000), vehicle.PricePerDayCents)
		assert.Equal(t, []string{"bluetooth"}, vehicle.Features)
	})
}

func TestVehicleRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewVehicleRepository(db)
	ctx := context.Background()

	t.Run("CategoryFilter", func(t *testing.T) {
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM").
			WithArgs("economy").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		rows := sqlmock.NewRows([]string{"id", "slug", "name", "category", "price_per_day_cents", "seats", "transmission", "fuel_type", "min_days", "available", "features", "created_on", "updated_on"}).
			AddRow(1, "toyota-corolla-1a2b3c4d", "Toyota Corolla", "economy", 45000, 5, "automatic", "petrol", 1, true, "{}", time.Now(), time.Now())
		mock.ExpectQuery("SELECT (.+) FROM vehicles WHERE 1=1 AND category").
			WithArgs("economy", int32(20), int32(0)).
			WillReturnRows(rows)

		vehicles, total, err := repo.List(ctx, domain.VehicleFilter{Category: "economy"}, 1, 20)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), total)
		assert.Len(t, vehicles, 1)
		assert.Equal(t, "economy", vehicles[0].Category)
	})
}
