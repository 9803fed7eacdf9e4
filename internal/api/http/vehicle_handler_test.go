package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobunya-carrental-backend/internal/domain"
	"jobunya-carrental-backend/internal/pricing"
	"jobunya-carrental-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVehicleService struct {
	vehicle *domain.Vehicle
	quote   *pricing.Quote
	err     error
}

func (s *stubVehicleService) List(ctx context.Context, filter domain.VehicleFilter, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	return []domain.Vehicle{*s.vehicle}, 1, nil
}

func (s *stubVehicleService) GetBySlug(ctx context.Context, slug string) (*domain.Vehicle, error) {
	return s.vehicle, s.err
}

func (s *stubVehicleService) Create(ctx context.Context, in service.VehicleInput, images []*multipart.FileHeader) (*domain.Vehicle, error) {
	return s.vehicle, s.err
}

func (s *stubVehicleService) Update(ctx context.Context, slug string, in service.VehicleInput, images []*multipart.FileHeader) (*domain.Vehicle, error) {
	return s.vehicle, s.err
}

func (s *stubVehicleService) Delete(ctx context.Context, slug string) error {
	return s.err
}

func (s *stubVehicleService) QuoteBySlug(ctx context.Context, slug, startDate, endDate string) (*pricing.Quote, error) {
	return s.quote, s.err
}

func TestVehicleHandler_Quote(t *testing.T) {
	t.Run("ValidRange", func(t *testing.T) {
		svc := &stubVehicleService{quote: &pricing.Quote{Days: 2, TotalPriceCents: 90000, IsValid: true}}
		h := NewVehicleHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/vehicles/toyota-corolla-1a2b3c4d/quote/?start_date=2025-06-01&end_date=2025-06-02", nil)
		req = mux.SetURLVars(req, map[string]string{"slug": "toyota-corolla-1a2b3c4d"})
		rec := httptest.NewRecorder()
		h.Quote(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var quote pricing.Quote
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
		assert.True(t, quote.IsValid)
		assert.Equal(t, int32(2), quote.Days)
		assert.Equal(t, int64(90000), quote.TotalPriceCents)
	})

	// Too-short ranges are still 200 responses; the body carries the verdict.
	t.Run("BelowMinimumStillOK", func(t *testing.T) {
		svc := &stubVehicleService{quote: &pricing.Quote{Days: 2, IsValid: false, Violation: pricing.ReasonBelowMinimum}}
		h := NewVehicleHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/vehicles/x/quote/?start_date=2025-06-01&end_date=2025-06-02", nil)
		req = mux.SetURLVars(req, map[string]string{"slug": "x"})
		rec := httptest.NewRecorder()
		h.Quote(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var quote pricing.Quote
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
		assert.False(t, quote.IsValid)
		assert.Equal(t, pricing.ReasonBelowMinimum, quote.Violation)
	})

	t.Run("MissingDates", func(t *testing.T) {
		h := NewVehicleHandler(&stubVehicleService{})

		req := httptest.NewRequest(http.MethodGet, "/api/vehicles/x/quote/", nil)
		req = mux.SetURLVars(req, map[string]string{"slug": "x"})
		rec := httptest.NewRecorder()
		h.Quote(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UnknownVehicle", func(t *testing.T) {
		h := NewVehicleHandler(&stubVehicleService{err: sql.ErrNoRows})

		req := httptest.NewRequest(http.MethodGet, "/api/vehicles/ghost/quote/?start_date=2025-06-01&end_date=2025-06-02", nil)
		req = mux.SetURLVars(req, map[string]string{"slug": "ghost"})
		rec := httptest.NewRecorder()
		h.Quote(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestVehicleHandler_List(t *testing.T) {
	vehicle := &domain.Vehicle{ID: 1, Slug: "toyota-corolla-1a2b3c4d", Name: "Toyota Corolla", PricePerDayCents: 45000}
	h := NewVehicleHandler(&stubVehicleService{vehicle: vehicle})

	req := httptest.NewRequest(http.MethodGet, "/api/vehicles/?category=economy", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Count   int32            `json:"count"`
		Results []domain.Vehicle `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int32(1), resp.Count)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Toyota Corolla", resp.Results[0].Name)
}
