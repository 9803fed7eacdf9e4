package http

import (
	"database/sql"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"jobunya-carrental-backend/internal/domain"
	"jobunya-carrental-backend/internal/service"

	"github.com/gorilla/mux"
)

// maxUploadBytes bounds a multipart vehicle or damage-report upload.
const maxUploadBytes = 32 << 20

type VehicleHandler struct {
	vehicleSvc service.VehicleService
}

func NewVehicleHandler(vehicleSvc service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleSvc: vehicleSvc}
}

// List serves the public fleet catalogue with optional filters and paging.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.VehicleFilter{
		Category:      q.Get("category"),
		Transmission:  q.Get("transmission"),
		FuelType:      q.Get("fuel_type"),
		AvailableOnly: q.Get("available") == "true",
	}
	if maxPrice, err := strconv.ParseInt(q.Get("max_price"), 10, 64); err == nil {
		filter.MaxPriceCents = maxPrice
	}
	page := queryInt32(q.Get("page"), 1)
	pageSize := queryInt32(q.Get("page_size"), 20)

	vehicles, total, err := h.vehicleSvc.List(r.Context(), filter, page, pageSize)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Could not load vehicles.")
		return
	}
	writeJSON(w, http.StatusOK, listResponse{
		Count:    total,
		Page:     page,
		PageSize: pageSize,
		Results:  vehicles,
	})
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	vehicle, err := h.vehicleSvc.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeDetail(w, http.StatusNotFound, detailNotFound)
			return
		}
		writeDetail(w, http.StatusInternalServerError, "Could not load vehicle.")
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// Quote serves the advisory price preview for a date range. Invalid ranges are
// still 200 responses; the body carries is_valid and the violation.
func (h *VehicleHandler) Quote(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	q := r.URL.Query()
	start, end := q.Get("start_date"), q.Get("end_date")
	if start == "" || end == "" {
		writeFieldErrors(w, map[string][]string{
			"start_date": {"This field is required."},
			"end_date":   {"This field is required."},
		})
		return
	}

	quote, err := h.vehicleSvc.QuoteBySlug(r.Context(), slug, start, end)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeDetail(w, http.StatusNotFound, detailNotFound)
			return
		}
		writeDetail(w, http.StatusBadRequest, "Dates must be in YYYY-MM-DD format.")
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, images, err := parseVehicleForm(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	vehicle, err := h.vehicleSvc.Create(r.Context(), in, images)
	if err != nil {
		if errors.Is(err, service.ErrInvalidVehicle) {
			writeDetail(w, http.StatusBadRequest, err.Error())
			return
		}
		writeDetail(w, http.StatusInternalServerError, "Could not create vehicle.")
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	in, images, err := parseVehicleForm(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	vehicle, err := h.vehicleSvc.Update(r.Context(), slug, in, images)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			writeDetail(w, http.StatusNotFound, detailNotFound)
		case errors.Is(err, service.ErrInvalidVehicle):
			writeDetail(w, http.StatusBadRequest, err.Error())
		default:
			writeDetail(w, http.StatusInternalServerError, "Could not update vehicle.")
		}
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if err := h.vehicleSvc.Delete(r.Context(), slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeDetail(w, http.StatusNotFound, detailNotFound)
			return
		}
		writeDetail(w, http.StatusInternalServerError, "Could not delete vehicle.")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// parseVehicleForm reads the admin multipart form. Prices arrive in cents;
// features as a comma-separated list.
func parseVehicleForm(r *http.Request) (service.VehicleInput, []*multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return service.VehicleInput{}, nil, errors.New("expected multipart form data")
	}

	price, _ := strconv.ParseInt(r.FormValue("price_per_day"), 10, 64)
	seats, _ := strconv.ParseInt(r.FormValue("seats"), 10, 32)
	minDays, _ := strconv.ParseInt(r.FormValue("min_days"), 10, 32)

	var features []string
	if raw := r.FormValue("features"); raw != "" {
		for _, f := range strings.Split(raw, ",") {
			if f = strings.TrimSpace(f); f != "" {
				features = append(features, f)
			}
		}
	}

	in := service.VehicleInput{
		Name:         r.FormValue("name"),
		Category:     r.FormValue("category"),
		PricePerDay:  price,
		Seats:        int32(seats),
		Transmission: r.FormValue("transmission"),
		FuelType:     r.FormValue("fuel_type"),
		MinDays:      int32(minDays),
		Available:    r.FormValue("available") != "false",
		Features:     features,
	}

	var images []*multipart.FileHeader
	if r.MultipartForm != nil {
		images = r.MultipartForm.File["images"]
	}
	return in, images, nil
}

func queryInt32(raw string, fallback int32) int32 {
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v < 1 {
		return fallback
	}
	return int32(v)
}
