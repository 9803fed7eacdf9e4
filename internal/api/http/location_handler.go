package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"jobunya-carrental-backend/internal/service"
)

type LocationHandler struct {
	locationSvc service.LocationService
}

func NewLocationHandler(locationSvc service.LocationService) *LocationHandler {
	return &LocationHandler{locationSvc: locationSvc}
}

func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	locations, err := h.locationSvc.List(r.Context())
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Could not load locations.")
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

type locationRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
}

func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in locationRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if in.Name == "" {
		writeFieldErrors(w, fieldError("name", "This field is required."))
		return
	}

	location, err := h.locationSvc.Create(r.Context(), in.Name, in.Address, in.City)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLocation) {
			writeFieldErrors(w, fieldError("city", "This field is required."))
			return
		}
		writeDetail(w, http.StatusInternalServerError, "Could not create location.")
		return
	}
	writeJSON(w, http.StatusCreated, location)
}

func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt32(r, "id")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid location id.")
		return
	}

	var in locationRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if in.Name == "" {
		writeFieldErrors(w, fieldError("name", "This field is required."))
		return
	}

	location, err := h.locationSvc.Update(r.Context(), id, in.Name, in.Address, in.City)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			writeDetail(w, http.StatusNotFound, detailNotFound)
		case errors.Is(err, service.ErrInvalidLocation):
			writeFieldErrors(w, fieldError("city", "This field is required."))
		default:
			writeDetail(w, http.StatusInternalServerError, "Could not update location.")
		}
		return
	}
	writeJSON(w, http.StatusOK, location)
}

func (h *LocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt32(r, "id")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid location id.")
		return
	}

	if err := h.locationSvc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeDetail(w, http.StatusNotFound, detailNotFound)
			return
		}
		writeDetail(w, http.StatusInternalServerError, "Could not delete location.")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
