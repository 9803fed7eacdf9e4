package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"jobunya-carrental-backend/internal/domain"
	"jobunya-carrental-backend/internal/metrics"
	"jobunya-carrental-backend/internal/pricing"
	"jobunya-carrental-backend/internal/service"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// Create books a vehicle for the authenticated customer. Duration and total
// price are recomputed server-side; the client's preview is advisory only.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, detailNoCredentials)
		return
	}

	var in service.CreateBookingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	booking, err := h.bookingSvc.Create(r.Context(), sess.User.ID, in)
	if err != nil {
		var belowMin *service.ErrBelowMinimum
		switch {
		case errors.Is(err, sql.ErrNoRows):
			writeFieldErrors(w, fieldError("vehicle", "Vehicle not found."))
		case errors.Is(err, service.ErrVehicleUnavailable):
			writeFieldErrors(w, fieldError("vehicle", "Vehicle is not available for the selected dates."))
		case errors.As(err, &belowMin):
			writeFieldErrors(w, fieldError("end_date", belowMin.Error()))
		case errors.Is(err, pricing.ErrInvalidRange):
			writeFieldErrors(w, fieldError("end_date", "End date must be after start date."))
		case errors.Is(err, service.ErrMissingLocations):
			writeFieldErrors(w, fieldError("pickup_location", "Pickup and dropoff locations are required."))
		default:
			writeDetail(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	metrics.IncBookingCreated()
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, detailNoCredentials)
		return
	}

	bookings, err := h.bookingSvc.ListMine(r.Context(), sess.User.ID)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Could not load bookings.")
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// ListAll serves the admin booking overview, optionally filtered by status.
func (h *BookingHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := queryInt32(q.Get("page"), 1)
	pageSize := queryInt32(q.Get("page_size"), 20)

	bookings, total, err := h.bookingSvc.ListAll(r.Context(), q.Get("status"), page, pageSize)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Could not load bookings.")
		return
	}
	writeJSON(w, http.StatusOK, listResponse{
		Count:    total,
		Page:     page,
		PageSize: pageSize,
		Results:  bookings,
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt32(r, "id")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid booking id.")
		return
	}

	var in updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	status := domain.BookingStatus(in.Status)
	if !status.Valid() {
		writeFieldErrors(w, fieldError("status", "Unknown booking status."))
		return
	}

	booking, err := h.bookingSvc.UpdateStatus(r.Context(), id, status)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			writeDetail(w, http.StatusNotFound, detailNotFound)
		case errors.Is(err, service.ErrInvalidTransition):
			writeFieldErrors(w, fieldError("status", "This status transition is not allowed."))
		default:
			writeDetail(w, http.StatusInternalServerError, "Could not update booking.")
		}
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, detailNoCredentials)
		return
	}

	id, err := pathInt32(r, "id")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid booking id.")
		return
	}

	if err := h.bookingSvc.Delete(r.Context(), sess.User.ID, sess.User.Role, id); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			writeDetail(w, http.StatusNotFound, detailNotFound)
		case errors.Is(err, service.ErrNotBookingOwner):
			writeDetail(w, http.StatusForbidden, detailForbidden)
		case errors.Is(err, service.ErrBookingNotDeletable):
			writeDetail(w, http.StatusBadRequest, "Only pending or cancelled bookings can be deleted.")
		default:
			writeDetail(w, http.StatusInternalServerError, "Could not delete booking.")
		}
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func pathInt32(r *http.Request, name string) (int32, error) {
	v, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	return int32(v), err
}
