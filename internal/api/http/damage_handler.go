package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"jobunya-carrental-backend/internal/domain"
	"jobunya-carrental-backend/internal/service"
)

type DamageReportHandler struct {
	damageSvc service.DamageReportService
}

func NewDamageReportHandler(damageSvc service.DamageReportService) *DamageReportHandler {
	return &DamageReportHandler{damageSvc: damageSvc}
}

// Create files a damage report with optional photos against one of the
// caller's bookings.
func (h *DamageReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, detailNoCredentials)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeDetail(w, http.StatusBadRequest, "Expected multipart form data.")
		return
	}

	bookingID, err := strconv.ParseInt(r.FormValue("booking"), 10, 32)
	if err != nil {
		writeFieldErrors(w, fieldError("booking", "A valid booking id is required."))
		return
	}

	report, err := h.damageSvc.Create(r.Context(), sess.User.ID, int32(bookingID), r.FormValue("description"), r.MultipartForm.File["images"])
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyDescription):
			writeFieldErrors(w, fieldError("description", "This field is required."))
		case errors.Is(err, sql.ErrNoRows):
			writeFieldErrors(w, fieldError("booking", "Booking not found."))
		case errors.Is(err, service.ErrNotReportBooking):
			writeDetail(w, http.StatusForbidden, detailForbidden)
		default:
			writeDetail(w, http.StatusInternalServerError, "Could not create damage report.")
		}
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

func (h *DamageReportHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, detailNoCredentials)
		return
	}

	reports, err := h.damageSvc.ListMine(r.Context(), sess.User.ID)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Could not load damage reports.")
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (h *DamageReportHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	reports, err := h.damageSvc.ListAll(r.Context())
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Could not load damage reports.")
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (h *DamageReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt32(r, "id")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid report id.")
		return
	}

	report, err := h.damageSvc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeDetail(w, http.StatusNotFound, detailNotFound)
			return
		}
		writeDetail(w, http.StatusInternalServerError, "Could not load damage report.")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type damageStatusRequest struct {
	Status string `json:"status"`
}

func (h *DamageReportHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt32(r, "id")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid report id.")
		return
	}

	var in damageStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	report, err := h.damageSvc.UpdateStatus(r.Context(), id, domain.DamageReportStatus(in.Status))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			writeDetail(w, http.StatusNotFound, detailNotFound)
		case errors.Is(err, service.ErrInvalidNextStatus):
			writeFieldErrors(w, fieldError("status", "Unknown damage report status."))
		default:
			writeDetail(w, http.StatusInternalServerError, "Could not update damage report.")
		}
		return
	}
	writeJSON(w, http.StatusOK, report)
}
