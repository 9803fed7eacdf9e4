package http

import (
	"io"
	"mime"
	"net/http"
	"path"

	"jobunya-carrental-backend/internal/domain"
	"jobunya-carrental-backend/internal/logger"
	"jobunya-carrental-backend/internal/session"
	"jobunya-carrental-backend/internal/storage"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth    *AuthHandler
	Vehicle *VehicleHandler
	Booking *BookingHandler
	Locs    *LocationHandler
	Damage  *DamageReportHandler
}

// NewRouter wires the full API surface. Route shape: public catalogue and auth
// endpoints first, then an authenticated subtree, then admin subtrees layered
// with the role requirement on top of authentication.
func NewRouter(h Handlers, sessions session.Store, storageSvc storage.Service) *mux.Router {
	r := mux.NewRouter()
	r.Use(Instrument)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.PathPrefix("/media/").Handler(http.StripPrefix("/media/", mediaHandler(storageSvc))).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Public endpoints.
	api.HandleFunc("/user/register/", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/user/login/", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/user/logout/", h.Auth.Logout).Methods(http.MethodPost)
	api.HandleFunc("/user/password-reset/", h.Auth.RequestPasswordReset).Methods(http.MethodPost)
	api.HandleFunc("/user/password-reset-confirm/", h.Auth.ConfirmPasswordReset).Methods(http.MethodPost)
	api.HandleFunc("/user/verify-email/", h.Auth.VerifyEmail).Methods(http.MethodPost)
	api.HandleFunc("/vehicles/", h.Vehicle.List).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{slug}/", h.Vehicle.Get).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{slug}/quote/", h.Vehicle.Quote).Methods(http.MethodGet)
	api.HandleFunc("/locations/", h.Locs.List).Methods(http.MethodGet)

	auth := NewAuthMiddleware(sessions)

	// Any authenticated user.
	user := api.NewRoute().Subrouter()
	user.Use(auth.RequireAuth, RequireRole(""))
	user.HandleFunc("/user/me/", h.Auth.Me).Methods(http.MethodGet)
	user.HandleFunc("/user/change-password/", h.Auth.ChangePassword).Methods(http.MethodPost)
	user.HandleFunc("/bookings/", h.Booking.Create).Methods(http.MethodPost)
	user.HandleFunc("/my-bookings/", h.Booking.ListMine).Methods(http.MethodGet)
	user.HandleFunc("/bookings/{id:[0-9]+}/delete/", h.Booking.Delete).Methods(http.MethodDelete)
	user.HandleFunc("/damage-reports/", h.Damage.Create).Methods(http.MethodPost)
	user.HandleFunc("/damage-reports/", h.Damage.ListMine).Methods(http.MethodGet)

	// Admin only.
	admin := api.NewRoute().Subrouter()
	admin.Use(auth.RequireAuth, RequireRole(domain.RoleAdmin))
	admin.HandleFunc("/user/customer-list/", h.Auth.CustomerList).Methods(http.MethodGet)
	// Vehicle create has no slug yet, so it posts to the collection; update
	// and delete address the record by slug.
	admin.HandleFunc("/vehicles/", h.Vehicle.Create).Methods(http.MethodPost)
	admin.HandleFunc("/vehicles/{slug}/", h.Vehicle.Update).Methods(http.MethodPut)
	admin.HandleFunc("/vehicles/{slug}/", h.Vehicle.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/all-bookings/", h.Booking.ListAll).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id:[0-9]+}/status/", h.Booking.UpdateStatus).Methods(http.MethodPut)
	admin.HandleFunc("/admin/damage-reports/", h.Damage.ListAll).Methods(http.MethodGet)
	admin.HandleFunc("/admin/damage-reports/{id:[0-9]+}/", h.Damage.Get).Methods(http.MethodGet)
	admin.HandleFunc("/admin/damage-reports/{id:[0-9]+}/", h.Damage.UpdateStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/locations/new/", h.Locs.Create).Methods(http.MethodPost)
	admin.HandleFunc("/locations/{id:[0-9]+}/update/", h.Locs.Update).Methods(http.MethodPut)
	admin.HandleFunc("/locations/{id:[0-9]+}/delete/", h.Locs.Delete).Methods(http.MethodDelete)

	return r
}

// mediaHandler streams uploaded files through the storage service so the URL
// scheme stays decoupled from the on-disk layout.
func mediaHandler(storageSvc storage.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, err := storageSvc.Open(r.URL.Path)
		if err != nil {
			writeDetail(w, http.StatusNotFound, detailNotFound)
			return
		}
		defer f.Close()
		if ct := mime.TypeByExtension(path.Ext(r.URL.Path)); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		if _, err := io.Copy(w, f); err != nil {
			logger.Warn("Failed to stream media file", "key", r.URL.Path, "error", err)
		}
	})
}
