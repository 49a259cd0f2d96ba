package http

import (
	"net/http"

	"clinic-directory/internal/delivery/http/handler"
	"clinic-directory/internal/delivery/http/middleware"
	"clinic-directory/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	clinicHandler     *handler.ClinicHandler
	directoryHandler  *handler.DirectoryHandler
	auditLogHandler   *handler.AuditLogHandler
	loggingMiddleware *middleware.LoggingMiddleware
	corsMiddleware    *middleware.CORSMiddleware
}

func NewRouter(
	clinicHandler *handler.ClinicHandler,
	directoryHandler *handler.DirectoryHandler,
	auditLogHandler *handler.AuditLogHandler,
	loggingMiddleware *middleware.LoggingMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		clinicHandler:     clinicHandler,
		directoryHandler:  directoryHandler,
		auditLogHandler:   auditLogHandler,
		loggingMiddleware: loggingMiddleware,
		corsMiddleware:    corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Clinics; /search must be registered before /{id}
	api.HandleFunc("/clinics", r.clinicHandler.GetAllClinics).Methods(http.MethodGet)
	api.HandleFunc("/clinics", r.clinicHandler.CreateClinic).Methods(http.MethodPost)
	api.HandleFunc("/clinics/search", r.clinicHandler.SearchClinics).Methods(http.MethodGet)
	api.HandleFunc("/clinics/{id}", r.clinicHandler.GetClinic).Methods(http.MethodGet)
	api.HandleFunc("/clinics/{id}/audit-logs", r.auditLogHandler.GetClinicAuditLogs).Methods(http.MethodGet)

	// Directory view with filters, summary and highlighting
	api.HandleFunc("/directory", r.directoryHandler.GetDirectory).Methods(http.MethodGet)

	// Audit trail
	api.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	api.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Preflight requests only need the CORS headers
	api.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
