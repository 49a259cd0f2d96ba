package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"clinic-directory/internal/domain/entity"
	"clinic-directory/internal/usecase"
	"clinic-directory/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

var errInvalidLimit = errors.New("limit must be a positive integer")

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	auditLogID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), auditLogID)
	if err != nil {
		if err == usecase.ErrAuditLogNotFound {
			response.NotFound(w, "Audit log not found")
			return
		}
		response.InternalServerError(w, "Failed to get audit log")
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}

// GetAllAuditLogs lists the audit trail, optionally narrowed by the query
// parameters action, entity_name, entity_id and limit.
func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	filter, err := auditLogFilterFromQuery(r.URL.Query())
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid query", err.Error())
		return
	}
	h.listAuditLogs(w, r, filter)
}

// GetClinicAuditLogs lists the audit trail of one clinic.
func (h *AuditLogHandler) GetClinicAuditLogs(w http.ResponseWriter, r *http.Request) {
	clinicID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid clinic ID", nil)
		return
	}

	filter, err := auditLogFilterFromQuery(r.URL.Query())
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid query", err.Error())
		return
	}
	filter.EntityName = entity.AuditEntityClinic
	filter.EntityID = clinicID.String()
	h.listAuditLogs(w, r, filter)
}

func (h *AuditLogHandler) listAuditLogs(w http.ResponseWriter, r *http.Request, filter *entity.AuditLogFilter) {
	auditLogs, err := h.auditLogUsecase.GetAllAuditLogs(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", auditLogs)
}

func auditLogFilterFromQuery(query url.Values) (*entity.AuditLogFilter, error) {
	filter := &entity.AuditLogFilter{
		Action:     query.Get("action"),
		EntityName: query.Get("entity_name"),
		EntityID:   query.Get("entity_id"),
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return nil, errInvalidLimit
		}
		filter.Limit = limit
	}
	return filter, nil
}
