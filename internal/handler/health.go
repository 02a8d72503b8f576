package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/healthguard/healthguard-go/internal/middleware"
	"github.com/healthguard/healthguard-go/internal/model"
	"github.com/healthguard/healthguard-go/internal/service"
)

// HealthHandler handles HTTP requests for the caller's health readings.
type HealthHandler struct {
	service *service.HealthService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(svc *service.HealthService) *HealthHandler {
	return &HealthHandler{service: svc}
}

// HandleCreateRecord handles POST /api/health-data requests.
func (h *HealthHandler) HandleCreateRecord(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Unauthorized"))
		return
	}

	var req model.HealthRecordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pos, err := h.service.Append(r.Context(), sess.UserID, req)
	if err != nil {
		slog.ErrorContext(r.Context(), "store health record failed", "user_id", sess.UserID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.HealthRecordResponse{Success: true, RecordID: pos})
}

// HandleListRecords handles GET /api/health-data requests.
func (h *HealthHandler) HandleListRecords(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Unauthorized"))
		return
	}

	q := r.URL.Query()
	records, err := h.service.Query(r.Context(), sess.UserID, q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		slog.ErrorContext(r.Context(), "list health records failed", "user_id", sess.UserID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	if records == nil {
		records = []model.HealthRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}
