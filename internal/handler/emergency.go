package handler

import (
	"log/slog"
	"net/http"

	"github.com/healthguard/healthguard-go/internal/middleware"
	"github.com/healthguard/healthguard-go/internal/model"
	"github.com/healthguard/healthguard-go/internal/service"
)

// EmergencyHandler handles HTTP requests that raise emergency alerts.
type EmergencyHandler struct {
	service *service.EmergencyService
}

// NewEmergencyHandler creates a new EmergencyHandler.
func NewEmergencyHandler(svc *service.EmergencyService) *EmergencyHandler {
	return &EmergencyHandler{service: svc}
}

// HandleTrigger handles POST /api/trigger-emergency requests.
func (h *EmergencyHandler) HandleTrigger(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Unauthorized"))
		return
	}

	var req model.EmergencyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := h.service.Trigger(r.Context(), sess.UserID, req)
	if err != nil {
		slog.ErrorContext(r.Context(), "trigger emergency failed", "user_id", sess.UserID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.EmergencyResponse{Success: true, EmergencyID: id})
}
