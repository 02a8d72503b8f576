package handler

import (
	"log/slog"
	"net/http"

	"github.com/healthguard/healthguard-go/internal/model"
	"github.com/healthguard/healthguard-go/internal/service"
)

// DoctorHandler serves the doctor portal. Access is checked by middleware.DoctorAuth.
type DoctorHandler struct {
	service *service.DoctorService
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(svc *service.DoctorService) *DoctorHandler {
	return &DoctorHandler{service: svc}
}

// HandleAbnormalData handles GET /api/doctor/abnormal-data requests.
func (h *DoctorHandler) HandleAbnormalData(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.ListAbnormal(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "list abnormal data failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	if reports == nil {
		reports = []model.AbnormalReport{}
	}
	writeJSON(w, http.StatusOK, reports)
}
