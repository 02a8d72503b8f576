package handler

import (
	"log/slog"
	"net/http"

	"github.com/healthguard/healthguard-go/internal/middleware"
	"github.com/healthguard/healthguard-go/internal/model"
	"github.com/healthguard/healthguard-go/internal/service"
)

// ContactHandler handles HTTP requests for emergency contacts.
type ContactHandler struct {
	service *service.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(svc *service.ContactService) *ContactHandler {
	return &ContactHandler{service: svc}
}

// HandleSaveContacts handles POST /api/emergency-contacts requests.
func (h *ContactHandler) HandleSaveContacts(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Unauthorized"))
		return
	}

	var req model.ContactsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.Replace(r.Context(), sess.UserID, req.Contacts); err != nil {
		slog.ErrorContext(r.Context(), "save contacts failed", "user_id", sess.UserID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true})
}

// HandleListContacts handles GET /api/emergency-contacts requests.
func (h *ContactHandler) HandleListContacts(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Unauthorized"))
		return
	}

	contacts, err := h.service.List(r.Context(), sess.UserID)
	if err != nil {
		slog.ErrorContext(r.Context(), "list contacts failed", "user_id", sess.UserID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	if contacts == nil {
		contacts = []model.Contact{}
	}
	writeJSON(w, http.StatusOK, contacts)
}
