package delete_slot

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
)

const (
	msgMissingSession     = "отсутствует токен авторизации"
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/stylists/{stylistId}/availability/{date}/slots
// Body: {"from": "09:00", "till": "10:00"}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("DELETE /stylists/{id}/availability/{date}/slots - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req DeleteSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("DELETE /stylists/{id}/availability/{date}/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot := req.ToDomainSlot()
	if err := h.service.DeleteSlot(r.Context(), session, date, slot); err != nil {
		status := handlers.RespondAvailabilityError(w, err)
		h.logger.Warn("DELETE /stylists/{id}/availability/{date}/slots - Failed: stylist_id=%s, date=%s, slot=%s, status=%d, error=%v",
			session.StylistID, date, slot, status, err)
		return
	}

	h.logger.Info("DELETE /stylists/{id}/availability/{date}/slots - Deleted: stylist_id=%s, date=%s, slot=%s",
		session.StylistID, date, slot)
	w.WriteHeader(http.StatusNoContent)
}
