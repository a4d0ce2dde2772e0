package toggle_slot

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
)

const msgMissingSession = "отсутствует токен авторизации"

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

// Handle PUT /api/v1/stylists/{stylistId}/availability/{date}/slots/{slotId}/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	stylistID, date, slotID := vars["stylistId"], vars["date"], vars["slotId"]

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("PUT /stylists/{id}/availability/{date}/slots/{slotId}/toggle - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	result, err := h.service.ToggleSlot(r.Context(), session, stylistID, date, slotID)
	if err != nil {
		status := handlers.RespondAvailabilityError(w, err)
		h.logger.Warn("PUT /stylists/{id}/availability/{date}/slots/{slotId}/toggle - Failed: stylist_id=%s, date=%s, slot_id=%s, status=%d, error=%v",
			stylistID, date, slotID, status, err)
		return
	}

	h.logger.Info("PUT /stylists/{id}/availability/{date}/slots/{slotId}/toggle - Toggled: stylist_id=%s, date=%s, slot_id=%s, active=%t",
		stylistID, date, slotID, result.IsActive)
	handlers.RespondJSON(w, http.StatusOK, result)
}
