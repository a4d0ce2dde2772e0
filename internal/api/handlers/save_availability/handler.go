package save_availability

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

// Handle POST /api/v1/stylists/{stylistId}/availability
// Отправляет все готовые черновики стилиста на платформу
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID := mux.Vars(r)["stylistId"]

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("POST /stylists/{id}/availability - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	result, err := h.service.Save(r.Context(), session, stylistID)
	if err != nil {
		status := handlers.RespondAvailabilityError(w, err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("POST /stylists/{id}/availability - Failed to save: stylist_id=%s, status=%d, error=%v",
				stylistID, status, err)
		} else {
			h.logger.Warn("POST /stylists/{id}/availability - Not saved: stylist_id=%s, status=%d, error=%v",
				stylistID, status, err)
		}
		return
	}

	h.logger.Info("POST /stylists/{id}/availability - Saved: stylist_id=%s, dates=%d, cleared=%d",
		stylistID, len(result.Saved), len(result.ClearedDates))
	handlers.RespondJSON(w, http.StatusOK, result)
}
