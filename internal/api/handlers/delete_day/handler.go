package delete_day

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

// Handle DELETE /api/v1/stylists/{stylistId}/availability/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("DELETE /stylists/{id}/availability/{date} - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	if err := h.service.DeleteDay(r.Context(), session, date); err != nil {
		status := handlers.RespondAvailabilityError(w, err)
		h.logger.Warn("DELETE /stylists/{id}/availability/{date} - Failed: stylist_id=%s, date=%s, status=%d, error=%v",
			session.StylistID, date, status, err)
		return
	}

	h.logger.Info("DELETE /stylists/{id}/availability/{date} - Deleted: stylist_id=%s, date=%s", session.StylistID, date)
	w.WriteHeader(http.StatusNoContent)
}
