package list_drafts

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/drafts"
)

const msgInvalidStylistID = "некорректный ID стилиста"

type Handler struct {
	service DraftService
	logger  Logger
}

func NewHandler(service DraftService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stylists/{stylistId}/drafts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID := mux.Vars(r)["stylistId"]

	result, err := h.service.List(r.Context(), stylistID)
	if err != nil {
		switch {
		case errors.Is(err, drafts.ErrInvalidInput):
			h.logger.Warn("GET /stylists/{id}/drafts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStylistID)

		default:
			h.logger.Error("GET /stylists/{id}/drafts - Failed to list drafts: stylist_id=%s, error=%v", stylistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stylists/{id}/drafts - Drafts listed: stylist_id=%s, count=%d", stylistID, len(result.Drafts))
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
