package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
)

const (
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingSession = "отсутствует токен авторизации"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/stylists/{stylistId}/drafts/{date}/slots
// Слоты каталога на дату: выбранные в черновике, уже прошедшие и уже сохраненные
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	stylistID, date := vars["stylistId"], vars["date"]

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /stylists/{id}/drafts/{date}/slots - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(session, stylistID, date))
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /stylists/{id}/drafts/{date}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /stylists/{id}/drafts/{date}/slots - Failed to get slots: stylist_id=%s, date=%s, error=%v",
				stylistID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stylists/{id}/drafts/{date}/slots - Slots retrieved: stylist_id=%s, date=%s, mode=%s",
		stylistID, date, result.Mode)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
