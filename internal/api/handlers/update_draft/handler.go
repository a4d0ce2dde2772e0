package update_draft

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	editDraft "github.com/m04kA/SMC-AvailabilityService/internal/usecase/edit_draft"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные черновика"
	msgSlotElapsed        = "время начала слота уже прошло"
	msgSlotAlreadySaved   = "этот слот уже сохранен на выбранную дату"
	msgMissingSession     = "отсутствует токен авторизации"
	msgPersistedUnknown   = "не удалось получить сохраненное расписание, попробуйте позже"
)

type Handler struct {
	useCase EditDraftUseCase
	logger  Logger
}

func NewHandler(useCase EditDraftUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/stylists/{stylistId}/drafts/{date}
// Body: {"action": "toggle_slot", "from": "09:00", "till": "10:00"}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	stylistID, date := vars["stylistId"], vars["date"]

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("PATCH /stylists/{id}/drafts/{date} - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req UpdateDraftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /stylists/{id}/drafts/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(session, stylistID, date))
	if err != nil {
		switch {
		case errors.Is(err, editDraft.ErrInvalidInput):
			h.logger.Warn("PATCH /stylists/{id}/drafts/{date} - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, editDraft.ErrSlotElapsed):
			h.logger.Warn("PATCH /stylists/{id}/drafts/{date} - Slot elapsed: %v", err)
			handlers.RespondUnprocessable(w, msgSlotElapsed)

		case errors.Is(err, editDraft.ErrSlotAlreadySaved):
			h.logger.Warn("PATCH /stylists/{id}/drafts/{date} - Slot already saved: %v", err)
			handlers.RespondConflict(w, msgSlotAlreadySaved)

		case errors.Is(err, editDraft.ErrPersistedUnavailable):
			h.logger.Error("PATCH /stylists/{id}/drafts/{date} - Persisted availability unavailable: %v", err)
			handlers.RespondBadGateway(w, msgPersistedUnknown)

		default:
			h.logger.Error("PATCH /stylists/{id}/drafts/{date} - Failed to update draft: stylist_id=%s, date=%s, error=%v",
				stylistID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /stylists/{id}/drafts/{date} - Draft updated: stylist_id=%s, date=%s, action=%s, changed=%t",
		stylistID, date, req.Action, result.Changed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
