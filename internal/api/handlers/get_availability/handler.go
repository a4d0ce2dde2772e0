package get_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
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

// Handle GET /api/v1/stylists/{stylistId}/availability
// При ошибке платформы отвечает 502 с последним полученным списком и stale = true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID := mux.Vars(r)["stylistId"]

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /stylists/{id}/availability - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	entries, err := h.service.FetchAll(r.Context(), session)
	if err != nil {
		var availErr *availability.Error
		if !errors.As(err, &availErr) {
			h.logger.Error("GET /stylists/{id}/availability - Failed to fetch: stylist_id=%s, error=%v", stylistID, err)
			handlers.RespondInternalError(w)
			return
		}

		h.logger.Warn("GET /stylists/{id}/availability - Platform failed, serving cached list: stylist_id=%s, error=%v",
			stylistID, err)
		cached := h.service.Cached(stylistID)
		handlers.RespondJSON(w, http.StatusBadGateway, &AvailabilityResponse{
			Data:      nonNil(cached.Entries),
			Stale:     true,
			FetchedAt: cached.FetchedAt,
			Kind:      string(availErr.Kind),
			Message:   availErr.Message,
		})
		return
	}

	h.logger.Info("GET /stylists/{id}/availability - Fetched: stylist_id=%s, dates=%d", stylistID, len(entries))
	now := time.Now()
	handlers.RespondJSON(w, http.StatusOK, &AvailabilityResponse{
		Data:      nonNil(entries),
		FetchedAt: &now,
	})
}

func nonNil(entries []domain.PersistedEntry) []domain.PersistedEntry {
	if entries == nil {
		return []domain.PersistedEntry{}
	}
	return entries
}
