package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
)

const msgForbidden = "доступ запрещен"

// StylistAccess пропускает запрос, только если вызывающий - сам стилист {stylistId} или админ.
// Должен стоять после Auth на роутере с переменной stylistId.
func StylistAccess(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			stylistID := mux.Vars(r)["stylistId"]

			session, ok := GetSession(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			if !session.CanActFor(stylistID) {
				logger.Warn("StylistAccess: %s %s - stylist=%s role=%s may not act for stylist=%s",
					r.Method, r.URL.Path, session.StylistID, session.Role, stylistID)
				handlers.RespondForbidden(w, msgForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

const msgOwnScheduleOnly = "операция доступна только для собственного расписания"

// OwnSchedule пропускает запрос, только если {stylistId} - владелец токена.
// Платформа выполняет эти операции над расписанием владельца токена, поэтому админу они недоступны.
func OwnSchedule(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			stylistID := mux.Vars(r)["stylistId"]

			session, ok := GetSession(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			if session.StylistID != stylistID {
				logger.Warn("OwnSchedule: %s %s - stylist=%s is not the owner of stylist=%s",
					r.Method, r.URL.Path, session.StylistID, stylistID)
				handlers.RespondForbidden(w, msgOwnScheduleOnly)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
