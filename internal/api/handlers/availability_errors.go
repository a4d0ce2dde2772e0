package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/platform"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

const msgInvalidAvailabilityData = "некорректные данные расписания"

// RespondAvailabilityError отвечает на ошибку сервиса расписания и возвращает HTTP статус.
// Сообщение ошибки (платформы или общее) отдается пользователю как есть.
func RespondAvailabilityError(w http.ResponseWriter, err error) int {
	if errors.Is(err, availability.ErrInvalidInput) {
		RespondBadRequest(w, msgInvalidAvailabilityData)
		return http.StatusBadRequest
	}

	var availErr *availability.Error
	if !errors.As(err, &availErr) {
		RespondInternalError(w)
		return http.StatusInternalServerError
	}

	status := http.StatusBadGateway
	switch {
	case availErr.Kind == availability.KindNoValidData:
		status = http.StatusUnprocessableEntity
	case errors.Is(err, platform.ErrUnauthorized):
		status = http.StatusUnauthorized
	}

	RespondErrorKind(w, status, string(availErr.Kind), availErr.Message)
	return status
}
