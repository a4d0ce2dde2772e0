package edit_draft

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("edit_draft: invalid input data")

	// ErrSlotElapsed возвращается, когда время начала слота на эту дату уже прошло
	ErrSlotElapsed = errors.New("edit_draft: slot start time has already passed")

	// ErrSlotAlreadySaved возвращается, когда такой слот уже сохранен на платформе
	ErrSlotAlreadySaved = errors.New("edit_draft: slot is already saved for this date")

	// ErrPersistedUnavailable возвращается, когда сохраненное расписание не удалось получить
	// и проверить, что слот еще не сохранен, нельзя
	ErrPersistedUnavailable = errors.New("edit_draft: persisted availability is unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("edit_draft: internal error")
)
