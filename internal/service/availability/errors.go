package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/platform"
)

// ErrorKind вид ошибки, который показывается пользователю
type ErrorKind string

const (
	KindNone         ErrorKind = ""
	KindNoValidData  ErrorKind = "no_valid_data"
	KindSaveFailed   ErrorKind = "save_failed"
	KindFetchFailed  ErrorKind = "fetch_failed"
	KindToggleFailed ErrorKind = "toggle_failed"
	KindDeleteFailed ErrorKind = "delete_failed"
)

var (
	// ErrNoValidData ни один черновик нельзя отправить; запрос к платформе не выполнялся
	ErrNoValidData = errors.New("availability: no valid data to save")

	// ErrSaveFailed платформа не сохранила расписание
	ErrSaveFailed = errors.New("availability: save failed")

	// ErrFetchFailed не удалось получить сохраненное расписание
	ErrFetchFailed = errors.New("availability: fetch failed")

	// ErrToggleFailed не удалось переключить слот
	ErrToggleFailed = errors.New("availability: toggle failed")

	// ErrDeleteFailed не удалось удалить слот или день
	ErrDeleteFailed = errors.New("availability: delete failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

var (
	kindSentinels = map[ErrorKind]error{
		KindNoValidData:  ErrNoValidData,
		KindSaveFailed:   ErrSaveFailed,
		KindFetchFailed:  ErrFetchFailed,
		KindToggleFailed: ErrToggleFailed,
		KindDeleteFailed: ErrDeleteFailed,
	}

	genericMessages = map[ErrorKind]string{
		KindNoValidData:  "Select at least one time slot or mark the day as closed",
		KindSaveFailed:   "Failed to save availability",
		KindFetchFailed:  "Failed to fetch availability",
		KindToggleFailed: "Failed to update slot status",
		KindDeleteFailed: "Failed to delete availability",
	}
)

// Error ошибка операции с расписанием. Message готов к показу пользователю:
// сообщение платформы, если оно было, иначе общий текст для вида ошибки.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func newError(kind ErrorKind, cause error) *Error {
	msg, ok := platform.ServerMessage(cause)
	if !ok {
		msg = genericMessages[kind]
	}
	return &Error{Kind: kind, Message: msg, Err: cause}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", kindSentinels[e.Kind], e.Message)
	}
	return fmt.Sprintf("%v: %s: %v", kindSentinels[e.Kind], e.Message, e.Err)
}

// Unwrap позволяет проверять и вид ошибки (ErrSaveFailed и т.д.), и причину
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if sentinel, ok := kindSentinels[e.Kind]; ok {
		errs = append(errs, sentinel)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf возвращает вид ошибки или KindNone
func KindOf(err error) ErrorKind {
	var availErr *Error
	if errors.As(err, &availErr) {
		return availErr.Kind
	}
	return KindNone
}
