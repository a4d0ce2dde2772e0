package platform

import (
	"errors"
	"fmt"
)

var (
	// ErrInternal возвращается при внутренних ошибках клиента (сеть, сериализация)
	ErrInternal = errors.New("platform client: internal error")

	// ErrInvalidResponse возвращается при некорректном или неуспешном ответе платформы
	ErrInvalidResponse = errors.New("platform client: invalid response")

	// ErrUnauthorized возвращается, когда платформа отклонила токен
	ErrUnauthorized = errors.New("platform client: unauthorized")
)

// APIError ответ платформы с ошибкой: HTTP статус не 2xx или success=false.
// Message содержит сообщение платформы, если оно было.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("platform responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("platform responded with status %d: %s", e.StatusCode, e.Message)
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrUnauthorized / ErrInvalidResponse)
func (e *APIError) Unwrap() error {
	if e.StatusCode == 401 || e.StatusCode == 403 {
		return ErrUnauthorized
	}
	return ErrInvalidResponse
}

// ServerMessage возвращает сообщение платформы из цепочки ошибок, если оно есть
func ServerMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
