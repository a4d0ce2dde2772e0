package get_available_slots

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.StylistID) == "" {
		return fmt.Errorf("%w: stylistID is required", ErrInvalidInput)
	}

	if err := domain.ValidateDate(req.Date); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}
