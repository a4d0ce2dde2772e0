package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// AvailabilityResponse HTTP response model.
// Stale = true: платформа не ответила, отдается последний успешно полученный список.
type AvailabilityResponse struct {
	Data      []domain.PersistedEntry `json:"data"`
	Stale     bool                    `json:"stale"`
	FetchedAt *time.Time              `json:"fetchedAt,omitempty"`
	Kind      string                  `json:"kind,omitempty"`
	Message   string                  `json:"message,omitempty"`
}
