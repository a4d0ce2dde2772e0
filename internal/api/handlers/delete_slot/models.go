package delete_slot

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// DeleteSlotRequest HTTP request model
type DeleteSlotRequest struct {
	From string `json:"from"`
	Till string `json:"till"`
}

// ToDomainSlot конвертирует запрос в слот
func (r *DeleteSlotRequest) ToDomainSlot() domain.TimeSlot {
	return domain.TimeSlot{From: types.TimeString(r.From), Till: types.TimeString(r.Till)}
}
