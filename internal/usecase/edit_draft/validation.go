package edit_draft

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные и собирает изменение черновика
func validateRequest(req *Request) (domain.DraftChange, error) {
	if strings.TrimSpace(req.StylistID) == "" {
		return domain.DraftChange{}, fmt.Errorf("%w: stylistID is required", ErrInvalidInput)
	}

	if err := domain.ValidateDate(req.Date); err != nil {
		return domain.DraftChange{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	change := domain.DraftChange{Action: req.Action}

	switch req.Action {
	case domain.ActionClose, domain.ActionOpen, domain.ActionHolidayOn, domain.ActionHolidayOff:
		return change, nil

	case domain.ActionToggleSlot, domain.ActionAddSlot:
		slot, err := domain.NewTimeSlot(req.From, req.Till)
		if err != nil {
			return domain.DraftChange{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		// В обычном режиме доступны только слоты из каталога
		if req.Action == domain.ActionToggleSlot && !domain.IsCatalogSlot(slot) {
			return domain.DraftChange{}, fmt.Errorf("%w: slot %s is not in the catalog", ErrInvalidInput, slot)
		}
		change.Slot = slot
		return change, nil

	case domain.ActionRemoveSlot:
		if req.Index == nil {
			return domain.DraftChange{}, fmt.Errorf("%w: index is required", ErrInvalidInput)
		}
		change.Index = *req.Index
		return change, nil

	default:
		return domain.DraftChange{}, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}
}

// checkEligibility проверяет, что слот каталога можно выбрать на эту дату
func checkEligibility(slot domain.TimeSlot, date string, eligibility domain.SlotEligibility) error {
	if eligibility.Elapsed {
		return fmt.Errorf("%w: %s on %s", ErrSlotElapsed, slot, date)
	}
	if eligibility.Persisted {
		return fmt.Errorf("%w: %s on %s", ErrSlotAlreadySaved, slot, date)
	}
	return nil
}
