package get_catalog

import "github.com/m04kA/SMC-AvailabilityService/internal/domain"

// CatalogResponse HTTP response model
type CatalogResponse struct {
	Periods []PeriodResponse `json:"periods"`
}

// PeriodResponse период каталога
type PeriodResponse struct {
	Name  string         `json:"name"`
	Slots []SlotResponse `json:"slots"`
}

// SlotResponse слот каталога
type SlotResponse struct {
	From string `json:"from"`
	Till string `json:"till"`
}

// FromDomainCatalog конвертирует каталог в HTTP response
func FromDomainCatalog(catalog []domain.Period) *CatalogResponse {
	periods := make([]PeriodResponse, len(catalog))
	for i, period := range catalog {
		slots := make([]SlotResponse, len(period.Slots))
		for j, slot := range period.Slots {
			slots[j] = SlotResponse{From: slot.From.String(), Till: slot.Till.String()}
		}
		periods[i] = PeriodResponse{Name: period.Name, Slots: slots}
	}
	return &CatalogResponse{Periods: periods}
}
