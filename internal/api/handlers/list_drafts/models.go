package list_drafts

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/drafts/models"
)

// DraftListResponse HTTP response model
type DraftListResponse struct {
	StylistID        string          `json:"stylistId"`
	Drafts           []DraftResponse `json:"drafts"`
	SubmittableCount int             `json:"submittableCount"`
}

// DraftResponse черновик на одну дату
type DraftResponse struct {
	Date        string            `json:"date"`
	Mode        string            `json:"mode"`
	Slots       []domain.TimeSlot `json:"slots"`
	IsClosed    bool              `json:"isClosed"`
	IsHoliday   bool              `json:"isHoliday"`
	Submittable bool              `json:"submittable"`
	Version     int64             `json:"version"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.DraftListResponse) *DraftListResponse {
	drafts := make([]DraftResponse, len(resp.Drafts))
	for i, d := range resp.Drafts {
		drafts[i] = DraftResponse{
			Date:        d.Date,
			Mode:        string(d.Mode),
			Slots:       d.Slots,
			IsClosed:    d.IsClosed,
			IsHoliday:   d.IsHoliday,
			Submittable: d.Submittable,
			Version:     d.Version,
			UpdatedAt:   d.UpdatedAt,
		}
	}
	return &DraftListResponse{
		StylistID:        resp.StylistID,
		Drafts:           drafts,
		SubmittableCount: resp.SubmittableCount,
	}
}
