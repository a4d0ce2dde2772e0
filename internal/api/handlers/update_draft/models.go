package update_draft

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	editDraft "github.com/m04kA/SMC-AvailabilityService/internal/usecase/edit_draft"
)

// UpdateDraftRequest HTTP request model
type UpdateDraftRequest struct {
	Action string `json:"action"`
	From   string `json:"from,omitempty"`
	Till   string `json:"till,omitempty"`
	Index  *int   `json:"index,omitempty"`
}

// DraftResponse HTTP response model
type DraftResponse struct {
	StylistID   string            `json:"stylistId"`
	Date        string            `json:"date"`
	Mode        string            `json:"mode"`
	Slots       []domain.TimeSlot `json:"slots"`
	IsClosed    bool              `json:"isClosed"`
	IsHoliday   bool              `json:"isHoliday"`
	Submittable bool              `json:"submittable"`
	Changed     bool              `json:"changed"`
	Version     int64             `json:"version"`
	UpdatedAt   *time.Time        `json:"updatedAt,omitempty"`
}

// ToUseCaseRequest создает запрос use case
func (r *UpdateDraftRequest) ToUseCaseRequest(session domain.Session, stylistID, date string) *editDraft.Request {
	return &editDraft.Request{
		Session:   session,
		StylistID: stylistID,
		Date:      date,
		Action:    domain.DraftAction(r.Action),
		From:      r.From,
		Till:      r.Till,
		Index:     r.Index,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *editDraft.Response) *DraftResponse {
	result := &DraftResponse{
		StylistID:   resp.StylistID,
		Date:        resp.Date,
		Mode:        string(resp.Mode),
		Slots:       resp.Slots,
		IsClosed:    resp.IsClosed,
		IsHoliday:   resp.IsHoliday,
		Submittable: resp.Submittable,
		Changed:     resp.Changed,
		Version:     resp.Version,
	}
	if !resp.UpdatedAt.IsZero() {
		updatedAt := resp.UpdatedAt
		result.UpdatedAt = &updatedAt
	}
	return result
}
