package drafts

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/drafts/models"
)

// Service сервис для просмотра и сброса черновиков расписания
type Service struct {
	draftRepo DraftRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса черновиков
func NewService(draftRepo DraftRepository, logger Logger) *Service {
	return &Service{
		draftRepo: draftRepo,
		logger:    logger,
	}
}

// List возвращает все черновики стилиста по возрастанию даты
func (s *Service) List(ctx context.Context, stylistID string) (*models.DraftListResponse, error) {
	s.logger.Info("List: fetching drafts for stylist=%s", stylistID)

	if strings.TrimSpace(stylistID) == "" {
		return nil, fmt.Errorf("%w: stylistID is required", ErrInvalidInput)
	}

	records, err := s.draftRepo.List(ctx, stylistID)
	if err != nil {
		s.logger.Error("List: repository error for stylist=%s: %v", stylistID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	result := &models.DraftListResponse{
		StylistID: stylistID,
		Drafts:    make([]models.DraftResponse, 0, len(records)),
	}
	for _, rec := range records {
		draft := models.FromDomainRecord(rec)
		if draft.Submittable {
			result.SubmittableCount++
		}
		result.Drafts = append(result.Drafts, draft)
	}

	s.logger.Info("List: found %d drafts for stylist=%s (%d submittable)",
		len(result.Drafts), stylistID, result.SubmittableCount)
	return result, nil
}

// Clear сбрасывает черновик на дату
func (s *Service) Clear(ctx context.Context, stylistID, date string) error {
	s.logger.Info("Clear: clearing draft stylist=%s date=%s", stylistID, date)

	if strings.TrimSpace(stylistID) == "" {
		return fmt.Errorf("%w: stylistID is required", ErrInvalidInput)
	}
	if err := domain.ValidateDate(date); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.draftRepo.Clear(ctx, stylistID, date); err != nil {
		s.logger.Error("Clear: repository error for stylist=%s date=%s: %v", stylistID, date, err)
		return fmt.Errorf("%w: Clear - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Clear: draft stylist=%s date=%s cleared", stylistID, date)
	return nil
}
