package services

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"spa-system/internal/dto"
	"spa-system/internal/repositories"
	apperrors "spa-system/pkg/errors"
)

// Ключ единственного слота передачи лида в форму создания записи.
// Слот один на ресепшиониста: новый переход затирает предыдущий контекст.
const handoffKeyPrefix = "handoff:appointment:"

type LeadServiceInterface interface {
	GetLeads(ctx context.Context) ([]dto.LeadDTO, error)
	GetLead(ctx context.Context, id uint64) (*dto.LeadDTO, error)

	// Передача лида: из карточки кладём контекст, форма атомарно забирает.
	CreateHandoff(ctx context.Context, leadID uint64, payload dto.CreateHandoffDTO, userID uint64) error
	ClaimHandoff(ctx context.Context, userID uint64) (*dto.HandoffContextDTO, error)
}

type leadService struct {
	leadRepo   repositories.LeadRepositoryInterface
	cache      repositories.CacheRepositoryInterface
	handoffTTL time.Duration
	logger     *zap.Logger
}

func NewLeadService(
	leadRepo repositories.LeadRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	handoffTTL time.Duration,
	logger *zap.Logger,
) LeadServiceInterface {
	return &leadService{leadRepo: leadRepo, cache: cache, handoffTTL: handoffTTL, logger: logger}
}

func (s *leadService) GetLeads(ctx context.Context) ([]dto.LeadDTO, error) {
	leads, err := s.leadRepo.GetLeads(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.LeadDTO, 0, len(leads))
	for _, l := range leads {
		out = append(out, toLeadDTO(l))
	}
	return out, nil
}

func (s *leadService) GetLead(ctx context.Context, id uint64) (*dto.LeadDTO, error) {
	lead, err := s.leadRepo.FindLead(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toLeadDTO(*lead)
	return &out, nil
}

func (s *leadService) CreateHandoff(ctx context.Context, leadID uint64, payload dto.CreateHandoffDTO, userID uint64) error {
	lead, err := s.leadRepo.FindLead(ctx, leadID)
	if err != nil {
		return err
	}

	handoff := dto.HandoffContextDTO{
		LeadID:        lead.ID,
		CustomerID:    payload.CustomerID,
		CustomerName:  payload.CustomerName,
		CustomerPhone: payload.CustomerPhone,
	}
	if handoff.CustomerName == "" {
		handoff.CustomerName = lead.FullName
	}
	if handoff.CustomerPhone == "" {
		handoff.CustomerPhone = lead.Phone
	}

	return s.cache.SetJSON(ctx, handoffKey(userID), handoff, s.handoffTTL)
}

// ClaimHandoff забирает контекст и тут же удаляет его: повторный вызов
// вернёт ErrHandoffEmpty, форма не может "проиграть" контекст дважды.
func (s *leadService) ClaimHandoff(ctx context.Context, userID uint64) (*dto.HandoffContextDTO, error) {
	var handoff dto.HandoffContextDTO
	found, err := s.cache.TakeJSON(ctx, handoffKey(userID), &handoff)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.ErrHandoffEmpty
	}
	return &handoff, nil
}

func handoffKey(userID uint64) string {
	return handoffKeyPrefix + strconv.FormatUint(userID, 10)
}
