package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"spa-system/internal/dto"
	"spa-system/internal/entities"
	"spa-system/internal/repositories"
	"spa-system/pkg/constants"
	apperrors "spa-system/pkg/errors"
)

type CaseServiceInterface interface {
	GetCase(ctx context.Context, id uint64) (*dto.CaseDTO, error)
	CreateCase(ctx context.Context, payload dto.CreateCaseDTO) (*dto.CaseDTO, error)
	CreateInvoice(ctx context.Context, payload dto.CreateInvoiceDTO, actorID uint64) (*dto.FinancialItemDTO, error)
}

type caseService struct {
	caseRepo      repositories.CaseRepositoryInterface
	customerRepo  repositories.CustomerRepositoryInterface
	financialRepo repositories.FinancialRepositoryInterface
	activityRepo  repositories.ActivityRepositoryInterface
	logger        *zap.Logger
}

func NewCaseService(
	caseRepo repositories.CaseRepositoryInterface,
	customerRepo repositories.CustomerRepositoryInterface,
	financialRepo repositories.FinancialRepositoryInterface,
	activityRepo repositories.ActivityRepositoryInterface,
	logger *zap.Logger,
) CaseServiceInterface {
	return &caseService{
		caseRepo:      caseRepo,
		customerRepo:  customerRepo,
		financialRepo: financialRepo,
		activityRepo:  activityRepo,
		logger:        logger,
	}
}

func (s *caseService) GetCase(ctx context.Context, id uint64) (*dto.CaseDTO, error) {
	tc, err := s.caseRepo.FindCase(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toCaseDTO(*tc)
	return &out, nil
}

func (s *caseService) CreateCase(ctx context.Context, payload dto.CreateCaseDTO) (*dto.CaseDTO, error) {
	if _, err := s.customerRepo.FindCustomer(ctx, payload.CustomerID); err != nil {
		return nil, err
	}

	tc := entities.TreatmentCase{
		CustomerID:       payload.CustomerID,
		PrimaryServiceID: payload.PrimaryServiceID,
		Status:           "ACTIVE",
		PaidStatus:       constants.PaidStatusUnpaid,
		TotalAmount:      payload.TotalAmount,
		IntakeNote:       payload.IntakeNote,
	}
	if payload.StartDate != nil && *payload.StartDate != "" {
		startDate, err := time.Parse("2006-01-02", *payload.StartDate)
		if err != nil {
			return nil, apperrors.NewInvalidInputError("неверный формат startDate: %s", *payload.StartDate)
		}
		tc.StartDate = &startDate
	}

	created, err := s.caseRepo.CreateCase(ctx, tc)
	if err != nil {
		return nil, err
	}
	out := toCaseDTO(*created)
	return &out, nil
}

// CreateInvoice проводит оплату: строка в финансовой истории, пересчёт
// paid_status кейса и накопленная сумма в карточке клиента.
func (s *caseService) CreateInvoice(ctx context.Context, payload dto.CreateInvoiceDTO, actorID uint64) (*dto.FinancialItemDTO, error) {
	if _, err := s.customerRepo.FindCustomer(ctx, payload.CustomerID); err != nil {
		return nil, err
	}
	if payload.CaseID != nil {
		tc, err := s.caseRepo.FindCase(ctx, *payload.CaseID)
		if err != nil {
			return nil, err
		}
		if tc.CustomerID != payload.CustomerID {
			return nil, apperrors.NewInvalidInputError("кейс #%d принадлежит другому клиенту", *payload.CaseID)
		}
	}

	tx, err := s.financialRepo.CreateTransaction(ctx, entities.FinancialTransaction{
		CustomerID: payload.CustomerID,
		CaseID:     payload.CaseID,
		Type:       "PAYMENT",
		Amount:     payload.Amount,
		Note:       payload.Note,
	})
	if err != nil {
		return nil, err
	}

	if payload.CaseID != nil {
		if _, err := s.caseRepo.ApplyPayment(ctx, *payload.CaseID, payload.Amount); err != nil {
			s.logger.Error("оплата записана, но статус кейса не пересчитан",
				zap.Uint64("case_id", *payload.CaseID), zap.Error(err))
		}
	}
	if err := s.customerRepo.AddToTotalSpent(ctx, payload.CustomerID, payload.Amount); err != nil {
		s.logger.Warn("не удалось обновить total_spent клиента",
			zap.Uint64("customer_id", payload.CustomerID), zap.Error(err))
	}

	if err := s.activityRepo.Record(ctx, entities.Activity{
		Action:     constants.ActivityCreate,
		EntityType: "invoice",
		EntityID:   &tx.ID,
		ActorID:    &actorID,
		Detail:     fmt.Sprintf("Принята оплата %d от клиента #%d", payload.Amount, payload.CustomerID),
	}); err != nil {
		s.logger.Warn("не удалось записать действие в журнал", zap.Error(err))
	}

	out := toFinancialItemDTO(*tx)
	return &out, nil
}
