package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"spa-system/internal/dto"
	"spa-system/internal/entities"
	"spa-system/internal/repositories"
	apperrors "spa-system/pkg/errors"
	"spa-system/pkg/utils"
)

type CustomerServiceInterface interface {
	GetCustomers(ctx context.Context, params utils.PageParams, search string) (*dto.Page[dto.CustomerDTO], error)
	GetCustomer(ctx context.Context, id uint64) (*dto.CustomerDTO, error)
	CreateCustomer(ctx context.Context, payload dto.CreateCustomerDTO) (*dto.CustomerDTO, error)
	UpdateCustomer(ctx context.Context, id uint64, payload dto.UpdateCustomerDTO) (*dto.CustomerDTO, error)

	// Вкладки профиля клиента.
	GetOverview(ctx context.Context, id uint64) (*dto.CustomerOverviewDTO, error)
	GetCases(ctx context.Context, id uint64) ([]dto.CaseDTO, error)
	GetAppointments(ctx context.Context, id uint64, params utils.PageParams) (*dto.Page[dto.AppointmentDTO], error)
	GetFinancialHistory(ctx context.Context, id uint64) ([]dto.FinancialItemDTO, error)
}

type customerService struct {
	customerRepo  repositories.CustomerRepositoryInterface
	caseRepo      repositories.CaseRepositoryInterface
	apptRepo      repositories.AppointmentRepositoryInterface
	financialRepo repositories.FinancialRepositoryInterface
	logger        *zap.Logger
}

func NewCustomerService(
	customerRepo repositories.CustomerRepositoryInterface,
	caseRepo repositories.CaseRepositoryInterface,
	apptRepo repositories.AppointmentRepositoryInterface,
	financialRepo repositories.FinancialRepositoryInterface,
	logger *zap.Logger,
) CustomerServiceInterface {
	return &customerService{
		customerRepo:  customerRepo,
		caseRepo:      caseRepo,
		apptRepo:      apptRepo,
		financialRepo: financialRepo,
		logger:        logger,
	}
}

func (s *customerService) GetCustomers(ctx context.Context, params utils.PageParams, search string) (*dto.Page[dto.CustomerDTO], error) {
	customers, total, err := s.customerRepo.GetCustomers(ctx, params, search)
	if err != nil {
		return nil, err
	}

	content := make([]dto.CustomerDTO, 0, len(customers))
	for _, c := range customers {
		content = append(content, toCustomerDTO(c))
	}
	page := dto.NewPage(content, total, params.Page, params.Size, params.TotalPages(total))
	return &page, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id uint64) (*dto.CustomerDTO, error) {
	customer, err := s.customerRepo.FindCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toCustomerDTO(*customer)
	return &out, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, payload dto.CreateCustomerDTO) (*dto.CustomerDTO, error) {
	// Телефон — естественный ключ клиента: дубликат отлавливается до вставки,
	// ограничение уникальности в БД остаётся последней линией.
	existing, err := s.customerRepo.FindByPhone(ctx, payload.Phone)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewHttpError(http.StatusConflict,
			"Клиент с таким телефоном уже существует", apperrors.ErrConflict, nil)
	}

	customer := entities.Customer{
		FullName: payload.FullName,
		Phone:    payload.Phone,
		Email:    payload.Email,
		Notes:    payload.Notes,
	}
	if payload.BirthDate != nil && *payload.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", *payload.BirthDate)
		if err != nil {
			return nil, apperrors.NewInvalidInputError("неверный формат birthDate: %s", *payload.BirthDate)
		}
		customer.BirthDate = &birthDate
	}

	created, err := s.customerRepo.CreateCustomer(ctx, customer)
	if err != nil {
		return nil, err
	}
	out := toCustomerDTO(*created)
	return &out, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id uint64, payload dto.UpdateCustomerDTO) (*dto.CustomerDTO, error) {
	updated, err := s.customerRepo.UpdateCustomer(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	out := toCustomerDTO(*updated)
	return &out, nil
}

func (s *customerService) GetOverview(ctx context.Context, id uint64) (*dto.CustomerOverviewDTO, error) {
	customer, err := s.customerRepo.FindCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	treatments, err := s.caseRepo.CountByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := s.financialRepo.CountByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.CustomerOverviewDTO{
		Customer:        toCustomerDTO(*customer),
		TreatmentsCount: treatments,
		PaymentsCount:   payments,
	}, nil
}

func (s *customerService) GetCases(ctx context.Context, id uint64) ([]dto.CaseDTO, error) {
	if _, err := s.customerRepo.FindCustomer(ctx, id); err != nil {
		return nil, err
	}

	cases, err := s.caseRepo.GetByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CaseDTO, 0, len(cases))
	for _, tc := range cases {
		out = append(out, toCaseDTO(tc))
	}
	return out, nil
}

func (s *customerService) GetAppointments(ctx context.Context, id uint64, params utils.PageParams) (*dto.Page[dto.AppointmentDTO], error) {
	appts, total, err := s.apptRepo.GetByCustomer(ctx, id, params)
	if err != nil {
		return nil, err
	}
	page := dto.NewPage(toAppointmentDTOs(appts), total, params.Page, params.Size, params.TotalPages(total))
	return &page, nil
}

func (s *customerService) GetFinancialHistory(ctx context.Context, id uint64) ([]dto.FinancialItemDTO, error) {
	if _, err := s.customerRepo.FindCustomer(ctx, id); err != nil {
		return nil, err
	}

	items, err := s.financialRepo.GetByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]dto.FinancialItemDTO, 0, len(items))
	for _, tx := range items {
		out = append(out, toFinancialItemDTO(tx))
	}
	return out, nil
}
