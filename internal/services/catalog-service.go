package services

import (
	"context"

	"go.uber.org/zap"

	"spa-system/internal/repositories"
	"spa-system/pkg/constants"
)

// ServiceItemDTO — строка прайс-листа для выпадающих списков формы записи.
type ServiceItemDTO struct {
	ID              uint64 `json:"id"`
	Name            string `json:"name"`
	Price           int64  `json:"price"`
	DurationMinutes int    `json:"durationMinutes"`
}

// TechnicianItemDTO — мастер для выпадающего списка.
type TechnicianItemDTO struct {
	ID       uint64 `json:"id"`
	FullName string `json:"fullName"`
}

type CatalogServiceInterface interface {
	GetServices(ctx context.Context) ([]ServiceItemDTO, error)
	GetTechnicians(ctx context.Context) ([]TechnicianItemDTO, error)
}

type catalogService struct {
	serviceRepo repositories.ServiceRepositoryInterface
	userRepo    repositories.UserRepositoryInterface
	logger      *zap.Logger
}

func NewCatalogService(
	serviceRepo repositories.ServiceRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) CatalogServiceInterface {
	return &catalogService{serviceRepo: serviceRepo, userRepo: userRepo, logger: logger}
}

func (s *catalogService) GetServices(ctx context.Context) ([]ServiceItemDTO, error) {
	services, err := s.serviceRepo.GetServices(ctx, true)
	if err != nil {
		return nil, err
	}

	out := make([]ServiceItemDTO, 0, len(services))
	for _, svc := range services {
		out = append(out, ServiceItemDTO{
			ID:              svc.ID,
			Name:            svc.Name,
			Price:           svc.Price,
			DurationMinutes: svc.DurationMinutes,
		})
	}
	return out, nil
}

func (s *catalogService) GetTechnicians(ctx context.Context) ([]TechnicianItemDTO, error) {
	users, err := s.userRepo.GetByRole(ctx, constants.RoleTechnician)
	if err != nil {
		return nil, err
	}

	out := make([]TechnicianItemDTO, 0, len(users))
	for _, u := range users {
		out = append(out, TechnicianItemDTO{ID: u.ID, FullName: u.FullName})
	}
	return out, nil
}
