package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"spa-system/internal/dto"
	"spa-system/internal/entities"
	"spa-system/internal/repositories"
	"spa-system/pkg/constants"
	apperrors "spa-system/pkg/errors"
	"spa-system/pkg/utils"
)

type AppointmentServiceInterface interface {
	GetAppointments(ctx context.Context, params utils.PageParams) (*dto.AppointmentListDTO, error)
	GetAppointment(ctx context.Context, id uint64) (*dto.AppointmentDTO, error)
	CreateAppointment(ctx context.Context, payload dto.CreateAppointmentDTO, actorID uint64) (*dto.AppointmentDTO, error)
	UpdateAppointment(ctx context.Context, id uint64, payload dto.UpdateAppointmentDTO, actorID uint64) (*dto.AppointmentDTO, error)
	UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateAppointmentStatusDTO, actorID uint64) (*dto.AppointmentDTO, error)
	DeleteAppointment(ctx context.Context, id uint64, actorID uint64) error
}

type appointmentService struct {
	apptRepo     repositories.AppointmentRepositoryInterface
	leadRepo     repositories.LeadRepositoryInterface
	customerRepo repositories.CustomerRepositoryInterface
	serviceRepo  repositories.ServiceRepositoryInterface
	activityRepo repositories.ActivityRepositoryInterface
	logger       *zap.Logger
}

func NewAppointmentService(
	apptRepo repositories.AppointmentRepositoryInterface,
	leadRepo repositories.LeadRepositoryInterface,
	customerRepo repositories.CustomerRepositoryInterface,
	serviceRepo repositories.ServiceRepositoryInterface,
	activityRepo repositories.ActivityRepositoryInterface,
	logger *zap.Logger,
) AppointmentServiceInterface {
	return &appointmentService{
		apptRepo:     apptRepo,
		leadRepo:     leadRepo,
		customerRepo: customerRepo,
		serviceRepo:  serviceRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (s *appointmentService) GetAppointments(ctx context.Context, params utils.PageParams) (*dto.AppointmentListDTO, error) {
	appts, total, err := s.apptRepo.GetAppointments(ctx, params)
	if err != nil {
		return nil, err
	}

	content := toAppointmentDTOs(appts)

	// Счётчики по статусам считаются по загруженной странице, total — по всей
	// выборке.
	stats := dto.AppointmentStatisticsDTO{Total: total}
	for _, a := range appts {
		switch a.Status {
		case constants.ApptStatusScheduled:
			stats.Scheduled++
		case constants.ApptStatusConfirmed:
			stats.Confirmed++
		case constants.ApptStatusDone, constants.ApptStatusCompleted:
			stats.Done++
		}
	}

	return &dto.AppointmentListDTO{
		Page:       dto.NewPage(content, total, params.Page, params.Size, params.TotalPages(total)),
		Statistics: stats,
	}, nil
}

func (s *appointmentService) GetAppointment(ctx context.Context, id uint64) (*dto.AppointmentDTO, error) {
	appt, err := s.apptRepo.FindAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toAppointmentDTO(*appt)
	return &out, nil
}

func (s *appointmentService) CreateAppointment(ctx context.Context, payload dto.CreateAppointmentDTO, actorID uint64) (*dto.AppointmentDTO, error) {
	// Клиентская ссылка обязательна: лид, существующий клиент или имя с
	// телефоном. Без неё запрос не уходит дальше сервиса.
	if !payload.HasCustomerReference() {
		return nil, apperrors.ErrCustomerReferenceMissing
	}

	when, err := payload.ParseDateTime()
	if err != nil {
		return nil, apperrors.NewInvalidInputError("неверный формат appointmentDateTime: %s", payload.AppointmentDateTime)
	}

	appt := entities.Appointment{
		LeadID:              payload.LeadID,
		CustomerID:          payload.CustomerID,
		TechnicianID:        payload.TechnicianID,
		ServiceID:           payload.ServiceID,
		CustomerName:        payload.CustomerName,
		CustomerPhone:       payload.CustomerPhone,
		AppointmentDateTime: when,
		Status:              payload.Status,
		Notes:               payload.Notes,
	}
	if appt.Status == "" {
		appt.Status = constants.ApptStatusScheduled
	}

	// Услуга проверяется по прайс-листу, её название попадает в ответ сразу.
	if payload.ServiceID != nil {
		service, err := s.serviceRepo.FindService(ctx, *payload.ServiceID)
		if err != nil {
			return nil, apperrors.NewHttpError(400, "Указанная услуга не найдена", err, nil)
		}
		appt.ServiceName = service.Name
	}

	// Имя и телефон подтягиваются из лида или карточки клиента, если форма
	// их не прислала.
	if appt.CustomerName == "" && payload.LeadID != nil {
		lead, err := s.leadRepo.FindLead(ctx, *payload.LeadID)
		if err != nil {
			return nil, apperrors.NewHttpError(400, "Указанный лид не найден", err, nil)
		}
		appt.CustomerName = lead.FullName
		appt.CustomerPhone = lead.Phone
	}
	if appt.CustomerName == "" && payload.CustomerID != nil {
		customer, err := s.customerRepo.FindCustomer(ctx, *payload.CustomerID)
		if err != nil {
			return nil, apperrors.NewHttpError(400, "Указанный клиент не найден", err, nil)
		}
		appt.CustomerName = customer.FullName
		appt.CustomerPhone = customer.Phone
	}

	created, err := s.apptRepo.CreateAppointment(ctx, appt)
	if err != nil {
		return nil, err
	}
	if created.ServiceName == "" {
		created.ServiceName = appt.ServiceName
	}

	// Лид сыграл свою роль: запись создана, помечаем его как сконвертированный.
	// Отказ этой пометки не отменяет созданную запись.
	if payload.LeadID != nil {
		if err := s.leadRepo.UpdateStatus(ctx, *payload.LeadID, constants.LeadStatusConverted); err != nil {
			s.logger.Warn("не удалось пометить лид как сконвертированный",
				zap.Uint64("lead_id", *payload.LeadID), zap.Error(err))
		}
	}

	s.recordActivity(ctx, constants.ActivityCreate, created.ID, actorID,
		fmt.Sprintf("Создана запись для %s на %s", created.CustomerName, utils.FormatDateTime(created.AppointmentDateTime)))

	out := toAppointmentDTO(*created)
	return &out, nil
}

func (s *appointmentService) UpdateAppointment(ctx context.Context, id uint64, payload dto.UpdateAppointmentDTO, actorID uint64) (*dto.AppointmentDTO, error) {
	updated, err := s.apptRepo.UpdateAppointment(ctx, id, payload)
	if err != nil {
		return nil, err
	}

	s.recordActivity(ctx, constants.ActivityUpdate, updated.ID, actorID,
		fmt.Sprintf("Обновлена запись #%d", updated.ID))

	out := toAppointmentDTO(*updated)
	return &out, nil
}

func (s *appointmentService) UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateAppointmentStatusDTO, actorID uint64) (*dto.AppointmentDTO, error) {
	// Статус проверяется до запроса в БД: неизвестное значение не должно
	// доходить до хранилища.
	if !constants.IsAllowedAppointmentStatus(payload.Status) {
		return nil, apperrors.NewInvalidInputError("недопустимый статус записи: %s", payload.Status)
	}

	updated, err := s.apptRepo.UpdateStatus(ctx, id, payload.Status, payload.Reason, payload.Notes)
	if err != nil {
		return nil, err
	}

	s.recordActivity(ctx, constants.ActivityUpdate, updated.ID, actorID,
		fmt.Sprintf("Запись #%d переведена в статус %s", updated.ID, payload.Status))

	out := toAppointmentDTO(*updated)
	return &out, nil
}

func (s *appointmentService) DeleteAppointment(ctx context.Context, id uint64, actorID uint64) error {
	if err := s.apptRepo.DeleteAppointment(ctx, id); err != nil {
		return err
	}
	s.recordActivity(ctx, constants.ActivityDelete, id, actorID,
		fmt.Sprintf("Удалена запись #%d", id))
	return nil
}

// recordActivity пишет в журнал; отказ журнала не роняет основную операцию.
func (s *appointmentService) recordActivity(ctx context.Context, action string, apptID, actorID uint64, detail string) {
	err := s.activityRepo.Record(ctx, entities.Activity{
		Action:     action,
		EntityType: "appointment",
		EntityID:   &apptID,
		ActorID:    &actorID,
		Detail:     detail,
	})
	if err != nil {
		s.logger.Warn("не удалось записать действие в журнал", zap.Error(err), zap.Uint64("appt_id", apptID))
	}
}
