package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"spa-system/internal/dto"
	"spa-system/internal/entities"
	"spa-system/pkg/constants"
	apperrors "spa-system/pkg/errors"
	"spa-system/pkg/utils"
)

func newTestAppointmentService(apptRepo *stubApptRepo, leadRepo *stubLeadRepo, activityRepo *stubActivityRepo) AppointmentServiceInterface {
	return NewAppointmentService(apptRepo, leadRepo, &stubCustomerRepo{}, &stubServiceRepo{}, activityRepo, zap.NewNop())
}

func uintPtr(v uint64) *uint64 { return &v }

func TestCreateAppointmentRequiresCustomerReference(t *testing.T) {
	svc := newTestAppointmentService(&stubApptRepo{}, &stubLeadRepo{}, &stubActivityRepo{})

	cases := []struct {
		name    string
		payload dto.CreateAppointmentDTO
		wantErr error
	}{
		{
			name:    "без единой ссылки на клиента",
			payload: dto.CreateAppointmentDTO{AppointmentDateTime: "2025-08-20T14:00"},
			wantErr: apperrors.ErrCustomerReferenceMissing,
		},
		{
			name:    "имя без телефона недостаточно",
			payload: dto.CreateAppointmentDTO{CustomerName: "Май", AppointmentDateTime: "2025-08-20T14:00"},
			wantErr: apperrors.ErrCustomerReferenceMissing,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateAppointment(context.Background(), tc.payload, 1)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCreateAppointmentAcceptsAnyOfThreeReferences(t *testing.T) {
	lead := &entities.Lead{ID: 4, FullName: "Лид Тхи", Phone: "+84912000004", Status: "NEW"}

	cases := []struct {
		name    string
		payload dto.CreateAppointmentDTO
	}{
		{"по leadId", dto.CreateAppointmentDTO{LeadID: uintPtr(4), AppointmentDateTime: "2025-08-20T14:00"}},
		{"по customerId", dto.CreateAppointmentDTO{CustomerID: uintPtr(8), AppointmentDateTime: "2025-08-20T14:00"}},
		{"по имени и телефону", dto.CreateAppointmentDTO{CustomerName: "Май", CustomerPhone: "+84912000001", AppointmentDateTime: "2025-08-20T14:00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			apptRepo := &stubApptRepo{}
			leadRepo := &stubLeadRepo{lead: lead}
			customerRepo := &stubCustomerRepo{customer: &entities.Customer{ID: 8, FullName: "Клиент", Phone: "+84912000008"}}
			svc := NewAppointmentService(apptRepo, leadRepo, customerRepo, &stubServiceRepo{}, &stubActivityRepo{}, zap.NewNop())

			created, err := svc.CreateAppointment(context.Background(), tc.payload, 1)
			require.NoError(t, err)
			assert.NotZero(t, created.ApptID)
			// Имя и телефон заполнены в любом случае.
			assert.NotEmpty(t, apptRepo.created.CustomerName)
			assert.NotEmpty(t, apptRepo.created.CustomerPhone)
		})
	}
}

func TestCreateAppointmentDefaultsAndDateParsing(t *testing.T) {
	t.Run("статус по умолчанию SCHEDULED", func(t *testing.T) {
		apptRepo := &stubApptRepo{}
		svc := newTestAppointmentService(apptRepo, &stubLeadRepo{}, &stubActivityRepo{})

		payload := dto.CreateAppointmentDTO{
			CustomerName:        "Май",
			CustomerPhone:       "+84912000001",
			AppointmentDateTime: "2025-08-20T14:00",
		}
		created, err := svc.CreateAppointment(context.Background(), payload, 1)
		require.NoError(t, err)
		assert.Equal(t, constants.ApptStatusScheduled, created.Status)
	})

	t.Run("нечитаемая дата отклоняется", func(t *testing.T) {
		svc := newTestAppointmentService(&stubApptRepo{}, &stubLeadRepo{}, &stubActivityRepo{})

		payload := dto.CreateAppointmentDTO{
			CustomerName:        "Май",
			CustomerPhone:       "+84912000001",
			AppointmentDateTime: "20 августа в два часа",
		}
		_, err := svc.CreateAppointment(context.Background(), payload, 1)
		var inputErr *apperrors.InvalidInputError
		assert.ErrorAs(t, err, &inputErr)
	})
}

func TestCreateAppointmentRecordsActivity(t *testing.T) {
	activityRepo := &stubActivityRepo{}
	svc := newTestAppointmentService(&stubApptRepo{}, &stubLeadRepo{}, activityRepo)

	payload := dto.CreateAppointmentDTO{
		CustomerName:        "Май",
		CustomerPhone:       "+84912000001",
		AppointmentDateTime: "2025-08-20T14:00",
	}
	_, err := svc.CreateAppointment(context.Background(), payload, 42)
	require.NoError(t, err)

	require.Len(t, activityRepo.recorded, 1)
	assert.Equal(t, constants.ActivityCreate, activityRepo.recorded[0].Action)
	assert.Equal(t, "appointment", activityRepo.recorded[0].EntityType)
	require.NotNil(t, activityRepo.recorded[0].ActorID)
	assert.Equal(t, uint64(42), *activityRepo.recorded[0].ActorID)
}

func TestCreateAppointmentConvertsLead(t *testing.T) {
	t.Run("запись по лиду переводит его в CONVERTED", func(t *testing.T) {
		leadRepo := &stubLeadRepo{lead: &entities.Lead{ID: 4, FullName: "Лид Тхи", Phone: "+84912000004", Status: constants.LeadStatusNew}}
		svc := newTestAppointmentService(&stubApptRepo{}, leadRepo, &stubActivityRepo{})

		_, err := svc.CreateAppointment(context.Background(), dto.CreateAppointmentDTO{
			LeadID:              uintPtr(4),
			AppointmentDateTime: "2025-08-20T14:00",
		}, 1)
		require.NoError(t, err)

		assert.Equal(t, uint64(4), leadRepo.updatedLeadID)
		assert.Equal(t, constants.LeadStatusConverted, leadRepo.updatedStatus)
	})

	t.Run("запись без лида статусы лидов не трогает", func(t *testing.T) {
		leadRepo := &stubLeadRepo{}
		svc := newTestAppointmentService(&stubApptRepo{}, leadRepo, &stubActivityRepo{})

		_, err := svc.CreateAppointment(context.Background(), dto.CreateAppointmentDTO{
			CustomerName:        "Май",
			CustomerPhone:       "+84912000001",
			AppointmentDateTime: "2025-08-20T14:00",
		}, 1)
		require.NoError(t, err)
		assert.Empty(t, leadRepo.updatedStatus)
	})
}

func TestCreateAppointmentValidatesService(t *testing.T) {
	payload := dto.CreateAppointmentDTO{
		CustomerName:        "Май",
		CustomerPhone:       "+84912000001",
		ServiceID:           uintPtr(12),
		AppointmentDateTime: "2025-08-20T14:00",
	}

	t.Run("несуществующая услуга отклоняется", func(t *testing.T) {
		svc := newTestAppointmentService(&stubApptRepo{}, &stubLeadRepo{}, &stubActivityRepo{})

		_, err := svc.CreateAppointment(context.Background(), payload, 1)
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 400, httpErr.Code)
	})

	t.Run("название услуги попадает в ответ", func(t *testing.T) {
		serviceRepo := &stubServiceRepo{service: &entities.Service{ID: 12, Name: "Пилинг", Active: true}}
		svc := NewAppointmentService(&stubApptRepo{}, &stubLeadRepo{}, &stubCustomerRepo{}, serviceRepo, &stubActivityRepo{}, zap.NewNop())

		created, err := svc.CreateAppointment(context.Background(), payload, 1)
		require.NoError(t, err)
		assert.Equal(t, "Пилинг", created.ServiceName)
	})
}

func TestUpdateStatusValidatesLocally(t *testing.T) {
	appt := apptAt(7, 0, constants.ApptStatusScheduled)
	apptRepo := &stubApptRepo{found: &appt}
	svc := newTestAppointmentService(apptRepo, &stubLeadRepo{}, &stubActivityRepo{})

	t.Run("неизвестный статус не доходит до хранилища", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), 7, dto.UpdateAppointmentStatusDTO{Status: "TELEPORTED"}, 1)
		var inputErr *apperrors.InvalidInputError
		require.ErrorAs(t, err, &inputErr)
		assert.Empty(t, apptRepo.updatedStatus)
	})

	t.Run("допустимый статус применяется", func(t *testing.T) {
		updated, err := svc.UpdateStatus(context.Background(), 7, dto.UpdateAppointmentStatusDTO{Status: constants.ApptStatusNoShow}, 1)
		require.NoError(t, err)
		assert.Equal(t, constants.ApptStatusNoShow, updated.Status)
		assert.Equal(t, constants.ApptStatusNoShow, apptRepo.updatedStatus)
	})
}

func TestGetAppointmentsStatistics(t *testing.T) {
	apptRepo := &stubApptRepo{
		appts: []entities.Appointment{
			apptAt(1, 0, constants.ApptStatusScheduled),
			apptAt(2, 0, constants.ApptStatusScheduled),
			apptAt(3, 0, constants.ApptStatusConfirmed),
			apptAt(4, 0, constants.ApptStatusDone),
			apptAt(5, 0, constants.ApptStatusCompleted),
			apptAt(6, 0, constants.ApptStatusCancelled),
		},
		total: 120,
	}
	svc := newTestAppointmentService(apptRepo, &stubLeadRepo{}, &stubActivityRepo{})

	list, err := svc.GetAppointments(context.Background(), utils.PageParams{Page: 0, Size: 20})
	require.NoError(t, err)

	// total — по всей выборке, счётчики — по странице.
	assert.Equal(t, uint64(120), list.Statistics.Total)
	assert.Equal(t, 2, list.Statistics.Scheduled)
	assert.Equal(t, 1, list.Statistics.Confirmed)
	assert.Equal(t, 2, list.Statistics.Done)

	assert.Equal(t, uint64(120), list.TotalElements)
	assert.Equal(t, 6, list.TotalPages)
	assert.Len(t, list.Content, 6)
}
