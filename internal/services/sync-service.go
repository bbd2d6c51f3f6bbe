package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"spa-system/internal/clients/legacy"
	"spa-system/internal/entities"
	"spa-system/internal/repositories"
	"spa-system/pkg/constants"
)

const importPageSize = 100

// SyncResultDTO — итог импорта из старой системы.
type SyncResultDTO struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Pages    int `json:"pages"`
}

type SyncServiceInterface interface {
	ImportAppointments(ctx context.Context) (*SyncResultDTO, error)
}

type syncService struct {
	client   *legacy.Client
	apptRepo repositories.AppointmentRepositoryInterface
	logger   *zap.Logger
}

func NewSyncService(client *legacy.Client, apptRepo repositories.AppointmentRepositoryInterface, logger *zap.Logger) SyncServiceInterface {
	return &syncService{client: client, apptRepo: apptRepo, logger: logger}
}

// ImportAppointments постранично переносит записи из старой системы.
// Записи без идентификатора и с нечитаемой датой пропускаются и считаются
// в skipped, импорт из-за них не останавливается.
func (s *syncService) ImportAppointments(ctx context.Context) (*SyncResultDTO, error) {
	result := &SyncResultDTO{}

	for page := 0; ; page++ {
		apptPage, skipped, err := s.client.FetchAppointmentsPage(ctx, page, importPageSize)
		if err != nil {
			return nil, err
		}
		result.Pages++
		result.Skipped += skipped

		for _, raw := range apptPage.Content {
			appt, ok := s.fromRaw(raw)
			if !ok {
				result.Skipped++
				continue
			}
			if err := s.apptRepo.UpsertImported(ctx, appt); err != nil {
				s.logger.Warn("запись не импортирована", zap.Uint64("appt_id", raw.ID), zap.Error(err))
				result.Skipped++
				continue
			}
			result.Imported++
		}

		if apptPage.TotalPages == 0 || page >= apptPage.TotalPages-1 {
			break
		}
	}

	s.logger.Info("импорт записей завершён",
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
		zap.Int("pages", result.Pages))
	return result, nil
}

func (s *syncService) fromRaw(raw legacy.RawAppointment) (entities.Appointment, bool) {
	when, err := parseLegacyDateTime(raw.AppointmentDateTime)
	if err != nil {
		s.logger.Warn("нечитаемая дата у импортируемой записи",
			zap.Uint64("appt_id", raw.ID), zap.String("raw", raw.AppointmentDateTime))
		return entities.Appointment{}, false
	}

	status := raw.Status
	if !constants.IsAllowedAppointmentStatus(status) {
		status = constants.ApptStatusScheduled
	}

	appt := entities.Appointment{
		ID:                  raw.ID,
		CustomerName:        raw.CustomerName,
		CustomerPhone:       raw.CustomerPhone,
		AppointmentDateTime: when,
		Status:              status,
		ReminderSent:        raw.ReminderSent,
	}
	if raw.TechnicianID != 0 {
		techID := raw.TechnicianID
		appt.TechnicianID = &techID
	}
	if raw.Notes != "" {
		notes := raw.Notes
		appt.Notes = &notes
	}
	return appt, true
}

// Старая система присылала дату то в RFC3339, то без зоны.
func parseLegacyDateTime(value string) (time.Time, error) {
	layouts := []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02T15:04"}
	var lastErr error
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}
