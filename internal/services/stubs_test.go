package services

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"spa-system/internal/dto"
	"spa-system/internal/entities"
	"spa-system/internal/repositories"
	apperrors "spa-system/pkg/errors"
	"spa-system/pkg/utils"
)

// Стабы репозиториев для юнит-тестов сервисов: отдают заранее заданные
// данные и запоминают, что в них записали.

type stubApptRepo struct {
	appts     []entities.Appointment
	total     uint64
	listErr   error
	forDay    []entities.Appointment
	forDayErr error
	recent    []entities.Appointment
	recentErr error
	found     *entities.Appointment

	created       *entities.Appointment
	createErr     error
	updatedStatus string
	upserted      []entities.Appointment
}

func (s *stubApptRepo) GetAppointments(_ context.Context, _ utils.PageParams) ([]entities.Appointment, uint64, error) {
	return s.appts, s.total, s.listErr
}

func (s *stubApptRepo) GetByCustomer(_ context.Context, _ uint64, _ utils.PageParams) ([]entities.Appointment, uint64, error) {
	return s.appts, s.total, s.listErr
}

func (s *stubApptRepo) GetForDay(_ context.Context, _ time.Time) ([]entities.Appointment, error) {
	return s.forDay, s.forDayErr
}

func (s *stubApptRepo) GetRecentByTechnician(_ context.Context, _ uint64, limit uint64) ([]entities.Appointment, error) {
	if s.recentErr != nil {
		return nil, s.recentErr
	}
	if uint64(len(s.recent)) > limit {
		return s.recent[:limit], nil
	}
	return s.recent, nil
}

func (s *stubApptRepo) FindAppointment(_ context.Context, _ uint64) (*entities.Appointment, error) {
	if s.found == nil {
		return nil, apperrors.ErrNotFound
	}
	return s.found, nil
}

func (s *stubApptRepo) CreateAppointment(_ context.Context, appt entities.Appointment) (*entities.Appointment, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	appt.ID = 101
	appt.CreatedAt = time.Now()
	s.created = &appt
	return &appt, nil
}

func (s *stubApptRepo) UpdateAppointment(_ context.Context, _ uint64, _ dto.UpdateAppointmentDTO) (*entities.Appointment, error) {
	if s.found == nil {
		return nil, apperrors.ErrNotFound
	}
	return s.found, nil
}

func (s *stubApptRepo) UpdateStatus(_ context.Context, _ uint64, status string, _, _ *string) (*entities.Appointment, error) {
	if s.found == nil {
		return nil, apperrors.ErrNotFound
	}
	s.updatedStatus = status
	updated := *s.found
	updated.Status = status
	return &updated, nil
}

func (s *stubApptRepo) DeleteAppointment(_ context.Context, _ uint64) error {
	if s.found == nil {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *stubApptRepo) UpsertImported(_ context.Context, appt entities.Appointment) error {
	s.upserted = append(s.upserted, appt)
	return nil
}

type stubLeadRepo struct {
	lead  *entities.Lead
	leads []entities.Lead

	updatedLeadID uint64
	updatedStatus string
}

func (s *stubLeadRepo) GetLeads(_ context.Context) ([]entities.Lead, error) { return s.leads, nil }

func (s *stubLeadRepo) FindLead(_ context.Context, _ uint64) (*entities.Lead, error) {
	if s.lead == nil {
		return nil, apperrors.ErrNotFound
	}
	return s.lead, nil
}

func (s *stubLeadRepo) UpdateStatus(_ context.Context, id uint64, status string) error {
	if s.lead == nil {
		return apperrors.ErrNotFound
	}
	s.updatedLeadID = id
	s.updatedStatus = status
	return nil
}

type stubCustomerRepo struct {
	customer *entities.Customer
	// Клиент, который "находится" по телефону при проверке дубликатов.
	byPhone *entities.Customer
}

func (s *stubCustomerRepo) GetCustomers(_ context.Context, _ utils.PageParams, _ string) ([]entities.Customer, uint64, error) {
	if s.customer == nil {
		return []entities.Customer{}, 0, nil
	}
	return []entities.Customer{*s.customer}, 1, nil
}

func (s *stubCustomerRepo) FindCustomer(_ context.Context, _ uint64) (*entities.Customer, error) {
	if s.customer == nil {
		return nil, apperrors.ErrNotFound
	}
	return s.customer, nil
}

func (s *stubCustomerRepo) FindByPhone(_ context.Context, _ string) (*entities.Customer, error) {
	if s.byPhone == nil {
		return nil, apperrors.ErrNotFound
	}
	return s.byPhone, nil
}

func (s *stubCustomerRepo) CreateCustomer(_ context.Context, c entities.Customer) (*entities.Customer, error) {
	c.ID = 77
	c.CreatedAt = time.Now()
	return &c, nil
}

func (s *stubCustomerRepo) UpdateCustomer(_ context.Context, _ uint64, _ dto.UpdateCustomerDTO) (*entities.Customer, error) {
	return s.FindCustomer(nil, 0)
}

func (s *stubCustomerRepo) AddToTotalSpent(_ context.Context, _ uint64, _ int64) error { return nil }

type stubActivityRepo struct {
	recent    []entities.Activity
	recentErr error
	recorded  []entities.Activity
}

func (s *stubActivityRepo) GetRecent(_ context.Context, _ int) ([]entities.Activity, error) {
	return s.recent, s.recentErr
}

func (s *stubActivityRepo) Record(_ context.Context, a entities.Activity) error {
	s.recorded = append(s.recorded, a)
	return nil
}

type stubDashboardRepo struct {
	counters    repositories.OverviewCounters
	countersErr error
	period      repositories.PeriodCounters
	periodErr   error
}

func (s *stubDashboardRepo) GetOverviewCounters(_ context.Context, _ time.Time) (repositories.OverviewCounters, error) {
	return s.counters, s.countersErr
}

func (s *stubDashboardRepo) GetPeriodCounters(_ context.Context, _, _ time.Time) (repositories.PeriodCounters, error) {
	return s.period, s.periodErr
}

type stubServiceRepo struct {
	services []entities.Service
	service  *entities.Service
	usages   []repositories.ServiceUsage
}

func (s *stubServiceRepo) GetServices(_ context.Context, _ bool) ([]entities.Service, error) {
	return s.services, nil
}

func (s *stubServiceRepo) FindService(_ context.Context, _ uint64) (*entities.Service, error) {
	if s.service == nil {
		return nil, apperrors.ErrNotFound
	}
	return s.service, nil
}

func (s *stubServiceRepo) TopByUsage(_ context.Context, _, _ time.Time, _ int) ([]repositories.ServiceUsage, error) {
	return s.usages, nil
}

type stubUserRepo struct {
	user  *entities.User
	staff []repositories.StaffStats
}

func (s *stubUserRepo) FindUser(_ context.Context, _ uint64) (*entities.User, error) {
	if s.user == nil {
		return nil, apperrors.ErrNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, _ string) (*entities.User, error) {
	return s.FindUser(nil, 0)
}

func (s *stubUserRepo) GetByRole(_ context.Context, _ string) ([]entities.User, error) {
	if s.user == nil {
		return []entities.User{}, nil
	}
	return []entities.User{*s.user}, nil
}

func (s *stubUserRepo) StaffPerformance(_ context.Context, _, _ time.Time) ([]repositories.StaffStats, error) {
	return s.staff, nil
}

// stubCacheRepo хранит значения в map и воспроизводит одноразовую семантику
// TakeJSON.
type stubCacheRepo struct {
	values map[string][]byte
}

func newStubCacheRepo() *stubCacheRepo {
	return &stubCacheRepo{values: make(map[string][]byte)}
}

func (s *stubCacheRepo) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.values[key] = payload
	return nil
}

func (s *stubCacheRepo) TakeJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	payload, ok := s.values[key]
	if !ok {
		return false, nil
	}
	delete(s.values, key)
	return true, json.Unmarshal(payload, dest)
}

type stubCaseRepo struct {
	cases    []entities.TreatmentCase
	found    *entities.TreatmentCase
	payments []int64
}

func (s *stubCaseRepo) GetByCustomer(_ context.Context, _ uint64) ([]entities.TreatmentCase, error) {
	return s.cases, nil
}

func (s *stubCaseRepo) FindCase(_ context.Context, _ uint64) (*entities.TreatmentCase, error) {
	if s.found == nil {
		return nil, apperrors.ErrNotFound
	}
	return s.found, nil
}

func (s *stubCaseRepo) CreateCase(_ context.Context, tc entities.TreatmentCase) (*entities.TreatmentCase, error) {
	tc.ID = 55
	tc.CreatedAt = time.Now()
	return &tc, nil
}

func (s *stubCaseRepo) ApplyPayment(_ context.Context, _ uint64, amount int64) (*entities.TreatmentCase, error) {
	if s.found == nil {
		return nil, apperrors.ErrNotFound
	}
	s.payments = append(s.payments, amount)
	return s.found, nil
}

func (s *stubCaseRepo) CountByCustomer(_ context.Context, _ uint64) (int, error) {
	return len(s.cases), nil
}

type stubFinancialRepo struct {
	items   []entities.FinancialTransaction
	created []entities.FinancialTransaction
}

func (s *stubFinancialRepo) GetByCustomer(_ context.Context, _ uint64) ([]entities.FinancialTransaction, error) {
	return s.items, nil
}

func (s *stubFinancialRepo) CreateTransaction(_ context.Context, tx entities.FinancialTransaction) (*entities.FinancialTransaction, error) {
	tx.ID = uint64(len(s.created) + 1)
	tx.CreatedAt = time.Now()
	s.created = append(s.created, tx)
	return &tx, nil
}

func (s *stubFinancialRepo) CountByCustomer(_ context.Context, _ uint64) (int, error) {
	return len(s.items), nil
}

type stubPhotoRepo struct {
	photos  []entities.Photo
	created []entities.Photo
}

func (s *stubPhotoRepo) GetByCase(_ context.Context, _ uint64) ([]entities.Photo, error) {
	return s.photos, nil
}

func (s *stubPhotoRepo) CreatePhoto(_ context.Context, p entities.Photo) (*entities.Photo, error) {
	p.ID = uint64(len(s.created) + 1)
	p.CreatedAt = time.Now()
	s.created = append(s.created, p)
	return &p, nil
}

func (s *stubPhotoRepo) FindPhoto(_ context.Context, _ uint64) (*entities.Photo, error) {
	if len(s.photos) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &s.photos[0], nil
}

func (s *stubPhotoRepo) DeletePhoto(_ context.Context, _ uint64) error { return nil }

type stubFileStorage struct {
	saved   []string
	deleted []string
	saveErr error
}

func (s *stubFileStorage) Save(_ io.Reader, originalFileName string, prefix string) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	path := prefix + "/" + originalFileName
	s.saved = append(s.saved, path)
	return path, nil
}

func (s *stubFileStorage) Delete(fileURL string) error {
	s.deleted = append(s.deleted, fileURL)
	return nil
}
