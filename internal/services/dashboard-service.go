package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"spa-system/internal/dto"
	"spa-system/internal/entities"
	"spa-system/internal/repositories"
	"spa-system/pkg/constants"
)

// Окно "скоро начнётся" для колонки напоминаний ресепшн.
const upcomingWindow = 4 * time.Hour

const recentActivitiesLimit = 10

// История техника усечена до десяти последних записей.
const myAppointmentsLimit = 10

type DashboardServiceInterface interface {
	GetReceptionistDashboard(ctx context.Context) (*dto.ReceptionistDashboardDTO, error)
	GetTechnicianDashboard(ctx context.Context, technicianID uint64) (*dto.TechnicianDashboardDTO, error)
	GetManagerDashboard(ctx context.Context, from, to time.Time) (*dto.ManagerDashboardDTO, error)
}

type dashboardService struct {
	dashboardRepo repositories.DashboardRepositoryInterface
	apptRepo      repositories.AppointmentRepositoryInterface
	activityRepo  repositories.ActivityRepositoryInterface
	serviceRepo   repositories.ServiceRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	logger        *zap.Logger

	// Подменяется в тестах, чтобы зафиксировать "сейчас".
	now func() time.Time
}

func NewDashboardService(
	dashboardRepo repositories.DashboardRepositoryInterface,
	apptRepo repositories.AppointmentRepositoryInterface,
	activityRepo repositories.ActivityRepositoryInterface,
	serviceRepo repositories.ServiceRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &dashboardService{
		dashboardRepo: dashboardRepo,
		apptRepo:      apptRepo,
		activityRepo:  activityRepo,
		serviceRepo:   serviceRepo,
		userRepo:      userRepo,
		logger:        logger,
		now:           time.Now,
	}
}

// GetReceptionistDashboard собирает три секции параллельно. Отказ одной
// секции не роняет остальные: её место занимает пустое значение, а текст
// ошибки уходит в sectionErrors под именем секции.
func (s *dashboardService) GetReceptionistDashboard(ctx context.Context) (*dto.ReceptionistDashboardDTO, error) {
	now := s.now()

	var (
		overview   repositories.OverviewCounters
		today      []entities.Appointment
		activities []entities.Activity

		mu            sync.Mutex
		sectionErrors = make(map[string]string)
		wg            sync.WaitGroup
	)

	fail := func(section string, err error) {
		s.logger.Error("секция дашборда не загрузилась", zap.String("section", section), zap.Error(err))
		mu.Lock()
		sectionErrors[section] = err.Error()
		mu.Unlock()
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		counters, err := s.dashboardRepo.GetOverviewCounters(ctx, startOfDay(now))
		if err != nil {
			fail("overview", err)
			return
		}
		overview = counters
	}()
	go func() {
		defer wg.Done()
		appts, err := s.apptRepo.GetForDay(ctx, now)
		if err != nil {
			fail("todayAppointments", err)
			return
		}
		today = appts
	}()
	go func() {
		defer wg.Done()
		items, err := s.activityRepo.GetRecent(ctx, recentActivitiesLimit)
		if err != nil {
			fail("recentActivities", err)
			return
		}
		activities = items
	}()
	wg.Wait()

	out := &dto.ReceptionistDashboardDTO{
		Overview: dto.ReceptionistOverviewDTO{
			TotalAppointments:    overview.TotalAppointments,
			TotalCustomers:       overview.TotalCustomers,
			PendingConsultations: overview.PendingConsultations,
			TodayRevenue:         overview.TodayRevenue,
		},
		TodayAppointments:    toAppointmentDTOs(today),
		RecentActivities:     make([]dto.ActivityDTO, 0, len(activities)),
		UpcomingAppointments: toAppointmentDTOs(filterUpcoming(today, now)),
	}
	for _, a := range activities {
		out.RecentActivities = append(out.RecentActivities, toActivityDTO(a))
	}
	if len(sectionErrors) > 0 {
		out.SectionErrors = sectionErrors
	}
	return out, nil
}

// filterUpcoming оставляет записи, начинающиеся в ближайшие четыре часа,
// обе границы включительно. Уже начавшиеся и отменённые не показываются.
func filterUpcoming(appts []entities.Appointment, now time.Time) []entities.Appointment {
	horizon := now.Add(upcomingWindow)

	upcoming := make([]entities.Appointment, 0)
	for _, a := range appts {
		if a.Status == constants.ApptStatusCancelled || a.Status == constants.ApptStatusNoShow {
			continue
		}
		if !a.AppointmentDateTime.Before(now) && !a.AppointmentDateTime.After(horizon) {
			upcoming = append(upcoming, a)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].AppointmentDateTime.Before(upcoming[j].AppointmentDateTime)
	})
	return upcoming
}

func (s *dashboardService) GetTechnicianDashboard(ctx context.Context, technicianID uint64) (*dto.TechnicianDashboardDTO, error) {
	now := s.now()

	todayAll, err := s.apptRepo.GetForDay(ctx, now)
	if err != nil {
		return nil, err
	}
	mine, err := s.apptRepo.GetRecentByTechnician(ctx, technicianID, myAppointmentsLimit)
	if err != nil {
		return nil, err
	}
	if len(mine) > myAppointmentsLimit {
		mine = mine[:myAppointmentsLimit]
	}

	// Сегодняшние записи техника: из них выводятся текущая процедура,
	// следующая запись и дневная статистика. Общий список дня не фильтруется.
	myToday := make([]entities.Appointment, 0)
	for _, a := range todayAll {
		if a.TechnicianID != nil && *a.TechnicianID == technicianID {
			myToday = append(myToday, a)
		}
	}

	out := &dto.TechnicianDashboardDTO{
		TodayAppointments: toAppointmentDTOs(todayAll),
		MyAppointments:    toAppointmentDTOs(mine),
	}

	// Текущая процедура: сегодняшняя запись техника в статусе IN_PROGRESS.
	for _, a := range myToday {
		if a.Status == constants.ApptStatusInProgress {
			current := toAppointmentDTO(a)
			out.CurrentTreatment = &current
			break
		}
	}

	// Следующая: ближайшая сегодняшняя запись, которая ещё не началась.
	var next *entities.Appointment
	for i := range myToday {
		a := myToday[i]
		if a.AppointmentDateTime.Before(now) {
			continue
		}
		switch a.Status {
		case constants.ApptStatusScheduled, constants.ApptStatusConfirmed, constants.ApptStatusCheckedIn:
			if next == nil || a.AppointmentDateTime.Before(next.AppointmentDateTime) {
				next = &myToday[i]
			}
		}
	}
	if next != nil {
		nextDTO := toAppointmentDTO(*next)
		out.NextAppointment = &nextDTO
	}

	perf := dto.TechnicianPerformanceDTO{
		TodayTotal:        len(myToday),
		TotalAppointments: len(mine),
	}
	completedAll := 0
	for _, a := range myToday {
		if a.Status == constants.ApptStatusCompleted || a.Status == constants.ApptStatusDone {
			perf.TodayCompleted++
		}
	}
	for _, a := range mine {
		if a.Status == constants.ApptStatusCompleted || a.Status == constants.ApptStatusDone {
			completedAll++
		}
	}
	if perf.TotalAppointments > 0 {
		perf.CompletionRate = completedAll * 100 / perf.TotalAppointments
	}
	out.Performance = perf

	return out, nil
}

func (s *dashboardService) GetManagerDashboard(ctx context.Context, from, to time.Time) (*dto.ManagerDashboardDTO, error) {
	counters, err := s.dashboardRepo.GetPeriodCounters(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := &dto.ManagerDashboardDTO{
		Period: dto.PeriodStatsDTO{
			StartDate:         from.Format("2006-01-02"),
			EndDate:           to.Format("2006-01-02"),
			AppointmentsTotal: counters.AppointmentsTotal,
			AppointmentsDone:  counters.AppointmentsDone,
			NewCustomers:      counters.NewCustomers,
			Revenue:           counters.Revenue,
		},
		TopServices: []dto.TopServiceDTO{},
		Staff:       []dto.StaffPerformanceDTO{},
	}

	usages, err := s.serviceRepo.TopByUsage(ctx, from, to, 5)
	if err != nil {
		return nil, err
	}
	for _, u := range usages {
		out.TopServices = append(out.TopServices, dto.TopServiceDTO{
			ServiceID:    u.ServiceID,
			ServiceName:  u.ServiceName,
			Appointments: uint64(u.Bookings),
			Revenue:      u.Revenue,
		})
	}

	staff, err := s.userRepo.StaffPerformance(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, st := range staff {
		out.Staff = append(out.Staff, dto.StaffPerformanceDTO{
			TechnicianID:   st.UserID,
			TechnicianName: st.FullName,
			Completed:      uint64(st.CompletedCount),
			NoShows:        uint64(st.NoShowCount),
		})
	}

	return out, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
