package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"spa-system/internal/entities"
	"spa-system/internal/repositories"
	"spa-system/pkg/constants"
)

// fixedNow — 10:00 локального времени, от него отсчитывается окно "скоро".
var fixedNow = time.Date(2025, 8, 20, 10, 0, 0, 0, time.Local)

func newTestDashboardService(
	dashboardRepo *stubDashboardRepo,
	apptRepo *stubApptRepo,
	activityRepo *stubActivityRepo,
) *dashboardService {
	return &dashboardService{
		dashboardRepo: dashboardRepo,
		apptRepo:      apptRepo,
		activityRepo:  activityRepo,
		serviceRepo:   &stubServiceRepo{},
		userRepo:      &stubUserRepo{},
		logger:        zap.NewNop(),
		now:           func() time.Time { return fixedNow },
	}
}

func apptAt(id uint64, offset time.Duration, status string) entities.Appointment {
	return entities.Appointment{
		ID:                  id,
		CustomerName:        fmt.Sprintf("Клиент %d", id),
		AppointmentDateTime: fixedNow.Add(offset),
		Status:              status,
	}
}

func TestReceptionistDashboardUpcomingWindow(t *testing.T) {
	apptRepo := &stubApptRepo{forDay: []entities.Appointment{
		apptAt(1, 90*time.Minute, constants.ApptStatusScheduled),  // 11:30 — в окне
		apptAt(2, 5*time.Hour, constants.ApptStatusScheduled),     // 15:00 — за горизонтом
		apptAt(3, -time.Hour, constants.ApptStatusConfirmed),      // уже началась
		apptAt(4, 30*time.Minute, constants.ApptStatusCancelled),  // отменена
		apptAt(5, 3*time.Hour, constants.ApptStatusConfirmed),     // 13:00 — в окне
		apptAt(6, 210*time.Minute, constants.ApptStatusScheduled), // 13:30 — в окне
	}}
	svc := newTestDashboardService(&stubDashboardRepo{}, apptRepo, &stubActivityRepo{})

	dashboard, err := svc.GetReceptionistDashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, dashboard.UpcomingAppointments, 3)
	// Отсортированы по времени начала.
	assert.Equal(t, uint64(1), dashboard.UpcomingAppointments[0].ApptID)
	assert.Equal(t, uint64(5), dashboard.UpcomingAppointments[1].ApptID)
	assert.Equal(t, uint64(6), dashboard.UpcomingAppointments[2].ApptID)
	assert.Empty(t, dashboard.SectionErrors)
}

func TestReceptionistDashboardBoundaryOfWindow(t *testing.T) {
	apptRepo := &stubApptRepo{forDay: []entities.Appointment{
		apptAt(1, 0, constants.ApptStatusScheduled),                          // ровно сейчас — в окне
		apptAt(2, upcomingWindow, constants.ApptStatusScheduled),             // ровно на горизонте — в окне
		apptAt(3, upcomingWindow+time.Minute, constants.ApptStatusScheduled), // минутой позже — вне
	}}
	svc := newTestDashboardService(&stubDashboardRepo{}, apptRepo, &stubActivityRepo{})

	dashboard, err := svc.GetReceptionistDashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, dashboard.UpcomingAppointments, 2)
	assert.Equal(t, uint64(1), dashboard.UpcomingAppointments[0].ApptID)
	assert.Equal(t, uint64(2), dashboard.UpcomingAppointments[1].ApptID)
}

func TestReceptionistDashboardPartialFailure(t *testing.T) {
	apptRepo := &stubApptRepo{forDayErr: fmt.Errorf("таймаут БД")}
	activityRepo := &stubActivityRepo{recent: []entities.Activity{
		{ID: 1, Action: constants.ActivityCreate, EntityType: "appointment", Detail: "создана запись", CreatedAt: fixedNow},
	}}
	dashboardRepo := &stubDashboardRepo{counters: repositories.OverviewCounters{
		TotalAppointments: 12,
		TotalCustomers:    7,
	}}
	svc := newTestDashboardService(dashboardRepo, apptRepo, activityRepo)

	dashboard, err := svc.GetReceptionistDashboard(context.Background())
	require.NoError(t, err)

	// Упавшая секция пришла пустой, её ошибка — в sectionErrors.
	assert.Empty(t, dashboard.TodayAppointments)
	assert.Empty(t, dashboard.UpcomingAppointments)
	require.Contains(t, dashboard.SectionErrors, "todayAppointments")

	// Остальные секции не пострадали.
	assert.Equal(t, uint64(12), dashboard.Overview.TotalAppointments)
	assert.Len(t, dashboard.RecentActivities, 1)
	assert.NotContains(t, dashboard.SectionErrors, "overview")
	assert.NotContains(t, dashboard.SectionErrors, "recentActivities")
}

func TestTechnicianDashboardFiltersAndDerivations(t *testing.T) {
	tech := uint64(3)
	other := uint64(9)

	withTech := func(a entities.Appointment, techID uint64) entities.Appointment {
		a.TechnicianID = &techID
		return a
	}

	apptRepo := &stubApptRepo{
		forDay: []entities.Appointment{
			withTech(apptAt(1, time.Hour, constants.ApptStatusScheduled), tech),
			withTech(apptAt(2, 2*time.Hour, constants.ApptStatusConfirmed), tech),
			withTech(apptAt(3, -time.Hour, constants.ApptStatusInProgress), tech),
			withTech(apptAt(4, time.Hour, constants.ApptStatusScheduled), other), // чужая
			withTech(apptAt(5, -2*time.Hour, constants.ApptStatusCompleted), tech),
		},
		recent: []entities.Appointment{
			withTech(apptAt(10, -48*time.Hour, constants.ApptStatusCompleted), tech),
			withTech(apptAt(11, -24*time.Hour, constants.ApptStatusDone), tech),
			withTech(apptAt(12, -12*time.Hour, constants.ApptStatusNoShow), tech),
			withTech(apptAt(13, time.Hour, constants.ApptStatusScheduled), tech),
		},
	}
	svc := newTestDashboardService(&stubDashboardRepo{}, apptRepo, &stubActivityRepo{})

	dashboard, err := svc.GetTechnicianDashboard(context.Background(), tech)
	require.NoError(t, err)

	// Список дня общий для всего салона, чужая запись в нём остаётся.
	assert.Len(t, dashboard.TodayAppointments, 5)

	require.NotNil(t, dashboard.CurrentTreatment)
	assert.Equal(t, uint64(3), dashboard.CurrentTreatment.ApptID)

	// Следующая — ближайшая не начавшаяся.
	require.NotNil(t, dashboard.NextAppointment)
	assert.Equal(t, uint64(1), dashboard.NextAppointment.ApptID)

	assert.Equal(t, 4, dashboard.Performance.TodayTotal)
	assert.Equal(t, 1, dashboard.Performance.TodayCompleted)
	assert.Equal(t, 4, dashboard.Performance.TotalAppointments)
	// 2 завершённых из 4 в истории.
	assert.Equal(t, 50, dashboard.Performance.CompletionRate)
}

func TestTechnicianDashboardHistoryCappedAtTen(t *testing.T) {
	tech := uint64(3)

	recent := make([]entities.Appointment, 0, 12)
	for i := 0; i < 12; i++ {
		a := apptAt(uint64(100+i), -time.Duration(i+1)*24*time.Hour, constants.ApptStatusCompleted)
		a.TechnicianID = &tech
		recent = append(recent, a)
	}
	apptRepo := &stubApptRepo{recent: recent}
	svc := newTestDashboardService(&stubDashboardRepo{}, apptRepo, &stubActivityRepo{})

	dashboard, err := svc.GetTechnicianDashboard(context.Background(), tech)
	require.NoError(t, err)

	// История усечена до десяти последних, процент считается от них же.
	assert.Len(t, dashboard.MyAppointments, 10)
	assert.Equal(t, 10, dashboard.Performance.TotalAppointments)
	assert.Equal(t, 100, dashboard.Performance.CompletionRate)
}

func TestManagerDashboard(t *testing.T) {
	dashboardRepo := &stubDashboardRepo{period: repositories.PeriodCounters{
		AppointmentsTotal: 40,
		AppointmentsDone:  25,
		NewCustomers:      8,
		Revenue:           12_500_000,
	}}
	svc := newTestDashboardService(dashboardRepo, &stubApptRepo{}, &stubActivityRepo{})
	svc.serviceRepo = &stubServiceRepo{usages: []repositories.ServiceUsage{
		{ServiceID: 1, ServiceName: "Пилинг", Bookings: 15, Revenue: 10_500_000},
	}}
	svc.userRepo = &stubUserRepo{staff: []repositories.StaffStats{
		{UserID: 3, FullName: "Мастер Линь", CompletedCount: 20, NoShowCount: 2},
	}}

	from := fixedNow.AddDate(0, 0, -30)
	dashboard, err := svc.GetManagerDashboard(context.Background(), from, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, uint64(40), dashboard.Period.AppointmentsTotal)
	assert.Equal(t, int64(12_500_000), dashboard.Period.Revenue)
	require.Len(t, dashboard.TopServices, 1)
	assert.Equal(t, "Пилинг", dashboard.TopServices[0].ServiceName)
	require.Len(t, dashboard.Staff, 1)
	assert.Equal(t, uint64(20), dashboard.Staff[0].Completed)
	assert.Equal(t, uint64(2), dashboard.Staff[0].NoShows)
}
