package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// OverviewCounters — сырые счётчики для шапки дашборда ресепшн.
type OverviewCounters struct {
	TotalAppointments    uint64
	TotalCustomers       uint64
	PendingConsultations uint64
	TodayRevenue         int64
}

// PeriodCounters — агрегаты за интервал для менеджерского дашборда.
type PeriodCounters struct {
	AppointmentsTotal uint64
	AppointmentsDone  uint64
	NewCustomers      uint64
	Revenue           int64
}

type DashboardRepositoryInterface interface {
	GetOverviewCounters(ctx context.Context, dayStart time.Time) (OverviewCounters, error)
	GetPeriodCounters(ctx context.Context, from, to time.Time) (PeriodCounters, error)
}

type dashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &dashboardRepository{storage: storage, logger: logger}
}

// Счётчики собираются одним запросом: дашборд дёргают часто, четыре
// раунд-трипа тут ни к чему.
func (r *dashboardRepository) GetOverviewCounters(ctx context.Context, dayStart time.Time) (OverviewCounters, error) {
	query := `SELECT
		(SELECT COUNT(*) FROM appointments),
		(SELECT COUNT(*) FROM customers),
		(SELECT COUNT(*) FROM leads WHERE status = 'NEW'),
		(SELECT COALESCE(SUM(amount), 0) FROM financial_transactions
			WHERE type = 'PAYMENT' AND created_at >= $1 AND created_at < $2)`

	var c OverviewCounters
	err := r.storage.QueryRow(ctx, query, dayStart, dayStart.Add(24*time.Hour)).
		Scan(&c.TotalAppointments, &c.TotalCustomers, &c.PendingConsultations, &c.TodayRevenue)
	return c, err
}

func (r *dashboardRepository) GetPeriodCounters(ctx context.Context, from, to time.Time) (PeriodCounters, error) {
	query := `SELECT
		(SELECT COUNT(*) FROM appointments
			WHERE appointment_datetime >= $1 AND appointment_datetime < $2),
		(SELECT COUNT(*) FROM appointments
			WHERE appointment_datetime >= $1 AND appointment_datetime < $2
			  AND status IN ('DONE', 'COMPLETED')),
		(SELECT COUNT(*) FROM customers WHERE created_at >= $1 AND created_at < $2),
		(SELECT COALESCE(SUM(amount), 0) FROM financial_transactions
			WHERE type = 'PAYMENT' AND created_at >= $1 AND created_at < $2)`

	var c PeriodCounters
	err := r.storage.QueryRow(ctx, query, from, to).
		Scan(&c.AppointmentsTotal, &c.AppointmentsDone, &c.NewCustomers, &c.Revenue)
	return c, err
}
