package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"spa-system/internal/entities"
	apperrors "spa-system/pkg/errors"
)

type ServiceRepositoryInterface interface {
	GetServices(ctx context.Context, onlyActive bool) ([]entities.Service, error)
	FindService(ctx context.Context, id uint64) (*entities.Service, error)
	TopByUsage(ctx context.Context, from, to time.Time, limit int) ([]ServiceUsage, error)
}

// ServiceUsage — агрегат для отчёта "популярные услуги".
type ServiceUsage struct {
	ServiceID   uint64
	ServiceName string
	Bookings    int
	Revenue     int64
}

type serviceRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewServiceRepository(storage *pgxpool.Pool, logger *zap.Logger) ServiceRepositoryInterface {
	return &serviceRepository{storage: storage, logger: logger}
}

func (r *serviceRepository) GetServices(ctx context.Context, onlyActive bool) ([]entities.Service, error) {
	query := "SELECT id, name, price, duration_minutes, active, created_at FROM services"
	if onlyActive {
		query += " WHERE active"
	}
	query += " ORDER BY name ASC"

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]entities.Service, 0)
	for rows.Next() {
		var s entities.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Price, &s.DurationMinutes, &s.Active, &s.CreatedAt); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

func (r *serviceRepository) FindService(ctx context.Context, id uint64) (*entities.Service, error) {
	var s entities.Service
	err := r.storage.QueryRow(ctx,
		"SELECT id, name, price, duration_minutes, active, created_at FROM services WHERE id = $1", id).
		Scan(&s.ID, &s.Name, &s.Price, &s.DurationMinutes, &s.Active, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *serviceRepository) TopByUsage(ctx context.Context, from, to time.Time, limit int) ([]ServiceUsage, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT s.id, s.name, COUNT(a.id), COUNT(a.id) * s.price
		 FROM services s
		 JOIN appointments a ON a.service_id = s.id
		 WHERE a.appointment_datetime >= $1 AND a.appointment_datetime < $2
		   AND a.status IN ('DONE', 'COMPLETED')
		 GROUP BY s.id, s.name, s.price
		 ORDER BY COUNT(a.id) DESC
		 LIMIT $3`, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	usages := make([]ServiceUsage, 0)
	for rows.Next() {
		var u ServiceUsage
		if err := rows.Scan(&u.ServiceID, &u.ServiceName, &u.Bookings, &u.Revenue); err != nil {
			return nil, err
		}
		usages = append(usages, u)
	}
	return usages, rows.Err()
}
