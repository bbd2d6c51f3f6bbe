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

type UserRepositoryInterface interface {
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByRole(ctx context.Context, role string) ([]entities.User, error)
	StaffPerformance(ctx context.Context, from, to time.Time) ([]StaffStats, error)
}

// StaffStats — агрегат "выработка мастера" для отчёта менеджера.
type StaffStats struct {
	UserID         uint64
	FullName       string
	CompletedCount int
	NoShowCount    int
}

type userRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &userRepository{storage: storage, logger: logger}
}

const userFields = "id, full_name, email, phone, password_hash, role, active, created_at"

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.Active, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	u, err := scanUser(r.storage.QueryRow(ctx,
		"SELECT "+userFields+" FROM users WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	u, err := scanUser(r.storage.QueryRow(ctx,
		"SELECT "+userFields+" FROM users WHERE email = $1", email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByRole(ctx context.Context, role string) ([]entities.User, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT "+userFields+" FROM users WHERE role = $1 AND active ORDER BY full_name", role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *userRepository) StaffPerformance(ctx context.Context, from, to time.Time) ([]StaffStats, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT u.id, u.full_name,
		        COUNT(a.id) FILTER (WHERE a.status IN ('DONE', 'COMPLETED')),
		        COUNT(a.id) FILTER (WHERE a.status = 'NO_SHOW')
		 FROM users u
		 LEFT JOIN appointments a ON a.technician_id = u.id
			AND a.appointment_datetime >= $1 AND a.appointment_datetime < $2
		 WHERE u.role = 'TECHNICIAN' AND u.active
		 GROUP BY u.id, u.full_name
		 ORDER BY 3 DESC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]StaffStats, 0)
	for rows.Next() {
		var s StaffStats
		if err := rows.Scan(&s.UserID, &s.FullName, &s.CompletedCount, &s.NoShowCount); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
