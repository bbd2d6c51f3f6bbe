package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"spa-system/internal/entities"
	apperrors "spa-system/pkg/errors"
)

type LeadRepositoryInterface interface {
	GetLeads(ctx context.Context) ([]entities.Lead, error)
	FindLead(ctx context.Context, id uint64) (*entities.Lead, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
}

type leadRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewLeadRepository(storage *pgxpool.Pool, logger *zap.Logger) LeadRepositoryInterface {
	return &leadRepository{storage: storage, logger: logger}
}

func scanLead(row pgx.Row) (*entities.Lead, error) {
	var lead entities.Lead
	var source sql.NullString
	var createdAt time.Time

	if err := row.Scan(&lead.ID, &lead.FullName, &lead.Phone, &source, &lead.Status, &createdAt); err != nil {
		return nil, err
	}
	if source.Valid {
		lead.Source = &source.String
	}
	lead.CreatedAt = createdAt
	return &lead, nil
}

func (r *leadRepository) GetLeads(ctx context.Context) ([]entities.Lead, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT id, full_name, phone, source, status, created_at FROM leads ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]entities.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

func (r *leadRepository) FindLead(ctx context.Context, id uint64) (*entities.Lead, error) {
	lead, err := scanLead(r.storage.QueryRow(ctx,
		"SELECT id, full_name, phone, source, status, created_at FROM leads WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return lead, nil
}

func (r *leadRepository) UpdateStatus(ctx context.Context, id uint64, status string) error {
	result, err := r.storage.Exec(ctx, "UPDATE leads SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
