package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"spa-system/internal/entities"
	apperrors "spa-system/pkg/errors"
)

const caseFields = `c.id, c.customer_id, c.primary_service_id, COALESCE(s.name, ''),
	c.status, c.paid_status, c.total_amount, c.amount_paid, c.intake_note,
	c.start_date, c.end_date, c.created_at, c.updated_at`

type dbCase struct {
	ID                 uint64
	CustomerID         uint64
	PrimaryServiceID   sql.NullInt64
	PrimaryServiceName string
	Status             string
	PaidStatus         string
	TotalAmount        int64
	AmountPaid         int64
	IntakeNote         sql.NullString
	StartDate          sql.NullTime
	EndDate            sql.NullTime
	CreatedAt          time.Time
	UpdatedAt          sql.NullTime
}

func (db *dbCase) scanTargets() []interface{} {
	return []interface{}{
		&db.ID, &db.CustomerID, &db.PrimaryServiceID, &db.PrimaryServiceName,
		&db.Status, &db.PaidStatus, &db.TotalAmount, &db.AmountPaid, &db.IntakeNote,
		&db.StartDate, &db.EndDate, &db.CreatedAt, &db.UpdatedAt,
	}
}

func (db *dbCase) ToEntity() entities.TreatmentCase {
	tc := entities.TreatmentCase{
		ID:                 db.ID,
		CustomerID:         db.CustomerID,
		PrimaryServiceName: db.PrimaryServiceName,
		Status:             db.Status,
		PaidStatus:         db.PaidStatus,
		TotalAmount:        db.TotalAmount,
		AmountPaid:         db.AmountPaid,
		CreatedAt:          db.CreatedAt,
	}
	if db.PrimaryServiceID.Valid {
		id := uint64(db.PrimaryServiceID.Int64)
		tc.PrimaryServiceID = &id
	}
	if db.IntakeNote.Valid {
		tc.IntakeNote = &db.IntakeNote.String
	}
	if db.StartDate.Valid {
		tc.StartDate = &db.StartDate.Time
	}
	if db.EndDate.Valid {
		tc.EndDate = &db.EndDate.Time
	}
	if db.UpdatedAt.Valid {
		tc.UpdatedAt = &db.UpdatedAt.Time
	}
	return tc
}

type CaseRepositoryInterface interface {
	GetByCustomer(ctx context.Context, customerID uint64) ([]entities.TreatmentCase, error)
	FindCase(ctx context.Context, id uint64) (*entities.TreatmentCase, error)
	CreateCase(ctx context.Context, tc entities.TreatmentCase) (*entities.TreatmentCase, error)
	ApplyPayment(ctx context.Context, id uint64, amount int64) (*entities.TreatmentCase, error)
	CountByCustomer(ctx context.Context, customerID uint64) (int, error)
}

type caseRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCaseRepository(storage *pgxpool.Pool, logger *zap.Logger) CaseRepositoryInterface {
	return &caseRepository{storage: storage, logger: logger}
}

func (r *caseRepository) selectBuilder() sq.SelectBuilder {
	return sq.Select(caseFields).
		From("treatment_cases c").
		JoinClause("LEFT JOIN services s ON s.id = c.primary_service_id").
		PlaceholderFormat(sq.Dollar)
}

func (r *caseRepository) GetByCustomer(ctx context.Context, customerID uint64) ([]entities.TreatmentCase, error) {
	query, args, err := r.selectBuilder().
		Where(sq.Eq{"c.customer_id": customerID}).
		OrderBy("c.created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cases := make([]entities.TreatmentCase, 0)
	for rows.Next() {
		var dbRow dbCase
		if err := rows.Scan(dbRow.scanTargets()...); err != nil {
			return nil, err
		}
		cases = append(cases, dbRow.ToEntity())
	}
	return cases, rows.Err()
}

func (r *caseRepository) FindCase(ctx context.Context, id uint64) (*entities.TreatmentCase, error) {
	query, args, err := r.selectBuilder().Where(sq.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbCase
	if err := r.storage.QueryRow(ctx, query, args...).Scan(dbRow.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	tc := dbRow.ToEntity()
	return &tc, nil
}

func (r *caseRepository) CreateCase(ctx context.Context, tc entities.TreatmentCase) (*entities.TreatmentCase, error) {
	query := `INSERT INTO treatment_cases
		(customer_id, primary_service_id, status, paid_status, total_amount, amount_paid, intake_note, start_date)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7)
		RETURNING id`

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		tc.CustomerID, tc.PrimaryServiceID, tc.Status, tc.PaidStatus,
		tc.TotalAmount, tc.IntakeNote, tc.StartDate,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, apperrors.NewHttpError(400, "Указанный клиент или услуга не существует", err, nil)
		}
		return nil, err
	}
	return r.FindCase(ctx, id)
}

// ApplyPayment увеличивает amount_paid и пересчитывает paid_status одним
// запросом, чтобы статус не разъехался с суммой при параллельных оплатах.
func (r *caseRepository) ApplyPayment(ctx context.Context, id uint64, amount int64) (*entities.TreatmentCase, error) {
	query := `UPDATE treatment_cases
		SET amount_paid = amount_paid + $1,
		    paid_status = CASE
				WHEN amount_paid + $1 >= total_amount THEN 'FULLY_PAID'
				WHEN amount_paid + $1 > 0 THEN 'PARTIALLY_PAID'
				ELSE 'UNPAID'
			END,
		    updated_at = NOW()
		WHERE id = $2
		RETURNING id`

	var updatedID uint64
	if err := r.storage.QueryRow(ctx, query, amount, id).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return r.FindCase(ctx, updatedID)
}

func (r *caseRepository) CountByCustomer(ctx context.Context, customerID uint64) (int, error) {
	var count int
	err := r.storage.QueryRow(ctx,
		"SELECT COUNT(*) FROM treatment_cases WHERE customer_id = $1", customerID).Scan(&count)
	return count, err
}
