package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"spa-system/internal/entities"
)

type dbTransaction struct {
	ID         uint64
	CustomerID uint64
	CaseID     sql.NullInt64
	Type       string
	Amount     int64
	Note       sql.NullString
	CreatedAt  time.Time
}

func (db *dbTransaction) ToEntity() entities.FinancialTransaction {
	tx := entities.FinancialTransaction{
		ID:         db.ID,
		CustomerID: db.CustomerID,
		Type:       db.Type,
		Amount:     db.Amount,
		CreatedAt:  db.CreatedAt,
	}
	if db.CaseID.Valid {
		id := uint64(db.CaseID.Int64)
		tx.CaseID = &id
	}
	if db.Note.Valid {
		tx.Note = &db.Note.String
	}
	return tx
}

type FinancialRepositoryInterface interface {
	GetByCustomer(ctx context.Context, customerID uint64) ([]entities.FinancialTransaction, error)
	CreateTransaction(ctx context.Context, tx entities.FinancialTransaction) (*entities.FinancialTransaction, error)
	CountByCustomer(ctx context.Context, customerID uint64) (int, error)
}

type financialRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewFinancialRepository(storage *pgxpool.Pool, logger *zap.Logger) FinancialRepositoryInterface {
	return &financialRepository{storage: storage, logger: logger}
}

func (r *financialRepository) GetByCustomer(ctx context.Context, customerID uint64) ([]entities.FinancialTransaction, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT id, customer_id, case_id, type, amount, note, created_at
		 FROM financial_transactions WHERE customer_id = $1 ORDER BY created_at DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]entities.FinancialTransaction, 0)
	for rows.Next() {
		var dbRow dbTransaction
		if err := rows.Scan(&dbRow.ID, &dbRow.CustomerID, &dbRow.CaseID, &dbRow.Type,
			&dbRow.Amount, &dbRow.Note, &dbRow.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, dbRow.ToEntity())
	}
	return items, rows.Err()
}

func (r *financialRepository) CreateTransaction(ctx context.Context, tx entities.FinancialTransaction) (*entities.FinancialTransaction, error) {
	query := `INSERT INTO financial_transactions (customer_id, case_id, type, amount, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	created := tx
	err := r.storage.QueryRow(ctx, query, tx.CustomerID, tx.CaseID, tx.Type, tx.Amount, tx.Note).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *financialRepository) CountByCustomer(ctx context.Context, customerID uint64) (int, error) {
	var count int
	err := r.storage.QueryRow(ctx,
		"SELECT COUNT(*) FROM financial_transactions WHERE customer_id = $1", customerID).Scan(&count)
	return count, err
}
