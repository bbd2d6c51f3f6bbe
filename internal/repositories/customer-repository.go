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

	"spa-system/internal/dto"
	"spa-system/internal/entities"
	infradb "spa-system/internal/infrastructure/db"
	apperrors "spa-system/pkg/errors"
	"spa-system/pkg/utils"
)

const customerFields = "id, full_name, phone, email, birth_date, notes, total_spent, created_at, updated_at"

var customerSortMap = map[string]string{
	"id":         "id",
	"fullName":   "full_name",
	"totalSpent": "total_spent",
	"createdAt":  "created_at",
}

type dbCustomer struct {
	ID         uint64
	FullName   string
	Phone      string
	Email      sql.NullString
	BirthDate  sql.NullTime
	Notes      sql.NullString
	TotalSpent int64
	CreatedAt  time.Time
	UpdatedAt  sql.NullTime
}

func (db *dbCustomer) scanTargets() []interface{} {
	return []interface{}{
		&db.ID, &db.FullName, &db.Phone, &db.Email, &db.BirthDate,
		&db.Notes, &db.TotalSpent, &db.CreatedAt, &db.UpdatedAt,
	}
}

func (db *dbCustomer) ToEntity() entities.Customer {
	c := entities.Customer{
		ID:         db.ID,
		FullName:   db.FullName,
		Phone:      db.Phone,
		TotalSpent: db.TotalSpent,
		CreatedAt:  db.CreatedAt,
	}
	if db.Email.Valid {
		c.Email = &db.Email.String
	}
	if db.BirthDate.Valid {
		c.BirthDate = &db.BirthDate.Time
	}
	if db.Notes.Valid {
		c.Notes = &db.Notes.String
	}
	if db.UpdatedAt.Valid {
		c.UpdatedAt = &db.UpdatedAt.Time
	}
	return c
}

type CustomerRepositoryInterface interface {
	GetCustomers(ctx context.Context, params utils.PageParams, search string) ([]entities.Customer, uint64, error)
	FindCustomer(ctx context.Context, id uint64) (*entities.Customer, error)
	FindByPhone(ctx context.Context, phone string) (*entities.Customer, error)
	CreateCustomer(ctx context.Context, c entities.Customer) (*entities.Customer, error)
	UpdateCustomer(ctx context.Context, id uint64, payload dto.UpdateCustomerDTO) (*entities.Customer, error)
	AddToTotalSpent(ctx context.Context, id uint64, amount int64) error
}

type customerRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCustomerRepository(storage *pgxpool.Pool, logger *zap.Logger) CustomerRepositoryInterface {
	return &customerRepository{storage: storage, logger: logger}
}

func (r *customerRepository) GetCustomers(ctx context.Context, params utils.PageParams, search string) ([]entities.Customer, uint64, error) {
	countBuilder := sq.Select("COUNT(*)").From("customers").PlaceholderFormat(sq.Dollar)
	listBuilder := sq.Select(customerFields).From("customers").PlaceholderFormat(sq.Dollar)

	if search != "" {
		like := "%" + search + "%"
		where := sq.Or{sq.ILike{"full_name": like}, sq.Like{"phone": like}}
		countBuilder = countBuilder.Where(where)
		listBuilder = listBuilder.Where(where)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Customer{}, 0, nil
	}

	listBuilder = infradb.ApplySort(listBuilder, params, customerSortMap, "id")
	listBuilder = infradb.ApplyPage(listBuilder, params)

	query, args, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	customers := make([]entities.Customer, 0)
	for rows.Next() {
		var dbRow dbCustomer
		if err := rows.Scan(dbRow.scanTargets()...); err != nil {
			return nil, 0, err
		}
		customers = append(customers, dbRow.ToEntity())
	}
	return customers, total, rows.Err()
}

func (r *customerRepository) FindCustomer(ctx context.Context, id uint64) (*entities.Customer, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *customerRepository) FindByPhone(ctx context.Context, phone string) (*entities.Customer, error) {
	return r.findOne(ctx, sq.Eq{"phone": phone})
}

func (r *customerRepository) findOne(ctx context.Context, where sq.Eq) (*entities.Customer, error) {
	query, args, err := sq.Select(customerFields).From("customers").
		Where(where).PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbCustomer
	if err := r.storage.QueryRow(ctx, query, args...).Scan(dbRow.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	c := dbRow.ToEntity()
	return &c, nil
}

func (r *customerRepository) CreateCustomer(ctx context.Context, c entities.Customer) (*entities.Customer, error) {
	query := `INSERT INTO customers (full_name, phone, email, birth_date, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id uint64
	err := r.storage.QueryRow(ctx, query, c.FullName, c.Phone, c.Email, c.BirthDate, c.Notes).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.NewHttpError(409, "Клиент с таким телефоном уже существует", err, nil)
		}
		return nil, err
	}
	return r.FindCustomer(ctx, id)
}

func (r *customerRepository) UpdateCustomer(ctx context.Context, id uint64, payload dto.UpdateCustomerDTO) (*entities.Customer, error) {
	builder := sq.Update("customers").PlaceholderFormat(sq.Dollar)
	changed := false

	if payload.FullName.Valid {
		builder = builder.Set("full_name", payload.FullName.String)
		changed = true
	}
	if payload.Phone.Valid {
		builder = builder.Set("phone", payload.Phone.String)
		changed = true
	}
	if payload.Email.Valid {
		builder = builder.Set("email", payload.Email.String)
		changed = true
	}
	if payload.Notes.Valid {
		builder = builder.Set("notes", payload.Notes.String)
		changed = true
	}
	if !changed {
		return r.FindCustomer(ctx, id)
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()")).Where(sq.Eq{"id": id}).Suffix("RETURNING id")
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var updatedID uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.NewHttpError(409, "Клиент с таким телефоном уже существует", err, nil)
		}
		return nil, err
	}
	return r.FindCustomer(ctx, updatedID)
}

func (r *customerRepository) AddToTotalSpent(ctx context.Context, id uint64, amount int64) error {
	result, err := r.storage.Exec(ctx,
		"UPDATE customers SET total_spent = total_spent + $1, updated_at = NOW() WHERE id = $2", amount, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
