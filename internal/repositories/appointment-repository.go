package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
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

const (
	appointmentTable  = "appointments a"
	appointmentFields = `a.id, a.lead_id, a.customer_id, a.technician_id, a.service_id,
		a.customer_name, a.customer_phone, COALESCE(s.name, ''), a.appointment_datetime,
		a.status, a.reason, a.notes, a.reminder_sent, a.created_at, a.updated_at`
	appointmentJoin = "LEFT JOIN services s ON s.id = a.service_id"
)

// Сортировка только по полям из этого списка; всё остальное — по id.
var appointmentSortMap = map[string]string{
	"apptId":              "a.id",
	"appointmentDateTime": "a.appointment_datetime",
	"status":              "a.status",
	"customerName":        "a.customer_name",
	"createdAt":           "a.created_at",
}

type dbAppointment struct {
	ID            uint64
	LeadID        sql.NullInt64
	CustomerID    sql.NullInt64
	TechnicianID  sql.NullInt64
	ServiceID     sql.NullInt64
	CustomerName  string
	CustomerPhone string
	ServiceName   string
	DateTime      time.Time
	Status        string
	Reason        sql.NullString
	Notes         sql.NullString
	ReminderSent  bool
	CreatedAt     time.Time
	UpdatedAt     sql.NullTime
}

func (db *dbAppointment) scanTargets() []interface{} {
	return []interface{}{
		&db.ID, &db.LeadID, &db.CustomerID, &db.TechnicianID, &db.ServiceID,
		&db.CustomerName, &db.CustomerPhone, &db.ServiceName, &db.DateTime,
		&db.Status, &db.Reason, &db.Notes, &db.ReminderSent, &db.CreatedAt, &db.UpdatedAt,
	}
}

func (db *dbAppointment) ToEntity() entities.Appointment {
	appt := entities.Appointment{
		ID:                  db.ID,
		LeadID:              utils.NullInt64ToPtr(db.LeadID),
		CustomerID:          utils.NullInt64ToPtr(db.CustomerID),
		TechnicianID:        utils.NullInt64ToPtr(db.TechnicianID),
		ServiceID:           utils.NullInt64ToPtr(db.ServiceID),
		CustomerName:        db.CustomerName,
		CustomerPhone:       db.CustomerPhone,
		ServiceName:         db.ServiceName,
		AppointmentDateTime: db.DateTime,
		Status:              db.Status,
		ReminderSent:        db.ReminderSent,
		CreatedAt:           db.CreatedAt,
	}
	if db.Reason.Valid {
		appt.Reason = &db.Reason.String
	}
	if db.Notes.Valid {
		appt.Notes = &db.Notes.String
	}
	if db.UpdatedAt.Valid {
		appt.UpdatedAt = &db.UpdatedAt.Time
	}
	return appt
}

type AppointmentRepositoryInterface interface {
	GetAppointments(ctx context.Context, params utils.PageParams) ([]entities.Appointment, uint64, error)
	GetByCustomer(ctx context.Context, customerID uint64, params utils.PageParams) ([]entities.Appointment, uint64, error)
	GetForDay(ctx context.Context, day time.Time) ([]entities.Appointment, error)
	GetRecentByTechnician(ctx context.Context, technicianID uint64, limit uint64) ([]entities.Appointment, error)
	FindAppointment(ctx context.Context, id uint64) (*entities.Appointment, error)
	CreateAppointment(ctx context.Context, appt entities.Appointment) (*entities.Appointment, error)
	UpdateAppointment(ctx context.Context, id uint64, payload dto.UpdateAppointmentDTO) (*entities.Appointment, error)
	UpdateStatus(ctx context.Context, id uint64, status string, reason, notes *string) (*entities.Appointment, error)
	DeleteAppointment(ctx context.Context, id uint64) error
	UpsertImported(ctx context.Context, appt entities.Appointment) error
}

type appointmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewAppointmentRepository(storage *pgxpool.Pool, logger *zap.Logger) AppointmentRepositoryInterface {
	return &appointmentRepository{storage: storage, logger: logger}
}

func (r *appointmentRepository) selectBuilder() sq.SelectBuilder {
	return sq.Select(appointmentFields).
		From(appointmentTable).
		JoinClause(appointmentJoin).
		PlaceholderFormat(sq.Dollar)
}

func (r *appointmentRepository) queryList(ctx context.Context, builder sq.SelectBuilder) ([]entities.Appointment, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appts := make([]entities.Appointment, 0)
	for rows.Next() {
		var dbRow dbAppointment
		if err := rows.Scan(dbRow.scanTargets()...); err != nil {
			return nil, err
		}
		appts = append(appts, dbRow.ToEntity())
	}
	return appts, rows.Err()
}

func (r *appointmentRepository) GetAppointments(ctx context.Context, params utils.PageParams) ([]entities.Appointment, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM appointments").Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Appointment{}, 0, nil
	}

	builder := infradb.ApplySort(r.selectBuilder(), params, appointmentSortMap, "a.id")
	builder = infradb.ApplyPage(builder, params)

	appts, err := r.queryList(ctx, builder)
	if err != nil {
		return nil, 0, err
	}
	return appts, total, nil
}

func (r *appointmentRepository) GetByCustomer(ctx context.Context, customerID uint64, params utils.PageParams) ([]entities.Appointment, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx,
		"SELECT COUNT(*) FROM appointments WHERE customer_id = $1", customerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Appointment{}, 0, nil
	}

	builder := r.selectBuilder().Where(sq.Eq{"a.customer_id": customerID})
	builder = infradb.ApplySort(builder, params, appointmentSortMap, "a.appointment_datetime")
	builder = infradb.ApplyPage(builder, params)

	appts, err := r.queryList(ctx, builder)
	if err != nil {
		return nil, 0, err
	}
	return appts, total, nil
}

func (r *appointmentRepository) GetForDay(ctx context.Context, day time.Time) ([]entities.Appointment, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	builder := r.selectBuilder().
		Where(sq.GtOrEq{"a.appointment_datetime": start}).
		Where(sq.Lt{"a.appointment_datetime": end}).
		OrderBy("a.appointment_datetime ASC")

	return r.queryList(ctx, builder)
}

func (r *appointmentRepository) GetRecentByTechnician(ctx context.Context, technicianID uint64, limit uint64) ([]entities.Appointment, error) {
	builder := r.selectBuilder().
		Where(sq.Eq{"a.technician_id": technicianID}).
		OrderBy("a.appointment_datetime DESC").
		Limit(limit)

	return r.queryList(ctx, builder)
}

func (r *appointmentRepository) FindAppointment(ctx context.Context, id uint64) (*entities.Appointment, error) {
	builder := r.selectBuilder().Where(sq.Eq{"a.id": id})
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbAppointment
	if err := r.storage.QueryRow(ctx, query, args...).Scan(dbRow.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	appt := dbRow.ToEntity()
	return &appt, nil
}

func (r *appointmentRepository) CreateAppointment(ctx context.Context, appt entities.Appointment) (*entities.Appointment, error) {
	query := `INSERT INTO appointments
		(lead_id, customer_id, technician_id, service_id, customer_name, customer_phone,
		 appointment_datetime, status, notes, reminder_sent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, false)
		RETURNING id`

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		appt.LeadID, appt.CustomerID, appt.TechnicianID, appt.ServiceID,
		appt.CustomerName, appt.CustomerPhone, appt.AppointmentDateTime,
		appt.Status, appt.Notes,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, apperrors.NewHttpError(400, "Указанный клиент, лид или услуга не существует", err, nil)
		}
		return nil, err
	}

	return r.FindAppointment(ctx, id)
}

func (r *appointmentRepository) UpdateAppointment(ctx context.Context, id uint64, payload dto.UpdateAppointmentDTO) (*entities.Appointment, error) {
	builder := sq.Update("appointments").PlaceholderFormat(sq.Dollar)
	changed := false

	if payload.CustomerName.Valid {
		builder = builder.Set("customer_name", payload.CustomerName.String)
		changed = true
	}
	if payload.CustomerPhone.Valid {
		builder = builder.Set("customer_phone", payload.CustomerPhone.String)
		changed = true
	}
	if payload.TechnicianID.Valid {
		builder = builder.Set("technician_id", payload.TechnicianID.Uint64)
		changed = true
	}
	if payload.ServiceID.Valid {
		builder = builder.Set("service_id", payload.ServiceID.Uint64)
		changed = true
	}
	if payload.AppointmentDateTime.Valid {
		t, err := time.ParseInLocation(dto.ApptDateTimeLayout, payload.AppointmentDateTime.String, time.Local)
		if err != nil {
			if t, err = time.Parse(time.RFC3339, payload.AppointmentDateTime.String); err != nil {
				return nil, apperrors.NewInvalidInputError("неверный формат appointmentDateTime: %s", payload.AppointmentDateTime.String)
			}
		}
		builder = builder.Set("appointment_datetime", t)
		changed = true
	}
	if payload.Notes.Valid {
		builder = builder.Set("notes", payload.Notes.String)
		changed = true
	}
	if payload.ReminderSent.Valid {
		builder = builder.Set("reminder_sent", payload.ReminderSent.Bool)
		changed = true
	}

	if !changed {
		return r.FindAppointment(ctx, id)
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
		return nil, err
	}
	return r.FindAppointment(ctx, updatedID)
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uint64, status string, reason, notes *string) (*entities.Appointment, error) {
	query := `UPDATE appointments
		SET status = $1,
		    reason = COALESCE($2, reason),
		    notes = COALESCE($3, notes),
		    updated_at = NOW()
		WHERE id = $4
		RETURNING id`

	var updatedID uint64
	if err := r.storage.QueryRow(ctx, query, status, reason, notes, id).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return r.FindAppointment(ctx, updatedID)
}

func (r *appointmentRepository) DeleteAppointment(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM appointments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpsertImported вставляет запись из старой системы, сохраняя её исходный id.
func (r *appointmentRepository) UpsertImported(ctx context.Context, appt entities.Appointment) error {
	query := `INSERT INTO appointments
		(id, technician_id, customer_name, customer_phone, appointment_datetime, status, notes, reminder_sent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			notes = EXCLUDED.notes,
			reminder_sent = EXCLUDED.reminder_sent,
			updated_at = NOW()`

	_, err := r.storage.Exec(ctx, query,
		appt.ID, appt.TechnicianID, appt.CustomerName, appt.CustomerPhone,
		appt.AppointmentDateTime, appt.Status, appt.Notes, appt.ReminderSent,
	)
	if err != nil {
		return fmt.Errorf("импорт записи %d: %w", appt.ID, err)
	}
	return nil
}
