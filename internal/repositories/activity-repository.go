package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"spa-system/internal/entities"
)

type dbActivity struct {
	ID         uint64
	Action     string
	EntityType string
	EntityID   sql.NullInt64
	ActorID    sql.NullInt64
	ActorName  string
	Detail     string
	CreatedAt  time.Time
}

func (db *dbActivity) ToEntity() entities.Activity {
	a := entities.Activity{
		ID:         db.ID,
		Action:     db.Action,
		EntityType: db.EntityType,
		ActorName:  db.ActorName,
		Detail:     db.Detail,
		CreatedAt:  db.CreatedAt,
	}
	if db.EntityID.Valid {
		id := uint64(db.EntityID.Int64)
		a.EntityID = &id
	}
	if db.ActorID.Valid {
		id := uint64(db.ActorID.Int64)
		a.ActorID = &id
	}
	return a
}

type ActivityRepositoryInterface interface {
	GetRecent(ctx context.Context, limit int) ([]entities.Activity, error)
	Record(ctx context.Context, a entities.Activity) error
}

type activityRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewActivityRepository(storage *pgxpool.Pool, logger *zap.Logger) ActivityRepositoryInterface {
	return &activityRepository{storage: storage, logger: logger}
}

func (r *activityRepository) GetRecent(ctx context.Context, limit int) ([]entities.Activity, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT a.id, a.action, a.entity_type, a.entity_id, a.actor_id,
		        COALESCE(u.full_name, ''), a.detail, a.created_at
		 FROM activities a
		 LEFT JOIN users u ON u.id = a.actor_id
		 ORDER BY a.created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]entities.Activity, 0)
	for rows.Next() {
		var dbRow dbActivity
		if err := rows.Scan(&dbRow.ID, &dbRow.Action, &dbRow.EntityType, &dbRow.EntityID,
			&dbRow.ActorID, &dbRow.ActorName, &dbRow.Detail, &dbRow.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, dbRow.ToEntity())
	}
	return items, rows.Err()
}

// Record пишет строку журнала. Ошибка журнала не должна ронять основную
// операцию, решает об этом вызывающий сервис.
func (r *activityRepository) Record(ctx context.Context, a entities.Activity) error {
	_, err := r.storage.Exec(ctx,
		`INSERT INTO activities (action, entity_type, entity_id, actor_id, detail)
		 VALUES ($1, $2, $3, $4, $5)`,
		a.Action, a.EntityType, a.EntityID, a.ActorID, a.Detail)
	return err
}
