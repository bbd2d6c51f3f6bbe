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

type dbPhoto struct {
	ID         uint64
	CaseID     uint64
	FilePath   string
	Type       string
	Note       sql.NullString
	UploadedBy sql.NullInt64
	CreatedAt  time.Time
}

func (db *dbPhoto) ToEntity() entities.Photo {
	p := entities.Photo{
		ID:        db.ID,
		CaseID:    db.CaseID,
		FilePath:  db.FilePath,
		Type:      db.Type,
		CreatedAt: db.CreatedAt,
	}
	if db.Note.Valid {
		p.Note = &db.Note.String
	}
	if db.UploadedBy.Valid {
		id := uint64(db.UploadedBy.Int64)
		p.UploadedBy = &id
	}
	return p
}

type PhotoRepositoryInterface interface {
	GetByCase(ctx context.Context, caseID uint64) ([]entities.Photo, error)
	CreatePhoto(ctx context.Context, p entities.Photo) (*entities.Photo, error)
	FindPhoto(ctx context.Context, id uint64) (*entities.Photo, error)
	DeletePhoto(ctx context.Context, id uint64) error
}

type photoRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewPhotoRepository(storage *pgxpool.Pool, logger *zap.Logger) PhotoRepositoryInterface {
	return &photoRepository{storage: storage, logger: logger}
}

func (r *photoRepository) GetByCase(ctx context.Context, caseID uint64) ([]entities.Photo, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT id, case_id, file_path, type, note, uploaded_by, created_at
		 FROM case_photos WHERE case_id = $1 ORDER BY created_at ASC`, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := make([]entities.Photo, 0)
	for rows.Next() {
		var dbRow dbPhoto
		if err := rows.Scan(&dbRow.ID, &dbRow.CaseID, &dbRow.FilePath, &dbRow.Type,
			&dbRow.Note, &dbRow.UploadedBy, &dbRow.CreatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, dbRow.ToEntity())
	}
	return photos, rows.Err()
}

func (r *photoRepository) CreatePhoto(ctx context.Context, p entities.Photo) (*entities.Photo, error) {
	query := `INSERT INTO case_photos (case_id, file_path, type, note, uploaded_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	created := p
	err := r.storage.QueryRow(ctx, query, p.CaseID, p.FilePath, p.Type, p.Note, p.UploadedBy).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *photoRepository) FindPhoto(ctx context.Context, id uint64) (*entities.Photo, error) {
	var dbRow dbPhoto
	err := r.storage.QueryRow(ctx,
		`SELECT id, case_id, file_path, type, note, uploaded_by, created_at
		 FROM case_photos WHERE id = $1`, id).
		Scan(&dbRow.ID, &dbRow.CaseID, &dbRow.FilePath, &dbRow.Type,
			&dbRow.Note, &dbRow.UploadedBy, &dbRow.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	p := dbRow.ToEntity()
	return &p, nil
}

func (r *photoRepository) DeletePhoto(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM case_photos WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
