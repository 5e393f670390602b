package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
)

// DocumentGormRepository keeps every collection in one Postgres table with a
// jsonb payload per document.
type DocumentGormRepository struct {
	db *gorm.DB
}

func NewDocumentGormRepository(db *gorm.DB) *DocumentGormRepository {
	return &DocumentGormRepository{db: db}
}

func (r *DocumentGormRepository) Create(
	ctx context.Context,
	collection string,
	fields map[string]any,
) (string, error) {

	data, err := json.Marshal(fields)
	if err != nil {
		return "", booking.RejectedError("create", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}

	doc := models.Document{
		ID:         id.String(),
		Collection: collection,
		Data:       string(data),
	}

	if err := r.db.WithContext(ctx).Create(&doc).Error; err != nil {
		return "", classifyGorm("create", err)
	}
	return doc.ID, nil
}

func (r *DocumentGormRepository) List(
	ctx context.Context,
	collection string,
) ([]booking.Record, error) {

	var docs []models.Document
	if err := r.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("created_at ASC").
		Find(&docs).Error; err != nil {
		return nil, classifyGorm("list", err)
	}

	out := make([]booking.Record, 0, len(docs))
	for _, d := range docs {
		fields, err := decodeFields([]byte(d.Data))
		if err != nil {
			return nil, booking.RejectedError("list", err)
		}
		out = append(out, booking.Record{ID: d.ID, Fields: fields})
	}
	return out, nil
}

func (r *DocumentGormRepository) Delete(
	ctx context.Context,
	collection string,
	id string,
) error {

	err := r.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&models.Document{}).Error
	if err != nil {
		return classifyGorm("delete", err)
	}
	return nil
}

func (r *DocumentGormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// classifyGorm treats errors reported by Postgres itself as rejections and
// everything else (dial, timeout, closed pool) as network failures.
func classifyGorm(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return booking.RejectedError(op, err)
	}
	if errors.Is(err, gorm.ErrInvalidData) || errors.Is(err, gorm.ErrInvalidValue) {
		return booking.RejectedError(op, err)
	}
	return booking.NetworkError(op, err)
}
