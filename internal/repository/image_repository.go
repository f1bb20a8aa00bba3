package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dnevnikapp/diary-backend/internal/models"
)

// ErrImageNotFound возвращается, когда изображение не найдено.
var ErrImageNotFound = errors.New("image not found")

// ImageRepository отвечает за метаданные загруженных изображений.
type ImageRepository struct {
	db *sqlx.DB
}

// NewImageRepository создаёт экземпляр репозитория.
func NewImageRepository(db *sqlx.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

// Create сохраняет метаданные изображения.
func (r *ImageRepository) Create(ctx context.Context, img *models.Image) error {
	query := `
		INSERT INTO images (id, user_id, caption, path, content_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	if err := r.db.QueryRowxContext(
		ctx, query,
		img.ID, img.UserID, img.Caption, img.Path, img.ContentType, img.SizeBytes,
	).Scan(&img.CreatedAt); err != nil {
		return fmt.Errorf("image repository: create %w", err)
	}

	return nil
}

// GetByID возвращает изображение по идентификатору.
func (r *ImageRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Image, error) {
	var img models.Image
	query := `
		SELECT id, user_id, caption, path, content_type, size_bytes, created_at
		FROM images
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &img, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("image repository: get by id %w", err)
	}

	return &img, nil
}
