package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dnevnikapp/diary-backend/internal/models"
)

// ErrPostNotFound возвращается, когда запись дневника не найдена.
var ErrPostNotFound = errors.New("diary post not found")

// PostRepository отвечает за работу с таблицей diary_posts.
type PostRepository struct {
	db *sqlx.DB
}

// NewPostRepository создаёт экземпляр репозитория.
func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create сохраняет новую запись дневника.
func (r *PostRepository) Create(ctx context.Context, post *models.DiaryPost) error {
	query := `
		INSERT INTO diary_posts (user_id, title, content, image_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowxContext(
		ctx, query,
		post.UserID, post.Title, post.Content, post.ImageID,
	).Scan(&post.ID, &post.CreatedAt); err != nil {
		return fmt.Errorf("post repository: create %w", err)
	}

	return nil
}

// ListByUser возвращает записи пользователя, новые первыми.
func (r *PostRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.DiaryPost, error) {
	posts := []models.DiaryPost{}
	query := `
		SELECT id, user_id, title, content, image_id, created_at
		FROM diary_posts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &posts, query, userID); err != nil {
		return nil, fmt.Errorf("post repository: list by user %w", err)
	}

	return posts, nil
}
