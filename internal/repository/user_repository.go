package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/dnevnikapp/diary-backend/internal/models"
)

// ErrUserNotFound возвращается, когда запись пользователя не найдена.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateUser возвращается при нарушении уникальности username
// или email. Уникальность гарантируют индексы в базе, а не проверки
// в коде: при двух одновременных регистрациях вставку выигрывает
// ровно одна.
var ErrDuplicateUser = errors.New("username or email already taken")

// UserRepository отвечает за работу с таблицей users.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create создаёт нового пользователя. Аккаунт всегда создаётся
// неактивным и неудалённым.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, active, deleted)
		VALUES ($1, $2, $3, FALSE, FALSE)
		RETURNING id, active, deleted, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		user.Username, user.Email, user.PasswordHash,
	).Scan(&user.ID, &user.Active, &user.Deleted, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("user repository: create %w", err)
	}

	return nil
}

// GetByUsername возвращает пользователя по имени.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, username, email, password_hash, active, deleted, created_at, updated_at
		FROM users
		WHERE username = $1
	`
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get by username %w", err)
	}

	return &user, nil
}

// GetByEmail возвращает пользователя по email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, username, email, password_hash, active, deleted, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get by email %w", err)
	}

	return &user, nil
}

// UpdateFlags сохраняет флаги active/deleted пользователя.
func (r *UserRepository) UpdateFlags(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET active = $2, deleted = $3, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, user.ID, user.Active, user.Deleted)
	if err != nil {
		return fmt.Errorf("user repository: update flags %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("user repository: update flags %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// isUniqueViolation распознаёт нарушение уникального индекса PostgreSQL.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
