package service

import (
	"context"
	"fmt"

	"github.com/dnevnikapp/diary-backend/internal/models"
)

// UserService отвечает за операции над аккаунтом вошедшего
// пользователя.
type UserService struct {
	users UserStore
}

// NewUserService создаёт сервис аккаунтов.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// GetByUsername возвращает пользователя по имени.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("user service: %w", err)
	}
	return user, nil
}

// SoftDelete мягко удаляет аккаунт: запись остаётся в базе,
// deleted и active меняются одним обновлением. Повторный вызов
// безвреден — флаги уже выставлены.
func (s *UserService) SoftDelete(ctx context.Context, username string) error {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("user service: %w", err)
	}

	user.Deleted = true
	user.Active = false
	if err := s.users.UpdateFlags(ctx, user); err != nil {
		return fmt.Errorf("user service: %w", err)
	}

	return nil
}
