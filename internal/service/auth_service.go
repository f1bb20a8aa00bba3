package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dnevnikapp/diary-backend/internal/messages"
	"github.com/dnevnikapp/diary-backend/internal/models"
	"github.com/dnevnikapp/diary-backend/internal/password"
	"github.com/dnevnikapp/diary-backend/internal/repository"
	"github.com/dnevnikapp/diary-backend/internal/validation"
)

// UserStore описывает зависимости сервисов от хранилища пользователей.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateFlags(ctx context.Context, user *models.User) error
}

// AuthService инкапсулирует бизнес-логику входа.
type AuthService struct {
	users UserStore
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Login проверяет учётные данные и возвращает исход входа.
//
// Порядок проверок фиксирован: сначала формат ввода, затем пароль,
// затем флаги аккаунта. Отсутствующий пользователь и неверный пароль
// дают один и тот же исход — по ответу нельзя понять, существует ли
// аккаунт. Флаг deleted проверяется раньше active: удалённый аккаунт
// никогда не отправляется на повторное подтверждение.
func (s *AuthService) Login(ctx context.Context, username, pass string) (Outcome, error) {
	if err := validation.ValidateLoginInput(username, pass); err != nil {
		return Outcome{Kind: OutcomeInputInvalid, Message: err.Error()}, nil
	}

	username = validation.Sanitize(username)

	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return Outcome{Kind: OutcomeAuthFailed, Message: messages.FailedAuthentication}, nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("auth service: %w", err)
	}

	ok, err := password.Verify(pass, user.PasswordHash)
	if err != nil {
		return Outcome{}, fmt.Errorf("auth service: %w", err)
	}
	if !ok {
		return Outcome{Kind: OutcomeAuthFailed, Message: messages.FailedAuthentication}, nil
	}

	if user.Deleted {
		return Outcome{Kind: OutcomeAccountDeleted, Message: messages.DeletedAccount}, nil
	}
	if !user.Active {
		return Outcome{Kind: OutcomeAccountUnverified, Email: user.Email}, nil
	}

	return Outcome{Kind: OutcomeAuthenticated, Username: user.Username}, nil
}
