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

// RegistrationService инкапсулирует бизнес-логику регистрации.
type RegistrationService struct {
	users UserStore
}

// NewRegistrationService создаёт сервис регистрации.
func NewRegistrationService(users UserStore) *RegistrationService {
	return &RegistrationService{users: users}
}

// Register создаёт нового неактивного пользователя.
//
// Предварительные проверки занятости username и email дают
// дружелюбное сообщение, но не защищают от гонки: авторитетный ответ —
// уникальные индексы в базе, поэтому ErrDuplicateUser после вставки
// отображается в тот же исход конфликта.
func (s *RegistrationService) Register(ctx context.Context, username, pass, email string) (Outcome, error) {
	if err := validation.ValidateRegistrationInput(username, pass, email); err != nil {
		return Outcome{Kind: OutcomeInputInvalid, Message: err.Error()}, nil
	}

	username = validation.Sanitize(username)
	email = validation.Sanitize(email)

	if taken, err := s.isTaken(ctx, username, email); err != nil {
		return Outcome{}, fmt.Errorf("registration service: %w", err)
	} else if taken {
		return Outcome{Kind: OutcomeRegistrationConflict, Message: messages.UnavailableUsernameOrEmail}, nil
	}

	passHash, err := password.Hash(pass)
	if err != nil {
		return Outcome{}, fmt.Errorf("registration service: не удалось захешировать пароль: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passHash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return Outcome{Kind: OutcomeRegistrationConflict, Message: messages.UnavailableUsernameOrEmail}, nil
		}
		return Outcome{}, fmt.Errorf("registration service: %w", err)
	}

	return Outcome{Kind: OutcomeRegistered, Email: user.Email}, nil
}

// isTaken проверяет занятость username или email.
func (s *RegistrationService) isTaken(ctx context.Context, username, email string) (bool, error) {
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return true, nil
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return false, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return false, err
	}

	return false, nil
}
