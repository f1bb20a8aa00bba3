package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dnevnikapp/diary-backend/internal/logger"
	"github.com/dnevnikapp/diary-backend/internal/mail"
	"github.com/dnevnikapp/diary-backend/internal/messages"
	"github.com/dnevnikapp/diary-backend/internal/password"
	"github.com/dnevnikapp/diary-backend/internal/repository"
	"github.com/dnevnikapp/diary-backend/internal/validation"
	"github.com/dnevnikapp/diary-backend/internal/verification"
)

// errMailDelivery помечает ошибки доставки письма: они отображаются
// в пользовательский исход, а не в ответ 500.
var errMailDelivery = errors.New("mail delivery failed")

// CodeStore описывает зависимость сервиса от хранилища кодов.
type CodeStore interface {
	Insert(ctx context.Context, email, codeHash string) error
	Find(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
	Exists(ctx context.Context, email string) (bool, error)
}

// VerificationService управляет выдачей и подтверждением кодов
// активации аккаунта.
type VerificationService struct {
	users  UserStore
	codes  CodeStore
	mailer mail.Sender
}

// NewVerificationService создаёт сервис подтверждения.
func NewVerificationService(users UserStore, codes CodeStore, mailer mail.Sender) *VerificationService {
	return &VerificationService{users: users, codes: codes, mailer: mailer}
}

// SendCode выдаёт код подтверждения для email.
//
// Если живой код уже есть и resend не запрошен, новый код не выдаётся.
// При resend старый код удаляется и выдаётся новый. Хранилище кодов
// отвергает вторую вставку для того же email, поэтому при двух
// одновременных запросах письмо с кодом уходит ровно одно.
func (s *VerificationService) SendCode(ctx context.Context, email string, resend bool) (Outcome, error) {
	email = validation.Sanitize(email)

	pending, err := s.codes.Exists(ctx, email)
	if err != nil {
		return Outcome{}, fmt.Errorf("verification service: %w", err)
	}

	if pending && !resend {
		return Outcome{Kind: OutcomeCodePending, Message: messages.PreviouslyNotActivated, Email: email}, nil
	}

	if pending && resend {
		if err := s.codes.Delete(ctx, email); err != nil {
			return Outcome{}, fmt.Errorf("verification service: %w", err)
		}
		switch err := s.issue(ctx, email); {
		case errors.Is(err, errMailDelivery):
			return Outcome{Kind: OutcomeCodeSendFailed, Message: messages.ErrorSendingNewCode, Email: email}, nil
		case errors.Is(err, verification.ErrCodeExists):
			// Параллельный запрос успел вставить код первым.
			return Outcome{Kind: OutcomeCodePending, Message: messages.PreviouslyNotActivated, Email: email}, nil
		case err != nil:
			return Outcome{}, fmt.Errorf("verification service: %w", err)
		}
		return Outcome{Kind: OutcomeCodeResent, Message: messages.NewVerificationCodeSent, Email: email}, nil
	}

	switch err := s.issue(ctx, email); {
	case errors.Is(err, errMailDelivery):
		return Outcome{Kind: OutcomeCodeSendFailed, Message: messages.ErrorSendingCode, Email: email}, nil
	case errors.Is(err, verification.ErrCodeExists):
		return Outcome{Kind: OutcomeCodePending, Message: messages.PreviouslyNotActivated, Email: email}, nil
	case err != nil:
		return Outcome{}, fmt.Errorf("verification service: %w", err)
	}
	return Outcome{Kind: OutcomeCodeSent, Message: messages.UserNotActivated, Email: email}, nil
}

// issue генерирует код, сохраняет его хэш и отправляет письмо.
// Если письмо отправить не удалось, только что вставленный код
// удаляется: в хранилище не остаётся кода, которого нет в почте.
func (s *VerificationService) issue(ctx context.Context, email string) error {
	code, err := verification.GenerateCode()
	if err != nil {
		return err
	}

	codeHash, err := password.Hash(code)
	if err != nil {
		return fmt.Errorf("не удалось захешировать код: %w", err)
	}

	if err := s.codes.Insert(ctx, email, codeHash); err != nil {
		return err
	}

	if err := s.mailer.SendVerificationCode(email, code); err != nil {
		if delErr := s.codes.Delete(ctx, email); delErr != nil && logger.Log != nil {
			logger.Log.WithField("error", delErr.Error()).
				Warn("verification service: не удалось удалить код после ошибки отправки")
		}
		return fmt.Errorf("%w: %s", errMailDelivery, err)
	}

	return nil
}

// ValidateCode сверяет введённый код с хэшем и при совпадении
// активирует аккаунт. Код удаляется до активации: повторная отправка
// той же формы получит исход «неверный код».
func (s *VerificationService) ValidateCode(ctx context.Context, email, code string) (Outcome, error) {
	email = validation.Sanitize(email)
	code = validation.Sanitize(code)

	codeHash, err := s.codes.Find(ctx, email)
	if errors.Is(err, verification.ErrCodeNotFound) {
		return Outcome{Kind: OutcomeCodeInvalid, Message: messages.InvalidVerificationCode, Email: email}, nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("verification service: %w", err)
	}

	ok, err := password.Verify(code, codeHash)
	if err != nil {
		return Outcome{}, fmt.Errorf("verification service: %w", err)
	}
	if !ok {
		return Outcome{Kind: OutcomeCodeInvalid, Message: messages.InvalidVerificationCode, Email: email}, nil
	}

	if err := s.codes.Delete(ctx, email); err != nil {
		return Outcome{}, fmt.Errorf("verification service: %w", err)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return Outcome{}, fmt.Errorf("verification service: %w", err)
	}

	user.Active = true
	if err := s.users.UpdateFlags(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Outcome{Kind: OutcomeCodeInvalid, Message: messages.InvalidVerificationCode, Email: email}, nil
		}
		return Outcome{}, fmt.Errorf("verification service: %w", err)
	}

	return Outcome{Kind: OutcomeCodeValid, Message: messages.AccountActivated, Email: email}, nil
}
