package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dnevnikapp/diary-backend/internal/messages"
	"github.com/dnevnikapp/diary-backend/internal/models"
	"github.com/dnevnikapp/diary-backend/internal/repository"
)

func TestAuthService_Login_InputInvalid(t *testing.T) {
	users := new(mockUserStore)
	svc := NewAuthService(users)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		password string
		message  string
	}{
		{"пустые поля", "", "", messages.HasEmptyFields},
		{"пустой пароль", "alice1", "", messages.HasEmptyFields},
		{"короткое имя", "ab", "Aa1!Aa1!", messages.InvalidUsernameFormat},
		{"имя с дефисом", "al-ce", "Aa1!Aa1!", messages.InvalidUsernameFormat},
		{"пароль без цифры", "alice1", "Aaaa!", messages.InvalidPasswordFormat},
		{"пароль длиннее 8", "alice1", "Aa1!Aa1!x", messages.InvalidPasswordFormat},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := svc.Login(ctx, tc.username, tc.password)
			assert.NoError(t, err)
			assert.Equal(t, OutcomeInputInvalid, out.Kind)
			assert.Equal(t, tc.message, out.Message)
		})
	}

	// До хранилища некорректный ввод не доходит.
	users.AssertNotCalled(t, "GetByUsername")
}

func TestAuthService_Login_UnknownUserAndWrongPassword(t *testing.T) {
	users := new(mockUserStore)
	svc := NewAuthService(users)
	ctx := context.Background()

	hash := mustHash(t, "Aa1!")
	users.On("GetByUsername", ctx, "ghost1").Return(nil, repository.ErrUserNotFound)
	users.On("GetByUsername", ctx, "alice1").Return(&models.User{
		Username:     "alice1",
		PasswordHash: hash,
		Active:       true,
	}, nil)

	// Несуществующий пользователь и неверный пароль дают один и тот же
	// исход: по ответу нельзя понять, существует ли аккаунт.
	outGhost, err := svc.Login(ctx, "ghost1", "Aa1!")
	assert.NoError(t, err)
	outWrong, err2 := svc.Login(ctx, "alice1", "Bb2@")
	assert.NoError(t, err2)

	assert.Equal(t, OutcomeAuthFailed, outGhost.Kind)
	assert.Equal(t, outGhost, outWrong)
	assert.Equal(t, messages.FailedAuthentication, outWrong.Message)
}

func TestAuthService_Login_DeletedBeatsActive(t *testing.T) {
	users := new(mockUserStore)
	svc := NewAuthService(users)
	ctx := context.Background()

	hash := mustHash(t, "Aa1!")

	// deleted проверяется раньше active: даже если флаги рассогласованы
	// и active остался true, удалённый аккаунт не входит.
	for _, active := range []bool{true, false} {
		users.ExpectedCalls = nil
		users.On("GetByUsername", ctx, "alice1").Return(&models.User{
			Username:     "alice1",
			Email:        "alice@example.com",
			PasswordHash: hash,
			Active:       active,
			Deleted:      true,
		}, nil)

		out, err := svc.Login(ctx, "alice1", "Aa1!")
		assert.NoError(t, err)
		assert.Equal(t, OutcomeAccountDeleted, out.Kind)
		assert.Equal(t, messages.DeletedAccount, out.Message)
	}
}

func TestAuthService_Login_Unverified(t *testing.T) {
	users := new(mockUserStore)
	svc := NewAuthService(users)
	ctx := context.Background()

	users.On("GetByUsername", ctx, "alice1").Return(&models.User{
		Username:     "alice1",
		Email:        "alice@example.com",
		PasswordHash: mustHash(t, "Aa1!"),
		Active:       false,
	}, nil)

	out, err := svc.Login(ctx, "alice1", "Aa1!")
	assert.NoError(t, err)
	assert.Equal(t, OutcomeAccountUnverified, out.Kind)
	// Email нужен следующему шагу — отправке кода.
	assert.Equal(t, "alice@example.com", out.Email)
}

func TestAuthService_Login_Authenticated(t *testing.T) {
	users := new(mockUserStore)
	svc := NewAuthService(users)
	ctx := context.Background()

	users.On("GetByUsername", ctx, "alice1").Return(&models.User{
		Username:     "alice1",
		PasswordHash: mustHash(t, "Aa1!"),
		Active:       true,
	}, nil)

	out, err := svc.Login(ctx, "alice1", "Aa1!")
	assert.NoError(t, err)
	assert.Equal(t, OutcomeAuthenticated, out.Kind)
	assert.Equal(t, "alice1", out.Username)
	assert.Empty(t, out.Message)
}
