package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dnevnikapp/diary-backend/internal/models"
	"github.com/dnevnikapp/diary-backend/internal/password"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) UpdateFlags(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type mockCodeStore struct {
	mock.Mock
}

func (m *mockCodeStore) Insert(ctx context.Context, email, codeHash string) error {
	args := m.Called(ctx, email, codeHash)
	return args.Error(0)
}

func (m *mockCodeStore) Find(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *mockCodeStore) Delete(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *mockCodeStore) Exists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendVerificationCode(to, code string) error {
	args := m.Called(to, code)
	return args.Error(0)
}

// mustHash хеширует секрет или валит тест.
func mustHash(t *testing.T, secret string) string {
	t.Helper()
	h, err := password.Hash(secret)
	if err != nil {
		t.Fatalf("не удалось захешировать %q: %v", secret, err)
	}
	return h
}
