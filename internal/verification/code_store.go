package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const codeKeyPrefix = "verification:code:"

var (
	// ErrCodeExists возвращается при попытке вставить код для email,
	// у которого уже есть живой код. Повторная выдача требует явного
	// удаления старого кода.
	ErrCodeExists = errors.New("verification code already exists for email")

	// ErrCodeNotFound возвращается, когда живого кода для email нет.
	ErrCodeNotFound = errors.New("verification code not found")
)

// CodeStore хранит хэши кодов подтверждения в Redis, ключ — email.
// Инвариант «не более одного живого кода на email» обеспечивается
// атомарным SETNX на стороне хранилища, а не проверками в коде.
type CodeStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewCodeStore создаёт хранилище кодов с заданным временем жизни.
func NewCodeStore(client *redis.Client, ttl time.Duration) *CodeStore {
	return &CodeStore{redis: client, ttl: ttl}
}

func (s *CodeStore) key(email string) string {
	return codeKeyPrefix + email
}

// Insert сохраняет хэш кода для email. Если живой код уже существует,
// возвращает ErrCodeExists — даже при двух одновременных вставках
// выигрывает ровно одна.
func (s *CodeStore) Insert(ctx context.Context, email, codeHash string) error {
	ok, err := s.redis.SetNX(ctx, s.key(email), codeHash, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("verification: не удалось сохранить код: %w", err)
	}
	if !ok {
		return ErrCodeExists
	}
	return nil
}

// Find возвращает хэш живого кода для email или ErrCodeNotFound.
func (s *CodeStore) Find(ctx context.Context, email string) (string, error) {
	hash, err := s.redis.Get(ctx, s.key(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", fmt.Errorf("verification: не удалось прочитать код: %w", err)
	}
	return hash, nil
}

// Delete удаляет код для email. Отсутствие кода не считается ошибкой.
func (s *CodeStore) Delete(ctx context.Context, email string) error {
	if err := s.redis.Del(ctx, s.key(email)).Err(); err != nil {
		return fmt.Errorf("verification: не удалось удалить код: %w", err)
	}
	return nil
}

// Exists сообщает, есть ли живой код для email, не раскрывая сам код.
func (s *CodeStore) Exists(ctx context.Context, email string) (bool, error) {
	n, err := s.redis.Exists(ctx, s.key(email)).Result()
	if err != nil {
		return false, fmt.Errorf("verification: не удалось проверить код: %w", err)
	}
	return n > 0, nil
}
