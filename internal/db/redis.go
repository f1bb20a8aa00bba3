package db

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// NewRedis создаёт клиент Redis и проверяет соединение.
// Redis хранит коды подтверждения и браузерные сессии.
func NewRedis(ctx context.Context, addr, password string, database int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       database,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis: не удалось подключиться к %s: %w", addr, err)
	}

	return client, nil
}
