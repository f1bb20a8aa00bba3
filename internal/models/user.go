package models

import (
	"time"

	"github.com/google/uuid"
)

// User описывает аккаунт пользователя дневника.
// Аккаунт создаётся неактивным (Active=false) и активируется ровно один
// раз — при подтверждении кода. Удаление всегда мягкое: запись остаётся,
// Deleted=true и Active=false выставляются одним обновлением.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Active       bool      `db:"active" json:"active"`
	Deleted      bool      `db:"deleted" json:"deleted"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
