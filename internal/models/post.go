package models

import (
	"time"

	"github.com/google/uuid"
)

// Ограничения длины записей дневника.
const (
	MaxPostTitleLength    = 200
	MaxImageCaptionLength = 200
	MaxPostContentLength  = 20000
)

// DiaryPost описывает запись в дневнике пользователя.
type DiaryPost struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	UserID    uuid.UUID  `db:"user_id" json:"user_id"`
	Title     string     `db:"title" json:"title"`
	Content   string     `db:"content" json:"content"`
	ImageID   *uuid.UUID `db:"image_id" json:"image_id,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// Image описывает загруженное изображение, прикреплённое к записи.
// Байты изображения лежат в файловом хранилище, в базе — метаданные
// и относительный путь.
type Image struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Caption     string    `db:"caption" json:"caption"`
	Path        string    `db:"path" json:"-"`
	ContentType string    `db:"content_type" json:"content_type"`
	SizeBytes   int64     `db:"size_bytes" json:"size_bytes"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
