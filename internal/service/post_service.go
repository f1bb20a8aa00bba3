package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dnevnikapp/diary-backend/internal/models"
	"github.com/dnevnikapp/diary-backend/internal/repository"
	"github.com/dnevnikapp/diary-backend/internal/validation"
)

// Ошибки валидации записей дневника. Текст — готовое пользовательское
// сообщение.
var (
	ErrEmptyPost      = errors.New("Заголовок и текст записи не могут быть пустыми.")
	ErrTitleTooLong   = errors.New("Заголовок не может быть длиннее 200 символов.")
	ErrContentTooLong = errors.New("Текст записи не может быть длиннее 20000 символов.")
	ErrCaptionTooLong = errors.New("Подпись к изображению не может быть длиннее 200 символов.")
)

// PostStore описывает зависимость сервиса от хранилища записей.
type PostStore interface {
	Create(ctx context.Context, post *models.DiaryPost) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.DiaryPost, error)
}

// ImageStore описывает зависимость сервиса от хранилища метаданных
// изображений.
type ImageStore interface {
	Create(ctx context.Context, img *models.Image) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Image, error)
}

// PostService отвечает за записи дневника и прикреплённые изображения.
type PostService struct {
	users  UserStore
	posts  PostStore
	images ImageStore
}

// NewPostService создаёт сервис дневника.
func NewPostService(users UserStore, posts PostStore, images ImageStore) *PostService {
	return &PostService{users: users, posts: posts, images: images}
}

// CreatePost создаёт запись дневника вошедшего пользователя.
// Заголовок и текст экранируются и проверяются на длину в символах.
func (s *PostService) CreatePost(ctx context.Context, username, title, content string, imageID *uuid.UUID) (*models.DiaryPost, error) {
	if title == "" || content == "" {
		return nil, ErrEmptyPost
	}
	if validation.ExceedsMaxLength(title, models.MaxPostTitleLength) {
		return nil, ErrTitleTooLong
	}
	if validation.ExceedsMaxLength(content, models.MaxPostContentLength) {
		return nil, ErrContentTooLong
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("post service: %w", err)
	}

	post := &models.DiaryPost{
		UserID:  user.ID,
		Title:   validation.Sanitize(title),
		Content: validation.Sanitize(content),
		ImageID: imageID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("post service: %w", err)
	}

	return post, nil
}

// ListPosts возвращает записи пользователя, новые первыми.
func (s *PostService) ListPosts(ctx context.Context, username string) ([]models.DiaryPost, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("post service: %w", err)
	}

	posts, err := s.posts.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("post service: %w", err)
	}
	return posts, nil
}

// AttachImage сохраняет метаданные загруженного изображения.
// Сам файл к этому моменту уже лежит в файловом хранилище.
func (s *PostService) AttachImage(ctx context.Context, username, caption, path, contentType string, sizeBytes int64) (*models.Image, error) {
	if validation.ExceedsMaxLength(caption, models.MaxImageCaptionLength) {
		return nil, ErrCaptionTooLong
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("post service: %w", err)
	}

	img := &models.Image{
		ID:          uuid.New(),
		UserID:      user.ID,
		Caption:     validation.Sanitize(caption),
		Path:        path,
		ContentType: contentType,
		SizeBytes:   sizeBytes,
	}
	if err := s.images.Create(ctx, img); err != nil {
		return nil, fmt.Errorf("post service: %w", err)
	}

	return img, nil
}

// GetImage возвращает метаданные изображения, если оно принадлежит
// пользователю. Чужие изображения не отдаются.
func (s *PostService) GetImage(ctx context.Context, username string, imageID uuid.UUID) (*models.Image, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("post service: %w", err)
	}

	img, err := s.images.GetByID(ctx, imageID)
	if err != nil {
		return nil, fmt.Errorf("post service: %w", err)
	}
	if img.UserID != user.ID {
		// Чужое изображение неотличимо от несуществующего.
		return nil, fmt.Errorf("post service: %w", repository.ErrImageNotFound)
	}

	return img, nil
}
