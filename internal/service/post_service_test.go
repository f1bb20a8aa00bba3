package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dnevnikapp/diary-backend/internal/models"
	"github.com/dnevnikapp/diary-backend/internal/repository"
)

type mockPostStore struct {
	mock.Mock
}

func (m *mockPostStore) Create(ctx context.Context, post *models.DiaryPost) error {
	args := m.Called(ctx, post)
	if args.Error(0) == nil {
		post.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockPostStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.DiaryPost, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.DiaryPost), args.Error(1)
}

type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) Create(ctx context.Context, img *models.Image) error {
	args := m.Called(ctx, img)
	return args.Error(0)
}

func (m *mockImageStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Image), args.Error(1)
}

func TestPostService_CreatePost(t *testing.T) {
	users := new(mockUserStore)
	posts := new(mockPostStore)
	images := new(mockImageStore)
	svc := NewPostService(users, posts, images)
	ctx := context.Background()

	user := &models.User{ID: uuid.New(), Username: "alice1"}
	users.On("GetByUsername", ctx, "alice1").Return(user, nil)
	posts.On("Create", ctx, mock.AnythingOfType("*models.DiaryPost")).Return(nil)

	post, err := svc.CreatePost(ctx, "alice1", "Первый день", "<b>жирный</b> текст", nil)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, post.UserID)
	// Разметка в тексте экранируется.
	assert.Equal(t, "&lt;b&gt;жирный&lt;/b&gt; текст", post.Content)
}

func TestPostService_CreatePost_LengthLimits(t *testing.T) {
	users := new(mockUserStore)
	posts := new(mockPostStore)
	images := new(mockImageStore)
	svc := NewPostService(users, posts, images)
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, "alice1", "", "текст", nil)
	assert.ErrorIs(t, err, ErrEmptyPost)

	longTitle := strings.Repeat("я", models.MaxPostTitleLength+1)
	_, err = svc.CreatePost(ctx, "alice1", longTitle, "текст", nil)
	assert.ErrorIs(t, err, ErrTitleTooLong)

	// Ровно на границе — допустимо. Лимит в символах, не в байтах:
	// кириллическая «я» занимает два байта.
	users.On("GetByUsername", ctx, "alice1").Return(&models.User{ID: uuid.New()}, nil)
	posts.On("Create", ctx, mock.AnythingOfType("*models.DiaryPost")).Return(nil)
	boundaryTitle := strings.Repeat("я", models.MaxPostTitleLength)
	_, err = svc.CreatePost(ctx, "alice1", boundaryTitle, "текст", nil)
	assert.NoError(t, err)

	longContent := strings.Repeat("я", models.MaxPostContentLength+1)
	_, err = svc.CreatePost(ctx, "alice1", "заголовок", longContent, nil)
	assert.ErrorIs(t, err, ErrContentTooLong)
}

func TestPostService_GetImage_ForeignImageHidden(t *testing.T) {
	users := new(mockUserStore)
	posts := new(mockPostStore)
	images := new(mockImageStore)
	svc := NewPostService(users, posts, images)
	ctx := context.Background()

	imageID := uuid.New()
	users.On("GetByUsername", ctx, "alice1").Return(&models.User{ID: uuid.New()}, nil)
	images.On("GetByID", ctx, imageID).Return(&models.Image{ID: imageID, UserID: uuid.New()}, nil)

	_, err := svc.GetImage(ctx, "alice1", imageID)
	assert.ErrorIs(t, err, repository.ErrImageNotFound)
}

func TestPostService_AttachImage_CaptionLimit(t *testing.T) {
	users := new(mockUserStore)
	posts := new(mockPostStore)
	images := new(mockImageStore)
	svc := NewPostService(users, posts, images)
	ctx := context.Background()

	longCaption := strings.Repeat("я", models.MaxImageCaptionLength+1)
	_, err := svc.AttachImage(ctx, "alice1", longCaption, "2026/08/a.jpg", "image/jpeg", 100)
	assert.ErrorIs(t, err, ErrCaptionTooLong)
	images.AssertNotCalled(t, "Create")
}
