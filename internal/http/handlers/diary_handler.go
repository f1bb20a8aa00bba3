package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"github.com/dnevnikapp/diary-backend/internal/http/middleware"
	"github.com/dnevnikapp/diary-backend/internal/models"
	"github.com/dnevnikapp/diary-backend/internal/service"
	"github.com/dnevnikapp/diary-backend/internal/storage"
)

// Разрешённые типы изображений.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// DiaryHandler обслуживает дневник: список записей, создание записи
// с необязательным изображением и отдачу изображений.
type DiaryHandler struct {
	posts   *service.PostService
	storage *storage.ImageStorage
}

// NewDiaryHandler создаёт хэндлер дневника.
func NewDiaryHandler(posts *service.PostService, images *storage.ImageStorage) *DiaryHandler {
	return &DiaryHandler{posts: posts, storage: images}
}

// ShowPage обрабатывает GET /user/diary.
func (h *DiaryHandler) ShowPage(c *gin.Context) {
	h.renderPage(c, "")
}

// Submit обрабатывает POST /user/diary — создание записи.
// Ошибки валидации показываются на той же странице.
func (h *DiaryHandler) Submit(c *gin.Context) {
	username, ok := middleware.CurrentUsername(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	var imageID *uuid.UUID
	if file, err := c.FormFile("image"); err == nil && file.Size > 0 {
		img, userErr, err := h.saveImage(c, username, file.Filename, c.PostForm("caption"))
		if err != nil {
			h.fail(c, err)
			return
		}
		if userErr != "" {
			h.renderPage(c, userErr)
			return
		}
		imageID = &img.ID
	}

	_, err := h.posts.CreatePost(c.Request.Context(), username, c.PostForm("title"), c.PostForm("content"), imageID)
	switch {
	case errors.Is(err, service.ErrEmptyPost),
		errors.Is(err, service.ErrTitleTooLong),
		errors.Is(err, service.ErrContentTooLong):
		h.renderPage(c, err.Error())
		return
	case err != nil:
		h.fail(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/user/diary")
}

// ServeImage обрабатывает GET /user/image/:id.
// Отдаются только изображения самого пользователя.
func (h *DiaryHandler) ServeImage(c *gin.Context) {
	username, ok := middleware.CurrentUsername(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	imageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	img, err := h.posts.GetImage(c.Request.Context(), username, imageID)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	f, err := h.storage.Open(c.Request.Context(), img.Path)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	defer f.Close()

	c.DataFromReader(http.StatusOK, img.SizeBytes, img.ContentType, f, nil)
}

// saveImage валидирует загруженный файл и сохраняет его. Для
// невалидного файла возвращается сообщение пользователю, для сбоя —
// внутренняя ошибка.
func (h *DiaryHandler) saveImage(c *gin.Context, username, filename, caption string) (*models.Image, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExtensions[ext] {
		return nil, "Неподдерживаемый формат изображения. Разрешены: jpg, jpeg, png, gif, webp.", nil
	}

	file, err := c.FormFile("image")
	if err != nil {
		return nil, "", err
	}

	src, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer src.Close()

	// Тип определяется по магическим байтам, расширению не доверяем.
	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return nil, "", err
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown || !allowedImageTypes[kind.MIME.Value] {
		return nil, "Файл не является поддерживаемым изображением.", nil
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, "", err
	}

	path, size, err := h.storage.Save(c.Request.Context(), "."+kind.Extension, src)
	if err != nil {
		return nil, "", err
	}

	img, err := h.posts.AttachImage(c.Request.Context(), username, caption, path, kind.MIME.Value, size)
	if errors.Is(err, service.ErrCaptionTooLong) {
		_ = h.storage.Delete(c.Request.Context(), path)
		return nil, err.Error(), nil
	}
	if err != nil {
		_ = h.storage.Delete(c.Request.Context(), path)
		return nil, "", err
	}

	return img, "", nil
}

// renderPage отдаёт страницу дневника со списком записей.
func (h *DiaryHandler) renderPage(c *gin.Context, errorMessage string) {
	username, ok := middleware.CurrentUsername(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	posts, err := h.posts.ListPosts(c.Request.Context(), username)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "diary.html", gin.H{
		"Username": username,
		"Posts":    posts,
		"Error":    errorMessage,
	})
}

func (h *DiaryHandler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatus(http.StatusInternalServerError)
}
