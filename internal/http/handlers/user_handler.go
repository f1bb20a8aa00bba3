package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dnevnikapp/diary-backend/internal/http/middleware"
	"github.com/dnevnikapp/diary-backend/internal/http/nav"
	"github.com/dnevnikapp/diary-backend/internal/messages"
	"github.com/dnevnikapp/diary-backend/internal/service"
	"github.com/dnevnikapp/diary-backend/internal/session"
)

// UserHandler обслуживает настройки аккаунта, выход и удаление.
type UserHandler struct {
	users    *service.UserService
	sessions *session.Manager
	nav      *nav.Router
}

// NewUserHandler создаёт хэндлер аккаунта.
func NewUserHandler(users *service.UserService, sessions *session.Manager, router *nav.Router) *UserHandler {
	return &UserHandler{users: users, sessions: sessions, nav: router}
}

// ShowSettings обрабатывает GET /user/settings.
func (h *UserHandler) ShowSettings(c *gin.Context) {
	username, _ := middleware.CurrentUsername(c)
	c.HTML(http.StatusOK, "settings.html", gin.H{
		"Username": username,
	})
}

// ShowAccountDeletion обрабатывает GET /user/account-deletion —
// страницу подтверждения удаления.
func (h *UserHandler) ShowAccountDeletion(c *gin.Context) {
	username, _ := middleware.CurrentUsername(c)
	c.HTML(http.StatusOK, "account_deletion.html", gin.H{
		"Username": username,
	})
}

// Logout обрабатывает POST /user/logout. Сессия уничтожается целиком,
// сообщение о выходе передаётся параметром: класть его больше некуда.
func (h *UserHandler) Logout(c *gin.Context) {
	sess := h.sessions.Load(c)
	if err := sess.Destroy(c.Request.Context(), c); err != nil {
		h.fail(c, err)
		return
	}
	h.nav.RedirectWithParam(c, nav.PathLogin, "logoutMessage", messages.LogoutSuccessful)
}

// DeleteAccount обрабатывает POST /user/account-deletion.
// Аккаунт удаляется мягко, после чего пользователь выходит.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	username, ok := middleware.CurrentUsername(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, nav.PathLogin)
		return
	}

	if err := h.users.SoftDelete(c.Request.Context(), username); err != nil {
		h.fail(c, err)
		return
	}

	sess := h.sessions.Load(c)
	if err := sess.Destroy(c.Request.Context(), c); err != nil {
		h.fail(c, err)
		return
	}
	h.nav.RedirectWithParam(c, nav.PathLogin, "logoutMessage", messages.AccountDeletionSuccessful)
}

func (h *UserHandler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatus(http.StatusInternalServerError)
}
