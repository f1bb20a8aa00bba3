package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dnevnikapp/diary-backend/internal/http/nav"
	"github.com/dnevnikapp/diary-backend/internal/messages"
	"github.com/dnevnikapp/diary-backend/internal/service"
	"github.com/dnevnikapp/diary-backend/internal/session"
)

// LoginHandler обслуживает страницу входа.
type LoginHandler struct {
	auth     *service.AuthService
	sessions *session.Manager
	nav      *nav.Router
}

// NewLoginHandler создаёт хэндлер входа.
func NewLoginHandler(auth *service.AuthService, sessions *session.Manager, router *nav.Router) *LoginHandler {
	return &LoginHandler{auth: auth, sessions: sessions, nav: router}
}

// ShowPage обрабатывает GET /login.
//
// Сообщение для показа выбирается по приоритету: ошибка валидации,
// затем сообщение логина, затем logoutMessage из query-строки.
// Сообщения из сессии исчезают при чтении; параметр logoutMessage
// принимается только из белого списка — произвольный текст со
// стороны не отобразится.
func (h *LoginHandler) ShowPage(c *gin.Context) {
	ctx := c.Request.Context()
	sess := h.sessions.Load(c)

	validationMsg, err := sess.Take(ctx, string(messages.CategoryValidation))
	if err != nil {
		h.fail(c, err)
		return
	}
	loginMsg, err := sess.Take(ctx, string(messages.CategoryLogin))
	if err != nil {
		h.fail(c, err)
		return
	}

	message := loginMsg
	if validationMsg != "" {
		message = validationMsg
	}
	if message == "" {
		if q := c.Query("logoutMessage"); messages.IsLogoutMessage(q) {
			message = q
		}
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"Message": message,
	})
}

// Submit обрабатывает POST /login.
func (h *LoginHandler) Submit(c *gin.Context) {
	out, err := h.auth.Login(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.nav.Apply(c, nav.PathLogin, out)
}

func (h *LoginHandler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatus(http.StatusInternalServerError)
}
