package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dnevnikapp/diary-backend/internal/http/nav"
	"github.com/dnevnikapp/diary-backend/internal/messages"
	"github.com/dnevnikapp/diary-backend/internal/service"
	"github.com/dnevnikapp/diary-backend/internal/session"
)

// VerificationHandler обслуживает страницу ввода кода подтверждения
// и отправку кодов на email.
type VerificationHandler struct {
	verification *service.VerificationService
	sessions     *session.Manager
	nav          *nav.Router
}

// NewVerificationHandler создаёт хэндлер подтверждения.
func NewVerificationHandler(verification *service.VerificationService, sessions *session.Manager, router *nav.Router) *VerificationHandler {
	return &VerificationHandler{verification: verification, sessions: sessions, nav: router}
}

// ShowPage обрабатывает GET /verification.
func (h *VerificationHandler) ShowPage(c *gin.Context) {
	ctx := c.Request.Context()
	sess := h.sessions.Load(c)

	email, err := sess.Get(ctx, session.KeyEmail)
	if err != nil {
		h.fail(c, err)
		return
	}
	if email == "" {
		// Страница без email в сессии бессмысленна: сюда попадают
		// только с регистрации или входа в неподтверждённый аккаунт.
		c.Redirect(http.StatusSeeOther, nav.PathLogin)
		return
	}

	message, err := sess.Take(ctx, string(messages.CategoryVerification))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "verification.html", gin.H{
		"Message": message,
		"Email":   email,
	})
}

// Submit обрабатывает POST /verification — проверку введённого кода.
func (h *VerificationHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()
	sess := h.sessions.Load(c)

	email, err := sess.Get(ctx, session.KeyEmail)
	if err != nil {
		h.fail(c, err)
		return
	}
	if email == "" {
		c.Redirect(http.StatusSeeOther, nav.PathLogin)
		return
	}

	out, err := h.verification.ValidateCode(ctx, email, c.PostForm("code"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.nav.Apply(c, nav.PathVerification, out)
}

// SendCode обрабатывает POST /email-sender.
//
// Сюда попадают двумя путями: внутренним forward-ом после регистрации
// или входа в неподтверждённый аккаунт, и напрямую — кнопкой «отправить
// новый код» на странице подтверждения. Во втором случае форма несёт
// поле resend.
func (h *VerificationHandler) SendCode(c *gin.Context) {
	ctx := c.Request.Context()
	sess := h.sessions.Load(c)

	email, err := sess.Get(ctx, session.KeyEmail)
	if err != nil {
		h.fail(c, err)
		return
	}
	if email == "" {
		c.Redirect(http.StatusSeeOther, nav.PathLogin)
		return
	}

	resend := c.PostForm("resend") == "true"

	out, err := h.verification.SendCode(ctx, email, resend)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.nav.Apply(c, nav.PathVerification, out)
}

func (h *VerificationHandler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatus(http.StatusInternalServerError)
}
