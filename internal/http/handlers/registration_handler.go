package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dnevnikapp/diary-backend/internal/http/nav"
	"github.com/dnevnikapp/diary-backend/internal/messages"
	"github.com/dnevnikapp/diary-backend/internal/service"
	"github.com/dnevnikapp/diary-backend/internal/session"
)

// RegistrationHandler обслуживает страницу регистрации.
type RegistrationHandler struct {
	registration *service.RegistrationService
	sessions     *session.Manager
	nav          *nav.Router
}

// NewRegistrationHandler создаёт хэндлер регистрации.
func NewRegistrationHandler(registration *service.RegistrationService, sessions *session.Manager, router *nav.Router) *RegistrationHandler {
	return &RegistrationHandler{registration: registration, sessions: sessions, nav: router}
}

// ShowPage обрабатывает GET /registration.
func (h *RegistrationHandler) ShowPage(c *gin.Context) {
	ctx := c.Request.Context()
	sess := h.sessions.Load(c)

	validationMsg, err := sess.Take(ctx, string(messages.CategoryValidation))
	if err != nil {
		h.fail(c, err)
		return
	}
	registrationMsg, err := sess.Take(ctx, string(messages.CategoryRegistration))
	if err != nil {
		h.fail(c, err)
		return
	}

	message := registrationMsg
	if validationMsg != "" {
		message = validationMsg
	}

	c.HTML(http.StatusOK, "registration.html", gin.H{
		"Message": message,
	})
}

// Submit обрабатывает POST /registration.
func (h *RegistrationHandler) Submit(c *gin.Context) {
	out, err := h.registration.Register(
		c.Request.Context(),
		c.PostForm("username"),
		c.PostForm("password"),
		c.PostForm("email"),
	)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.nav.Apply(c, nav.PathRegistration, out)
}

func (h *RegistrationHandler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatus(http.StatusInternalServerError)
}
