package nav

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/dnevnikapp/diary-backend/internal/messages"
	"github.com/dnevnikapp/diary-backend/internal/service"
	"github.com/dnevnikapp/diary-backend/internal/session"
)

// Страницы приложения, на которые ведут исходы воркфлоу.
const (
	PathLogin        = "/login"
	PathRegistration = "/registration"
	PathVerification = "/verification"
	PathEmailSender  = "/email-sender"
	PathDiary        = "/user/diary"
)

// Router переводит исход воркфлоу в следующий шаг HTTP: редирект с
// flash-сообщением, редирект с параметром или внутренний forward.
// Вся навигационная логика страниц собрана здесь, хэндлеры только
// вызывают сервис и отдают исход.
type Router struct {
	sessions *session.Manager
	engine   *gin.Engine
}

// NewRouter создаёт маршрутизатор исходов.
func NewRouter(sessions *session.Manager) *Router {
	return &Router{sessions: sessions}
}

// Bind привязывает gin-движок. Нужен для forward-ов: запрос
// переигрывается по другому пути без ответа клиенту.
func (r *Router) Bind(engine *gin.Engine) {
	r.engine = engine
}

// Apply выполняет следующий шаг для исхода. origin — путь страницы,
// с которой пришла форма: на неё возвращаются ошибки валидации.
func (r *Router) Apply(c *gin.Context, origin string, out service.Outcome) {
	ctx := c.Request.Context()
	sess := r.sessions.Load(c)

	switch out.Kind {
	case service.OutcomeInputInvalid:
		r.redirectWithFlash(c, sess, origin, out.Message)

	case service.OutcomeAuthFailed, service.OutcomeAccountDeleted:
		r.redirectWithFlash(c, sess, PathLogin, out.Message)

	case service.OutcomeRegistrationConflict:
		r.redirectWithFlash(c, sess, PathRegistration, out.Message)

	case service.OutcomeAuthenticated:
		// Успешный вход начинает чистую сессию: недочитанные
		// сообщения прошлых попыток не должны всплыть позже.
		for _, category := range messages.Categories() {
			if err := sess.Delete(ctx, string(category)); err != nil {
				r.fail(c, err)
				return
			}
		}
		if err := sess.MarkLoggedIn(ctx, out.Username); err != nil {
			r.fail(c, err)
			return
		}
		c.Redirect(http.StatusSeeOther, PathDiary)

	case service.OutcomeRegistered, service.OutcomeAccountUnverified:
		// Пользователю без подтверждённого email нужно письмо с кодом.
		// Email передаётся через сессию, запрос переигрывается на
		// страницу отправки кода без редиректа в браузер.
		if err := sess.Set(ctx, session.KeyEmail, out.Email); err != nil {
			r.fail(c, err)
			return
		}
		r.forward(c, PathEmailSender)

	case service.OutcomeCodePending, service.OutcomeCodeSent, service.OutcomeCodeResent,
		service.OutcomeCodeSendFailed, service.OutcomeCodeInvalid:
		if err := sess.Set(ctx, session.KeyEmail, out.Email); err != nil {
			r.fail(c, err)
			return
		}
		r.redirectWithFlash(c, sess, PathVerification, out.Message)

	case service.OutcomeCodeValid:
		// Аккаунт активирован, email в сессии больше не нужен.
		if err := sess.Delete(ctx, session.KeyEmail); err != nil {
			r.fail(c, err)
			return
		}
		r.redirectWithFlash(c, sess, PathLogin, out.Message)

	default:
		r.fail(c, fmt.Errorf("nav: неизвестный исход %q", out.Kind))
	}
}

// RedirectWithParam делает редирект с сообщением в query-строке.
// Используется для выхода: сессии на этот момент уже нет, flash
// положить некуда.
func (r *Router) RedirectWithParam(c *gin.Context, target, param, message string) {
	c.Redirect(http.StatusSeeOther, target+"?"+param+"="+url.QueryEscape(message))
}

// redirectWithFlash кладёт сообщение в сессию под ключом его категории
// и делает редирект. Сообщение доживёт ровно до следующего рендера.
func (r *Router) redirectWithFlash(c *gin.Context, sess *session.Session, target, message string) {
	if message != "" {
		category, ok := messages.CategoryOf(message)
		if !ok {
			r.fail(c, fmt.Errorf("nav: сообщение без категории: %q", message))
			return
		}
		if err := sess.Set(c.Request.Context(), string(category), message); err != nil {
			r.fail(c, err)
			return
		}
	}
	c.Redirect(http.StatusSeeOther, target)
}

// forward переигрывает текущий запрос по другому пути. Браузер не
// участвует: ответ клиенту сформирует хэндлер целевой страницы.
func (r *Router) forward(c *gin.Context, target string) {
	c.Request.URL.Path = target
	c.Request.Method = http.MethodPost
	r.engine.HandleContext(c)
	c.Abort()
}

func (r *Router) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatus(http.StatusInternalServerError)
}
