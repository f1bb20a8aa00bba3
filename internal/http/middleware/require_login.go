package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/dnevnikapp/diary-backend/internal/messages"
	"github.com/dnevnikapp/diary-backend/internal/session"
)

// Context ключи для gin.Context.
const (
	ContextUsernameKey = "username"
)

// RequireLogin пускает дальше только вошедших пользователей.
// Остальные отправляются на страницу входа с просьбой войти;
// сообщение передаётся параметром, потому что класть flash в сессию
// анонимного посетителя нет смысла.
func RequireLogin(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Load(c)

		loggedIn, err := sess.IsLoggedIn(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		if !loggedIn {
			c.Redirect(http.StatusSeeOther,
				"/login?logoutMessage="+url.QueryEscape(messages.UserNotLoggedIn))
			c.Abort()
			return
		}

		username, err := sess.Username(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(ContextUsernameKey, username)
		c.Next()
	}
}

// CurrentUsername возвращает имя вошедшего пользователя из контекста.
func CurrentUsername(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUsernameKey)
	if !ok {
		return "", false
	}
	username, ok := v.(string)
	return username, ok && username != ""
}
