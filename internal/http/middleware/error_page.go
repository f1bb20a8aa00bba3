package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dnevnikapp/diary-backend/internal/logger"
)

// ErrorPage логирует накопленные ошибки запроса и отдаёт пользователю
// нейтральную страницу. Детали ошибки остаются в логах и не
// показываются в браузере.
func ErrorPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		if logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"error":  c.Errors.Last().Error(),
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			}).Error("ошибка обработки запроса")
		}

		if c.Writer.Written() {
			return
		}

		c.String(http.StatusInternalServerError,
			"Что-то пошло не так. Попробуйте ещё раз позже.")
	}
}
