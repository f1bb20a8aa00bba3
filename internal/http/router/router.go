package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dnevnikapp/diary-backend/internal/config"
	"github.com/dnevnikapp/diary-backend/internal/http/handlers"
	"github.com/dnevnikapp/diary-backend/internal/http/middleware"
	"github.com/dnevnikapp/diary-backend/internal/http/nav"
	"github.com/dnevnikapp/diary-backend/internal/session"
)

// SetupRouter собирает маршруты приложения.
func SetupRouter(
	cfg *config.Config,
	loginHandler *handlers.LoginHandler,
	registrationHandler *handlers.RegistrationHandler,
	verificationHandler *handlers.VerificationHandler,
	userHandler *handlers.UserHandler,
	diaryHandler *handlers.DiaryHandler,
	sessions *session.Manager,
	outcomes *nav.Router,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorPage())
	r.LoadHTMLGlob(cfg.TemplatesGlob)

	// Forward-ы переигрывают запрос через движок, ссылка нужна
	// маршрутизатору исходов до первого запроса.
	outcomes.Bind(r)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, nav.PathLogin)
	})

	formRateLimit := middleware.RateLimit(cfg.RateLimitLimit, cfg.RateLimitPeriod)

	r.GET("/login", loginHandler.ShowPage)
	r.POST("/login", formRateLimit, loginHandler.Submit)

	r.GET("/registration", registrationHandler.ShowPage)
	r.POST("/registration", formRateLimit, registrationHandler.Submit)

	r.GET("/verification", verificationHandler.ShowPage)
	r.POST("/verification", formRateLimit, verificationHandler.Submit)
	r.POST("/email-sender", verificationHandler.SendCode)

	user := r.Group("/user")
	user.Use(middleware.RequireLogin(sessions))
	{
		user.GET("/diary", diaryHandler.ShowPage)
		user.POST("/diary", diaryHandler.Submit)
		user.GET("/image/:id", diaryHandler.ServeImage)

		user.GET("/settings", userHandler.ShowSettings)
		user.POST("/logout", userHandler.Logout)
		user.GET("/account-deletion", userHandler.ShowAccountDeletion)
		user.POST("/account-deletion", userHandler.DeleteAccount)
	}

	return r
}
