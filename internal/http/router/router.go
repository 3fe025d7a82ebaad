package router

import (
	"github.com/gin-gonic/gin"

	"github.com/befuji/studio-backend/internal/config"
	"github.com/befuji/studio-backend/internal/http/handlers"
	"github.com/befuji/studio-backend/internal/http/middleware"
	"github.com/befuji/studio-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	projectHandler *handlers.ProjectHandler,
	reviewHandler *handlers.ReviewHandler,
	contactHandler *handlers.ContactHandler,
	mediaHandler *handlers.MediaHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	// Публичные маршруты
	api.GET("/projects", projectHandler.ListProjects)
	api.GET("/reviews", reviewHandler.ListReviews)
	api.GET("/videos/:key", mediaHandler.StreamVideo)

	// Публичные write-endpoints под rate limit
	publicLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	api.POST("/reviews", publicLimit, reviewHandler.CreateReview)
	api.POST("/reviews/summarize", publicLimit, reviewHandler.SummarizeReview)
	api.POST("/contact", publicLimit, contactHandler.SendMessage)

	// Проверка пароля - отдельный, более жёсткий лимит
	verifyLimit := middleware.RateLimitMiddleware(5, cfg.RateLimitPeriod)
	api.POST("/admin/verify", verifyLimit, authHandler.Verify)

	// Защищённые маршруты админ-панели
	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuthMiddleware(tokenManager))
	{
		admin.GET("/projects", projectHandler.ListProjects)
		admin.POST("/projects", projectHandler.CreateProject)
		admin.PUT("/projects", projectHandler.UpdateProject)
		admin.DELETE("/projects", projectHandler.DeleteProject)

		admin.PUT("/reviews", reviewHandler.UpdateReview)
		admin.PATCH("/reviews", reviewHandler.ReorderReviews)
		admin.DELETE("/reviews", reviewHandler.DeleteReview)

		admin.GET("/upload-url", mediaHandler.UploadURL)
		admin.POST("/upload", mediaHandler.Upload)
		admin.GET("/media", mediaHandler.ListMedia)
		admin.POST("/setup-cors", mediaHandler.SetupCORS)
	}

	return r
}
