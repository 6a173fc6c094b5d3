package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sidneynma/astracampaign-sub002/internal/config"
	"github.com/sidneynma/astracampaign-sub002/internal/handlers"
	"github.com/sidneynma/astracampaign-sub002/internal/middleware"
	"github.com/sidneynma/astracampaign-sub002/internal/models"
	"github.com/sidneynma/astracampaign-sub002/internal/services"
	"github.com/sidneynma/astracampaign-sub002/internal/types"
	"gorm.io/gorm"
)

func NewRouter(database *gorm.DB, cfg config.Config) *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())

	notificationHandler := handlers.NewNotificationHandler(services.NewNotificationService(database))
	alertHandler := handlers.NewAlertHandler(services.NewAlertService(database))
	crmHandler := handlers.NewCrmHandler(services.NewChatwootService(database, cfg.Chatwoot))
	mediaHandler := handlers.NewMediaHandler(database, cfg.MediaDir)
	authHandler := handlers.NewAuthHandler(database)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/uploads", cfg.MediaDir)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.AuthMiddleware(database), authHandler.Me)
		}

		notifications := api.Group("/notifications", middleware.AuthMiddleware(database))
		{
			notifications.GET("", notificationHandler.List)
			notifications.GET("/unread-count", notificationHandler.UnreadCount)
			notifications.GET("/summary", notificationHandler.Summary)
			notifications.POST("/mark-all-read", notificationHandler.MarkAllAsRead)
			notifications.POST("/:id/mark-read", notificationHandler.MarkAsRead)
			notifications.DELETE("/:id", notificationHandler.Delete)
		}

		alerts := api.Group("/alerts", middleware.AuthMiddleware(database))
		{
			alerts.GET("", alertHandler.List)
			alerts.POST("", middleware.RequireRole(models.RoleAdmin), alertHandler.Create)
		}

		media := api.Group("/media", middleware.AuthMiddleware(database))
		{
			media.POST("/upload", middleware.UploadLimit(), mediaHandler.Upload)
			media.GET("", mediaHandler.List)
			media.DELETE("/:filename", mediaHandler.Delete)
		}

		crm := api.Group("/crm", middleware.AuthMiddleware(database))
		{
			crm.GET("/tags", crmHandler.FetchTags)
			crm.POST("/contacts/sync", crmHandler.SyncContact)
		}
	}

	return r
}
