package routes

import (
	"restaurant-cms/actions"
	"restaurant-cms/firebase"
	"restaurant-cms/handlers"
	"restaurant-cms/middleware"
	"restaurant-cms/render"
	"restaurant-cms/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Dependencies struct {
	Store *store.Store
	// Storage is nil when no bucket is configured; image routes then answer 503.
	Storage      firebase.StorageClient
	Renderer     *render.Renderer
	Auth         *handlers.AuthHandler
	LoginLimiter *middleware.RateLimiter
	PageTemplate string
	Logger       *zap.Logger
}

func SetupRoutes(r *gin.Engine, deps Dependencies) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Initialize handlers
	actionHandler := &handlers.ActionHandler{Store: deps.Store, IDs: actions.NewIDGenerator(), Logger: logger}
	documentHandler := &handlers.DocumentHandler{
		Store:        deps.Store,
		Renderer:     deps.Renderer,
		PageTemplate: deps.PageTemplate,
		Logger:       logger,
	}
	imageHandler := &handlers.MenuImageHandler{Store: deps.Store, Storage: deps.Storage, Logger: logger}

	// Public data the site loads
	r.GET("/data/restaurant-data.json", documentHandler.PublicJSON)
	r.GET("/js/restaurant-data.js", documentHandler.ProjectionScript)

	api := r.Group("/api")
	{
		login := []gin.HandlerFunc{deps.Auth.Login}
		if deps.LoginLimiter != nil {
			login = append([]gin.HandlerFunc{deps.LoginLimiter.Middleware()}, login...)
		}
		api.POST("/auth/login", login...)
		api.POST("/auth/logout", deps.Auth.Logout)
	}

	// Admin routes (require admin session)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		admin.POST("/actions", actionHandler.Submit)
		admin.GET("/document", documentHandler.GetDocument)
		admin.GET("/preview", documentHandler.Preview)
		admin.POST("/menu-items/:id/image", imageHandler.Upload)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
