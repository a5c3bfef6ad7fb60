package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"restaurant-cms/config"
	"restaurant-cms/database"
	"restaurant-cms/firebase"
	"restaurant-cms/handlers"
	"restaurant-cms/middleware"
	"restaurant-cms/render"
	"restaurant-cms/routes"
	"restaurant-cms/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the admin API and the public data endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		if servePort != "" {
			appConfig.Port = servePort
		}
		return runServer(appConfig, appLogger)
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to listen on (default $PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

// openStore builds the document store for the configured backend. The
// returned db is nil for the file backend.
func openStore(cfg *config.Config, log *zap.Logger) (*store.Store, *gorm.DB, error) {
	switch cfg.StoreBackend {
	case "", "file":
		return store.New(store.NewFileBackend(cfg.DataPath, cfg.ScriptPath), log), nil, nil
	case "postgres":
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(db); err != nil {
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		if _, err := database.ImportFileDocument(db, cfg.DataPath, log); err != nil {
			log.Warn("could not import existing document file", zap.Error(err))
		}
		return store.New(store.NewGormBackend(db, cfg.ScriptPath), log), db, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}

// openStorage connects the image bucket. Without a bucket, or when Firebase
// cannot start, images are disabled rather than failing the server.
func openStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) *firebase.FirebaseStorageClient {
	if cfg.FirebaseBucket == "" {
		return nil
	}
	app, err := firebase.Init(ctx, cfg.FirebaseCredentials, log)
	if err != nil {
		log.Warn("firebase unavailable, image uploads disabled", zap.Error(err))
		return nil
	}
	return firebase.NewStorageClient(app, cfg.FirebaseBucket, log)
}

func runServer(cfg *config.Config, log *zap.Logger) error {
	if err := config.ValidateEnv(log); err != nil {
		return fmt.Errorf("environment validation failed: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, db, err := openStore(cfg, log)
	if err != nil {
		return err
	}

	deps := routes.Dependencies{Store: st, PageTemplate: cfg.PageTemplate, Logger: log}
	if storage := openStorage(ctx, cfg, log); storage != nil {
		st.WithPublisher(storage)
		deps.Storage = storage
	}

	selectors, err := render.LoadSelectors(cfg.SelectorsPath)
	if err != nil {
		return err
	}
	deps.Renderer = render.New(selectors, render.Options{})

	deps.Auth, err = handlers.NewAuthHandler(cfg.AdminPassword, !cfg.IsDevelopment(), log)
	if err != nil {
		return err
	}

	deps.LoginLimiter = middleware.NewRateLimiter(5, time.Minute)
	go deps.LoginLimiter.RunCleanup(ctx)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	// Limit multipart form memory to 10MB
	r.MaxMultipartMemory = 10 << 20

	origins := cfg.CORSOrigins()
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
		log.Warn("no CORS origins configured, defaulting to http://localhost:3000")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	routes.SetupRoutes(r, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("port", cfg.Port), zap.String("backend", cfg.StoreBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}
	log.Info("shutting down server")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Warn("error closing database connection", zap.Error(err))
			} else {
				log.Info("database connection closed")
			}
		}
	}

	log.Info("server exited gracefully")
	return nil
}
