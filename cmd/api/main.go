package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	httphandlers "github.com/rafabene/minipost-backend/internal/handlers/http"
	"github.com/rafabene/minipost-backend/internal/handlers/middleware"
	"github.com/rafabene/minipost-backend/internal/infrastructure/config"
	"github.com/rafabene/minipost-backend/internal/infrastructure/i18n"
	"github.com/rafabene/minipost-backend/internal/infrastructure/logging"
	"github.com/rafabene/minipost-backend/internal/infrastructure/messaging/kafka"
	"github.com/rafabene/minipost-backend/internal/infrastructure/persistence/postgres"
	storage "github.com/rafabene/minipost-backend/internal/infrastructure/storage/minio"
	"github.com/rafabene/minipost-backend/internal/services"
)

func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting minipost backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n
	i18nService, err := i18n.NewService("en")
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Inicializar object storage e garantir o bucket
	imageStore, err := storage.NewImageStore(&cfg.Storage, logger)
	if err != nil {
		logger.Error("failed to create image store", "error", err)
		log.Fatal(err)
	}
	if err := imageStore.EnsureBucket(context.Background()); err != nil {
		// Espelha o comportamento original: bucket indisponível no boot
		// não derruba a API, cada upload falha por conta própria
		logger.Error("error initializing bucket", "error", err)
	}

	// Producer do event stream: só conecta e loga, nenhum caminho de
	// requisição publica nada hoje
	producer, err := kafka.NewProducer(&cfg.Kafka, logger)
	if err != nil {
		logger.Error("failed to connect producer", "error", err)
	} else {
		defer producer.Close()
	}

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	postRepo := postgres.NewPostRepository(db)

	// Inicializar services
	postService := services.NewPostService(postRepo, imageStore, logger)
	userService := services.NewUserService(userRepo, postRepo, imageStore, logger)

	// Inicializar handlers
	postHandler := httphandlers.NewPostHandler(postService)
	userHandler := httphandlers.NewUserHandler(userService)

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Middleware i18n
	i18nMiddleware := middleware.NewI18nMiddleware(i18nService)
	router.Use(i18nMiddleware.DetectLanguage())

	// Middleware CORS
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigin))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Env,
		})
	})

	// API routes
	api := router.Group("/api")
	{
		posts := api.Group("/posts")
		{
			posts.GET("", postHandler.ListPosts)
			posts.GET("/get-post/:userid/:postid", postHandler.GetPost)
			posts.GET("/get-posts/:userid", postHandler.ListUserPosts)
			posts.POST("/create-post/:id", postHandler.CreatePost)
			posts.PATCH("/update-post/:userid/:postid", postHandler.UpdatePost)
			posts.DELETE("/delete-post/:userid/:postid", postHandler.DeletePost)
		}

		user := api.Group("/user")
		{
			user.GET("", userHandler.ListUsers)
			user.GET("/get-users-posts/:id", userHandler.ListUserPosts)
			user.POST("/create-user", userHandler.CreateUser)
			user.PATCH("/update-user/:id", userHandler.UpdateUser)
			user.DELETE("/delete-user/:id", userHandler.DeleteUser)
		}
	}

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
