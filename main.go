package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nabz863/group17-freelance-sd-sub000/config"
	"github.com/Nabz863/group17-freelance-sd-sub000/handler"
	"github.com/Nabz863/group17-freelance-sd-sub000/middleware"
	"github.com/Nabz863/group17-freelance-sd-sub000/model"
	"github.com/Nabz863/group17-freelance-sd-sub000/pkg/logger"
	"github.com/Nabz863/group17-freelance-sd-sub000/service"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Relational backend
	db, err := service.OpenDatabase(&cfg.Database)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Object storage
	minioSvc, err := service.NewMinioService(&cfg.Minio)
	if err != nil {
		slog.Error("failed to initialize MINIO service", "error", err)
		os.Exit(1)
	}
	if err := minioSvc.EnsureBucket(context.Background()); err != nil {
		slog.Error("failed to ensure MINIO bucket", "error", err)
		os.Exit(1)
	}

	// Contract template
	templates, err := service.NewTemplateStore(cfg.Template.Path)
	if err != nil {
		slog.Error("failed to load contract template", "error", err)
		os.Exit(1)
	}

	// Notification channels
	hub := service.NewHub()
	mailer := service.NewMailer(&cfg.SMTP, db)
	notifier := service.MultiNotifier{hub, mailer}

	// Services
	users := service.NewUserService(db)
	if err := users.SeedAdmin(&cfg.Admin); err != nil {
		slog.Error("failed to seed admin account", "error", err)
		os.Exit(1)
	}
	projects := service.NewProjectService(db)
	contracts := service.NewContractService(db, service.NewPDFRenderer(), minioSvc, notifier)
	milestones := service.NewMilestoneService(db, minioSvc)
	messages := service.NewMessageService(db, projects, notifier)

	// Handlers
	authHandler := handler.NewAuthHandler(cfg, users)
	adminHandler := handler.NewAdminHandler(users, mailer)
	contractHandler := handler.NewContractHandler(contracts, templates)
	projectHandler := handler.NewProjectHandler(projects)
	milestoneHandler := handler.NewMilestoneHandler(milestones, contracts)
	chatHandler := handler.NewChatHandler(messages)
	wsHandler := handler.NewWSHandler(hub)

	// Setup Gin router
	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New() // Use New() instead of Default() to avoid default middleware

	// Add custom middleware
	router.Use(middleware.RequestID())                 // Request ID for tracing
	router.Use(middleware.Recovery())                  // Panic recovery
	router.Use(middleware.RequestLogger())             // Access logging
	router.Use(corsMiddleware())                       // CORS
	router.Use(middleware.RateLimit(100, time.Minute)) // Rate limiting: 100 requests per minute

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/auth/signup", authHandler.Signup)
		api.POST("/auth/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)

		protected.GET("/contracts/template",
			middleware.RequireRole(model.RoleClient), contractHandler.GetTemplate)
		protected.POST("/contracts",
			middleware.RequireRole(model.RoleClient),
			middleware.ValidateContractTerms(templates),
			contractHandler.Create)
		protected.GET("/contracts", contractHandler.List)
		protected.GET("/contracts/:id", contractHandler.Get)
		protected.PATCH("/contracts/:id/status", contractHandler.UpdateStatus)
		protected.GET("/contracts/:id/document", contractHandler.GetDocument)
		protected.GET("/contracts/:id/pdf", contractHandler.GetPDF)

		protected.POST("/projects",
			middleware.RequireRole(model.RoleClient), projectHandler.Create)
		protected.GET("/projects", projectHandler.List)
		protected.GET("/projects/:id", projectHandler.Get)
		protected.POST("/projects/:id/applications",
			middleware.RequireRole(model.RoleFreelancer), projectHandler.Apply)
		protected.GET("/projects/:id/applications", projectHandler.ListApplications)
		protected.PATCH("/applications/:id", projectHandler.DecideApplication)

		protected.POST("/contracts/:id/milestones", milestoneHandler.Create)
		protected.GET("/contracts/:id/milestones", milestoneHandler.List)
		protected.PATCH("/milestones/:id", milestoneHandler.UpdateStatus)
		protected.POST("/milestones/:id/deliverable", milestoneHandler.UploadDeliverable)

		protected.GET("/projects/:id/messages", chatHandler.List)
		protected.POST("/projects/:id/messages", chatHandler.Send)

		protected.GET("/ws", wsHandler.Connect)

		admin := protected.Group("/admin")
		admin.Use(middleware.RequireRole(model.RoleAdmin))
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.PATCH("/users/:id/approval", adminHandler.SetApproval)
		}
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// corsMiddleware handles CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
