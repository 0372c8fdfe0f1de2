package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/talentgrid/internmatch/internal/config"
	"github.com/talentgrid/internmatch/internal/handlers"
	"github.com/talentgrid/internmatch/internal/middleware"
	"github.com/talentgrid/internmatch/internal/services"
	"github.com/talentgrid/internmatch/internal/store"
	"github.com/talentgrid/internmatch/internal/validation"
)

type App struct {
	config   *config.Config
	logger   *logrus.Logger
	services *services.Services
	handlers *handlers.Handlers
	router   *gin.Engine
}

func New(cfg *config.Config) (*App, error) {
	app := &App{
		config: cfg,
		logger: setupLogger(cfg),
	}

	// Load the tabular dataset and open the append-only feedback log
	data, err := store.Load(cfg.Data, cfg.Recommendation.Rating, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	feedbackLog, err := store.OpenFeedbackLog(cfg.Data.FeedbackFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open feedback log: %w", err)
	}

	// Train models and wire services
	svcs, err := services.New(cfg, app.logger, data, feedbackLog)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	app.services = svcs

	validator, err := validation.NewSchemaValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to compile schemas: %w", err)
	}

	app.handlers = handlers.New(app.logger, svcs, validator)
	app.setupRouter()

	app.logger.WithFields(logrus.Fields(svcs.Stats())).Info("Engine trained and ready")

	return app, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Logger() *logrus.Logger {
	return a.logger
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application...")
	return nil
}

func setupLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

func (a *App) setupRouter() {
	if a.config.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(a.logger))
	router.Use(middleware.Recovery(a.logger))
	router.Use(middleware.CORS(a.config))
	router.Use(middleware.Metrics())

	// Health check endpoint (no auth required)
	router.GET("/health", a.handlers.Health.Check)

	// Prometheus metrics endpoint (no auth required)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api/v1")
	{
		// Token issuance is the only unauthenticated API route
		api.POST("/auth/token", a.handlers.Auth.IssueToken)

		authed := api.Group("")
		authed.Use(middleware.Auth(a.services.Auth, a.logger))

		// Recommendation routes
		recommendations := authed.Group("/recommendations")
		{
			recommendations.GET("/:studentId", a.handlers.Recommendation.Get)
			recommendations.GET("/:studentId/content", a.handlers.Recommendation.GetContent)
			recommendations.GET("/:studentId/collaborative", a.handlers.Recommendation.GetCollaborative)
		}

		// Catalog routes
		opportunities := authed.Group("/opportunities")
		{
			opportunities.GET("", a.handlers.Catalog.List)
			opportunities.GET("/:id/rating", a.handlers.Catalog.GetRating)
		}

		// Feedback routes
		authed.POST("/feedback", a.handlers.Feedback.Create)

		// Admin routes
		admin := authed.Group("/admin")
		{
			admin.POST("/retrain", a.handlers.Feedback.Retrain)
		}
	}

	a.router = router
}
