package routes

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/kmitofficial/CodeGenie-G372-PS25/config"
	"github.com/kmitofficial/CodeGenie-G372-PS25/controllers"
	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/codegen"
	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/inference"
)

// NewServer builds the Echo instance with middleware and every route wired to gen.
func NewServer(cfg *config.Config, logger *zap.Logger, gen inference.Generator) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Initialize controllers
	service := codegen.NewService(gen, cfg, logger)
	healthController := controllers.NewHealthController(cfg.Inference.Model)
	completionController := controllers.NewCompletionController(service, logger)
	analysisController := controllers.NewAnalysisController(service, logger)

	SetupRoutes(e, healthController, completionController, analysisController)
	return e
}

func SetupRoutes(e *echo.Echo, healthController *controllers.HealthController,
	completionController *controllers.CompletionController, analysisController *controllers.AnalysisController) {
	// Health check route
	e.GET("/health", healthController.HealthCheck)

	// Code generation
	e.POST("/generate", completionController.Generate)
	e.POST("/convert", completionController.Convert)

	// Reports
	e.POST("/analyze", analysisController.Analyze)
	e.POST("/optimize", analysisController.Optimize)
	e.POST("/analyze-project", analysisController.AnalyzeProject)
}
