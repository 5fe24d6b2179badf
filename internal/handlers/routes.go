package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"prediction-proxy/internal/middleware"
	"prediction-proxy/internal/services"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	PredictionService services.PredictionService
	Logger            *logrus.Logger
	SlowThreshold     time.Duration
}

// NewRouter creates a gin engine with middleware and all routes
func NewRouter(config *RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(config.Logger))
	router.Use(middleware.StructuredLogger(config.Logger))
	router.Use(middleware.PerformanceMonitor(config.Logger, config.SlowThreshold))

	SetupRoutes(router, config)
	return router
}

// SetupRoutes configures all routes. The prediction paths answer every method,
// including ones gin has no tree for, with the prediction handler.
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	predictionHandler := NewPredictionHandler(config.PredictionService, config.Logger)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"service":  "prediction-proxy",
			"endpoint": config.PredictionService.Endpoint(),
		})
	})

	router.Any("/", predictionHandler.Predict)
	router.Any("/predict", predictionHandler.Predict)

	// Methods outside gin's standard set never match a route and land here
	router.NoRoute(func(c *gin.Context) {
		if isPredictionPath(c.Request.URL.Path) {
			predictionHandler.Predict(c)
		}
	})
}

func isPredictionPath(path string) bool {
	return path == "/" || path == "/predict"
}
