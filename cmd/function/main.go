// Command function serves the prediction proxy through the Cloud Functions framework.
// FUNCTION_TARGET selects the registered function, normally Predict.
package main

import (
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"prediction-proxy/internal/config"
	"prediction-proxy/internal/handlers"
	"prediction-proxy/pkg/server"
)

var (
	router     http.Handler
	routerErr  error
	routerOnce sync.Once
)

const (
	functionName = "Predict"
	targetEnv    = "FUNCTION_TARGET"
)

func init() {
	functions.HTTP(functionName, predict)
}

// predict builds the router on first use so cold starts only pay for it once
func predict(w http.ResponseWriter, r *http.Request) {
	routerOnce.Do(func() {
		var cfg *config.Config
		cfg, routerErr = config.GetOptimizedConfig()
		if routerErr != nil {
			return
		}

		var container *server.Container
		container, routerErr = server.NewContainer(cfg)
		if routerErr != nil {
			return
		}

		if cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}

		router = handlers.NewRouter(&handlers.RouterConfig{
			PredictionService: container.PredictionService,
			Logger:            container.Logger,
		})
	})

	if routerErr != nil {
		logrus.WithError(routerErr).Error("Failed to initialize prediction proxy")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	router.ServeHTTP(w, r)
}

// defaultTarget selects Predict when FUNCTION_TARGET is unset, so the framework
// serves it at the root path as the deployed runtime does.
func defaultTarget() {
	if os.Getenv(targetEnv) == "" {
		_ = os.Setenv(targetEnv, functionName)
	}
}

func main() {
	defaultTarget()

	port := config.GetEnv("PORT", "8080")
	if err := funcframework.Start(port); err != nil {
		logrus.Fatalf("funcframework.Start: %v", err)
	}
}
