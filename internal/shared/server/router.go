package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contract-backend/internal/analyses"
	"contract-backend/internal/shared/config"
	"contract-backend/internal/shared/server/middleware"
	"contract-backend/internal/shared/server/respond"
	"contract-backend/internal/usage"
)

// Burst protection on the analyze endpoint, per client IP. The 3-analyses
// quota is enforced separately by the handler.
var analyzeRateLimit = middleware.RateLimitRule{Rate: 0.5, Burst: 5}

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	AnalysisHandler *analyses.Handler
	UsageHandler    *usage.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	analyzed := api.Group("")
	analyzed.Use(middleware.RateLimit(middleware.RateLimitConfig{Rule: analyzeRateLimit}))
	deps.AnalysisHandler.RegisterRoutes(analyzed)

	deps.UsageHandler.RegisterRoutes(api)
	if deps.Config.Env == "dev" {
		dev := api.Group("/dev")
		deps.UsageHandler.RegisterDevRoutes(dev)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
