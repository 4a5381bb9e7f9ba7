package server

import (
	"github.com/gin-gonic/gin"

	"resume-parser/internal/applications"
	"resume-parser/internal/jobs"
	"resume-parser/internal/recommendations"
	"resume-parser/internal/resumes"
	"resume-parser/internal/shared/config"
	"resume-parser/internal/shared/metrics"
	"resume-parser/internal/shared/server/middleware"
)

// RouterDeps holds the handlers mounted by NewRouter. Nil handlers are skipped.
type RouterDeps struct {
	Config                config.Config
	Health                *Health
	ResumeHandler         *resumes.Handler
	JobHandler            *jobs.Handler
	ApplicationHandler    *applications.Handler
	RecommendationHandler *recommendations.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.MaxMultipartMemory = deps.Config.MaxUploadBytes()

	r.Use(
		middleware.RequestID(),
		middleware.Identity(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(r)
	}

	api := r.Group("/api/v1")
	health := deps.Health
	if health == nil {
		health = &Health{}
	}
	api.GET("/health", health.Handle)
	if deps.JobHandler != nil {
		deps.JobHandler.RegisterRoutes(api)
	}
	if deps.ApplicationHandler != nil {
		deps.ApplicationHandler.RegisterRoutes(api)
	}
	if deps.RecommendationHandler != nil {
		deps.RecommendationHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
