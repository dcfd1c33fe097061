package server

import (
	"github.com/gin-gonic/gin"

	"resume-tailor/internal/services/health"
	"resume-tailor/internal/shared/metrics"
	"resume-tailor/internal/shared/server/middleware"
	"resume-tailor/internal/tailoring"
	"resume-tailor/internal/uploads"
)

// RouterDeps lists the handlers mounted by NewRouter.
type RouterDeps struct {
	Health        *health.Service
	UploadHandler *uploads.Handler
	TailorHandler *tailoring.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(),
	)

	if deps.Health == nil {
		deps.Health = health.NewService()
	}
	deps.Health.RegisterRoutes(r)
	if deps.UploadHandler != nil {
		deps.UploadHandler.RegisterRoutes(r)
	}
	if deps.TailorHandler != nil {
		deps.TailorHandler.RegisterRoutes(r)
	}
	r.GET("/metrics", metrics.Handler())

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
