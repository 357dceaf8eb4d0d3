package http

import (
	"github.com/gin-gonic/gin"
)

// RouterConfig carries every controller dependency, so the router can be
// assembled the same way in the entrypoint and in tests.
type RouterConfig struct {
	Documents   *DocumentsController
	Annotations *AnnotationsController
	Progress    *ProgressController
	Sessions    *SessionsController
	Stats       *StatsController
	Health      *HealthController
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/health", cfg.Health.Status)

	api := router.Group("/api")
	{
		api.POST("/documents", cfg.Documents.Add)
		api.GET("/documents", cfg.Documents.List)
		api.DELETE("/documents", cfg.Documents.Remove)
		api.PATCH("/documents/:id", cfg.Documents.UpdateMetadata)
		api.GET("/documents/:id/payload", cfg.Documents.Payload)
		api.GET("/documents/:id/outline", cfg.Documents.Outline)
		api.PUT("/documents/:id/outline", cfg.Documents.SetOutline)

		api.POST("/documents/:id/annotations", cfg.Annotations.Create)
		api.GET("/documents/:id/annotations", cfg.Annotations.List)
		api.PATCH("/annotations/:id", cfg.Annotations.Update)
		api.DELETE("/annotations/:id", cfg.Annotations.Delete)

		api.PUT("/documents/:id/progress", cfg.Progress.Record)
		api.GET("/documents/:id/progress", cfg.Progress.Get)
		api.GET("/progress", cfg.Progress.GetAll)

		api.POST("/documents/:id/sessions/start", cfg.Sessions.Start)
		api.POST("/documents/:id/sessions/stop", cfg.Sessions.Stop)
		api.GET("/documents/:id/sessions", cfg.Sessions.List)

		api.GET("/stats", cfg.Stats.Get)
	}

	return router
}
