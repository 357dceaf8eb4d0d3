package entrypoint

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lectern-app/lectern/internal/config"
	"github.com/lectern-app/lectern/internal/database"
	"github.com/lectern-app/lectern/internal/database/annotations"
	"github.com/lectern-app/lectern/internal/database/catalog"
	"github.com/lectern-app/lectern/internal/database/progress"
	"github.com/lectern-app/lectern/internal/database/sessions"
	http_controllers "github.com/lectern-app/lectern/internal/http"
)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts it down within
// the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Info().Str("host", cfg.HTTP.Host).Int32("port", cfg.HTTP.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Dur("timeout", timeout).Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown failed")
	}

	log.Info().Msg("server exiting")
}

// Run wires configuration, the shared store handle, the repositories and the
// router, then serves.
func Run(cfg *config.Config, version string) {
	setupLogging(cfg.Log.Level)
	log.Info().Str("version", version).Msg("starting lectern")

	db, err := database.Default(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("failed to open database")
	}

	catalogRepo := catalog.NewRepository(db.DB)
	annotationsRepo := annotations.NewRepository(db.DB)
	progressRepo := progress.NewRepository(db.DB)
	sessionsRepo := sessions.NewRepository(db.DB, progressRepo)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Documents:   http_controllers.NewDocumentsController(catalogRepo),
		Annotations: http_controllers.NewAnnotationsController(annotationsRepo),
		Progress:    http_controllers.NewProgressController(progressRepo),
		Sessions:    http_controllers.NewSessionsController(sessionsRepo),
		Stats:       http_controllers.NewStatsController(db, sessionsRepo),
		Health:      http_controllers.NewHealthController(db, version),
	})

	Serve(router, cfg)
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}
