package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/MazyLawzey/websync-live/cmd/server/router"
	"github.com/MazyLawzey/websync-live/internal/config"
	"github.com/MazyLawzey/websync-live/internal/infrastructure/realtime"
	"github.com/MazyLawzey/websync-live/internal/observability"
	collab "github.com/MazyLawzey/websync-live/internal/pkg/collab/application/domain"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		observability.Logger().Warn(".env file not found or could not be loaded", "error", err)
	}

	cfg := config.Load()
	observability.SetLevel(cfg.LogLevel)

	registry := collab.NewSessionRegistry()
	broadcaster := realtime.NewBroadcaster()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	router.RegisterRoutes(r, cfg, registry, broadcaster)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		observability.Logger().Info("server running",
			"addr", cfg.Addr(), "workspace", cfg.WorkspacePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Logger().Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	observability.Logger().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		observability.Logger().Error("shutdown failed", "error", err)
	}
}
