package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MazyLawzey/websync-live/internal/config"
	"github.com/MazyLawzey/websync-live/internal/infrastructure/preview"
	"github.com/MazyLawzey/websync-live/internal/infrastructure/realtime"
	collab "github.com/MazyLawzey/websync-live/internal/pkg/collab/application/domain"
	"github.com/MazyLawzey/websync-live/internal/pkg/collab/presentation/controller"
)

// RegisterRoutes mounts the collaboration websocket, the health probe, and
// the workspace preview. The preview owns every path no other route claims.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, registry *collab.SessionRegistry, broadcaster *realtime.Broadcaster) {
	socket := controller.NewCollabSocketController(registry, broadcaster)
	r.GET("/ws", socket.Handle())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	r.NoRoute(preview.Handler(cfg.WorkspacePath))
}
