package plans

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"switchplan-backend/internal/shared/server/respond"
	"switchplan-backend/internal/shared/telemetry"
)

// Handler exposes plan listing endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches plan routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/plans/featured", h.featured)
	rg.GET("/plans/prepaid", h.prepaid)
	rg.GET("/plans/all", h.all)
	rg.POST("/plans/reload", h.reload)
}

func (h *Handler) featured(c *gin.Context) {
	respond.OK(c, h.Svc.Featured())
}

func (h *Handler) prepaid(c *gin.Context) {
	respond.OK(c, h.Svc.Prepaid())
}

func (h *Handler) all(c *gin.Context) {
	respond.OK(c, h.Svc.All())
}

func (h *Handler) reload(c *gin.Context) {
	if err := h.Svc.Reload(c.Request.Context()); err != nil {
		telemetry.Error("plans.reload_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "reload_failed", "Failed to reload plans data", nil)
		return
	}
	respond.OK(c, gin.H{"message": "Plans reloaded successfully"})
}
