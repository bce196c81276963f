package usage

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contract-backend/internal/quota"
	"contract-backend/internal/shared/server/respond"
	"contract-backend/internal/shared/telemetry"
)

// Handler exposes usage endpoints. The reported count comes from the quota
// cookie (what the client UI shows); the advisory server-side counter is
// attached when a store is configured.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler. svc may be nil when no advisory store is
// configured.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches usage routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/usage", h.getUsage)
}

// RegisterDevRoutes attaches dev-only usage routes.
func (h *Handler) RegisterDevRoutes(rg *gin.RouterGroup) {
	rg.POST("/usage/reset", h.resetUsage)
}

func (h *Handler) getUsage(c *gin.Context) {
	state := quota.FromRequest(c)
	resp := gin.H{
		"used":      state.Count,
		"limit":     state.Limit,
		"remaining": state.Remaining(),
	}
	if h.Svc != nil {
		if counter, err := h.Svc.Get(c.Request.Context(), ClientKey(c)); err == nil {
			resp["recorded"] = counter.Count
		} else {
			telemetry.Warn("usage.get.failed", map[string]any{
				"err":        err.Error(),
				"request_id": c.GetString("requestId"),
			})
		}
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) resetUsage(c *gin.Context) {
	quota.Clear(c)
	if h.Svc != nil {
		if _, err := h.Svc.Reset(c.Request.Context(), ClientKey(c)); err != nil {
			telemetry.Warn("usage.reset.failed", map[string]any{
				"err":        err.Error(),
				"request_id": c.GetString("requestId"),
			})
		}
	}
	respond.JSON(c, http.StatusOK, gin.H{"ok": true})
}

// ClientKey derives the advisory-store key for a request. Without accounts
// the client IP is the only stable identity available.
func ClientKey(c *gin.Context) string {
	return c.ClientIP()
}
