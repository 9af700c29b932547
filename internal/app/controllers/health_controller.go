package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/dormitory/internal/app/models/dto"
	"github.com/yigit/dormitory/internal/db"
)

// HealthController reports liveness
type HealthController struct {
	store *db.DB
}

// NewHealthController creates a new HealthController
func NewHealthController(store *db.DB) *HealthController {
	return &HealthController{store: store}
}

// Health pings the store
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.store.SQL.PingContext(pingCtx); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "degraded", Database: "unreachable"})
		return
	}
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Database: string(c.store.Dialect)})
}
