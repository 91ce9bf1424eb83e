package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pptq-absensi/internal/dto"
)

// Pinger a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler connectivity probe.
type HealthHandler struct {
	db    Pinger
	cache Pinger // nil when Redis is not configured
}

// NewHealthHandler creates a HealthHandler. cache may be nil.
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Check GET /health
// The database decides the status; a Redis failure only degrades it.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := dto.HealthResponse{Status: "connected", Database: "ok", Redis: "disabled"}
	if err := h.db.Ping(ctx); err != nil {
		resp.Status = "error"
		resp.Database = err.Error()
	}
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			resp.Redis = "degraded"
		} else {
			resp.Redis = "ok"
		}
	}

	code := http.StatusOK
	if resp.Status != "connected" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}
