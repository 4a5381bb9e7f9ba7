package server

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/shared/server/respond"
)

// Health reports liveness plus database reachability when a database is configured.
type Health struct {
	DB       *sql.DB
	Analyzer string
}

// Handle serves GET /api/v1/health.
func (h *Health) Handle(c *gin.Context) {
	body := gin.H{"ok": true}
	if h.Analyzer != "" {
		body["analyzer"] = h.Analyzer
	}
	if h.DB == nil {
		body["storage"] = "memory"
		respond.OK(c, body)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.DB.PingContext(ctx); err != nil {
		body["ok"] = false
		body["storage"] = "postgres"
		body["error"] = "database unreachable"
		respond.JSON(c, http.StatusServiceUnavailable, body)
		return
	}
	body["storage"] = "postgres"
	respond.OK(c, body)
}
