package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"forum-api/pkg/response"
)

// Pinger is satisfied by pgxpool.Pool; nil means no store check.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	DB Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{DB: db}
}

// Check GET /api/health
func (h *HealthHandler) Check(c *gin.Context) {
	dbStatus := "skipped"
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.Ping(ctx); err != nil {
			response.Error[any](c, http.StatusServiceUnavailable, "unhealthy",
				map[string]string{"database": "unreachable"})
			return
		}
		dbStatus = "ok"
	}
	response.Success(c, http.StatusOK, gin.H{"database": dbStatus}, "healthy", nil)
}
