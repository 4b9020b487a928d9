package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"forum-api/internal/application"
	"forum-api/pkg/response"
)

type StatsHandler struct {
	Svc *application.StatsService
}

func NewStatsHandler(svc *application.StatsService) *StatsHandler {
	return &StatsHandler{Svc: svc}
}

// Global GET /api/stats
func (h *StatsHandler) Global(c *gin.Context) {
	stats, err := h.Svc.Global(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"totalTopics":  stats.TotalTopics,
		"totalUsers":   stats.TotalUsers,
		"totalCourses": stats.TotalCourses,
	}, "stats", nil)
}

// Course GET /api/stats/course/:courseName
func (h *StatsHandler) Course(c *gin.Context) {
	stats, err := h.Svc.Course(c.Request.Context(), c.Param("courseName"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"courseName":  stats.CourseName,
		"totalTopics": stats.TotalTopics,
	}, "course stats", nil)
}
