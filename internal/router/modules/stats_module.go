package modules

import (
	"github.com/gin-gonic/gin"

	handlers "forum-api/internal/interface/http"
)

type StatsModule struct {
	Handler *handlers.StatsHandler
}

func NewStatsModule(h *handlers.StatsHandler) *StatsModule {
	return &StatsModule{Handler: h}
}

func (m *StatsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/stats", m.Handler.Global)
	rg.GET("/stats/course/:courseName", m.Handler.Course)
}
