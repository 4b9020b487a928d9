package modules

import (
	"github.com/gin-gonic/gin"

	handlers "forum-api/internal/interface/http"
	"forum-api/internal/interface/middleware"
	"forum-api/pkg/helpers"
)

type TopicModule struct {
	Handler *handlers.TopicHandler
	JWT     *helpers.JWTManager
}

func NewTopicModule(h *handlers.TopicHandler, jwt *helpers.JWTManager) *TopicModule {
	return &TopicModule{Handler: h, JWT: jwt}
}

func (m *TopicModule) Register(rg *gin.RouterGroup) {
	// Public read endpoints; static segments win over :id in Gin's tree.
	rg.GET("/topics", m.Handler.List)
	rg.GET("/topics/course/:courseName", m.Handler.ByCourse)
	rg.GET("/topics/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/topics/my-topics", m.Handler.MyTopics)
		auth.POST("/topics", m.Handler.Create)
		auth.PUT("/topics/:id", m.Handler.Update)
		auth.DELETE("/topics/:id", m.Handler.Delete)
	}
}
