package router

import "github.com/gin-gonic/gin"

// Module is a feature slice (auth, topics, stats, health) that mounts its
// routes on the shared /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
