package router

import "github.com/gin-gonic/gin"

// Module is a feature slice that mounts its own routes on the shared API
// group. Modules decide their own middleware (auth, role gates, limits).
type Module interface {
	Register(rg *gin.RouterGroup)
}
