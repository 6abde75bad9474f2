package vote

import (
	"braindumpBackend/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(route *gin.Engine, handler Handler, authManager auth.AuthManager) {
	routes := route.Group("/items", authManager.PrincipalMiddleware())
	{
		routes.POST("/:itemId/vote", handler.Cast)
	}
}
