package comment

import (
	"braindumpBackend/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(route *gin.Engine, handler Handler, authManager auth.AuthManager) {
	itemRoutes := route.Group("/items", authManager.PrincipalMiddleware())
	{
		itemRoutes.GET("/:itemId/comments", handler.List)
		itemRoutes.POST("/:itemId/comments", handler.Add)
	}

	routes := route.Group("/comments", authManager.PrincipalMiddleware())
	{
		routes.PATCH("/:commentId", handler.Update)
		routes.DELETE("/:commentId", handler.Delete)
	}
}
