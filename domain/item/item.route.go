package item

import (
	"braindumpBackend/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(route *gin.Engine, handler Handler, authManager auth.AuthManager) {
	collectionRoutes := route.Group("/brain-dumps/:collectionId/items", authManager.PrincipalMiddleware())
	{
		collectionRoutes.GET("", handler.List)
		collectionRoutes.POST("", handler.Create)
	}

	routes := route.Group("/items", authManager.PrincipalMiddleware())
	{
		routes.PATCH("/:itemId", handler.Update)
		routes.DELETE("/:itemId", handler.Delete)
	}
}
