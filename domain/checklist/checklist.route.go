package checklist

import (
	"braindumpBackend/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(route *gin.Engine, handler Handler, authManager auth.AuthManager) {
	itemRoutes := route.Group("/items", authManager.PrincipalMiddleware())
	{
		itemRoutes.GET("/:itemId/checklist", handler.List)
		itemRoutes.POST("/:itemId/checklist", handler.Add)
	}

	routes := route.Group("/checklist", authManager.PrincipalMiddleware())
	{
		routes.PATCH("/:checklistItemId", handler.Update)
		routes.POST("/:checklistItemId/toggle", handler.Toggle)
		routes.DELETE("/:checklistItemId", handler.Delete)
	}
}
