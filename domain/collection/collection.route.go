package collection

import (
	"braindumpBackend/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(route *gin.Engine, handler Handler, authManager auth.AuthManager) {
	routes := route.Group("/brain-dumps", authManager.PrincipalMiddleware())
	{
		routes.GET("", handler.List)
		routes.POST("", handler.Create)
		routes.GET("/:collectionId", handler.Get)
		routes.PATCH("/:collectionId", handler.Update)
		routes.DELETE("/:collectionId", handler.Delete)
		routes.GET("/:collectionId/permissions", handler.GetPermissions)
		routes.GET("/:collectionId/collaborators", handler.ListCollaborators)
		routes.POST("/:collectionId/collaborators", handler.Share)
		routes.PATCH("/:collectionId/collaborators/:userId", handler.UpdateGrant)
		routes.DELETE("/:collectionId/collaborators/:userId", handler.RevokeGrant)
	}
}
