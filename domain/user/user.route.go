package user

import (
	"braindumpBackend/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(route *gin.Engine, handler Handler, authManager auth.AuthManager) {
	routes := route.Group("/users")
	{
		routes.GET("/me", authManager.AuthenticatorMiddleware(), handler.Me)
		routes.POST("/register", handler.Register)
		routes.POST("/logout", handler.Logout)
		routes.POST("/login/native", handler.LoginNative)
		routes.GET("/login/openid", handler.LoginOpenId)
		routes.GET("/login/config", handler.AuthConfig)
		routes.GET("/login/success", handler.LoginOpenIdSuccess)
		routes.GET("/login/refresh", handler.RefreshToken)
	}
}
