package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// Principal identifies the caller of a request. The zero value is the anonymous principal.
type Principal struct {
	userId string
}

func Anonymous() Principal {
	return Principal{}
}

func Authenticated(userId string) Principal {
	return Principal{userId: userId}
}

func (p Principal) UserId() (string, bool) {
	return p.userId, p.userId != ""
}

func (p Principal) IsAnonymous() bool {
	return p.userId == ""
}

// Is reports whether the principal is the given user. Anonymous principals are nobody.
func (p Principal) Is(userId string) bool {
	return p.userId != "" && p.userId == userId
}

// GetPrincipal returns the principal resolved by the principal middleware or the anonymous principal.
func GetPrincipal(ctx *gin.Context) Principal {
	if value, ok := ctx.Get(principalKey); ok {
		if principal, ok := value.(Principal); ok {
			return principal
		}
	}
	return Anonymous()
}

// extractToken reads the access token from the cookie or from a bearer authorization header.
func extractToken(ctx *gin.Context) (string, bool) {
	if accessToken, err := ctx.Cookie("accessToken"); err == nil && accessToken != "" {
		return accessToken, true
	}

	header := ctx.GetHeader("Authorization")
	if token, found := strings.CutPrefix(header, "Bearer "); found && token != "" {
		return token, true
	}

	return "", false
}
