package auth

import (
	"braindumpBackend/config"
	"braindumpBackend/utils"
	"context"
	"crypto/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coreos/go-oidc"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

type (
	AuthManager interface {
		CreateAuthToken(userId string) (string, error)
		CreateAccessToken(userId string) (string, error)
		AuthenticateUser(tokenString string) (*AuthenticatedUser, error)
		RefreshAccessToken(authToken string) (string, error)
		IsNativeEnabled() bool
		IsOpenIdEnabled() bool
		GetAuthCodeURL(stateToken string) (string, error)
		AuthenticateWithCode(ctx context.Context, authCode string, userSubToIdMapper func(userSub string, userEmail string, userName string) (string, error)) (*AuthenticatedUser, error)
		// AuthenticatorMiddleware rejects requests without a valid access token.
		AuthenticatorMiddleware() gin.HandlerFunc
		// PrincipalMiddleware resolves the caller and never rejects a request.
		PrincipalMiddleware() gin.HandlerFunc
	}

	authManager struct {
		oauth2Config    *oauth2.Config
		provider        *oidc.Provider
		oidcSecret      string
		jwtSecret       []byte
		accessTokenTtl  time.Duration
		authTokenTtl    time.Duration
		isNativeEnabled bool
	}

	AuthenticatedUser struct {
		// The UUID of the user
		UserId string
	}
)

const (
	tokenTypeAuth   = "auth"
	tokenTypeAccess = "access"
)

func CreateAuthManager(config *config.BrainDumpConfig) AuthManager {
	jwtSecret := os.Getenv("BD_JWT_SECRET")
	if jwtSecret == "" {
		log.Warn("[AUTH] No JWT secret configured, tokens will not survive a restart")
		jwtSecret = rand.Text()
	}

	authManager := &authManager{
		jwtSecret:       []byte(jwtSecret),
		oidcSecret:      os.Getenv("BD_OIDC_SECRET"),
		accessTokenTtl:  time.Duration(config.Auth.AccessTokenMinutes) * time.Minute,
		authTokenTtl:    time.Duration(config.Auth.AuthTokenHours) * time.Hour,
		isNativeEnabled: config.Auth.EnableNative,
	}

	if config.Auth.EnableOpenId {
		authManager.initOpenId(config)
	}

	return authManager
}

func (m *authManager) initOpenId(config *config.BrainDumpConfig) {
	provider, err := oidc.NewProvider(context.Background(), config.Auth.OpenIdIssuer)
	if err != nil {
		log.Fatalf("Failed to connect to OpenID provider: %s", err.Error())
		os.Exit(1)
	}

	m.provider = provider
	m.oauth2Config = &oauth2.Config{
		ClientID:     config.Auth.OpenIdClientId,
		ClientSecret: m.oidcSecret,
		RedirectURL:  config.Auth.OpenIdRedirectUrl,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}
}

func (m *authManager) IsNativeEnabled() bool {
	return m.isNativeEnabled
}

func (m *authManager) IsOpenIdEnabled() bool {
	return m.provider != nil
}

func (m *authManager) RefreshAccessToken(authToken string) (string, error) {
	if userId, err := m.parseToken(authToken, tokenTypeAuth); err != nil {
		return "", err
	} else if newAccessToken, err := m.CreateAccessToken(userId); err != nil {
		return "", err
	} else {
		return newAccessToken, nil
	}
}

func (m *authManager) AuthenticatorMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		accessToken, ok := extractToken(ctx)
		if !ok {
			ctx.JSON(utils.CreateErrorResponse(utils.ErrUnauthorized))
			ctx.Abort()
			return
		}

		if user, err := m.AuthenticateUser(accessToken); err != nil {
			ctx.JSON(utils.CreateErrorResponse(utils.ErrTokenInvalid))
			ctx.Abort()
			return
		} else {
			ctx.Set("authUser", *user)
			ctx.Set(principalKey, Authenticated(user.UserId))
			ctx.Next()
		}
	}
}

func (m *authManager) PrincipalMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		principal := Anonymous()
		if accessToken, ok := extractToken(ctx); ok {
			if user, err := m.AuthenticateUser(accessToken); err == nil {
				principal = Authenticated(user.UserId)
			}
		}

		ctx.Set(principalKey, principal)
		ctx.Next()
	}
}

func (m *authManager) AuthenticateWithCode(
	ctx context.Context,
	authCode string,
	userSubToIdMapper func(userSub string, userEmail string, userName string) (string, error),
) (*AuthenticatedUser, error) {
	if !m.IsOpenIdEnabled() {
		return nil, utils.ErrOpenIdAuthDisabled
	}

	token, err := m.oauth2Config.Exchange(ctx, authCode)
	if err != nil {
		log.Errorf("[AUTH] OAuth token exchange failed: %s", err.Error())
		return nil, utils.ErrOpenIdError
	}

	info, err := m.provider.UserInfo(ctx, m.oauth2Config.TokenSource(ctx, token))
	if err != nil {
		log.Errorf("[AUTH] Failed to get oauth userinfo: %s", err.Error())
		return nil, utils.ErrOpenIdError
	}

	var claims struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}

	if err := info.Claims(&claims); err != nil {
		log.Warnf("[AUTH] Failed to parse claims from userinfo: %s", err.Error())
		return nil, utils.ErrOpenIdError
	}

	userId, err := userSubToIdMapper(claims.Sub, claims.Email, claims.Name)
	if err != nil {
		return nil, err
	}

	return &AuthenticatedUser{UserId: userId}, nil
}

func (m *authManager) GetAuthCodeURL(stateToken string) (string, error) {
	if !m.IsOpenIdEnabled() {
		return "", utils.ErrOpenIdAuthDisabled
	}

	return m.oauth2Config.AuthCodeURL(stateToken), nil
}

func (m *authManager) AuthenticateUser(tokenString string) (*AuthenticatedUser, error) {
	userId, err := m.parseToken(tokenString, tokenTypeAccess)
	if err != nil {
		return nil, err
	}

	return &AuthenticatedUser{UserId: userId}, nil
}

func (m *authManager) CreateAuthToken(userId string) (string, error) {
	return m.createToken(userId, tokenTypeAuth, m.authTokenTtl)
}

func (m *authManager) CreateAccessToken(userId string) (string, error) {
	return m.createToken(userId, tokenTypeAccess, m.accessTokenTtl)
}

func (m *authManager) createToken(userId string, tokenType string, ttl time.Duration) (string, error) {
	bdToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  userId,
		"typ": tokenType,
		"nbf": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	})

	return bdToken.SignedString(m.jwtSecret)
}

func (m *authManager) parseToken(tokenString string, tokenType string) (string, error) {
	if token, err := jwt.Parse(tokenString, m.tokenParser); err != nil {
		return "", utils.ErrTokenInvalid
	} else if tokenClaims, ok := token.Claims.(jwt.MapClaims); !ok {
		return "", utils.ErrTokenInvalid
	} else if claimedType, ok := tokenClaims["typ"].(string); !ok || claimedType != tokenType {
		return "", utils.ErrTokenInvalid
	} else if userId, ok := tokenClaims["id"].(string); !ok || userId == "" {
		return "", utils.ErrTokenInvalid
	} else {
		return userId, nil
	}
}

func (m *authManager) tokenParser(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, utils.ErrTokenInvalid
	}

	return m.jwtSecret, nil
}
