package user

import (
	"braindumpBackend/auth"
	"braindumpBackend/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type (
	Handler interface {
		Me(ctx *gin.Context)
		Register(ctx *gin.Context)
		LoginNative(ctx *gin.Context)
		Logout(ctx *gin.Context)
		AuthConfig(ctx *gin.Context)
		LoginOpenId(ctx *gin.Context)
		LoginOpenIdSuccess(ctx *gin.Context)
		RefreshToken(ctx *gin.Context)
	}

	userHandler struct {
		userService Service
	}
)

func CreateHandler(userService Service) Handler {
	return &userHandler{
		userService: userService,
	}
}

// @Summary	Get the authenticated user
// @Produce	json
// @Tags		users
// @Security	BasicAuth
// @Success	200	{object}	utils.OkResponse[user.UserOut]
// @Failure	401	{object}	nil
// @Failure	498	{object}	nil	"The provided access token is not valid"
// @Router		/users/me [get]
func (h *userHandler) Me(ctx *gin.Context) {
	authUser := ctx.MustGet("authUser").(auth.AuthenticatedUser)
	result, err := h.userService.GetById(ctx, authUser.UserId)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Register a new account with email and password
// @Accept		json
// @Produce	json
// @Tags		users
// @Param		request	body		user.RegistrationIn	true	"The account details"
// @Success	200		{object}	utils.OkResponse[user.UserOut]
// @Failure	409		{object}	utils.ErrorResponse	"The email is already registered"
// @Router		/users/register [post]
func (h *userHandler) Register(ctx *gin.Context) {
	payload := RegistrationIn{}
	if err := ctx.ShouldBind(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	result, err := h.userService.Register(ctx, payload)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Refresh the access token
// @Produce	json
// @Tags		users
// @Success	200	{object}	utils.OkResponse[string]
// @Failure	401	{object}	nil	"The auth token cookie is not set"
// @Failure	403	{object}	nil	"The auth token is invalid or expired"
// @Router		/users/login/refresh [get]
func (h *userHandler) RefreshToken(ctx *gin.Context) {
	var (
		authToken, accessToken string
		err                    error
	)

	if authToken, err = ctx.Cookie("authToken"); err != nil {
		ctx.JSON(utils.CreateErrorResponse(utils.ErrUnauthorized))
		return
	}

	if accessToken, err = h.userService.RefreshAccessToken(authToken); err != nil {
		ctx.JSON(utils.CreateErrorResponse(utils.ErrForbidden))
		return
	}

	ctx.SetCookie("accessToken", accessToken, 0, "/", "", false, false)

	ctx.JSON(utils.CreateOkResponse(accessToken))
}

// @Summary	Log in with email and password
// @Accept		json
// @Tags		users
// @Param		request	body	user.CredentialsIn	true	"The credentials"
// @Success	200
// @Failure	400	{object}	utils.ErrorResponse	"The credentials are invalid"
// @Router		/users/login/native [post]
func (h *userHandler) LoginNative(ctx *gin.Context) {
	payload := CredentialsIn{}
	if err := ctx.ShouldBind(&payload); err != nil {
		ctx.JSON(utils.CreateErrorResponse(utils.ErrInvalidCredentials))
		return
	}

	if authToken, accessToken, err := h.userService.LoginNative(ctx, payload); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
	} else {
		ctx.SetCookie("authToken", authToken, 0, "/", "", false, true)
		ctx.SetCookie("accessToken", accessToken, 0, "/", "", false, false)
		ctx.JSON(utils.CreateOkResponse(accessToken))
	}
}

// @Summary	Log out and clear all auth cookies
// @Tags		users
// @Success	200
// @Router		/users/logout [post]
func (h *userHandler) Logout(ctx *gin.Context) {
	ctx.SetCookie("authToken", "", -1, "/", "", false, true)
	ctx.SetCookie("authOidc", "", -1, "/", "", false, false)
	ctx.SetCookie("accessToken", "", -1, "/", "", false, false)
	ctx.Status(http.StatusOK)
}

// @Summary	Get the enabled login methods
// @Produce	json
// @Tags		users
// @Success	200	{object}	utils.OkResponse[user.AuthConfigOut]
// @Router		/users/login/config [get]
func (h *userHandler) AuthConfig(ctx *gin.Context) {
	ctx.JSON(utils.CreateOkResponse(h.userService.GetAuthConfig()))
}

// @Summary	Redirect to the OpenID provider
// @Tags		users
// @Success	302
// @Failure	401	{object}	nil	"OpenID authentication is disabled"
// @Router		/users/login/openid [get]
func (h *userHandler) LoginOpenId(ctx *gin.Context) {
	url, err := h.userService.GetAuthCodeURL(ctx.Request.Referer())
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	http.Redirect(ctx.Writer, ctx.Request, url, http.StatusFound)
}

// @Summary	Finish the OpenID login
// @Tags		users
// @Success	302
// @Failure	401	{object}	nil	"The OpenID provider rejected the login"
// @Router		/users/login/success [get]
func (h *userHandler) LoginOpenIdSuccess(ctx *gin.Context) {
	authToken, accessToken, err := h.userService.AuthenticateWithCode(ctx, ctx.Query("code"))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.SetCookie("authToken", authToken, 0, "/", "", false, true)
	ctx.SetCookie("authOidc", "true", 0, "/", "", false, false)
	ctx.SetCookie("accessToken", accessToken, 0, "/", "", false, false)

	http.Redirect(ctx.Writer, ctx.Request, ctx.Query("state"), http.StatusFound)
}
