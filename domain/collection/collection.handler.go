package collection

import (
	"braindumpBackend/auth"
	"braindumpBackend/utils"

	"github.com/gin-gonic/gin"
)

type (
	Handler interface {
		List(ctx *gin.Context)
		Get(ctx *gin.Context)
		GetPermissions(ctx *gin.Context)
		Create(ctx *gin.Context)
		Update(ctx *gin.Context)
		Delete(ctx *gin.Context)
		Share(ctx *gin.Context)
		ListCollaborators(ctx *gin.Context)
		UpdateGrant(ctx *gin.Context)
		RevokeGrant(ctx *gin.Context)
	}

	collectionHandler struct {
		collectionService Service
	}
)

func CreateHandler(collectionService Service) Handler {
	return &collectionHandler{
		collectionService: collectionService,
	}
}

// @Summary	Get all brain dumps the caller can see
// @Produce	json
// @Tags		brain-dumps
// @Success	200	{object}	utils.OkResponse[[]collection.CollectionOut]
// @Router		/brain-dumps [get]
func (h *collectionHandler) List(ctx *gin.Context) {
	result, err := h.collectionService.List(ctx, auth.GetPrincipal(ctx))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Get a brain dump
// @Produce	json
// @Tags		brain-dumps
// @Success	200	{object}	utils.OkResponse[collection.CollectionOut]
// @Failure	404	{object}	utils.ErrorResponse	"The brain dump does not exist or is not visible"
// @Param		collectionId	path	string	true	"The ID of the brain dump"
// @Router		/brain-dumps/{collectionId} [get]
func (h *collectionHandler) Get(ctx *gin.Context) {
	result, err := h.collectionService.Get(ctx, ctx.Param("collectionId"), auth.GetPrincipal(ctx))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Get the caller's permissions on a brain dump
// @Produce	json
// @Tags		brain-dumps
// @Success	200	{object}	utils.OkResponse[access.Capabilities]
// @Failure	404	{object}	utils.ErrorResponse	"The brain dump does not exist or is not visible"
// @Param		collectionId	path	string	true	"The ID of the brain dump"
// @Router		/brain-dumps/{collectionId}/permissions [get]
func (h *collectionHandler) GetPermissions(ctx *gin.Context) {
	result, err := h.collectionService.GetPermissions(ctx, ctx.Param("collectionId"), auth.GetPrincipal(ctx))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Create a brain dump
// @Accept		json
// @Produce	json
// @Tags		brain-dumps
// @Security	BasicAuth
// @Success	200	{object}	utils.OkResponse[collection.CollectionOut]
// @Failure	401	{object}	utils.ErrorResponse	"Authentication is required"
// @Param		request	body	collection.CollectionIn	true	"The brain dump"
// @Router		/brain-dumps [post]
func (h *collectionHandler) Create(ctx *gin.Context) {
	payload := CollectionIn{}
	if err := ctx.ShouldBind(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	result, err := h.collectionService.Create(ctx, payload, auth.GetPrincipal(ctx))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Update a brain dump
// @Accept		json
// @Produce	json
// @Tags		brain-dumps
// @Security	BasicAuth
// @Success	200	{object}	utils.OkResponse[collection.CollectionOut]
// @Failure	403	{object}	utils.ErrorResponse	"Only the owner can update the brain dump"
// @Param		collectionId	path	string	true	"The ID of the brain dump"
// @Param		request	body	collection.CollectionUpdateIn	true	"The changed fields"
// @Router		/brain-dumps/{collectionId} [patch]
func (h *collectionHandler) Update(ctx *gin.Context) {
	payload := CollectionUpdateIn{}
	if err := ctx.ShouldBind(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	result, err := h.collectionService.Update(ctx, ctx.Param("collectionId"), payload, auth.GetPrincipal(ctx))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Delete a brain dump with all of its items
// @Tags		brain-dumps
// @Security	BasicAuth
// @Success	200
// @Failure	403	{object}	utils.ErrorResponse	"Only the owner can delete the brain dump"
// @Param		collectionId	path	string	true	"The ID of the brain dump"
// @Router		/brain-dumps/{collectionId} [delete]
func (h *collectionHandler) Delete(ctx *gin.Context) {
	if err := h.collectionService.Delete(ctx, ctx.Param("collectionId"), auth.GetPrincipal(ctx)); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}

// @Summary	Share a brain dump with another user
// @Accept		json
// @Produce	json
// @Tags		brain-dumps
// @Security	BasicAuth
// @Success	200	{object}	utils.OkResponse[collection.CollaboratorOut]
// @Failure	404	{object}	utils.ErrorResponse	"No user with this email exists"
// @Failure	409	{object}	utils.ErrorResponse	"The brain dump is already shared with this user"
// @Param		collectionId	path	string	true	"The ID of the brain dump"
// @Param		request	body	collection.ShareIn	true	"The invitation"
// @Router		/brain-dumps/{collectionId}/collaborators [post]
func (h *collectionHandler) Share(ctx *gin.Context) {
	payload := ShareIn{}
	if err := ctx.ShouldBind(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	result, err := h.collectionService.Share(ctx, ctx.Param("collectionId"), payload, auth.GetPrincipal(ctx))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Get the collaborators of a brain dump
// @Produce	json
// @Tags		brain-dumps
// @Security	BasicAuth
// @Success	200	{object}	utils.OkResponse[[]collection.CollaboratorOut]
// @Param		collectionId	path	string	true	"The ID of the brain dump"
// @Router		/brain-dumps/{collectionId}/collaborators [get]
func (h *collectionHandler) ListCollaborators(ctx *gin.Context) {
	result, err := h.collectionService.ListCollaborators(ctx, ctx.Param("collectionId"), auth.GetPrincipal(ctx))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Change the rights of a collaborator
// @Accept		json
// @Produce	json
// @Tags		brain-dumps
// @Security	BasicAuth
// @Success	200	{object}	utils.OkResponse[collection.CollaboratorOut]
// @Param		collectionId	path	string	true	"The ID of the brain dump"
// @Param		userId	path	string	true	"The ID of the collaborator"
// @Param		request	body	collection.GrantUpdateIn	true	"The changed rights"
// @Router		/brain-dumps/{collectionId}/collaborators/{userId} [patch]
func (h *collectionHandler) UpdateGrant(ctx *gin.Context) {
	payload := GrantUpdateIn{}
	if err := ctx.ShouldBind(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	result, err := h.collectionService.UpdateGrant(ctx, ctx.Param("collectionId"), ctx.Param("userId"), payload, auth.GetPrincipal(ctx))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Remove a collaborator from a brain dump
// @Tags		brain-dumps
// @Security	BasicAuth
// @Success	200
// @Param		collectionId	path	string	true	"The ID of the brain dump"
// @Param		userId	path	string	true	"The ID of the collaborator"
// @Router		/brain-dumps/{collectionId}/collaborators/{userId} [delete]
func (h *collectionHandler) RevokeGrant(ctx *gin.Context) {
	if err := h.collectionService.RevokeGrant(ctx, ctx.Param("collectionId"), ctx.Param("userId"), auth.GetPrincipal(ctx)); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}
