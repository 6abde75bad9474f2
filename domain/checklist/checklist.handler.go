package checklist

import (
	"braindumpBackend/auth"
	"braindumpBackend/utils"

	"github.com/gin-gonic/gin"
)

type (
	Handler interface {
		List(ctx *gin.Context)
		Add(ctx *gin.Context)
		Update(ctx *gin.Context)
		Toggle(ctx *gin.Context)
		Delete(ctx *gin.Context)
	}

	checklistHandler struct {
		checklistService Service
	}
)

func CreateHandler(checklistService Service) Handler {
	return &checklistHandler{
		checklistService: checklistService,
	}
}

// @Summary	Get the checklist of an item
// @Produce	json
// @Tags		checklist
// @Success	200	{object}	utils.OkResponse[[]checklist.ChecklistItemOut]
// @Param		itemId	path	string	true	"The ID of the item"
// @Router		/items/{itemId}/checklist [get]
func (h *checklistHandler) List(ctx *gin.Context) {
	result, err := h.checklistService.List(ctx, ctx.Param("itemId"), auth.GetPrincipal(ctx))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Add an entry to the checklist of an item
// @Accept		json
// @Produce	json
// @Tags		checklist
// @Security	BasicAuth
// @Success	200	{object}	utils.OkResponse[checklist.ChecklistItemOut]
// @Failure	403	{object}	utils.ErrorResponse	"The user is not allowed to edit the brain dump"
// @Param		itemId	path	string	true	"The ID of the item"
// @Param		request	body	checklist.ChecklistItemIn	true	"The checklist entry"
// @Router		/items/{itemId}/checklist [post]
func (h *checklistHandler) Add(ctx *gin.Context) {
	payload := ChecklistItemIn{}
	if err := ctx.ShouldBind(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	result, err := h.checklistService.Add(ctx, ctx.Param("itemId"), payload, auth.GetPrincipal(ctx))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Update a checklist entry
// @Accept		json
// @Produce	json
// @Tags		checklist
// @Security	BasicAuth
// @Success	200	{object}	utils.OkResponse[checklist.ChecklistItemOut]
// @Param		checklistItemId	path	string	true	"The ID of the checklist entry"
// @Param		request			body	checklist.ChecklistItemUpdateIn	true	"The changed fields"
// @Router		/checklist/{checklistItemId} [patch]
func (h *checklistHandler) Update(ctx *gin.Context) {
	payload := ChecklistItemUpdateIn{}
	if err := ctx.ShouldBind(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	result, err := h.checklistService.Update(ctx, ctx.Param("checklistItemId"), payload, auth.GetPrincipal(ctx))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Toggle the completion of a checklist entry
// @Produce	json
// @Tags		checklist
// @Security	BasicAuth
// @Success	200	{object}	utils.OkResponse[checklist.ChecklistItemOut]
// @Param		checklistItemId	path	string	true	"The ID of the checklist entry"
// @Router		/checklist/{checklistItemId}/toggle [post]
func (h *checklistHandler) Toggle(ctx *gin.Context) {
	result, err := h.checklistService.Toggle(ctx, ctx.Param("checklistItemId"), auth.GetPrincipal(ctx))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Delete a checklist entry
// @Produce	json
// @Tags		checklist
// @Security	BasicAuth
// @Success	200
// @Param		checklistItemId	path	string	true	"The ID of the checklist entry"
// @Router		/checklist/{checklistItemId} [delete]
func (h *checklistHandler) Delete(ctx *gin.Context) {
	if err := h.checklistService.Delete(ctx, ctx.Param("checklistItemId"), auth.GetPrincipal(ctx)); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}
