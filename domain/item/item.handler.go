package item

import (
	"braindumpBackend/auth"
	"braindumpBackend/utils"

	"github.com/gin-gonic/gin"
)

type (
	Handler interface {
		List(ctx *gin.Context)
		Create(ctx *gin.Context)
		Update(ctx *gin.Context)
		Delete(ctx *gin.Context)
	}

	itemHandler struct {
		itemService Service
	}
)

func CreateHandler(itemService Service) Handler {
	return &itemHandler{
		itemService: itemService,
	}
}

// @Summary	Get the items of a brain dump
// @Description	Incomplete items come first, then older items, then higher consensus scores.
// @Produce	json
// @Tags		items
// @Success	200	{object}	utils.OkResponse[[]item.ItemOut]
// @Failure	404	{object}	utils.ErrorResponse	"The brain dump does not exist or is not visible"
// @Failure	422	{object}	utils.ErrorResponse	"The filter is invalid"
// @Param		collectionId	path	string	true	"The ID of the brain dump"
// @Param		priority	query	int		false	"Only items whose rounded score equals this priority (1-3)"
// @Param		search		query	string	false	"Case-insensitive text in title or description"
// @Param		date		query	string	false	"One of all, today, week, month"
// @Router		/brain-dumps/{collectionId}/items [get]
func (h *itemHandler) List(ctx *gin.Context) {
	var filter ItemFilterIn
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	result, err := h.itemService.List(ctx, ctx.Param("collectionId"), filter, auth.GetPrincipal(ctx))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Add an item to a brain dump
// @Accept		json
// @Produce	json
// @Tags		items
// @Security	BasicAuth
// @Success	200	{object}	utils.OkResponse[item.ItemOut]
// @Failure	403	{object}	utils.ErrorResponse	"The user is not allowed to edit the brain dump"
// @Param		collectionId	path	string	true	"The ID of the brain dump"
// @Param		request	body	item.ItemIn	true	"The item"
// @Router		/brain-dumps/{collectionId}/items [post]
func (h *itemHandler) Create(ctx *gin.Context) {
	payload := ItemIn{}
	if err := ctx.ShouldBind(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	result, err := h.itemService.Create(ctx, ctx.Param("collectionId"), payload, auth.GetPrincipal(ctx))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Update an item
// @Accept		json
// @Produce	json
// @Tags		items
// @Security	BasicAuth
// @Success	200	{object}	utils.OkResponse[item.ItemOut]
// @Param		itemId	path	string	true	"The ID of the item"
// @Param		request	body	item.ItemUpdateIn	true	"The changed fields"
// @Router		/items/{itemId} [patch]
func (h *itemHandler) Update(ctx *gin.Context) {
	payload := ItemUpdateIn{}
	if err := ctx.ShouldBind(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	result, err := h.itemService.Update(ctx, ctx.Param("itemId"), payload, auth.GetPrincipal(ctx))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Delete an item
// @Description	Allowed for the creator of the item and the owner of the brain dump.
// @Tags		items
// @Security	BasicAuth
// @Success	200
// @Param		itemId	path	string	true	"The ID of the item"
// @Router		/items/{itemId} [delete]
func (h *itemHandler) Delete(ctx *gin.Context) {
	if err := h.itemService.Delete(ctx, ctx.Param("itemId"), auth.GetPrincipal(ctx)); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}
