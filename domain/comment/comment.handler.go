package comment

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
		Delete(ctx *gin.Context)
	}

	commentHandler struct {
		commentService Service
	}
)

func CreateHandler(commentService Service) Handler {
	return &commentHandler{
		commentService: commentService,
	}
}

// @Summary	Get the comments of an item
// @Produce	json
// @Tags		comments
// @Success	200	{object}	utils.OkResponse[[]comment.CommentOut]
// @Failure	404	{object}	utils.ErrorResponse	"The item does not exist or is not visible"
// @Param		itemId	path	string	true	"The ID of the item"
// @Router		/items/{itemId}/comments [get]
func (h *commentHandler) List(ctx *gin.Context) {
	result, err := h.commentService.List(ctx, ctx.Param("itemId"), auth.GetPrincipal(ctx))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Comment on an item
// @Accept		json
// @Produce	json
// @Tags		comments
// @Security	BasicAuth
// @Success	200	{object}	utils.OkResponse[comment.CommentOut]
// @Failure	401	{object}	utils.ErrorResponse	"Anonymous users cannot comment"
// @Param		itemId	path	string	true	"The ID of the item"
// @Param		request	body	comment.CommentIn	true	"The comment"
// @Router		/items/{itemId}/comments [post]
func (h *commentHandler) Add(ctx *gin.Context) {
	payload := CommentIn{}
	if err := ctx.ShouldBind(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	result, err := h.commentService.Add(ctx, ctx.Param("itemId"), payload, auth.GetPrincipal(ctx))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Edit a comment
// @Accept		json
// @Produce	json
// @Tags		comments
// @Security	BasicAuth
// @Success	200	{object}	utils.OkResponse[comment.CommentOut]
// @Failure	403	{object}	utils.ErrorResponse	"Only the author can edit a comment"
// @Param		commentId	path	string	true	"The ID of the comment"
// @Param		request		body	comment.CommentIn	true	"The new content"
// @Router		/comments/{commentId} [patch]
func (h *commentHandler) Update(ctx *gin.Context) {
	payload := CommentIn{}
	if err := ctx.ShouldBind(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	result, err := h.commentService.Update(ctx, ctx.Param("commentId"), payload, auth.GetPrincipal(ctx))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Delete a comment
// @Produce	json
// @Tags		comments
// @Security	BasicAuth
// @Success	200
// @Failure	403	{object}	utils.ErrorResponse	"Only the author can delete a comment"
// @Param		commentId	path	string	true	"The ID of the comment"
// @Router		/comments/{commentId} [delete]
func (h *commentHandler) Delete(ctx *gin.Context) {
	if err := h.commentService.Delete(ctx, ctx.Param("commentId"), auth.GetPrincipal(ctx)); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}
