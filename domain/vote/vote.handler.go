package vote

import (
	"braindumpBackend/auth"
	"braindumpBackend/utils"

	"github.com/gin-gonic/gin"
)

type (
	Handler interface {
		Cast(ctx *gin.Context)
	}

	voteHandler struct {
		voteService Service
	}
)

func CreateHandler(voteService Service) Handler {
	return &voteHandler{
		voteService: voteService,
	}
}

// @Summary	Vote on the priority of an item
// @Description	Voting again replaces the previous vote of the user.
// @Accept		json
// @Produce	json
// @Tags		items
// @Security	BasicAuth
// @Success	200	{object}	utils.OkResponse[vote.VoteOut]
// @Failure	403	{object}	utils.ErrorResponse	"The user is not allowed to vote in the brain dump"
// @Failure	422	{object}	utils.ErrorResponse	"The priority is not 1, 2 or 3"
// @Param		itemId	path	string	true	"The ID of the item"
// @Param		request	body	vote.VoteIn	true	"The vote"
// @Router		/items/{itemId}/vote [post]
func (h *voteHandler) Cast(ctx *gin.Context) {
	payload := VoteIn{}
	if err := ctx.ShouldBind(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	result, err := h.voteService.Cast(ctx, ctx.Param("itemId"), payload, auth.GetPrincipal(ctx))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}
