package comment

import (
	"braindumpBackend/access"
	"braindumpBackend/auth"
	"braindumpBackend/domain/item"
	"braindumpBackend/events"
	"braindumpBackend/utils"
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type (
	Service interface {
		List(ctx context.Context, itemId string, principal auth.Principal) ([]CommentOut, error)
		Add(ctx context.Context, itemId string, req CommentIn, principal auth.Principal) (CommentOut, error)
		Update(ctx context.Context, commentId string, req CommentIn, principal auth.Principal) (CommentOut, error)
		Delete(ctx context.Context, commentId string, principal auth.Principal) error
	}

	commentService struct {
		commentRepo Repository
		itemRepo    item.Repository
		itemService item.Service
		notifier    events.Notifier
	}
)

func CreateService(commentRepo Repository, itemRepo item.Repository, itemService item.Service, notifier events.Notifier) Service {
	return &commentService{
		commentRepo: commentRepo,
		itemRepo:    itemRepo,
		itemService: itemService,
		notifier:    notifier,
	}
}

func (s *commentService) List(ctx context.Context, itemId string, principal auth.Principal) ([]CommentOut, error) {
	if _, _, err := s.itemService.Authorize(ctx, itemId, principal, access.View); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.GetByItem(ctx, itemId)
	if err != nil {
		return nil, err
	}

	return lo.Map(comments, func(comment Comment, _ int) CommentOut {
		return commentToOut(comment)
	}), nil
}

func (s *commentService) Add(ctx context.Context, itemId string, req CommentIn, principal auth.Principal) (CommentOut, error) {
	commentedItem, _, err := s.itemService.Authorize(ctx, itemId, principal, access.Comment)
	if err != nil {
		return CommentOut{}, err
	}
	userId, _ := principal.UserId()

	content, err := parseContent(req.Content)
	if err != nil {
		return CommentOut{}, err
	}

	comment := &Comment{
		ID:        utils.GenerateUuid(),
		ItemID:    commentedItem.ID,
		Content:   content,
		CreatorID: userId,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return CommentOut{}, err
	}

	if _, err := s.itemRepo.RefreshCounters(ctx, commentedItem.ID); err != nil {
		return CommentOut{}, err
	}

	created, err := s.commentRepo.GetById(ctx, comment.ID)
	if err != nil {
		return CommentOut{}, err
	}

	result := commentToOut(*created)
	s.notifier.Notify(events.ChannelKey(commentedItem.CollectionID), events.CommentAdded, result)
	return result, nil
}

func (s *commentService) Update(ctx context.Context, commentId string, req CommentIn, principal auth.Principal) (CommentOut, error) {
	comment, collectionId, err := s.authorizeModification(ctx, commentId, principal)
	if err != nil {
		return CommentOut{}, err
	}

	content, err := parseContent(req.Content)
	if err != nil {
		return CommentOut{}, err
	}
	comment.Content = content

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return CommentOut{}, err
	}

	result := commentToOut(*comment)
	s.notifier.Notify(events.ChannelKey(collectionId), events.CommentUpdated, result)
	return result, nil
}

func (s *commentService) Delete(ctx context.Context, commentId string, principal auth.Principal) error {
	comment, collectionId, err := s.authorizeModification(ctx, commentId, principal)
	if err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, comment); err != nil {
		return err
	}

	if _, err := s.itemRepo.RefreshCounters(ctx, comment.ItemID); err != nil {
		return err
	}

	s.notifier.Notify(events.ChannelKey(collectionId), events.CommentDeleted, CommentDeletedOut{
		ID:     comment.ID,
		ItemId: comment.ItemID,
	})
	return nil
}

// authorizeModification loads a comment and checks that the principal wrote it.
// Comments of collections the principal cannot see are reported as missing.
func (s *commentService) authorizeModification(ctx context.Context, commentId string, principal auth.Principal) (*Comment, string, error) {
	comment, err := s.commentRepo.GetById(ctx, commentId)
	if err != nil {
		return nil, "", err
	}

	commentedItem, capabilities, err := s.itemService.Authorize(ctx, comment.ItemID, principal, access.View)
	if err != nil {
		return nil, "", err
	}

	if err := access.CanModifyComment(principal, capabilities, comment.CreatorID); err != nil {
		return nil, "", err
	}

	return comment, commentedItem.CollectionID, nil
}

func parseContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", fmt.Errorf("%w: comment cannot be empty", utils.ErrValidationError)
	}

	return trimmed, nil
}

func commentToOut(comment Comment) CommentOut {
	return CommentOut{
		ID:          comment.ID,
		ItemId:      comment.ItemID,
		Content:     comment.Content,
		CreatorId:   comment.CreatorID,
		CreatorName: comment.Creator.Name,
		CreatedAt:   comment.CreatedAt,
		UpdatedAt:   comment.UpdatedAt,
	}
}
