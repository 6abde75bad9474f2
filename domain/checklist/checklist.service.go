package checklist

import (
	"braindumpBackend/access"
	"braindumpBackend/auth"
	"braindumpBackend/domain/item"
	"braindumpBackend/events"
	"braindumpBackend/utils"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
)

type (
	Service interface {
		List(ctx context.Context, itemId string, principal auth.Principal) ([]ChecklistItemOut, error)
		Add(ctx context.Context, itemId string, req ChecklistItemIn, principal auth.Principal) (ChecklistItemOut, error)
		Update(ctx context.Context, checklistItemId string, req ChecklistItemUpdateIn, principal auth.Principal) (ChecklistItemOut, error)
		Toggle(ctx context.Context, checklistItemId string, principal auth.Principal) (ChecklistItemOut, error)
		Delete(ctx context.Context, checklistItemId string, principal auth.Principal) error
	}

	checklistService struct {
		checklistRepo Repository
		itemService   item.Service
		notifier      events.Notifier
	}
)

func CreateService(checklistRepo Repository, itemService item.Service, notifier events.Notifier) Service {
	return &checklistService{
		checklistRepo: checklistRepo,
		itemService:   itemService,
		notifier:      notifier,
	}
}

func (s *checklistService) List(ctx context.Context, itemId string, principal auth.Principal) ([]ChecklistItemOut, error) {
	if _, _, err := s.itemService.Authorize(ctx, itemId, principal, access.View); err != nil {
		return nil, err
	}

	return s.list(ctx, itemId)
}

func (s *checklistService) Add(ctx context.Context, itemId string, req ChecklistItemIn, principal auth.Principal) (ChecklistItemOut, error) {
	parentItem, _, err := s.itemService.Authorize(ctx, itemId, principal, access.EditChecklist)
	if err != nil {
		return ChecklistItemOut{}, err
	}
	userId, _ := principal.UserId()

	title, err := parseTitle(req.Title)
	if err != nil {
		return ChecklistItemOut{}, err
	}

	checklistItem := &ChecklistItem{
		ID:        utils.GenerateUuid(),
		ItemID:    parentItem.ID,
		Title:     title,
		CreatorID: userId,
	}

	if req.Position != nil && *req.Position < 0 {
		return ChecklistItemOut{}, fmt.Errorf("%w: position cannot be negative", utils.ErrValidationError)
	}

	if err := s.checklistRepo.Create(ctx, checklistItem, req.Position); err != nil {
		return ChecklistItemOut{}, err
	}

	created, err := s.checklistRepo.GetById(ctx, checklistItem.ID)
	if err != nil {
		return ChecklistItemOut{}, err
	}

	s.notifyChanged(ctx, parentItem)
	return checklistItemToOut(*created), nil
}

func (s *checklistService) Update(ctx context.Context, checklistItemId string, req ChecklistItemUpdateIn, principal auth.Principal) (ChecklistItemOut, error) {
	checklistItem, parentItem, err := s.authorize(ctx, checklistItemId, principal)
	if err != nil {
		return ChecklistItemOut{}, err
	}

	if req.Title != nil {
		title, err := parseTitle(*req.Title)
		if err != nil {
			return ChecklistItemOut{}, err
		}
		checklistItem.Title = title
	}
	if req.IsCompleted != nil {
		checklistItem.IsCompleted = *req.IsCompleted
	}
	if req.Position != nil {
		if *req.Position < 0 {
			return ChecklistItemOut{}, fmt.Errorf("%w: position cannot be negative", utils.ErrValidationError)
		}
		checklistItem.Position = *req.Position
	}

	if err := s.checklistRepo.Update(ctx, checklistItem); err != nil {
		return ChecklistItemOut{}, err
	}

	s.notifyChanged(ctx, parentItem)
	return checklistItemToOut(*checklistItem), nil
}

func (s *checklistService) Toggle(ctx context.Context, checklistItemId string, principal auth.Principal) (ChecklistItemOut, error) {
	checklistItem, parentItem, err := s.authorize(ctx, checklistItemId, principal)
	if err != nil {
		return ChecklistItemOut{}, err
	}

	checklistItem.IsCompleted = !checklistItem.IsCompleted
	if err := s.checklistRepo.Update(ctx, checklistItem); err != nil {
		return ChecklistItemOut{}, err
	}

	s.notifyChanged(ctx, parentItem)
	return checklistItemToOut(*checklistItem), nil
}

func (s *checklistService) Delete(ctx context.Context, checklistItemId string, principal auth.Principal) error {
	checklistItem, parentItem, err := s.authorize(ctx, checklistItemId, principal)
	if err != nil {
		return err
	}

	if err := s.checklistRepo.Delete(ctx, checklistItem); err != nil {
		return err
	}

	s.notifyChanged(ctx, parentItem)
	return nil
}

func (s *checklistService) authorize(ctx context.Context, checklistItemId string, principal auth.Principal) (*ChecklistItem, *item.Item, error) {
	checklistItem, err := s.checklistRepo.GetById(ctx, checklistItemId)
	if err != nil {
		return nil, nil, err
	}

	parentItem, _, err := s.itemService.Authorize(ctx, checklistItem.ItemID, principal, access.EditChecklist)
	if err != nil {
		return nil, nil, err
	}

	return checklistItem, parentItem, nil
}

func (s *checklistService) list(ctx context.Context, itemId string) ([]ChecklistItemOut, error) {
	checklistItems, err := s.checklistRepo.GetByItem(ctx, itemId)
	if err != nil {
		return nil, err
	}

	return lo.Map(checklistItems, func(checklistItem ChecklistItem, _ int) ChecklistItemOut {
		return checklistItemToOut(checklistItem)
	}), nil
}

func (s *checklistService) notifyChanged(ctx context.Context, parentItem *item.Item) {
	checklistItems, err := s.list(ctx, parentItem.ID)
	if err != nil {
		log.Warnf("Failed to load checklist for notification of item %s", parentItem.ID)
		return
	}

	s.notifier.Notify(events.ChannelKey(parentItem.CollectionID), events.ChecklistUpdated, ChecklistEventOut{
		ItemId: parentItem.ID,
		Items:  checklistItems,
	})
}

func parseTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", fmt.Errorf("%w: title cannot be empty", utils.ErrValidationError)
	}

	return trimmed, nil
}

func checklistItemToOut(checklistItem ChecklistItem) ChecklistItemOut {
	return ChecklistItemOut{
		ID:          checklistItem.ID,
		ItemId:      checklistItem.ItemID,
		Title:       checklistItem.Title,
		IsCompleted: checklistItem.IsCompleted,
		Position:    checklistItem.Position,
		CreatorId:   checklistItem.CreatorID,
		CreatorName: checklistItem.Creator.Name,
		CreatedAt:   checklistItem.CreatedAt,
		UpdatedAt:   checklistItem.UpdatedAt,
	}
}
