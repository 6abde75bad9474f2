package item

import (
	"braindumpBackend/access"
	"braindumpBackend/auth"
	"braindumpBackend/domain/collection"
	"braindumpBackend/events"
	"braindumpBackend/ordering"
	"braindumpBackend/priority"
	"braindumpBackend/storage"
	"braindumpBackend/utils"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

type (
	Service interface {
		List(ctx context.Context, collectionId string, filter ItemFilterIn, principal auth.Principal) ([]ItemOut, error)
		Create(ctx context.Context, collectionId string, req ItemIn, principal auth.Principal) (ItemOut, error)
		Update(ctx context.Context, itemId string, req ItemUpdateIn, principal auth.Principal) (ItemOut, error)
		Delete(ctx context.Context, itemId string, principal auth.Principal) error
		// Authorize loads an item and requires the action on its collection.
		Authorize(ctx context.Context, itemId string, principal auth.Principal, action access.Action) (*Item, access.Capabilities, error)
		// Summarize returns the item as seen by the principal, with fresh aggregates.
		Summarize(ctx context.Context, item *Item, principal auth.Principal) (ItemOut, error)
		// RecomputeCounters refreshes the cached counters of every item and reports the drift found.
		RecomputeCounters(ctx context.Context) ([]CounterDrift, error)
	}

	itemService struct {
		itemRepo    Repository
		statsReader storage.StatsReader
		guard       collection.Guard
		notifier    events.Notifier
		clock       func() time.Time
	}
)

func CreateService(
	itemRepo Repository,
	statsReader storage.StatsReader,
	guard collection.Guard,
	notifier events.Notifier,
) Service {
	return &itemService{
		itemRepo:    itemRepo,
		statsReader: statsReader,
		guard:       guard,
		notifier:    notifier,
		clock:       time.Now,
	}
}

func (s *itemService) List(ctx context.Context, collectionId string, filterIn ItemFilterIn, principal auth.Principal) ([]ItemOut, error) {
	filter, err := parseFilter(filterIn)
	if err != nil {
		return nil, err
	}

	if _, _, err := s.guard.Authorize(ctx, collectionId, principal, access.View); err != nil {
		return nil, err
	}

	items, err := s.itemRepo.GetByCollection(ctx, collectionId)
	if err != nil {
		return nil, err
	}

	result, err := s.itemsToOut(ctx, items, principal)
	if err != nil {
		return nil, err
	}

	return ordering.Apply(result, itemKey, filter, s.clock()), nil
}

func (s *itemService) Create(ctx context.Context, collectionId string, req ItemIn, principal auth.Principal) (ItemOut, error) {
	collection, capabilities, err := s.guard.Authorize(ctx, collectionId, principal, access.CreateItem)
	if err != nil {
		return ItemOut{}, err
	}
	userId, _ := principal.UserId()

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return ItemOut{}, fmt.Errorf("%w: title is required", utils.ErrValidationError)
	}

	var initialVote *priority.Priority
	if req.Priority != nil {
		value, err := priority.Parse(*req.Priority)
		if err != nil {
			return ItemOut{}, err
		}
		if err := capabilities.Require(access.Vote); err != nil {
			return ItemOut{}, err
		}
		initialVote = &value
	}

	item := &Item{
		ID:           utils.GenerateUuid(),
		CollectionID: collection.ID,
		Title:        title,
		Description:  strings.TrimSpace(req.Description),
		CreatorID:    userId,
		AvgPriority:  priority.DefaultScore,
	}

	if err := s.itemRepo.Create(ctx, item, initialVote); err != nil {
		return ItemOut{}, err
	}

	if initialVote != nil {
		if _, err := s.itemRepo.RefreshCounters(ctx, item.ID); err != nil {
			return ItemOut{}, err
		}
	}

	created, err := s.itemRepo.GetById(ctx, item.ID)
	if err != nil {
		return ItemOut{}, err
	}

	result, err := s.Summarize(ctx, created, principal)
	if err != nil {
		return ItemOut{}, err
	}

	s.notifier.Notify(events.ChannelKey(collection.ID), events.ItemCreated, result)
	return result, nil
}

func (s *itemService) Update(ctx context.Context, itemId string, req ItemUpdateIn, principal auth.Principal) (ItemOut, error) {
	item, _, err := s.Authorize(ctx, itemId, principal, access.EditItem)
	if err != nil {
		return ItemOut{}, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return ItemOut{}, fmt.Errorf("%w: title cannot be empty", utils.ErrValidationError)
		}
		item.Title = title
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.IsCompleted != nil {
		item.IsCompleted = *req.IsCompleted
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return ItemOut{}, err
	}

	result, err := s.Summarize(ctx, item, principal)
	if err != nil {
		return ItemOut{}, err
	}

	s.notifier.Notify(events.ChannelKey(item.CollectionID), events.ItemUpdated, result)
	return result, nil
}

func (s *itemService) Delete(ctx context.Context, itemId string, principal auth.Principal) error {
	item, err := s.itemRepo.GetById(ctx, itemId)
	if err != nil {
		return err
	}

	_, capabilities, err := s.guard.Resolve(ctx, item.CollectionID, principal)
	if err != nil {
		return err
	}

	if err := access.CanDeleteItem(principal, capabilities, item.CreatorID); err != nil {
		return err
	}

	if err := s.itemRepo.Delete(ctx, item); err != nil {
		return err
	}

	s.notifier.Notify(events.ChannelKey(item.CollectionID), events.ItemDeleted, ItemDeletedOut{ID: item.ID})
	return nil
}

func (s *itemService) Authorize(ctx context.Context, itemId string, principal auth.Principal, action access.Action) (*Item, access.Capabilities, error) {
	item, err := s.itemRepo.GetById(ctx, itemId)
	if err != nil {
		return nil, access.Capabilities{}, err
	}

	_, capabilities, err := s.guard.Authorize(ctx, item.CollectionID, principal, action)
	if err != nil {
		return nil, access.Capabilities{}, err
	}

	return item, capabilities, nil
}

func (s *itemService) Summarize(ctx context.Context, item *Item, principal auth.Principal) (ItemOut, error) {
	result, err := s.itemsToOut(ctx, []Item{*item}, principal)
	if err != nil {
		return ItemOut{}, err
	}

	return result[0], nil
}

func (s *itemService) RecomputeCounters(ctx context.Context) ([]CounterDrift, error) {
	itemIds, err := s.itemRepo.GetAllIds(ctx)
	if err != nil {
		return nil, err
	}

	drifts := make([]CounterDrift, 0)
	for _, batch := range lo.Chunk(itemIds, 500) {
		batchDrifts, err := s.itemRepo.RefreshCounters(ctx, batch...)
		if err != nil {
			return nil, err
		}
		drifts = append(drifts, batchDrifts...)
	}

	return drifts, nil
}

func (s *itemService) itemsToOut(ctx context.Context, items []Item, principal auth.Principal) ([]ItemOut, error) {
	itemIds := lo.Map(items, func(item Item, _ int) string { return item.ID })

	stats, err := s.statsReader.ItemStats(ctx, itemIds)
	if err != nil {
		return nil, err
	}

	myVotes := make(map[string]priority.Priority)
	if userId, ok := principal.UserId(); ok {
		if myVotes, err = s.statsReader.UserVotes(ctx, userId, itemIds); err != nil {
			return nil, err
		}
	}

	return lo.Map(items, func(item Item, _ int) ItemOut {
		itemStats := stats[item.ID]
		summary := itemStats.Summary()

		var myVote *priority.Priority
		if vote, ok := myVotes[item.ID]; ok {
			myVote = &vote
		}

		return ItemOut{
			ID:           item.ID,
			CollectionId: item.CollectionID,
			Title:        item.Title,
			Description:  item.Description,
			IsCompleted:  item.IsCompleted,
			CreatorId:    item.CreatorID,
			CreatorName:  item.Creator.Name,
			VoteCount:    summary.VoteCount,
			Score:        summary.Score,
			Label:        summary.Label,
			CommentCount: itemStats.CommentCount,
			MyVote:       myVote,
			CreatedAt:    item.CreatedAt,
			UpdatedAt:    item.UpdatedAt,
		}
	}), nil
}

func itemKey(item ItemOut) ordering.Key {
	return ordering.Key{
		Id:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Completed:   item.IsCompleted,
		CreatedAt:   item.CreatedAt,
		Score:       item.Score,
	}
}

func parseFilter(filterIn ItemFilterIn) (ordering.Filter, error) {
	filter := ordering.Filter{Search: filterIn.Search}

	if filterIn.Priority != nil {
		bucket, err := priority.Parse(*filterIn.Priority)
		if err != nil {
			return ordering.Filter{}, err
		}
		filter.Priority = &bucket
	}

	window, err := ordering.ParseDateWindow(filterIn.Date)
	if err != nil {
		return ordering.Filter{}, err
	}
	filter.Window = window

	return filter, nil
}
