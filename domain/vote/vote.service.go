package vote

import (
	"braindumpBackend/access"
	"braindumpBackend/auth"
	"braindumpBackend/domain/item"
	"braindumpBackend/events"
	"braindumpBackend/priority"
	"context"
)

type (
	Service interface {
		Cast(ctx context.Context, itemId string, req VoteIn, principal auth.Principal) (VoteOut, error)
	}

	voteService struct {
		voteRepo    Repository
		itemRepo    item.Repository
		itemService item.Service
		notifier    events.Notifier
	}
)

func CreateService(voteRepo Repository, itemRepo item.Repository, itemService item.Service, notifier events.Notifier) Service {
	return &voteService{
		voteRepo:    voteRepo,
		itemRepo:    itemRepo,
		itemService: itemService,
		notifier:    notifier,
	}
}

func (s *voteService) Cast(ctx context.Context, itemId string, req VoteIn, principal auth.Principal) (VoteOut, error) {
	value, err := priority.Parse(req.Priority)
	if err != nil {
		return VoteOut{}, err
	}

	votedItem, _, err := s.itemService.Authorize(ctx, itemId, principal, access.Vote)
	if err != nil {
		return VoteOut{}, err
	}
	userId, _ := principal.UserId()

	if err := s.voteRepo.Upsert(ctx, votedItem.ID, userId, value); err != nil {
		return VoteOut{}, err
	}

	if _, err := s.itemRepo.RefreshCounters(ctx, votedItem.ID); err != nil {
		return VoteOut{}, err
	}

	summary, err := s.itemService.Summarize(ctx, votedItem, principal)
	if err != nil {
		return VoteOut{}, err
	}

	s.notifier.Notify(events.ChannelKey(votedItem.CollectionID), events.VoteUpdated, VoteEventOut{
		ItemId:    votedItem.ID,
		VoteCount: summary.VoteCount,
		Score:     summary.Score,
		Label:     summary.Label,
	})

	return VoteOut{
		ItemId:    votedItem.ID,
		Priority:  value,
		VoteCount: summary.VoteCount,
		Score:     summary.Score,
		Label:     summary.Label,
	}, nil
}
