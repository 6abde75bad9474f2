package collection

import (
	"braindumpBackend/access"
	"braindumpBackend/auth"
	"braindumpBackend/domain/user"
	"braindumpBackend/events"
	"braindumpBackend/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

type (
	Service interface {
		List(ctx context.Context, principal auth.Principal) ([]CollectionOut, error)
		Get(ctx context.Context, collectionId string, principal auth.Principal) (CollectionOut, error)
		GetPermissions(ctx context.Context, collectionId string, principal auth.Principal) (access.Capabilities, error)
		Create(ctx context.Context, req CollectionIn, principal auth.Principal) (CollectionOut, error)
		Update(ctx context.Context, collectionId string, req CollectionUpdateIn, principal auth.Principal) (CollectionOut, error)
		Delete(ctx context.Context, collectionId string, principal auth.Principal) error

		Share(ctx context.Context, collectionId string, req ShareIn, principal auth.Principal) (CollaboratorOut, error)
		ListCollaborators(ctx context.Context, collectionId string, principal auth.Principal) ([]CollaboratorOut, error)
		UpdateGrant(ctx context.Context, collectionId string, userId string, req GrantUpdateIn, principal auth.Principal) (CollaboratorOut, error)
		RevokeGrant(ctx context.Context, collectionId string, userId string, principal auth.Principal) error
	}

	collectionService struct {
		collectionRepo   Repository
		collaboratorRepo CollaboratorRepository
		userRepo         user.Repository
		guard            Guard
		notifier         events.Notifier
	}
)

func CreateService(
	collectionRepo Repository,
	collaboratorRepo CollaboratorRepository,
	userRepo user.Repository,
	guard Guard,
	notifier events.Notifier,
) Service {
	return &collectionService{
		collectionRepo:   collectionRepo,
		collaboratorRepo: collaboratorRepo,
		userRepo:         userRepo,
		guard:            guard,
		notifier:         notifier,
	}
}

func (s *collectionService) List(ctx context.Context, principal auth.Principal) ([]CollectionOut, error) {
	var userIdFilter *string
	userId, isAuthenticated := principal.UserId()
	if isAuthenticated {
		userIdFilter = &userId
	}

	collections, err := s.collectionRepo.GetAccessible(ctx, userIdFilter)
	if err != nil {
		return nil, err
	}

	collectionIds := lo.Map(collections, func(collection Collection, _ int) string { return collection.ID })

	counts, err := s.collaboratorRepo.CountByCollections(ctx, collectionIds)
	if err != nil {
		return nil, err
	}

	grants := make(map[string]Collaborator)
	if isAuthenticated {
		if grants, err = s.collaboratorRepo.GetGrantsOfUser(ctx, userId, collectionIds); err != nil {
			return nil, err
		}
	}

	result := make([]CollectionOut, 0, len(collections))
	for _, collection := range collections {
		var grant *access.Grant
		if collaborator, ok := grants[collection.ID]; ok {
			grant = collaborator.Grant()
		}

		capabilities := access.ResolveCollectionAccess(principal, collection.Subject(), grant)
		if !capabilities.CanView {
			continue
		}

		result = append(result, s.collectionToOut(collection, capabilities, counts[collection.ID]))
	}

	return result, nil
}

func (s *collectionService) Get(ctx context.Context, collectionId string, principal auth.Principal) (CollectionOut, error) {
	collection, capabilities, err := s.guard.Authorize(ctx, collectionId, principal, access.View)
	if err != nil {
		return CollectionOut{}, err
	}

	counts, err := s.collaboratorRepo.CountByCollections(ctx, []string{collection.ID})
	if err != nil {
		return CollectionOut{}, err
	}

	return s.collectionToOut(*collection, capabilities, counts[collection.ID]), nil
}

func (s *collectionService) GetPermissions(ctx context.Context, collectionId string, principal auth.Principal) (access.Capabilities, error) {
	_, capabilities, err := s.guard.Authorize(ctx, collectionId, principal, access.View)
	return capabilities, err
}

func (s *collectionService) Create(ctx context.Context, req CollectionIn, principal auth.Principal) (CollectionOut, error) {
	userId, ok := principal.UserId()
	if !ok {
		return CollectionOut{}, utils.ErrUnauthorized
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return CollectionOut{}, fmt.Errorf("%w: name is required", utils.ErrValidationError)
	}

	owner, err := s.userRepo.GetById(ctx, userId)
	if errors.Is(err, utils.ErrNotFound) {
		// Token of a deleted account
		return CollectionOut{}, utils.ErrUnauthorized
	} else if err != nil {
		return CollectionOut{}, err
	}

	collection := &Collection{
		ID:          utils.GenerateUuid(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		IsPublic:    req.IsPublic,
		OwnerID:     owner.ID,
	}

	if err := s.collectionRepo.Create(ctx, collection); err != nil {
		return CollectionOut{}, err
	}
	collection.Owner = *owner

	capabilities := access.ResolveCollectionAccess(principal, collection.Subject(), nil)
	return s.collectionToOut(*collection, capabilities, 0), nil
}

func (s *collectionService) Update(ctx context.Context, collectionId string, req CollectionUpdateIn, principal auth.Principal) (CollectionOut, error) {
	collection, capabilities, err := s.guard.Authorize(ctx, collectionId, principal, access.Manage)
	if err != nil {
		return CollectionOut{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return CollectionOut{}, fmt.Errorf("%w: name cannot be empty", utils.ErrValidationError)
		}
		collection.Name = name
	}
	if req.Description != nil {
		collection.Description = strings.TrimSpace(*req.Description)
	}
	if req.IsPublic != nil {
		collection.IsPublic = *req.IsPublic
	}

	if err := s.collectionRepo.Update(ctx, collection); err != nil {
		return CollectionOut{}, err
	}

	counts, err := s.collaboratorRepo.CountByCollections(ctx, []string{collection.ID})
	if err != nil {
		return CollectionOut{}, err
	}

	s.notifier.Notify(events.ChannelKey(collection.ID), events.CollectionUpdated, CollectionEventOut{
		ID:          collection.ID,
		Name:        collection.Name,
		Description: collection.Description,
		IsPublic:    collection.IsPublic,
	})

	return s.collectionToOut(*collection, capabilities, counts[collection.ID]), nil
}

func (s *collectionService) Delete(ctx context.Context, collectionId string, principal auth.Principal) error {
	collection, _, err := s.guard.Authorize(ctx, collectionId, principal, access.Manage)
	if err != nil {
		return err
	}

	if err := s.collectionRepo.Delete(ctx, collection); err != nil {
		return err
	}

	s.notifier.Notify(events.ChannelKey(collection.ID), events.CollectionDeleted, CollectionEventOut{ID: collection.ID})
	return nil
}

func (s *collectionService) Share(ctx context.Context, collectionId string, req ShareIn, principal auth.Principal) (CollaboratorOut, error) {
	collection, _, err := s.guard.Authorize(ctx, collectionId, principal, access.Manage)
	if err != nil {
		return CollaboratorOut{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return CollaboratorOut{}, fmt.Errorf("%w: email is required", utils.ErrValidationError)
	}

	grantee, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, utils.ErrNotFound) {
		return CollaboratorOut{}, fmt.Errorf("%w: no user with this email exists", utils.ErrNotFound)
	} else if err != nil {
		return CollaboratorOut{}, err
	}

	if grantee.ID == collection.OwnerID {
		return CollaboratorOut{}, fmt.Errorf("%w: a collection cannot be shared with its owner", utils.ErrValidationError)
	}

	if _, err := s.collaboratorRepo.GetGrant(ctx, collection.ID, grantee.ID); err == nil {
		return CollaboratorOut{}, fmt.Errorf("%w: the collection is already shared with this user", utils.ErrConflict)
	} else if !errors.Is(err, utils.ErrNotFound) {
		return CollaboratorOut{}, err
	}

	collaborator := &Collaborator{
		CollectionID: collection.ID,
		UserID:       grantee.ID,
		CanEdit:      lo.FromPtrOr(req.CanEdit, false),
		CanVote:      lo.FromPtrOr(req.CanVote, true),
		InvitedAt:    time.Now(),
	}

	if err := s.collaboratorRepo.Create(ctx, collaborator); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return CollaboratorOut{}, fmt.Errorf("%w: the collection is already shared with this user", utils.ErrConflict)
		}
		return CollaboratorOut{}, err
	}
	collaborator.User = *grantee

	result := s.collaboratorToOut(*collaborator)
	s.notifier.Notify(events.ChannelKey(collection.ID), events.CollaboratorsUpdated, result)

	return result, nil
}

func (s *collectionService) ListCollaborators(ctx context.Context, collectionId string, principal auth.Principal) ([]CollaboratorOut, error) {
	collection, _, err := s.guard.Authorize(ctx, collectionId, principal, access.Manage)
	if err != nil {
		return nil, err
	}

	collaborators, err := s.collaboratorRepo.GetByCollection(ctx, collection.ID)
	if err != nil {
		return nil, err
	}

	return lo.Map(collaborators, func(collaborator Collaborator, _ int) CollaboratorOut {
		return s.collaboratorToOut(collaborator)
	}), nil
}

func (s *collectionService) UpdateGrant(ctx context.Context, collectionId string, userId string, req GrantUpdateIn, principal auth.Principal) (CollaboratorOut, error) {
	collection, _, err := s.guard.Authorize(ctx, collectionId, principal, access.Manage)
	if err != nil {
		return CollaboratorOut{}, err
	}

	collaborator, err := s.collaboratorRepo.GetGrant(ctx, collection.ID, userId)
	if err != nil {
		return CollaboratorOut{}, err
	}

	collaborator.CanEdit = lo.FromPtrOr(req.CanEdit, collaborator.CanEdit)
	collaborator.CanVote = lo.FromPtrOr(req.CanVote, collaborator.CanVote)

	if err := s.collaboratorRepo.UpdateFlags(ctx, collaborator); err != nil {
		return CollaboratorOut{}, err
	}

	result := s.collaboratorToOut(*collaborator)
	s.notifier.Notify(events.ChannelKey(collection.ID), events.CollaboratorsUpdated, result)

	return result, nil
}

func (s *collectionService) RevokeGrant(ctx context.Context, collectionId string, userId string, principal auth.Principal) error {
	collection, _, err := s.guard.Authorize(ctx, collectionId, principal, access.Manage)
	if err != nil {
		return err
	}

	if err := s.collaboratorRepo.Delete(ctx, collection.ID, userId); err != nil {
		return err
	}

	s.notifier.Notify(events.ChannelKey(collection.ID), events.CollaboratorsUpdated, CollaboratorOut{UserId: userId})
	return nil
}

func (s *collectionService) collectionToOut(collection Collection, capabilities access.Capabilities, collaboratorCount int) CollectionOut {
	return CollectionOut{
		ID:                collection.ID,
		Name:              collection.Name,
		Description:       collection.Description,
		IsPublic:          collection.IsPublic,
		OwnerId:           collection.OwnerID,
		OwnerName:         collection.Owner.Name,
		IsOwner:           capabilities.IsOwner,
		CollaboratorCount: collaboratorCount,
		Permissions:       capabilities,
		CreatedAt:         collection.CreatedAt,
		UpdatedAt:         collection.UpdatedAt,
	}
}

func (s *collectionService) collaboratorToOut(collaborator Collaborator) CollaboratorOut {
	return CollaboratorOut{
		UserId:    collaborator.UserID,
		Name:      collaborator.User.Name,
		Email:     collaborator.User.Email,
		CanEdit:   collaborator.CanEdit,
		CanVote:   collaborator.CanVote,
		InvitedAt: collaborator.InvitedAt,
	}
}
