package collection

import (
	"braindumpBackend/access"
	"braindumpBackend/auth"
	"braindumpBackend/utils"
	"context"
	"errors"
)

type (
	// Guard loads a collection together with the caller's capabilities on it.
	// Services of nested resources go through it before touching the store.
	Guard interface {
		// Resolve fails only if the collection does not exist.
		Resolve(ctx context.Context, collectionId string, principal auth.Principal) (*Collection, access.Capabilities, error)
		// Authorize additionally requires the action to be permitted.
		Authorize(ctx context.Context, collectionId string, principal auth.Principal, action access.Action) (*Collection, access.Capabilities, error)
		CanView(ctx context.Context, collectionId string, principal auth.Principal) bool
	}

	collectionGuard struct {
		collectionRepo   Repository
		collaboratorRepo CollaboratorRepository
	}
)

func CreateGuard(collectionRepo Repository, collaboratorRepo CollaboratorRepository) Guard {
	return &collectionGuard{
		collectionRepo:   collectionRepo,
		collaboratorRepo: collaboratorRepo,
	}
}

func (g *collectionGuard) Resolve(ctx context.Context, collectionId string, principal auth.Principal) (*Collection, access.Capabilities, error) {
	collection, err := g.collectionRepo.GetById(ctx, collectionId)
	if err != nil {
		return nil, access.Capabilities{}, err
	}

	capabilities, err := g.capabilities(ctx, collection, principal)
	if err != nil {
		return nil, access.Capabilities{}, err
	}

	return collection, capabilities, nil
}

func (g *collectionGuard) Authorize(ctx context.Context, collectionId string, principal auth.Principal, action access.Action) (*Collection, access.Capabilities, error) {
	collection, capabilities, err := g.Resolve(ctx, collectionId, principal)
	if err != nil {
		return nil, access.Capabilities{}, err
	}

	if err := capabilities.Require(action); err != nil {
		return nil, access.Capabilities{}, err
	}

	return collection, capabilities, nil
}

func (g *collectionGuard) CanView(ctx context.Context, collectionId string, principal auth.Principal) bool {
	_, _, err := g.Authorize(ctx, collectionId, principal, access.View)
	return err == nil
}

func (g *collectionGuard) capabilities(ctx context.Context, collection *Collection, principal auth.Principal) (access.Capabilities, error) {
	var grant *access.Grant

	if userId, ok := principal.UserId(); ok && userId != collection.OwnerID {
		collaborator, err := g.collaboratorRepo.GetGrant(ctx, collection.ID, userId)
		if err == nil {
			grant = collaborator.Grant()
		} else if !errors.Is(err, utils.ErrNotFound) {
			return access.Capabilities{}, err
		}
	}

	return access.ResolveCollectionAccess(principal, collection.Subject(), grant), nil
}
