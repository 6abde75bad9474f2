// Package access decides what a principal may do with a collection and the
// items, comments and checklist entries it contains. It holds no state and
// never touches the store; callers load the collection and the principal's
// grant first and act on the returned Capabilities.
package access

import (
	"braindumpBackend/auth"
	"braindumpBackend/utils"
)

type (
	// Subject is the part of a collection that access decisions depend on.
	Subject struct {
		OwnerId  string
		IsPublic bool
	}

	// Grant is a collaborator's delegated rights on a collection.
	Grant struct {
		CanEdit bool
		CanVote bool
	}

	Capabilities struct {
		CanView bool `json:"canView"`
		CanEdit bool `json:"canEdit"`
		CanVote bool `json:"canVote"`
		IsOwner bool `json:"isOwner"`

		authenticated bool
	}

	Action int
)

const (
	View Action = iota
	CreateItem
	EditItem
	EditChecklist
	Vote
	Comment
	// Manage covers updating, sharing and deleting a collection and managing its collaborators
	Manage
)

func (a Action) String() string {
	switch a {
	case View:
		return "view"
	case CreateItem:
		return "create-item"
	case EditItem:
		return "edit-item"
	case EditChecklist:
		return "edit-checklist"
	case Vote:
		return "vote"
	case Comment:
		return "comment"
	case Manage:
		return "manage"
	}
	return "unknown"
}

// ResolveCollectionAccess computes the capabilities of a principal on a collection.
// The grant is the principal's collaborator record on the collection, or nil.
func ResolveCollectionAccess(principal auth.Principal, subject Subject, grant *Grant) Capabilities {
	capabilities := Capabilities{authenticated: !principal.IsAnonymous()}

	switch {
	case principal.Is(subject.OwnerId):
		capabilities.CanView = true
		capabilities.CanEdit = true
		capabilities.CanVote = true
		capabilities.IsOwner = true
	case grant != nil && !principal.IsAnonymous():
		capabilities.CanView = true
		capabilities.CanEdit = grant.CanEdit
		capabilities.CanVote = grant.CanVote
	default:
		capabilities.CanView = subject.IsPublic
	}

	return capabilities
}

// Require returns nil if the action is permitted. Callers that cannot view the
// collection get utils.ErrNotFound so that private collections stay invisible.
func (c Capabilities) Require(action Action) error {
	if !c.CanView {
		return utils.ErrNotFound
	}

	var allowed bool
	switch action {
	case View:
		allowed = true
	case CreateItem, EditItem, EditChecklist:
		allowed = c.CanEdit
	case Vote:
		allowed = c.CanVote
	case Comment:
		allowed = c.authenticated
	case Manage:
		allowed = c.IsOwner
	}

	if allowed {
		return nil
	}
	return c.denied()
}

// CanDeleteItem permits the item's creator or the collection owner. The creator
// keeps this right even after losing access to the collection.
func CanDeleteItem(principal auth.Principal, capabilities Capabilities, creatorId string) error {
	if principal.Is(creatorId) || capabilities.IsOwner {
		return nil
	}
	if !capabilities.CanView {
		return utils.ErrNotFound
	}
	return capabilities.denied()
}

// CanModifyComment permits only the comment's creator.
func CanModifyComment(principal auth.Principal, capabilities Capabilities, creatorId string) error {
	if principal.Is(creatorId) {
		return nil
	}
	if !capabilities.CanView {
		return utils.ErrNotFound
	}
	return capabilities.denied()
}

func (c Capabilities) IsAuthenticated() bool {
	return c.authenticated
}

func (c Capabilities) denied() error {
	if !c.authenticated {
		return utils.ErrUnauthorized
	}
	return utils.ErrForbidden
}
