package collection

import (
	"braindumpBackend/access"
	"braindumpBackend/domain/user"
	"time"
)

// Collaborator grants a user delegated rights on a collection they do not own.
type Collaborator struct {
	CollectionID string     `gorm:"primaryKey"`
	Collection   Collection `gorm:"constraint:OnDelete:CASCADE"`
	UserID       string     `gorm:"primaryKey;index"`
	User         user.User  `gorm:"constraint:OnDelete:CASCADE"`
	CanEdit      bool       `gorm:"not null"`
	CanVote      bool       `gorm:"not null"`
	InvitedAt    time.Time  `gorm:"not null"`
}

func (c *Collaborator) Grant() *access.Grant {
	return &access.Grant{CanEdit: c.CanEdit, CanVote: c.CanVote}
}

type ShareIn struct {
	Email   string `json:"email" binding:"required"`
	CanEdit *bool  `json:"canEdit"`
	CanVote *bool  `json:"canVote"`
}

type GrantUpdateIn struct {
	CanEdit *bool `json:"canEdit"`
	CanVote *bool `json:"canVote"`
}

type CollaboratorOut struct {
	UserId    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CanEdit   bool      `json:"canEdit"`
	CanVote   bool      `json:"canVote"`
	InvitedAt time.Time `json:"invitedAt"`
}
