package collection

import (
	"braindumpBackend/access"
	"braindumpBackend/domain/user"
	"braindumpBackend/utils"
	"time"

	"gorm.io/gorm"
)

type Collection struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	IsPublic    bool      `gorm:"not null;index"`
	OwnerID     string    `gorm:"not null;index"`
	Owner       user.User `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c *Collection) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = utils.GenerateUuid()
	}
	return nil
}

// Subject returns the attributes the access policy decides on.
func (c *Collection) Subject() access.Subject {
	return access.Subject{OwnerId: c.OwnerID, IsPublic: c.IsPublic}
}

type CollectionIn struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
}

type CollectionUpdateIn struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"isPublic"`
}

type CollectionOut struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	Description       string              `json:"description"`
	IsPublic          bool                `json:"isPublic"`
	OwnerId           string              `json:"ownerId"`
	OwnerName         string              `json:"ownerName"`
	IsOwner           bool                `json:"isOwner"`
	CollaboratorCount int                 `json:"collaboratorCount"`
	Permissions       access.Capabilities `json:"permissions"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

// CollectionEventOut is broadcast to subscribers of a collection. It carries no
// caller specific fields.
type CollectionEventOut struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
}
