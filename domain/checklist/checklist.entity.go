package checklist

import (
	"braindumpBackend/domain/item"
	"braindumpBackend/domain/user"
	"braindumpBackend/utils"
	"time"

	"gorm.io/gorm"
)

// ChecklistItem is a sub-task of an item.
type ChecklistItem struct {
	ID          string    `gorm:"primaryKey"`
	ItemID      string    `gorm:"not null;index"`
	Item        item.Item `gorm:"constraint:OnDelete:CASCADE"`
	Title       string    `gorm:"not null"`
	IsCompleted bool      `gorm:"not null"`
	Position    int       `gorm:"not null"`
	CreatorID   string    `gorm:"not null"`
	Creator     user.User `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c *ChecklistItem) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = utils.GenerateUuid()
	}
	return nil
}

type ChecklistItemIn struct {
	Title    string `json:"title" binding:"required"`
	// Position defaults to the end of the checklist
	Position *int   `json:"position" binding:"omitempty,min=0"`
}

type ChecklistItemUpdateIn struct {
	Title       *string `json:"title"`
	IsCompleted *bool   `json:"isCompleted"`
	Position    *int    `json:"position" binding:"omitempty,min=0"`
}

type ChecklistItemOut struct {
	ID          string    `json:"id"`
	ItemId      string    `json:"itemId"`
	Title       string    `json:"title"`
	IsCompleted bool      `json:"isCompleted"`
	Position    int       `json:"position"`
	CreatorId   string    `json:"creatorId"`
	CreatorName string    `json:"creatorName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ChecklistEventOut is broadcast after any checklist change and carries the full list.
type ChecklistEventOut struct {
	ItemId string             `json:"itemId"`
	Items  []ChecklistItemOut `json:"items"`
}
