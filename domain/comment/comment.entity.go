package comment

import (
	"braindumpBackend/domain/item"
	"braindumpBackend/domain/user"
	"braindumpBackend/utils"
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID        string    `gorm:"primaryKey"`
	ItemID    string    `gorm:"not null;index"`
	Item      item.Item `gorm:"constraint:OnDelete:CASCADE"`
	Content   string    `gorm:"not null"`
	CreatorID string    `gorm:"not null;index"`
	Creator   user.User `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = utils.GenerateUuid()
	}
	return nil
}

type CommentIn struct {
	Content string `json:"content" binding:"required"`
}

type CommentOut struct {
	ID          string    `json:"id"`
	ItemId      string    `json:"itemId"`
	Content     string    `json:"content"`
	CreatorId   string    `json:"creatorId"`
	CreatorName string    `json:"creatorName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CommentDeletedOut struct {
	ID     string `json:"id"`
	ItemId string `json:"itemId"`
}
