package vote

import (
	"braindumpBackend/domain/item"
	"braindumpBackend/domain/user"
	"braindumpBackend/priority"
	"time"
)

// Vote is a user's priority assessment of an item. There is at most one per user and item.
type Vote struct {
	ItemID   string            `gorm:"primaryKey"`
	Item     item.Item         `gorm:"constraint:OnDelete:CASCADE"`
	UserID   string            `gorm:"primaryKey;index"`
	User     user.User         `gorm:"constraint:OnDelete:CASCADE"`
	Priority priority.Priority `gorm:"not null;check:priority BETWEEN 1 AND 3"`
	VotedAt  time.Time         `gorm:"not null"`
}

type VoteIn struct {
	Priority int `json:"priority" binding:"required"`
}

type VoteOut struct {
	ItemId    string            `json:"itemId"`
	Priority  priority.Priority `json:"priority"`
	VoteCount int               `json:"voteCount"`
	Score     float64           `json:"score"`
	Label     priority.Priority `json:"label"`
}

// VoteEventOut is broadcast to subscribers and carries no voter identity.
type VoteEventOut struct {
	ItemId    string            `json:"itemId"`
	VoteCount int               `json:"voteCount"`
	Score     float64           `json:"score"`
	Label     priority.Priority `json:"label"`
}
