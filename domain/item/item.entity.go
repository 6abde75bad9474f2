package item

import (
	"braindumpBackend/domain/collection"
	"braindumpBackend/domain/user"
	"braindumpBackend/priority"
	"braindumpBackend/utils"
	"time"

	"gorm.io/gorm"
)

type Item struct {
	ID           string                `gorm:"primaryKey"`
	CollectionID string                `gorm:"not null;index"`
	Collection   collection.Collection `gorm:"constraint:OnDelete:CASCADE"`
	Title        string                `gorm:"not null"`
	Description  string
	IsCompleted  bool      `gorm:"not null"`
	CreatorID    string    `gorm:"not null;index"`
	Creator      user.User `gorm:"constraint:OnDelete:CASCADE"`

	// Cached aggregates, always re-derivable from the vote and comment rows
	VoteCount    int     `gorm:"not null"`
	AvgPriority  float64 `gorm:"not null"`
	CommentCount int     `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (i *Item) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = utils.GenerateUuid()
	}
	return nil
}

func (i *Item) Counters() Counters {
	return Counters{VoteCount: i.VoteCount, AvgPriority: i.AvgPriority, CommentCount: i.CommentCount}
}

type Counters struct {
	VoteCount    int     `json:"voteCount"`
	AvgPriority  float64 `json:"avgPriority"`
	CommentCount int     `json:"commentCount"`
}

// CounterDrift records a cached counter set that did not match the source rows.
type CounterDrift struct {
	ItemId string   `json:"itemId"`
	Cached Counters `json:"cached"`
	Fresh  Counters `json:"fresh"`
}

type ItemIn struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	// Priority optionally records the creator's vote together with the item
	Priority *int `json:"priority"`
}

type ItemUpdateIn struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsCompleted *bool   `json:"isCompleted"`
}

type ItemFilterIn struct {
	Priority *int   `form:"priority"`
	Search   string `form:"search"`
	Date     string `form:"date"`
}

type ItemOut struct {
	ID           string             `json:"id"`
	CollectionId string             `json:"collectionId"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	IsCompleted  bool               `json:"isCompleted"`
	CreatorId    string             `json:"creatorId"`
	CreatorName  string             `json:"creatorName"`
	VoteCount    int                `json:"voteCount"`
	Score        float64            `json:"score"`
	Label        priority.Priority  `json:"label"`
	CommentCount int                `json:"commentCount"`
	MyVote       *priority.Priority `json:"myVote"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

type ItemDeletedOut struct {
	ID string `json:"id"`
}
