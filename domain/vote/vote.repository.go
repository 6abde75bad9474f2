package vote

import (
	"braindumpBackend/priority"
	"braindumpBackend/utils"
	"context"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	Repository interface {
		// Upsert records the vote, replacing the user's previous vote on the item.
		Upsert(ctx context.Context, itemId string, userId string, value priority.Priority) error
		RecordVote(tx *gorm.DB, itemId string, userId string, value priority.Priority) error
	}

	voteRepository struct {
		db *gorm.DB
	}
)

func CreateRepository(db *gorm.DB) Repository {
	return &voteRepository{
		db: db,
	}
}

func (r *voteRepository) Upsert(ctx context.Context, itemId string, userId string, value priority.Priority) error {
	if err := r.RecordVote(r.db.WithContext(ctx), itemId, userId, value); err != nil {
		log.Errorf("[DB] Failed to record vote. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

func (r *voteRepository) RecordVote(tx *gorm.DB, itemId string, userId string, value priority.Priority) error {
	vote := &Vote{
		ItemID:   itemId,
		UserID:   userId,
		Priority: value,
		VotedAt:  time.Now(),
	}

	return tx.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"priority", "voted_at"}),
	}).Create(vote).Error
}
