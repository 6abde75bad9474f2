package item

import (
	"braindumpBackend/priority"
	"braindumpBackend/storage"
	"braindumpBackend/utils"
	"context"
	"errors"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	Repository interface {
		GetByCollection(ctx context.Context, collectionId string) ([]Item, error)
		GetById(ctx context.Context, itemId string) (*Item, error)
		GetAllIds(ctx context.Context) ([]string, error)
		// Create stores the item and, if given, the creator's initial vote in one transaction.
		Create(ctx context.Context, item *Item, initialVote *priority.Priority) error
		Update(ctx context.Context, item *Item) error
		Delete(ctx context.Context, item *Item) error
		// RefreshCounters recomputes the cached counters from the source rows and
		// returns the items whose cache was out of date.
		RefreshCounters(ctx context.Context, itemIds ...string) ([]CounterDrift, error)
	}

	// VoteRecorder upserts a vote as part of an enclosing transaction.
	VoteRecorder interface {
		RecordVote(tx *gorm.DB, itemId string, userId string, value priority.Priority) error
	}

	itemRepository struct {
		db           *gorm.DB
		statsReader  storage.StatsReader
		voteRecorder VoteRecorder
	}
)

func CreateRepository(db *gorm.DB, statsReader storage.StatsReader, voteRecorder VoteRecorder) Repository {
	return &itemRepository{
		db:           db,
		statsReader:  statsReader,
		voteRecorder: voteRecorder,
	}
}

func (r *itemRepository) GetByCollection(ctx context.Context, collectionId string) ([]Item, error) {
	items := make([]Item, 0)
	result := r.db.WithContext(ctx).
		Where("collection_id = ?", collectionId).
		Preload("Creator").
		Find(&items)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch items. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	return items, nil
}

func (r *itemRepository) GetById(ctx context.Context, itemId string) (*Item, error) {
	item := &Item{}
	result := r.db.WithContext(ctx).Where("id = ?", itemId).Preload("Creator").First(item)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	} else if result.Error != nil {
		log.Errorf("[DB] Failed to fetch item. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	return item, nil
}

func (r *itemRepository) GetAllIds(ctx context.Context) ([]string, error) {
	itemIds := make([]string, 0)
	if err := r.db.WithContext(ctx).Model(&Item{}).Order("created_at").Pluck("id", &itemIds).Error; err != nil {
		log.Errorf("[DB] Failed to fetch item ids. Error: %s", err.Error())
		return nil, utils.ErrDatabaseError
	}

	return itemIds, nil
}

func (r *itemRepository) Create(ctx context.Context, item *Item, initialVote *priority.Priority) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(item).Error; err != nil {
			return err
		}

		if initialVote != nil {
			return r.voteRecorder.RecordVote(tx, item.ID, item.CreatorID, *initialVote)
		}
		return nil
	})

	if err != nil {
		log.Errorf("[DB] Failed to create item. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

func (r *itemRepository) Update(ctx context.Context, item *Item) error {
	item.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).
		Model(&Item{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"title":        item.Title,
			"description":  item.Description,
			"is_completed": item.IsCompleted,
			"updated_at":   item.UpdatedAt,
		})

	if result.Error != nil {
		log.Errorf("[DB] Failed to update item. Error: %s", result.Error.Error())
		return utils.ErrDatabaseError
	} else if result.RowsAffected == 0 {
		return utils.ErrNotFound
	}

	return nil
}

func (r *itemRepository) Delete(ctx context.Context, item *Item) error {
	if err := r.db.WithContext(ctx).Delete(&Item{}, "id = ?", item.ID).Error; err != nil {
		log.Errorf("[DB] Failed to delete item. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

func (r *itemRepository) RefreshCounters(ctx context.Context, itemIds ...string) ([]CounterDrift, error) {
	drifts := make([]CounterDrift, 0)
	if len(itemIds) == 0 {
		return drifts, nil
	}

	stats, err := r.statsReader.ItemStats(ctx, itemIds)
	if err != nil {
		return nil, err
	}

	cached := make([]Item, 0, len(itemIds))
	if err := r.db.WithContext(ctx).Where("id IN ?", itemIds).Find(&cached).Error; err != nil {
		log.Errorf("[DB] Failed to fetch cached counters. Error: %s", err.Error())
		return nil, utils.ErrDatabaseError
	}

	for _, item := range cached {
		itemStats := stats[item.ID]
		fresh := Counters{
			VoteCount:    itemStats.VoteCount,
			AvgPriority:  itemStats.Summary().Score,
			CommentCount: itemStats.CommentCount,
		}

		if countersEqual(item.Counters(), fresh) {
			continue
		}

		result := r.db.WithContext(ctx).Model(&Item{}).Where("id = ?", item.ID).UpdateColumns(map[string]any{
			"vote_count":    fresh.VoteCount,
			"avg_priority":  fresh.AvgPriority,
			"comment_count": fresh.CommentCount,
		})
		if result.Error != nil {
			log.Errorf("[DB] Failed to refresh item counters. Error: %s", result.Error.Error())
			return nil, utils.ErrDatabaseError
		}

		drifts = append(drifts, CounterDrift{ItemId: item.ID, Cached: item.Counters(), Fresh: fresh})
	}

	return drifts, nil
}

func countersEqual(a Counters, b Counters) bool {
	return a.VoteCount == b.VoteCount &&
		a.CommentCount == b.CommentCount &&
		math.Abs(a.AvgPriority-b.AvgPriority) < 1e-9
}
