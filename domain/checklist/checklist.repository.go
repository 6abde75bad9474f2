package checklist

import (
	"braindumpBackend/utils"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	Repository interface {
		GetByItem(ctx context.Context, itemId string) ([]ChecklistItem, error)
		GetById(ctx context.Context, checklistItemId string) (*ChecklistItem, error)
		// Create stores the entry at the given position, or appends it to the
		// end of the item's checklist when no position is given.
		Create(ctx context.Context, checklistItem *ChecklistItem, position *int) error
		Update(ctx context.Context, checklistItem *ChecklistItem) error
		Delete(ctx context.Context, checklistItem *ChecklistItem) error
	}

	checklistRepository struct {
		db *gorm.DB
	}
)

func CreateRepository(db *gorm.DB) Repository {
	return &checklistRepository{
		db: db,
	}
}

func (r *checklistRepository) GetByItem(ctx context.Context, itemId string) ([]ChecklistItem, error) {
	checklistItems := make([]ChecklistItem, 0)
	result := r.db.WithContext(ctx).
		Where("item_id = ?", itemId).
		Preload("Creator").
		Order("position, created_at").
		Find(&checklistItems)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch checklist. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	return checklistItems, nil
}

func (r *checklistRepository) GetById(ctx context.Context, checklistItemId string) (*ChecklistItem, error) {
	checklistItem := &ChecklistItem{}
	result := r.db.WithContext(ctx).Where("id = ?", checklistItemId).Preload("Creator").First(checklistItem)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	} else if result.Error != nil {
		log.Errorf("[DB] Failed to fetch checklist item. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	return checklistItem, nil
}

func (r *checklistRepository) Create(ctx context.Context, checklistItem *ChecklistItem, position *int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if position != nil {
			checklistItem.Position = *position
			return tx.Omit(clause.Associations).Create(checklistItem).Error
		}

		var maxPosition sql.NullInt64
		if err := tx.Model(&ChecklistItem{}).
			Where("item_id = ?", checklistItem.ItemID).
			Select("MAX(position)").
			Scan(&maxPosition).Error; err != nil {
			return err
		}

		checklistItem.Position = 0
		if maxPosition.Valid {
			checklistItem.Position = int(maxPosition.Int64) + 1
		}

		return tx.Omit(clause.Associations).Create(checklistItem).Error
	})

	if err != nil {
		log.Errorf("[DB] Failed to create checklist item. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

func (r *checklistRepository) Update(ctx context.Context, checklistItem *ChecklistItem) error {
	checklistItem.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).
		Model(&ChecklistItem{}).
		Where("id = ?", checklistItem.ID).
		Updates(map[string]any{
			"title":        checklistItem.Title,
			"is_completed": checklistItem.IsCompleted,
			"position":     checklistItem.Position,
			"updated_at":   checklistItem.UpdatedAt,
		})

	if result.Error != nil {
		log.Errorf("[DB] Failed to update checklist item. Error: %s", result.Error.Error())
		return utils.ErrDatabaseError
	} else if result.RowsAffected == 0 {
		return utils.ErrNotFound
	}

	return nil
}

func (r *checklistRepository) Delete(ctx context.Context, checklistItem *ChecklistItem) error {
	if err := r.db.WithContext(ctx).Delete(&ChecklistItem{}, "id = ?", checklistItem.ID).Error; err != nil {
		log.Errorf("[DB] Failed to delete checklist item. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}
