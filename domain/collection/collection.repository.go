package collection

import (
	"braindumpBackend/utils"
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	Repository interface {
		// GetAccessible returns the collections the user owns, collaborates on or that are public.
		// Without a user only public collections are returned.
		GetAccessible(ctx context.Context, userId *string) ([]Collection, error)
		GetById(ctx context.Context, collectionId string) (*Collection, error)
		Create(ctx context.Context, collection *Collection) error
		Update(ctx context.Context, collection *Collection) error
		Delete(ctx context.Context, collection *Collection) error
	}

	collectionRepository struct {
		db *gorm.DB
	}
)

func CreateRepository(db *gorm.DB) Repository {
	return &collectionRepository{
		db: db,
	}
}

func (r *collectionRepository) GetAccessible(ctx context.Context, userId *string) ([]Collection, error) {
	collections := make([]Collection, 0)
	query := r.db.WithContext(ctx).Preload("Owner").Order("collections.created_at DESC")

	if userId != nil {
		sharedIds := r.db.Model(&Collaborator{}).Select("collection_id").Where("user_id = ?", *userId)
		query = query.Where(
			"collections.owner_id = ? OR collections.is_public = ? OR collections.id IN (?)",
			*userId, true, sharedIds,
		)
	} else {
		query = query.Where("collections.is_public = ?", true)
	}

	if err := query.Find(&collections).Error; err != nil {
		log.Errorf("[DB] Failed to fetch collections. Error: %s", err.Error())
		return nil, utils.ErrDatabaseError
	}

	return collections, nil
}

func (r *collectionRepository) GetById(ctx context.Context, collectionId string) (*Collection, error) {
	collection := &Collection{}
	result := r.db.WithContext(ctx).Where("id = ?", collectionId).Preload("Owner").First(collection)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	} else if result.Error != nil {
		log.Errorf("[DB] Failed to fetch collection. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	return collection, nil
}

func (r *collectionRepository) Create(ctx context.Context, collection *Collection) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(collection).Error; err != nil {
		log.Errorf("[DB] Failed to create collection. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

func (r *collectionRepository) Update(ctx context.Context, collection *Collection) error {
	collection.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).
		Model(&Collection{}).
		Where("id = ?", collection.ID).
		Updates(map[string]any{
			"name":        collection.Name,
			"description": collection.Description,
			"is_public":   collection.IsPublic,
			"updated_at":  collection.UpdatedAt,
		})

	if result.Error != nil {
		log.Errorf("[DB] Failed to update collection. Error: %s", result.Error.Error())
		return utils.ErrDatabaseError
	} else if result.RowsAffected == 0 {
		return utils.ErrNotFound
	}

	return nil
}

func (r *collectionRepository) Delete(ctx context.Context, collection *Collection) error {
	if err := r.db.WithContext(ctx).Delete(&Collection{}, "id = ?", collection.ID).Error; err != nil {
		log.Errorf("[DB] Failed to delete collection. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}
