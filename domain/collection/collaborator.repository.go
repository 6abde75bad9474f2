package collection

import (
	"braindumpBackend/utils"
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	CollaboratorRepository interface {
		GetGrant(ctx context.Context, collectionId string, userId string) (*Collaborator, error)
		// GetGrantsOfUser returns the user's grants on the given collections indexed by collection id.
		GetGrantsOfUser(ctx context.Context, userId string, collectionIds []string) (map[string]Collaborator, error)
		GetByCollection(ctx context.Context, collectionId string) ([]Collaborator, error)
		CountByCollections(ctx context.Context, collectionIds []string) (map[string]int, error)
		Create(ctx context.Context, collaborator *Collaborator) error
		UpdateFlags(ctx context.Context, collaborator *Collaborator) error
		Delete(ctx context.Context, collectionId string, userId string) error
	}

	collaboratorRepository struct {
		db *gorm.DB
	}
)

func CreateCollaboratorRepository(db *gorm.DB) CollaboratorRepository {
	return &collaboratorRepository{
		db: db,
	}
}

func (r *collaboratorRepository) GetGrant(ctx context.Context, collectionId string, userId string) (*Collaborator, error) {
	collaborator := &Collaborator{}
	result := r.db.WithContext(ctx).
		Where("collection_id = ? AND user_id = ?", collectionId, userId).
		Preload("User").
		First(collaborator)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	} else if result.Error != nil {
		log.Errorf("[DB] Failed to fetch collaborator. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	return collaborator, nil
}

func (r *collaboratorRepository) GetGrantsOfUser(ctx context.Context, userId string, collectionIds []string) (map[string]Collaborator, error) {
	grants := make(map[string]Collaborator)
	if len(collectionIds) == 0 {
		return grants, nil
	}

	collaborators := make([]Collaborator, 0)
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND collection_id IN ?", userId, collectionIds).
		Find(&collaborators)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch grants of user. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	for _, collaborator := range collaborators {
		grants[collaborator.CollectionID] = collaborator
	}

	return grants, nil
}

func (r *collaboratorRepository) GetByCollection(ctx context.Context, collectionId string) ([]Collaborator, error) {
	collaborators := make([]Collaborator, 0)
	result := r.db.WithContext(ctx).
		Where("collection_id = ?", collectionId).
		Preload("User").
		Order("invited_at ASC").
		Find(&collaborators)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch collaborators. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	return collaborators, nil
}

func (r *collaboratorRepository) CountByCollections(ctx context.Context, collectionIds []string) (map[string]int, error) {
	counts := make(map[string]int, len(collectionIds))
	if len(collectionIds) == 0 {
		return counts, nil
	}

	var rows []struct {
		CollectionID string
		Count        int
	}
	result := r.db.WithContext(ctx).
		Model(&Collaborator{}).
		Select("collection_id, COUNT(*) AS count").
		Where("collection_id IN ?", collectionIds).
		Group("collection_id").
		Scan(&rows)

	if result.Error != nil {
		log.Errorf("[DB] Failed to count collaborators. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	for _, row := range rows {
		counts[row.CollectionID] = row.Count
	}

	return counts, nil
}

func (r *collaboratorRepository) Create(ctx context.Context, collaborator *Collaborator) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(collaborator).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrConflict
	} else if err != nil {
		log.Errorf("[DB] Failed to create collaborator. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

func (r *collaboratorRepository) UpdateFlags(ctx context.Context, collaborator *Collaborator) error {
	result := r.db.WithContext(ctx).
		Model(&Collaborator{}).
		Where("collection_id = ? AND user_id = ?", collaborator.CollectionID, collaborator.UserID).
		Updates(map[string]any{
			"can_edit": collaborator.CanEdit,
			"can_vote": collaborator.CanVote,
		})

	if result.Error != nil {
		log.Errorf("[DB] Failed to update collaborator. Error: %s", result.Error.Error())
		return utils.ErrDatabaseError
	} else if result.RowsAffected == 0 {
		return utils.ErrNotFound
	}

	return nil
}

func (r *collaboratorRepository) Delete(ctx context.Context, collectionId string, userId string) error {
	result := r.db.WithContext(ctx).
		Where("collection_id = ? AND user_id = ?", collectionId, userId).
		Delete(&Collaborator{})

	if result.Error != nil {
		log.Errorf("[DB] Failed to delete collaborator. Error: %s", result.Error.Error())
		return utils.ErrDatabaseError
	} else if result.RowsAffected == 0 {
		return utils.ErrNotFound
	}

	return nil
}
