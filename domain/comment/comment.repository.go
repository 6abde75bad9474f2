package comment

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
		GetByItem(ctx context.Context, itemId string) ([]Comment, error)
		GetById(ctx context.Context, commentId string) (*Comment, error)
		Create(ctx context.Context, comment *Comment) error
		Update(ctx context.Context, comment *Comment) error
		Delete(ctx context.Context, comment *Comment) error
	}

	commentRepository struct {
		db *gorm.DB
	}
)

func CreateRepository(db *gorm.DB) Repository {
	return &commentRepository{
		db: db,
	}
}

func (r *commentRepository) GetByItem(ctx context.Context, itemId string) ([]Comment, error) {
	comments := make([]Comment, 0)
	result := r.db.WithContext(ctx).
		Where("item_id = ?", itemId).
		Preload("Creator").
		Order("created_at, id").
		Find(&comments)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch comments. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	return comments, nil
}

func (r *commentRepository) GetById(ctx context.Context, commentId string) (*Comment, error) {
	comment := &Comment{}
	result := r.db.WithContext(ctx).Where("id = ?", commentId).Preload("Creator").First(comment)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	} else if result.Error != nil {
		log.Errorf("[DB] Failed to fetch comment. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	return comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *Comment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		log.Errorf("[DB] Failed to create comment. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

func (r *commentRepository) Update(ctx context.Context, comment *Comment) error {
	comment.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).
		Model(&Comment{}).
		Where("id = ?", comment.ID).
		Updates(map[string]any{
			"content":    comment.Content,
			"updated_at": comment.UpdatedAt,
		})

	if result.Error != nil {
		log.Errorf("[DB] Failed to update comment. Error: %s", result.Error.Error())
		return utils.ErrDatabaseError
	} else if result.RowsAffected == 0 {
		return utils.ErrNotFound
	}

	return nil
}

func (r *commentRepository) Delete(ctx context.Context, comment *Comment) error {
	if err := r.db.WithContext(ctx).Delete(&Comment{}, "id = ?", comment.ID).Error; err != nil {
		log.Errorf("[DB] Failed to delete comment. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}
