package user

import (
	"braindumpBackend/utils"
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

type (
	Repository interface {
		Create(ctx context.Context, user *User) error
		Update(ctx context.Context, user *User) error
		GetById(ctx context.Context, userId string) (*User, error)
		GetByEmail(ctx context.Context, email string) (*User, error)
		GetBySub(ctx context.Context, sub string) (*User, bool, error)
		UserToOut(user User) UserOut
	}

	userRepository struct {
		db *gorm.DB
	}
)

func CreateRepository(db *gorm.DB) Repository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(ctx context.Context, user *User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrConflict
	} else if err != nil {
		log.Errorf("[DB] Failed to create user. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

func (r *userRepository) Update(ctx context.Context, user *User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		log.Errorf("[DB] Failed to update user. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

func (r *userRepository) GetById(ctx context.Context, userId string) (*User, error) {
	return r.first(ctx, "id = ?", userId)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepository) GetBySub(ctx context.Context, sub string) (*User, bool, error) {
	user, err := r.first(ctx, "sub = ?", sub)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}

	return user, true, nil
}

func (r *userRepository) first(ctx context.Context, query string, arg string) (*User, error) {
	user := &User{}
	result := r.db.WithContext(ctx).Where(query, arg).First(user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	} else if result.Error != nil {
		log.Errorf("[DB] Failed to fetch user. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	return user, nil
}

func (r *userRepository) UserToOut(user User) UserOut {
	return UserOut{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
