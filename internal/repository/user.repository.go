package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nimasrn/invoice-dashboard/internal/model"
	"github.com/nimasrn/invoice-dashboard/pkg/pg"
	"gorm.io/gorm"
)

type UserRepository struct {
	*pg.DB
}

func NewUserRepository(db *pg.DB) *UserRepository {
	return &UserRepository{
		db,
	}
}

// GetByEmail returns (nil, nil) when no user has the given email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var entity UserEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("email = ?", email).
		First(&entity).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toUserModel(&entity), nil
}

// Create exists for the seed path; users are provisioned externally.
func (r *UserRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	entity := toUserEntity(u)
	if entity.ID == "" {
		entity.ID = uuid.NewString()
	}

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toUserModel(entity), nil
}
