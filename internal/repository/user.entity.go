package repository

import (
	"github.com/nimasrn/invoice-dashboard/internal/model"
)

type UserEntity struct {
	ID       string `db:"id"       gorm:"primaryKey;column:id"`
	Name     string `db:"name"     gorm:"column:name;not null"`
	Email    string `db:"email"    gorm:"column:email;not null;unique"`
	Password string `db:"password" gorm:"column:password;not null"`
}

func (UserEntity) TableName() string {
	return "users"
}

func toUserEntity(m *model.User) *UserEntity {
	if m == nil {
		return nil
	}
	return &UserEntity{
		ID:       m.ID,
		Name:     m.Name,
		Email:    m.Email,
		Password: m.Password,
	}
}

func toUserModel(e *UserEntity) *model.User {
	if e == nil {
		return nil
	}
	return &model.User{
		ID:       e.ID,
		Name:     e.Name,
		Email:    e.Email,
		Password: e.Password,
	}
}
