package repository

import (
	"github.com/nimasrn/invoice-dashboard/internal/model"
)

type CustomerEntity struct {
	ID       string `db:"id"        gorm:"primaryKey;column:id"`
	Name     string `db:"name"      gorm:"column:name;not null"`
	Email    string `db:"email"     gorm:"column:email;not null;unique"`
	ImageURL string `db:"image_url" gorm:"column:image_url"`
}

func (CustomerEntity) TableName() string {
	return "customers"
}

func toCustomerEntity(m *model.Customer) *CustomerEntity {
	if m == nil {
		return nil
	}
	return &CustomerEntity{
		ID:       m.ID,
		Name:     m.Name,
		Email:    m.Email,
		ImageURL: m.ImageURL,
	}
}

func toCustomerModel(e *CustomerEntity) *model.Customer {
	if e == nil {
		return nil
	}
	return &model.Customer{
		ID:       e.ID,
		Name:     e.Name,
		Email:    e.Email,
		ImageURL: e.ImageURL,
	}
}
