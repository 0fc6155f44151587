package repository

import (
	"github.com/nimasrn/invoice-dashboard/internal/model"
)

type RevenueEntity struct {
	Month   string `db:"month"   gorm:"primaryKey;column:month"`
	Revenue int64  `db:"revenue" gorm:"column:revenue;not null"`
}

func (RevenueEntity) TableName() string {
	return "revenue"
}

func toRevenueModels(entities []*RevenueEntity) []*model.Revenue {
	if entities == nil {
		return nil
	}
	models := make([]*model.Revenue, len(entities))
	for i, e := range entities {
		models[i] = &model.Revenue{Month: e.Month, Revenue: e.Revenue}
	}
	return models
}
