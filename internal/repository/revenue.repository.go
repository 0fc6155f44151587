package repository

import (
	"context"

	"github.com/nimasrn/invoice-dashboard/internal/model"
	"github.com/nimasrn/invoice-dashboard/pkg/pg"
	"gorm.io/gorm/clause"
)

type RevenueRepository struct {
	*pg.DB
}

func NewRevenueRepository(db *pg.DB) *RevenueRepository {
	return &RevenueRepository{
		db,
	}
}

// All returns the monthly revenue series in chronological order.
func (r *RevenueRepository) All(ctx context.Context) ([]*model.Revenue, error) {
	var entities []*RevenueEntity
	err := r.Read(ctx).WithContext(ctx).
		Order("month ASC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}

	return toRevenueModels(entities), nil
}

// Upsert exists for the seed path; revenue rows have no mutation path in
// the dashboard itself.
func (r *RevenueRepository) Upsert(ctx context.Context, rev *model.Revenue) error {
	entity := &RevenueEntity{Month: rev.Month, Revenue: rev.Revenue}
	return r.Write(ctx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{"revenue"}),
		}).
		Create(entity).
		Error
}
