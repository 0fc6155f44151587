package services

import (
	"context"

	"github.com/nimasrn/invoice-dashboard/pkg/pg"
)

type HealthService struct {
	db *pg.DB
}

func NewHealthService(db *pg.DB) *HealthService {
	return &HealthService{db: db}
}

func (s *HealthService) Get() error {
	if s.db == nil {
		return nil
	}
	var one int
	return s.db.Read(context.Background()).Raw("SELECT 1").Scan(&one).Error
}
