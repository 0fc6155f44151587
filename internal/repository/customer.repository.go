package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/nimasrn/invoice-dashboard/internal/model"
	"github.com/nimasrn/invoice-dashboard/pkg/pg"
)

type CustomerRepository struct {
	*pg.DB
}

func NewCustomerRepository(db *pg.DB) *CustomerRepository {
	return &CustomerRepository{
		db,
	}
}

// Create exists for the seed path; the dashboard itself has no
// create-customer mutation.
func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	entity := toCustomerEntity(c)
	if entity.ID == "" {
		entity.ID = uuid.NewString()
	}

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toCustomerModel(entity), nil
}

// All returns every customer's id and name, sorted by name, for select
// inputs.
func (r *CustomerRepository) All(ctx context.Context) ([]*model.CustomerField, error) {
	var rows []*struct {
		ID   string `gorm:"column:id"`
		Name string `gorm:"column:name"`
	}
	err := r.Read(ctx).WithContext(ctx).
		Model(&CustomerEntity{}).
		Select("id, name").
		Order("name ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	fields := make([]*model.CustomerField, len(rows))
	for i, row := range rows {
		fields[i] = &model.CustomerField{ID: row.ID, Name: row.Name}
	}
	return fields, nil
}

// ListFiltered returns customers whose name or email contains the query
// (case-insensitive), each with their invoice count and pending/paid sums
// in minor units, sorted by name.
func (r *CustomerRepository) ListFiltered(ctx context.Context, query string) ([]*model.CustomerWithTotals, error) {
	q := r.Read(ctx).WithContext(ctx).
		Table("customers AS c").
		Select(`
            c.id,
            c.name,
            c.email,
            c.image_url,
            COUNT(i.id)                                                           AS total_invoices,
            COALESCE(SUM(CASE WHEN i.status = 'pending' THEN i.amount ELSE 0 END), 0) AS total_pending,
            COALESCE(SUM(CASE WHEN i.status = 'paid' THEN i.amount ELSE 0 END), 0)    AS total_paid
        `).
		Joins("LEFT JOIN invoices AS i ON i.customer_id = c.id").
		Group("c.id, c.name, c.email, c.image_url").
		Order("c.name ASC")

	if query = strings.TrimSpace(query); query != "" {
		like := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(c.name) LIKE ? OR LOWER(c.email) LIKE ?", like, like)
	}

	var rows []*struct {
		ID            string `gorm:"column:id"`
		Name          string `gorm:"column:name"`
		Email         string `gorm:"column:email"`
		ImageURL      string `gorm:"column:image_url"`
		TotalInvoices int64  `gorm:"column:total_invoices"`
		TotalPending  int64  `gorm:"column:total_pending"`
		TotalPaid     int64  `gorm:"column:total_paid"`
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	customers := make([]*model.CustomerWithTotals, len(rows))
	for i, row := range rows {
		customers[i] = &model.CustomerWithTotals{
			ID:            row.ID,
			Name:          row.Name,
			Email:         row.Email,
			ImageURL:      row.ImageURL,
			TotalInvoices: row.TotalInvoices,
			TotalPending:  row.TotalPending,
			TotalPaid:     row.TotalPaid,
		}
	}
	return customers, nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.Read(ctx).WithContext(ctx).
		Model(&CustomerEntity{}).
		Count(&total).
		Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
