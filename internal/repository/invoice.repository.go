package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/nimasrn/invoice-dashboard/internal/model"
	"github.com/nimasrn/invoice-dashboard/pkg/pg"
	"gorm.io/gorm"
)

var (
	// ErrInvoiceNotFound is returned by writes that touched zero rows.
	ErrInvoiceNotFound = errors.New("invoice not found")
)

type InvoiceRepository struct {
	*pg.DB
}

func NewInvoiceRepository(db *pg.DB) *InvoiceRepository {
	return &InvoiceRepository{
		db,
	}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *model.Invoice) (*model.Invoice, error) {
	entity := toInvoiceEntity(inv)
	if entity.ID == "" {
		entity.ID = uuid.NewString()
	}

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toInvoiceModel(entity), nil
}

// Update replaces customer_id, amount and status of an existing invoice.
// The date column is deliberately left untouched.
func (r *InvoiceRepository) Update(ctx context.Context, inv *model.Invoice) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&InvoiceEntity{}).
		Where("id = ?", inv.ID).
		Updates(map[string]interface{}{
			"customer_id": inv.CustomerID,
			"amount":      inv.Amount,
			"status":      string(inv.Status),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	result := r.Write(ctx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&InvoiceEntity{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

// GetByID returns (nil, nil) when no invoice exists with the given id;
// absence is not a fault.
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*model.Invoice, error) {
	var entity InvoiceEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toInvoiceModel(&entity), nil
}

// Latest returns the most recently dated invoices joined with their
// customer's display fields.
func (r *InvoiceRepository) Latest(ctx context.Context, limit int) ([]*model.InvoiceWithCustomer, error) {
	var rows []*invoiceCustomerRow
	err := r.Read(ctx).WithContext(ctx).
		Table("invoices AS i").
		Select("i.id, i.customer_id, i.amount, i.status, i.date, c.name, c.email, c.image_url").
		Joins("JOIN customers AS c ON c.id = i.customer_id").
		Order("i.date DESC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	return toInvoiceWithCustomerModels(rows), nil
}

// ListFiltered returns one page of the invoices table matching the
// free-text query, newest date first.
func (r *InvoiceRepository) ListFiltered(ctx context.Context, query string, limit, offset int) ([]*model.InvoiceWithCustomer, error) {
	var rows []*invoiceCustomerRow
	err := r.filteredQuery(ctx, query).
		Select("i.id, i.customer_id, i.amount, i.status, i.date, c.name, c.email, c.image_url").
		Order("i.date DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	return toInvoiceWithCustomerModels(rows), nil
}

// CountFiltered counts invoices matching the same predicate ListFiltered
// pages over.
func (r *InvoiceRepository) CountFiltered(ctx context.Context, query string) (int64, error) {
	var total int64
	if err := r.filteredQuery(ctx, query).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *InvoiceRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.Read(ctx).WithContext(ctx).
		Model(&InvoiceEntity{}).
		Count(&total).
		Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// TotalsByStatus sums invoice amounts grouped into paid and pending
// buckets; an empty table yields zero for both.
func (r *InvoiceRepository) TotalsByStatus(ctx context.Context) (paid int64, pending int64, err error) {
	var row struct {
		Paid    int64 `gorm:"column:paid"`
		Pending int64 `gorm:"column:pending"`
	}
	err = r.Read(ctx).WithContext(ctx).
		Model(&InvoiceEntity{}).
		Select(`
            COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0)    AS paid,
            COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0) AS pending
        `).
		Scan(&row).
		Error
	if err != nil {
		return 0, 0, err
	}
	return row.Paid, row.Pending, nil
}

// filteredQuery builds the shared invoice/customer join with the free-text
// predicate: an OR across customer name/email (case-insensitive substring),
// exact date, status substring, and amount equality in minor units when the
// query parses as a number. A non-numeric query never matches on amount.
func (r *InvoiceRepository) filteredQuery(ctx context.Context, query string) *gorm.DB {
	q := r.Read(ctx).WithContext(ctx).
		Table("invoices AS i").
		Joins("JOIN customers AS c ON c.id = i.customer_id")

	query = strings.TrimSpace(query)
	if query == "" {
		return q
	}

	like := "%" + strings.ToLower(query) + "%"
	cond := "LOWER(c.name) LIKE ? OR LOWER(c.email) LIKE ? OR i.date = ? OR LOWER(i.status) LIKE ?"
	args := []interface{}{like, like, query, like}

	if amount, err := strconv.ParseFloat(query, 64); err == nil {
		cond += " OR i.amount = ?"
		args = append(args, amount)
	}

	return q.Where(cond, args...)
}
