package repository

import (
	"github.com/nimasrn/invoice-dashboard/internal/model"
)

type InvoiceEntity struct {
	ID         string          `db:"id"          gorm:"primaryKey;column:id"`
	CustomerID string          `db:"customer_id" gorm:"column:customer_id;not null;index"`
	Customer   *CustomerEntity `gorm:"foreignKey:CustomerID;references:ID;constraint:OnDelete:CASCADE"`
	Amount     int64           `db:"amount"      gorm:"column:amount;not null"`
	Status     string          `db:"status"      gorm:"column:status;not null;default:pending"`
	Date       string          `db:"date"        gorm:"column:date;not null;index"`
}

func (InvoiceEntity) TableName() string {
	return "invoices"
}

func toInvoiceEntity(m *model.Invoice) *InvoiceEntity {
	if m == nil {
		return nil
	}
	return &InvoiceEntity{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		Amount:     m.Amount,
		Status:     string(m.Status),
		Date:       m.Date,
	}
}

func toInvoiceModel(e *InvoiceEntity) *model.Invoice {
	if e == nil {
		return nil
	}
	return &model.Invoice{
		ID:         e.ID,
		CustomerID: e.CustomerID,
		Amount:     e.Amount,
		Status:     model.InvoiceStatus(e.Status),
		Date:       e.Date,
	}
}

// invoiceCustomerRow is the scan target for invoice/customer joins.
type invoiceCustomerRow struct {
	ID         string `gorm:"column:id"`
	CustomerID string `gorm:"column:customer_id"`
	Name       string `gorm:"column:name"`
	Email      string `gorm:"column:email"`
	ImageURL   string `gorm:"column:image_url"`
	Amount     int64  `gorm:"column:amount"`
	Status     string `gorm:"column:status"`
	Date       string `gorm:"column:date"`
}

func toInvoiceWithCustomerModels(rows []*invoiceCustomerRow) []*model.InvoiceWithCustomer {
	if rows == nil {
		return nil
	}
	models := make([]*model.InvoiceWithCustomer, len(rows))
	for i, r := range rows {
		models[i] = &model.InvoiceWithCustomer{
			ID:         r.ID,
			CustomerID: r.CustomerID,
			Name:       r.Name,
			Email:      r.Email,
			ImageURL:   r.ImageURL,
			Amount:     r.Amount,
			Status:     model.InvoiceStatus(r.Status),
			Date:       r.Date,
		}
	}
	return models
}
