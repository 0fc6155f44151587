package fixtures

import (
	"github.com/google/uuid"
	"github.com/nimasrn/invoice-dashboard/internal/model"
)

var (
	TestCustomerAcme = model.Customer{
		ID:       "c4a0d0f1-0000-4000-8000-000000000001",
		Name:     "Acme Corp",
		Email:    "billing@acme.test",
		ImageURL: "/customers/acme.png",
	}

	TestCustomerDelba = model.Customer{
		ID:       "c4a0d0f1-0000-4000-8000-000000000002",
		Name:     "Delba de Oliveira",
		Email:    "delba@oliveira.test",
		ImageURL: "/customers/delba.png",
	}

	TestCustomerNoInvoices = model.Customer{
		ID:       "c4a0d0f1-0000-4000-8000-000000000003",
		Name:     "Zero Invoices Ltd",
		Email:    "nothing@zero.test",
		ImageURL: "/customers/zero.png",
	}
)

func NewTestInvoice(customerID string, amount int64, status model.InvoiceStatus, date string) *model.Invoice {
	return &model.Invoice{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Amount:     amount,
		Status:     status,
		Date:       date,
	}
}

func NewTestRevenue(month string, amount int64) *model.Revenue {
	return &model.Revenue{
		Month:   month,
		Revenue: amount,
	}
}

func NewTestUser(email, passwordHash string) *model.User {
	return &model.User{
		ID:       uuid.NewString(),
		Name:     "Test User",
		Email:    email,
		Password: passwordHash,
	}
}

var (
	ValidInvoiceForm = map[string]string{
		"customer_id": TestCustomerAcme.ID,
		"amount":      "250.00",
		"status":      "pending",
	}

	InvalidInvoiceForms = []map[string]string{
		{"customer_id": "", "amount": "250.00", "status": "pending"},
		{"customer_id": TestCustomerAcme.ID, "amount": "0", "status": "pending"},
		{"customer_id": TestCustomerAcme.ID, "amount": "-5", "status": "paid"},
		{"customer_id": TestCustomerAcme.ID, "amount": "250.00", "status": "overdue"},
		{"customer_id": TestCustomerAcme.ID, "amount": "abc", "status": "paid"},
	}
)
