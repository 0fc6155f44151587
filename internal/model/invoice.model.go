package model

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Invoice is the stored record. Amount is kept in minor currency units
// (cents) so storage never touches floating point. Date is a calendar date
// string (YYYY-MM-DD) stamped at creation and untouched on update.
type Invoice struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Amount     int64         `json:"amount"`
	Status     InvoiceStatus `json:"status"`
	Date       string        `json:"date"`
}

func (Invoice) TableName() string { return "invoices" }

// InvoiceWithCustomer is an invoice row joined with its customer's
// display fields, amount still in minor units.
type InvoiceWithCustomer struct {
	ID         string
	CustomerID string
	Name       string
	Email      string
	ImageURL   string
	Amount     int64
	Status     InvoiceStatus
	Date       string
}

// LatestInvoice is one entry of the dashboard's latest-invoices card,
// amount formatted for display.
type LatestInvoice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
	Amount   string `json:"amount"`
}

// FilteredInvoice is one row of the paginated invoices table.
type FilteredInvoice struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	ImageURL   string        `json:"image_url"`
	Amount     int64         `json:"amount"`
	Status     InvoiceStatus `json:"status"`
	Date       string        `json:"date"`
}

// InvoiceForm is a single invoice shaped for the edit form, amount
// converted back to major units.
type InvoiceForm struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Amount     float64       `json:"amount"`
	Status     InvoiceStatus `json:"status"`
}

// CardData holds the dashboard's aggregate cards, sums formatted as
// currency strings.
type CardData struct {
	NumberOfInvoices     int64  `json:"number_of_invoices"`
	NumberOfCustomers    int64  `json:"number_of_customers"`
	TotalPaidInvoices    string `json:"total_paid_invoices"`
	TotalPendingInvoices string `json:"total_pending_invoices"`
}
