package model

type Customer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

func (Customer) TableName() string { return "customers" }

// CustomerField is the id/name pair used to populate select inputs.
type CustomerField struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CustomerSummary is one row of the customers table: a customer annotated
// with invoice aggregates, both totals already formatted for display.
type CustomerSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"image_url"`
	TotalInvoices int64  `json:"total_invoices"`
	TotalPending  string `json:"total_pending"`
	TotalPaid     string `json:"total_paid"`
}

// CustomerWithTotals is the raw aggregate row before formatting, sums in
// minor units.
type CustomerWithTotals struct {
	ID            string
	Name          string
	Email         string
	ImageURL      string
	TotalInvoices int64
	TotalPending  int64
	TotalPaid     int64
}
