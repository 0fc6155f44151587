package services

import (
	"context"
	"errors"
	"sync"

	"github.com/nimasrn/invoice-dashboard/internal/model"
	"github.com/nimasrn/invoice-dashboard/pkg/logger"
	"github.com/nimasrn/invoice-dashboard/pkg/money"
)

// InvoicesPerPage is the fixed page size of the invoices table.
const InvoicesPerPage = 6

const latestInvoicesLimit = 5

// Read-path faults are logged with full detail and surfaced to the caller
// only as one of these generic errors.
var (
	ErrFetchRevenue           = errors.New("failed to fetch revenue data")
	ErrFetchLatestInvoices    = errors.New("failed to fetch the latest invoices")
	ErrFetchCardData          = errors.New("failed to fetch card data")
	ErrFetchInvoices          = errors.New("failed to fetch invoices")
	ErrFetchInvoicesPages     = errors.New("failed to fetch total number of invoices")
	ErrFetchInvoice           = errors.New("failed to fetch invoice")
	ErrFetchCustomers         = errors.New("failed to fetch all customers")
	ErrFetchFilteredCustomers = errors.New("failed to fetch customer table")
)

type InvoiceReadRepository interface {
	GetByID(ctx context.Context, id string) (*model.Invoice, error)
	Latest(ctx context.Context, limit int) ([]*model.InvoiceWithCustomer, error)
	ListFiltered(ctx context.Context, query string, limit, offset int) ([]*model.InvoiceWithCustomer, error)
	CountFiltered(ctx context.Context, query string) (int64, error)
	Count(ctx context.Context) (int64, error)
	TotalsByStatus(ctx context.Context) (paid int64, pending int64, err error)
}

type CustomerReadRepository interface {
	All(ctx context.Context) ([]*model.CustomerField, error)
	ListFiltered(ctx context.Context, query string) ([]*model.CustomerWithTotals, error)
	Count(ctx context.Context) (int64, error)
}

type RevenueReadRepository interface {
	All(ctx context.Context) ([]*model.Revenue, error)
}

type DashboardService struct {
	invoices  InvoiceReadRepository
	customers CustomerReadRepository
	revenue   RevenueReadRepository
}

func NewDashboardService(invoices InvoiceReadRepository, customers CustomerReadRepository, revenue RevenueReadRepository) *DashboardService {
	return &DashboardService{
		invoices:  invoices,
		customers: customers,
		revenue:   revenue,
	}
}

// FetchRevenue returns the monthly revenue series in chronological order.
// This read is never served from the view cache; every call hits the store.
func (s *DashboardService) FetchRevenue(ctx context.Context) ([]*model.Revenue, error) {
	rows, err := s.revenue.All(ctx)
	if err != nil {
		logger.Error("revenue query failed", "error", err)
		return nil, ErrFetchRevenue
	}
	return rows, nil
}

// FetchLatestInvoices returns the five most recently dated invoices with
// their customer's display fields and the amount formatted for display.
func (s *DashboardService) FetchLatestInvoices(ctx context.Context) ([]*model.LatestInvoice, error) {
	rows, err := s.invoices.Latest(ctx, latestInvoicesLimit)
	if err != nil {
		logger.Error("latest invoices query failed", "error", err)
		return nil, ErrFetchLatestInvoices
	}

	latest := make([]*model.LatestInvoice, len(rows))
	for i, row := range rows {
		latest[i] = &model.LatestInvoice{
			ID:       row.ID,
			Name:     row.Name,
			Email:    row.Email,
			ImageURL: row.ImageURL,
			Amount:   money.FormatCents(row.Amount),
		}
	}
	return latest, nil
}

// FetchCardData computes the dashboard cards. The three aggregates are
// dispatched to the store concurrently and joined once all complete; this
// is purely a latency optimization and carries no atomicity guarantee
// across the reads.
func (s *DashboardService) FetchCardData(ctx context.Context) (*model.CardData, error) {
	var (
		wg            sync.WaitGroup
		invoiceCount  int64
		customerCount int64
		paid, pending int64
	)
	errs := make([]error, 3)

	wg.Add(3)
	go func() {
		defer wg.Done()
		invoiceCount, errs[0] = s.invoices.Count(ctx)
	}()
	go func() {
		defer wg.Done()
		customerCount, errs[1] = s.customers.Count(ctx)
	}()
	go func() {
		defer wg.Done()
		paid, pending, errs[2] = s.invoices.TotalsByStatus(ctx)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			logger.Error("card data query failed", "error", err)
			return nil, ErrFetchCardData
		}
	}

	return &model.CardData{
		NumberOfInvoices:     invoiceCount,
		NumberOfCustomers:    customerCount,
		TotalPaidInvoices:    money.FormatCents(paid),
		TotalPendingInvoices: money.FormatCents(pending),
	}, nil
}

// FetchFilteredInvoices returns one page of the invoices table matching
// the free-text query, newest date first. Pages are 1-indexed.
func (s *DashboardService) FetchFilteredInvoices(ctx context.Context, query string, page int) ([]*model.FilteredInvoice, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * InvoicesPerPage

	rows, err := s.invoices.ListFiltered(ctx, query, InvoicesPerPage, offset)
	if err != nil {
		logger.Error("filtered invoices query failed", "error", err, "query", query, "page", page)
		return nil, ErrFetchInvoices
	}

	invoices := make([]*model.FilteredInvoice, len(rows))
	for i, row := range rows {
		invoices[i] = &model.FilteredInvoice{
			ID:         row.ID,
			CustomerID: row.CustomerID,
			Name:       row.Name,
			Email:      row.Email,
			ImageURL:   row.ImageURL,
			Amount:     row.Amount,
			Status:     row.Status,
			Date:       row.Date,
		}
	}
	return invoices, nil
}

// FetchInvoicesPages returns the number of pages the filtered invoices
// table spans for the same predicate FetchFilteredInvoices pages over.
func (s *DashboardService) FetchInvoicesPages(ctx context.Context, query string) (int, error) {
	total, err := s.invoices.CountFiltered(ctx, query)
	if err != nil {
		logger.Error("invoice count query failed", "error", err, "query", query)
		return 0, ErrFetchInvoicesPages
	}
	return int((total + InvoicesPerPage - 1) / InvoicesPerPage), nil
}

// FetchInvoiceByID returns a single invoice shaped for the edit form,
// amount converted to major units. Absence yields (nil, nil), never an
// error.
func (s *DashboardService) FetchInvoiceByID(ctx context.Context, id string) (*model.InvoiceForm, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		logger.Error("invoice lookup failed", "error", err, "id", id)
		return nil, ErrFetchInvoice
	}
	if inv == nil {
		return nil, nil
	}

	return &model.InvoiceForm{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     money.FromCents(inv.Amount),
		Status:     inv.Status,
	}, nil
}

// FetchCustomers returns every customer's id and name for select inputs.
func (s *DashboardService) FetchCustomers(ctx context.Context) ([]*model.CustomerField, error) {
	fields, err := s.customers.All(ctx)
	if err != nil {
		logger.Error("customers query failed", "error", err)
		return nil, ErrFetchCustomers
	}
	return fields, nil
}

// FetchFilteredCustomers returns the customers table matching the query,
// totals formatted for display.
func (s *DashboardService) FetchFilteredCustomers(ctx context.Context, query string) ([]*model.CustomerSummary, error) {
	rows, err := s.customers.ListFiltered(ctx, query)
	if err != nil {
		logger.Error("filtered customers query failed", "error", err, "query", query)
		return nil, ErrFetchFilteredCustomers
	}

	summaries := make([]*model.CustomerSummary, len(rows))
	for i, row := range rows {
		summaries[i] = &model.CustomerSummary{
			ID:            row.ID,
			Name:          row.Name,
			Email:         row.Email,
			ImageURL:      row.ImageURL,
			TotalInvoices: row.TotalInvoices,
			TotalPending:  money.FormatCents(row.TotalPending),
			TotalPaid:     money.FormatCents(row.TotalPaid),
		}
	}
	return summaries, nil
}
