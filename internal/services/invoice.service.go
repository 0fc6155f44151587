package services

import (
	"context"
	"time"

	"github.com/nimasrn/invoice-dashboard/internal/forms"
	"github.com/nimasrn/invoice-dashboard/internal/model"
	"github.com/nimasrn/invoice-dashboard/internal/viewcache"
	"github.com/nimasrn/invoice-dashboard/pkg/logger"
	"github.com/nimasrn/invoice-dashboard/pkg/money"
	"github.com/nimasrn/invoice-dashboard/pkg/prom"
)

// Logical paths the mutation layer invalidates after a successful write.
const (
	DashboardPath = "/dashboard"
	InvoicesPath  = "/dashboard/invoices"
	CustomersPath = "/dashboard/customers"
)

// ActionResult is the outcome of a form action. Exactly one of these
// shapes applies:
//   - RedirectTo set: the success path, a terminal transfer of control
//     the caller must act on instead of rendering.
//   - Errors set (plus Message): validation failure, rendered inline on
//     the originating form.
//   - Message set alone: persistence failure with a generic description;
//     the detailed fault is only logged.
//   - zero value: success with no redirect (delete).
type ActionResult struct {
	Errors     forms.FieldErrors `json:"errors,omitempty"`
	Message    string            `json:"message,omitempty"`
	RedirectTo string            `json:"-"`
}

func (r ActionResult) Failed() bool {
	return r.Message != "" || len(r.Errors) > 0
}

type InvoiceWriteRepository interface {
	Create(ctx context.Context, inv *model.Invoice) (*model.Invoice, error)
	Update(ctx context.Context, inv *model.Invoice) error
	Delete(ctx context.Context, id string) error
}

type InvoiceService struct {
	repo  InvoiceWriteRepository
	views viewcache.Revalidator
}

func NewInvoiceService(repo InvoiceWriteRepository, views viewcache.Revalidator) *InvoiceService {
	return &InvoiceService{
		repo:  repo,
		views: views,
	}
}

// Create validates the submitted form, converts the amount to minor units,
// stamps the current calendar date, inserts the invoice, marks the invoice
// views stale and transfers control to the invoices list.
func (s *InvoiceService) Create(ctx context.Context, form forms.Values) ActionResult {
	in, fieldErrs := forms.ParseInvoice(form)
	if fieldErrs != nil {
		return ActionResult{
			Errors:  fieldErrs,
			Message: "Missing Fields. Failed to Create Invoice.",
		}
	}

	inv := &model.Invoice{
		CustomerID: in.CustomerID,
		Amount:     money.ToCents(in.Amount),
		Status:     model.InvoiceStatus(in.Status),
		Date:       time.Now().Format("2006-01-02"),
	}

	if _, err := s.repo.Create(ctx, inv); err != nil {
		logger.Error("create invoice failed", "error", err, "customer_id", in.CustomerID)
		prom.IncMutation("create", "error")
		return ActionResult{Message: "Database Error: Failed to Create Invoice."}
	}

	prom.IncMutation("create", "ok")
	s.invalidate(InvoicesPath, DashboardPath, CustomersPath)
	return ActionResult{RedirectTo: InvoicesPath}
}

// Update applies new customer/amount/status to an existing invoice; the
// stored date is left untouched. A missing id fails the same way as any
// other persistence fault.
func (s *InvoiceService) Update(ctx context.Context, id string, form forms.Values) ActionResult {
	in, fieldErrs := forms.ParseInvoice(form)
	if fieldErrs != nil {
		return ActionResult{
			Errors:  fieldErrs,
			Message: "Missing Fields. Failed to Update Invoice.",
		}
	}

	inv := &model.Invoice{
		ID:         id,
		CustomerID: in.CustomerID,
		Amount:     money.ToCents(in.Amount),
		Status:     model.InvoiceStatus(in.Status),
	}

	if err := s.repo.Update(ctx, inv); err != nil {
		logger.Error("update invoice failed", "error", err, "id", id)
		prom.IncMutation("update", "error")
		return ActionResult{Message: "Database Error: Failed to Update Invoice."}
	}

	prom.IncMutation("update", "ok")
	s.invalidate(InvoicesPath, DashboardPath, CustomersPath)
	return ActionResult{RedirectTo: InvoicesPath}
}

// Delete removes an invoice and marks the invoice views stale. There is no
// redirect; the delete button calls this imperatively. A missing id comes
// back as the generic database-error message, never an uncaught failure.
func (s *InvoiceService) Delete(ctx context.Context, id string) ActionResult {
	if err := s.repo.Delete(ctx, id); err != nil {
		logger.Error("delete invoice failed", "error", err, "id", id)
		prom.IncMutation("delete", "error")
		return ActionResult{Message: "Database Error: Failed to Delete Invoice."}
	}

	prom.IncMutation("delete", "ok")
	s.invalidate(InvoicesPath, DashboardPath, CustomersPath)
	return ActionResult{}
}

// invalidate marks cached renders stale after a successful write. A
// failing invalidation never turns a committed write into a caller-visible
// error; the cache entries expire on their own TTL.
func (s *InvoiceService) invalidate(paths ...string) {
	if s.views == nil {
		return
	}
	for _, path := range paths {
		if err := s.views.Invalidate(path); err != nil {
			logger.Warn("view invalidation failed", "error", err, "path", path)
		}
	}
}
