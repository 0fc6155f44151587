package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fasthttp/router"
	"github.com/nimasrn/invoice-dashboard/internal/model"
	"github.com/nimasrn/invoice-dashboard/internal/viewcache"
	xhttp "github.com/nimasrn/invoice-dashboard/pkg/http"
	"github.com/nimasrn/invoice-dashboard/pkg/logger"
	"github.com/nimasrn/invoice-dashboard/pkg/prom"
)

type DashboardService interface {
	FetchRevenue(ctx context.Context) ([]*model.Revenue, error)
	FetchLatestInvoices(ctx context.Context) ([]*model.LatestInvoice, error)
	FetchCardData(ctx context.Context) (*model.CardData, error)
	FetchFilteredInvoices(ctx context.Context, query string, page int) ([]*model.FilteredInvoice, error)
	FetchInvoicesPages(ctx context.Context, query string) (int, error)
	FetchInvoiceByID(ctx context.Context, id string) (*model.InvoiceForm, error)
	FetchCustomers(ctx context.Context) ([]*model.CustomerField, error)
	FetchFilteredCustomers(ctx context.Context, query string) ([]*model.CustomerSummary, error)
}

type DashboardHandler struct {
	svc   DashboardService
	views *viewcache.Cache
}

func RegisterDashboardRoutes(e *router.Group, h *DashboardHandler) {
	e.GET("/dashboard/revenue", h.GetRevenue)
	e.GET("/dashboard/latest-invoices", h.GetLatestInvoices)
	e.GET("/dashboard/cards", h.GetCards)
	e.GET("/dashboard/invoices", h.ListInvoices)
	e.GET("/dashboard/invoices/pages", h.GetInvoicesPages)
	e.GET("/dashboard/invoices/{id}", h.GetInvoice)
	e.GET("/dashboard/customers", h.ListCustomers)
	e.GET("/dashboard/customers/filtered", h.ListFilteredCustomers)
}

func NewDashboardHandler(svc DashboardService, views *viewcache.Cache) *DashboardHandler {
	return &DashboardHandler{
		svc:   svc,
		views: views,
	}
}

type pagesResponse struct {
	TotalPages int `json:"total_pages"`
}

/* --------------------------------- Routes ----------------------------------- */

// GetRevenue always re-reads the store; the revenue chart is explicitly
// exempt from response caching.
func (h *DashboardHandler) GetRevenue(ctx *xhttp.RequestCtx) {
	ctx.Response.Header.Set("Cache-Control", "no-store")
	rows, err := h.svc.FetchRevenue(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusOK, rows)
}

func (h *DashboardHandler) GetLatestInvoices(ctx *xhttp.RequestCtx) {
	h.serveCached(ctx, "/dashboard/latest-invoices", func() (interface{}, error) {
		return h.svc.FetchLatestInvoices(ctx)
	})
}

func (h *DashboardHandler) GetCards(ctx *xhttp.RequestCtx) {
	h.serveCached(ctx, "/dashboard/cards", func() (interface{}, error) {
		return h.svc.FetchCardData(ctx)
	})
}

func (h *DashboardHandler) ListInvoices(ctx *xhttp.RequestCtx) {
	q := query(ctx, "query")
	page := 1
	if v := query(ctx, "page"); v != "" {
		if n, e := strconv.Atoi(v); e == nil {
			page = n
		}
	}

	// the query is user input; escaping keeps key-pattern metacharacters
	// out of the cache key space
	path := fmt.Sprintf("/dashboard/invoices?query=%s&page=%d", url.QueryEscape(q), page)
	h.serveCached(ctx, path, func() (interface{}, error) {
		return h.svc.FetchFilteredInvoices(ctx, q, page)
	})
}

func (h *DashboardHandler) GetInvoicesPages(ctx *xhttp.RequestCtx) {
	q := query(ctx, "query")

	path := fmt.Sprintf("/dashboard/invoices/pages?query=%s", url.QueryEscape(q))
	h.serveCached(ctx, path, func() (interface{}, error) {
		pages, err := h.svc.FetchInvoicesPages(ctx, q)
		if err != nil {
			return nil, err
		}
		return pagesResponse{TotalPages: pages}, nil
	})
}

// GetInvoice serves the edit form and is never cached; a stale form would
// silently revert a concurrent edit on save.
func (h *DashboardHandler) GetInvoice(ctx *xhttp.RequestCtx) {
	id := param(ctx, "id")

	form, err := h.svc.FetchInvoiceByID(ctx, id)
	if err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
		return
	}
	if form == nil {
		writeError(ctx, xhttp.StatusNotFound, "invoice not found")
		return
	}
	writeJSON(ctx, xhttp.StatusOK, form)
}

func (h *DashboardHandler) ListCustomers(ctx *xhttp.RequestCtx) {
	h.serveCached(ctx, "/dashboard/customers", func() (interface{}, error) {
		return h.svc.FetchCustomers(ctx)
	})
}

func (h *DashboardHandler) ListFilteredCustomers(ctx *xhttp.RequestCtx) {
	q := query(ctx, "query")

	path := fmt.Sprintf("/dashboard/customers?query=%s&filtered=1", url.QueryEscape(q))
	h.serveCached(ctx, path, func() (interface{}, error) {
		return h.svc.FetchFilteredCustomers(ctx, q)
	})
}

// serveCached renders from the view cache when a fresh copy exists,
// otherwise computes, stores and serves the payload.
func (h *DashboardHandler) serveCached(ctx *xhttp.RequestCtx, path string, compute func() (interface{}, error)) {
	if h.views != nil {
		if payload, ok := h.views.Get(path); ok {
			writeRawJSON(ctx, xhttp.StatusOK, payload)
			return
		}
	}

	started := time.Now()
	v, err := compute()
	prom.ObserveQueryDuration(operationLabel(path), time.Since(started).Seconds())
	if err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
		return
	}

	payload, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, "failed to render view")
		return
	}

	if h.views != nil {
		if err := h.views.Put(path, payload); err != nil {
			logger.Warn("view cache store failed", "error", err, "path", path)
		}
	}
	writeRawJSON(ctx, xhttp.StatusOK, payload)
}

func operationLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}
