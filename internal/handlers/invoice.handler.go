package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/invoice-dashboard/internal/forms"
	"github.com/nimasrn/invoice-dashboard/internal/services"
	xhttp "github.com/nimasrn/invoice-dashboard/pkg/http"
)

type InvoiceActionService interface {
	Create(ctx context.Context, form forms.Values) services.ActionResult
	Update(ctx context.Context, id string, form forms.Values) services.ActionResult
	Delete(ctx context.Context, id string) services.ActionResult
}

type InvoiceHandler struct {
	svc InvoiceActionService
}

func RegisterInvoiceRoutes(e *router.Group, h *InvoiceHandler) {
	e.POST("/invoices", h.CreateInvoice)
	e.POST("/invoices/{id}", h.UpdateInvoice)
	e.DELETE("/invoices/{id}", h.DeleteInvoice)
}

func NewInvoiceHandler(svc InvoiceActionService) *InvoiceHandler {
	return &InvoiceHandler{
		svc: svc,
	}
}

/* --------------------------------- Routes ----------------------------------- */

func (h *InvoiceHandler) CreateInvoice(ctx *xhttp.RequestCtx) {
	writeActionResult(ctx, h.svc.Create(ctx, formValues(ctx)))
}

func (h *InvoiceHandler) UpdateInvoice(ctx *xhttp.RequestCtx) {
	writeActionResult(ctx, h.svc.Update(ctx, param(ctx, "id"), formValues(ctx)))
}

func (h *InvoiceHandler) DeleteInvoice(ctx *xhttp.RequestCtx) {
	writeActionResult(ctx, h.svc.Delete(ctx, param(ctx, "id")))
}

// writeActionResult maps an action outcome onto the wire: the redirect is
// a terminal transfer of control (303 + Location, no body to render),
// validation failures carry the field errors back to the form, and
// persistence failures surface only the generic message.
func writeActionResult(ctx *xhttp.RequestCtx, res services.ActionResult) {
	if res.RedirectTo != "" {
		ctx.Response.Header.Set("Location", res.RedirectTo)
		ctx.Response.SetStatusCode(xhttp.StatusSeeOther)
		return
	}
	if len(res.Errors) > 0 {
		writeJSON(ctx, xhttp.StatusUnprocessableEntity, res)
		return
	}
	if res.Message != "" {
		writeJSON(ctx, xhttp.StatusInternalServerError, res)
		return
	}
	ctx.Response.SetStatusCode(xhttp.StatusNoContent)
}
