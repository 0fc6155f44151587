package handlers

import (
	"context"
	"errors"

	"github.com/fasthttp/router"
	"github.com/nimasrn/invoice-dashboard/internal/forms"
	"github.com/nimasrn/invoice-dashboard/internal/services"
	xhttp "github.com/nimasrn/invoice-dashboard/pkg/http"
)

// CredentialSignin is the sentinel the page layer recognizes as "show the
// inline bad-credentials message" instead of the error boundary.
const CredentialSignin = "CredentialSignin"

type AuthService interface {
	Authenticate(ctx context.Context, creds forms.Values) (string, error)
}

type AuthHandler struct {
	svc AuthService
}

func RegisterAuthRoutes(e *router.Group, h *AuthHandler) {
	e.POST("/login", h.Login)
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(ctx *xhttp.RequestCtx) {
	token, err := h.svc.Authenticate(ctx, formValues(ctx))
	if err != nil {
		// only a credential mismatch is classifiable; everything else is
		// fatal and belongs to the page-level error boundary
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(ctx, xhttp.StatusUnauthorized, CredentialSignin)
			return
		}
		writeError(ctx, xhttp.StatusInternalServerError, "Something went wrong.")
		return
	}
	writeJSON(ctx, xhttp.StatusOK, loginResponse{Token: token})
}
