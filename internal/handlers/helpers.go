package handlers

import (
	"encoding/json"

	"github.com/nimasrn/invoice-dashboard/internal/forms"
	xhttp "github.com/nimasrn/invoice-dashboard/pkg/http"
)

func formValues(ctx *xhttp.RequestCtx) forms.Values {
	v := forms.Values{}
	ctx.PostArgs().VisitAll(func(key, value []byte) {
		v[string(key)] = string(value)
	})
	return v
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

func param(ctx *xhttp.RequestCtx, name string) string {
	if v, ok := ctx.UserValue(name).(string); ok {
		return v
	}
	return ""
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	writeRawJSON(ctx, status, b)
}

func writeRawJSON(ctx *xhttp.RequestCtx, status int, payload []byte) {
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(payload)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}
