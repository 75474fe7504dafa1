package handlers

import (
	"encoding/json"
	"errors"

	"github.com/valyala/fasthttp"

	"github.com/Anuj670023/BANKING-SYSTEM/internal/repository"
	"github.com/Anuj670023/BANKING-SYSTEM/internal/services"
)

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(v)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, map[string]string{"error": message})
}

// writeServiceError maps the error taxonomy to HTTP statuses. Unrecognized
// errors (including storage failures) become 500s without leaking detail.
func writeServiceError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrBelowMinimumBalance),
		errors.Is(err, services.ErrEmptySecret),
		errors.Is(err, services.ErrUnknownProfileField):
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrDuplicateKey):
		writeError(ctx, fasthttp.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrAccountNotFound),
		errors.Is(err, repository.ErrRecipientNotFound):
		writeError(ctx, fasthttp.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrInsufficientFunds):
		writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(ctx, fasthttp.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrAccountDeactivated):
		writeError(ctx, fasthttp.StatusForbidden, err.Error())
	default:
		writeError(ctx, fasthttp.StatusInternalServerError, "internal server error")
	}
}

// accountID extracts the authenticated account id set by the auth middleware.
func accountID(ctx *fasthttp.RequestCtx) (string, bool) {
	id, ok := ctx.UserValue("account_id").(string)
	if !ok || id == "" {
		writeError(ctx, fasthttp.StatusUnauthorized, "authorization required")
		return "", false
	}
	return id, true
}
