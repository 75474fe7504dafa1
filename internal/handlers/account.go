package handlers

import (
	"encoding/json"

	"github.com/valyala/fasthttp"

	"github.com/Anuj670023/BANKING-SYSTEM/internal/models"
	"github.com/Anuj670023/BANKING-SYSTEM/internal/services"
	"github.com/Anuj670023/BANKING-SYSTEM/internal/utils"
)

type AccountHandler struct {
	accountService *services.AccountService
}

func NewAccountHandler(accountService *services.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// Lookup handles GET /accounts/lookup?number=<account number> and returns the
// non-secret profile of the account.
func (h *AccountHandler) Lookup(ctx *fasthttp.RequestCtx) {
	number := string(ctx.QueryArgs().Peek("number"))
	if number == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "query parameter 'number' is required")
		return
	}

	account, err := h.accountService.Lookup(ctx, number)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, account.View())
}

// Me handles GET /accounts/me: the authenticated holder's profile + balance.
func (h *AccountHandler) Me(ctx *fasthttp.RequestCtx) {
	id, ok := accountID(ctx)
	if !ok {
		return
	}

	account, err := h.accountService.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, account.View())
}

// UpdateProfile handles PATCH /accounts/me/profile with {field, value} where
// field is one of email, contact_number, address.
func (h *AccountHandler) UpdateProfile(ctx *fasthttp.RequestCtx) {
	id, ok := accountID(ctx)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.accountService.UpdateContactField(ctx, id, req.Field, req.Value); err != nil {
		writeServiceError(ctx, err)
		return
	}

	utils.LogSuccess("AccountHandler", "profile field %s updated for account %s", req.Field, id)
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"message": "profile updated successfully"})
}
