package handlers

import (
	"time"

	"github.com/valyala/fasthttp"

	"github.com/Anuj670023/BANKING-SYSTEM/internal/middleware"
)

// NewRouter wires the public and protected routes. All balance-mutating and
// holder-scoped routes sit behind the JWT middleware, which resolves the
// account id passed explicitly to every service call.
func NewRouter(
	auth *AuthHandler,
	account *AccountHandler,
	transaction *TransactionHandler,
	mw *middleware.AuthMiddleware,
) fasthttp.RequestHandler {
	protected := func(h fasthttp.RequestHandler) fasthttp.RequestHandler {
		return mw.RequireAuth(h)
	}

	return func(ctx *fasthttp.RequestCtx) {
		path := string(ctx.Path())
		method := string(ctx.Method())

		switch {
		case path == "/health" && method == fasthttp.MethodGet:
			writeJSON(ctx, fasthttp.StatusOK, map[string]string{
				"status": "ok",
				"time":   time.Now().Format(time.RFC3339),
			})

		case path == "/register" && method == fasthttp.MethodPost:
			auth.Register(ctx)
		case path == "/login" && method == fasthttp.MethodPost:
			auth.Login(ctx)
		case path == "/accounts/lookup" && method == fasthttp.MethodGet:
			account.Lookup(ctx)

		case path == "/accounts/me" && method == fasthttp.MethodGet:
			protected(account.Me)(ctx)
		case path == "/accounts/me/profile" && method == fasthttp.MethodPatch:
			protected(account.UpdateProfile)(ctx)
		case path == "/accounts/me/password" && method == fasthttp.MethodPost:
			protected(auth.ChangePassword)(ctx)
		case path == "/accounts/me/toggle-active" && method == fasthttp.MethodPost:
			protected(auth.ToggleActive)(ctx)

		case path == "/transactions/credit" && method == fasthttp.MethodPost:
			protected(transaction.Credit)(ctx)
		case path == "/transactions/debit" && method == fasthttp.MethodPost:
			protected(transaction.Debit)(ctx)
		case path == "/transactions/transfer" && method == fasthttp.MethodPost:
			protected(transaction.Transfer)(ctx)
		case path == "/transactions/history" && method == fasthttp.MethodGet:
			protected(transaction.History)(ctx)

		default:
			writeError(ctx, fasthttp.StatusNotFound, "not found")
		}
	}
}
