package handlers

import (
	"encoding/json"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/Anuj670023/BANKING-SYSTEM/internal/models"
	"github.com/Anuj670023/BANKING-SYSTEM/internal/services"
	"github.com/Anuj670023/BANKING-SYSTEM/internal/utils"
)

type AuthHandler struct {
	authService    *services.AuthService
	accountService *services.AccountService
}

func NewAuthHandler(authService *services.AuthService, accountService *services.AccountService) *AuthHandler {
	return &AuthHandler{authService: authService, accountService: accountService}
}

// Register handles POST /register. The request carries already-validated
// primitive values; only presence checks happen here.
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	utils.LogRequest("POST", "/register", "anonymous")

	var req models.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body")
		utils.LogResponse("/register", fasthttp.StatusBadRequest, time.Since(start))
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "name, email and password are required")
		utils.LogResponse("/register", fasthttp.StatusBadRequest, time.Since(start))
		return
	}

	account, err := h.accountService.Register(ctx, req)
	if err != nil {
		writeServiceError(ctx, err)
		utils.LogError("AuthHandler", "registration failed", err)
		utils.LogResponse("/register", ctx.Response.StatusCode(), time.Since(start))
		return
	}

	writeJSON(ctx, fasthttp.StatusCreated, map[string]interface{}{
		"message":        "account registered successfully",
		"account_number": account.AccountNumber,
		"balance":        account.Balance,
	})
	utils.LogResponse("/register", fasthttp.StatusCreated, time.Since(start))
}

// Login handles POST /login: account number + password in, bearer token out.
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	utils.LogRequest("POST", "/login", "anonymous")

	var req models.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body")
		utils.LogResponse("/login", fasthttp.StatusBadRequest, time.Since(start))
		return
	}

	id, err := h.authService.Authenticate(ctx, req.AccountNumber, req.Password)
	if err != nil {
		writeServiceError(ctx, err)
		utils.LogResponse("/login", ctx.Response.StatusCode(), time.Since(start))
		return
	}

	token, err := h.authService.GenerateToken(id)
	if err != nil {
		utils.LogError("AuthHandler", "token generation failed", err)
		writeError(ctx, fasthttp.StatusInternalServerError, "internal server error")
		utils.LogResponse("/login", fasthttp.StatusInternalServerError, time.Since(start))
		return
	}

	account, err := h.accountService.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		utils.LogResponse("/login", ctx.Response.StatusCode(), time.Since(start))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, map[string]interface{}{
		"message": "login successful",
		"token":   token,
		"balance": account.Balance,
	})
	utils.LogResponse("/login", fasthttp.StatusOK, time.Since(start))
}

// ChangePassword handles POST /accounts/me/password.
func (h *AuthHandler) ChangePassword(ctx *fasthttp.RequestCtx) {
	id, ok := accountID(ctx)
	if !ok {
		return
	}

	var req models.ChangePasswordRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.ChangeSecret(ctx, id, req.NewPassword); err != nil {
		writeServiceError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"message": "password updated successfully"})
}

// ToggleActive handles POST /accounts/me/toggle-active.
func (h *AuthHandler) ToggleActive(ctx *fasthttp.RequestCtx) {
	id, ok := accountID(ctx)
	if !ok {
		return
	}

	active, err := h.accountService.ToggleActive(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, map[string]interface{}{
		"message":   "account status updated",
		"is_active": active,
	})
}
