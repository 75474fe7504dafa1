package handlers

import (
	"encoding/json"

	"github.com/valyala/fasthttp"

	"github.com/Anuj670023/BANKING-SYSTEM/internal/models"
	"github.com/Anuj670023/BANKING-SYSTEM/internal/services"
)

type TransactionHandler struct {
	transactionService *services.TransactionService
}

func NewTransactionHandler(transactionService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// Credit handles POST /transactions/credit.
func (h *TransactionHandler) Credit(ctx *fasthttp.RequestCtx) {
	id, ok := accountID(ctx)
	if !ok {
		return
	}

	var req models.AmountRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.transactionService.Credit(ctx, id, req.Amount)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusCreated, entry)
}

// Debit handles POST /transactions/debit.
func (h *TransactionHandler) Debit(ctx *fasthttp.RequestCtx) {
	id, ok := accountID(ctx)
	if !ok {
		return
	}

	var req models.AmountRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.transactionService.Debit(ctx, id, req.Amount)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusCreated, entry)
}

// Transfer handles POST /transactions/transfer.
func (h *TransactionHandler) Transfer(ctx *fasthttp.RequestCtx) {
	id, ok := accountID(ctx)
	if !ok {
		return
	}

	var req models.TransferRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body")
		return
	}
	if req.ToAccountNumber == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "to_account_number is required")
		return
	}

	result, err := h.transactionService.Transfer(ctx, id, req.ToAccountNumber, req.Amount)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusCreated, result)
}

// History handles GET /transactions/history.
func (h *TransactionHandler) History(ctx *fasthttp.RequestCtx) {
	id, ok := accountID(ctx)
	if !ok {
		return
	}

	entries, err := h.transactionService.History(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, models.JournalListResponse{
		Entries: entries,
		Total:   len(entries),
	})
}
