package models

import "time"

// Journal entry kinds. Amounts are always positive; direction is the kind.
const (
	KindCredit      = "credit"
	KindDebit       = "debit"
	KindTransferOut = "transfer_out"
	KindTransferIn  = "transfer_in"
)

// JournalEntry is an immutable, append-only record of one balance mutation.
type JournalEntry struct {
	ID        int64     `json:"id"`
	AccountID string    `json:"account_id"`
	Kind      string    `json:"kind"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// TransferResult carries both sides of a committed transfer.
type TransferResult struct {
	Out         JournalEntry `json:"out"`
	In          JournalEntry `json:"in"`
	FromBalance float64      `json:"from_balance"`
	ToBalance   float64      `json:"to_balance"`
}

type AmountRequest struct {
	Amount float64 `json:"amount"`
}

type TransferRequest struct {
	ToAccountNumber string  `json:"to_account_number"`
	Amount          float64 `json:"amount"`
}

type JournalListResponse struct {
	Entries []JournalEntry `json:"entries"`
	Total   int            `json:"total"`
}
