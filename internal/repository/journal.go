package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Anuj670023/BANKING-SYSTEM/internal/models"
	"github.com/Anuj670023/BANKING-SYSTEM/internal/utils"
)

// JournalRepository executes the balance-mutating operations. Every mutation
// runs inside a single transaction: the balance row is locked with
// SELECT ... FOR UPDATE, the sufficiency check is evaluated against the
// locked value, and the journal entry is appended before commit. A failure at
// any step rolls the whole unit back.
type JournalRepository struct {
	db *pgxpool.Pool
}

func NewJournalRepository(db *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{db: db}
}

func appendEntry(ctx context.Context, tx pgx.Tx, accountID, kind string, amount float64) (models.JournalEntry, error) {
	var e models.JournalEntry
	err := tx.QueryRow(ctx,
		`INSERT INTO journal_entries (account_id, kind, amount)
		 VALUES ($1, $2, $3)
		 RETURNING id, account_id, kind, amount, created_at`,
		accountID, kind, amount,
	).Scan(&e.ID, &e.AccountID, &e.Kind, &e.Amount, &e.CreatedAt)
	if err != nil {
		return models.JournalEntry{}, storageErr("append journal entry", err)
	}
	return e, nil
}

func lockBalance(ctx context.Context, tx pgx.Tx, accountID string) (float64, error) {
	var balance float64
	err := tx.QueryRow(ctx,
		`SELECT balance FROM accounts WHERE id = $1 FOR UPDATE`,
		accountID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrAccountNotFound
		}
		return 0, storageErr("lock balance", err)
	}
	return balance, nil
}

func adjustBalance(ctx context.Context, tx pgx.Tx, accountID string, delta float64) (float64, error) {
	var balance float64
	err := tx.QueryRow(ctx,
		`UPDATE accounts SET balance = balance + $1 WHERE id = $2 RETURNING balance`,
		delta, accountID,
	).Scan(&balance)
	if err != nil {
		return 0, storageErr("adjust balance", err)
	}
	return balance, nil
}

// Credit adds amount to the account balance and appends one credit entry.
func (r *JournalRepository) Credit(ctx context.Context, accountID string, amount float64) (*models.JournalEntry, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, storageErr("begin credit", err)
	}
	defer tx.Rollback(ctx)

	if _, err := lockBalance(ctx, tx, accountID); err != nil {
		return nil, err
	}
	newBalance, err := adjustBalance(ctx, tx, accountID, amount)
	if err != nil {
		return nil, err
	}
	entry, err := appendEntry(ctx, tx, accountID, models.KindCredit, amount)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storageErr("commit credit", err)
	}

	utils.LogDB("CREDIT", fmt.Sprintf("account %s: +%.2f (balance %.2f)", accountID, amount, newBalance))
	return &entry, nil
}

// Debit subtracts amount from the balance if sufficient, appending one debit
// entry. The check runs against the FOR UPDATE snapshot, so two concurrent
// debits cannot both pass it on a stale balance.
func (r *JournalRepository) Debit(ctx context.Context, accountID string, amount float64) (*models.JournalEntry, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, storageErr("begin debit", err)
	}
	defer tx.Rollback(ctx)

	balance, err := lockBalance(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}
	if balance < amount {
		return nil, ErrInsufficientFunds
	}

	newBalance, err := adjustBalance(ctx, tx, accountID, -amount)
	if err != nil {
		return nil, err
	}
	entry, err := appendEntry(ctx, tx, accountID, models.KindDebit, amount)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storageErr("commit debit", err)
	}

	utils.LogDB("DEBIT", fmt.Sprintf("account %s: -%.2f (balance %.2f)", accountID, amount, newBalance))
	return &entry, nil
}

// Transfer debits the source and credits the account resolved from
// toAccountNumber in one transaction, appending a transfer_out entry on the
// source and a transfer_in entry on the recipient. Transferring to one's own
// account number is allowed and nets a zero balance change with both entries
// still recorded.
func (r *JournalRepository) Transfer(ctx context.Context, fromID, toAccountNumber string, amount float64) (*models.TransferResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, storageErr("begin transfer", err)
	}
	defer tx.Rollback(ctx)

	fromBalance, err := lockBalance(ctx, tx, fromID)
	if err != nil {
		return nil, err
	}
	if fromBalance < amount {
		return nil, ErrInsufficientFunds
	}

	var toID string
	err = tx.QueryRow(ctx,
		`SELECT id FROM accounts WHERE account_number = $1 FOR UPDATE`,
		toAccountNumber,
	).Scan(&toID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecipientNotFound
		}
		return nil, storageErr("lock recipient", err)
	}

	result := &models.TransferResult{}
	if result.FromBalance, err = adjustBalance(ctx, tx, fromID, -amount); err != nil {
		return nil, err
	}
	if result.ToBalance, err = adjustBalance(ctx, tx, toID, amount); err != nil {
		return nil, err
	}
	if toID == fromID {
		// Both adjustments hit the same row; the second one holds the final balance.
		result.FromBalance = result.ToBalance
	}
	if result.Out, err = appendEntry(ctx, tx, fromID, models.KindTransferOut, amount); err != nil {
		return nil, err
	}
	if result.In, err = appendEntry(ctx, tx, toID, models.KindTransferIn, amount); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storageErr("commit transfer", err)
	}

	utils.LogDB("TRANSFER", fmt.Sprintf("%s -> %s: %.2f", fromID, toID, amount))
	return result, nil
}

// ListByAccount returns the journal for an account in insertion order, oldest
// first. Pure read, re-invocable. An unknown account is ErrAccountNotFound
// rather than an empty journal.
func (r *JournalRepository) ListByAccount(ctx context.Context, accountID string) ([]models.JournalEntry, error) {
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`,
		accountID,
	).Scan(&exists); err != nil {
		return nil, storageErr("check account", err)
	}
	if !exists {
		return nil, ErrAccountNotFound
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, account_id, kind, amount, created_at
		 FROM journal_entries
		 WHERE account_id = $1
		 ORDER BY created_at ASC, id ASC`,
		accountID,
	)
	if err != nil {
		return nil, storageErr("list journal", err)
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(&e.ID, &e.AccountID, &e.Kind, &e.Amount, &e.CreatedAt); err != nil {
			return nil, storageErr("scan journal entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("read journal", err)
	}
	return entries, nil
}
