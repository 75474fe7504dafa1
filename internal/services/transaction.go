package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Anuj670023/BANKING-SYSTEM/internal/cache"
	"github.com/Anuj670023/BANKING-SYSTEM/internal/models"
	"github.com/Anuj670023/BANKING-SYSTEM/internal/utils"
	"github.com/Anuj670023/BANKING-SYSTEM/internal/worker"
)

var ErrInvalidAmount = errors.New("amount must be greater than zero")

// LedgerStore is the engine's view of the ledger: each call is one atomic
// unit that either commits the balance change together with its journal
// entries or leaves everything unchanged.
type LedgerStore interface {
	Credit(ctx context.Context, accountID string, amount float64) (*models.JournalEntry, error)
	Debit(ctx context.Context, accountID string, amount float64) (*models.JournalEntry, error)
	Transfer(ctx context.Context, fromID, toAccountNumber string, amount float64) (*models.TransferResult, error)
	ListByAccount(ctx context.Context, accountID string) ([]models.JournalEntry, error)
}

type TransactionService struct {
	ledger     LedgerStore
	accounts   AccountStore
	cache      Cache
	workerPool *worker.Pool
}

func NewTransactionService(ledger LedgerStore) *TransactionService {
	return &TransactionService{ledger: ledger}
}

// NewTransactionServiceWithCache needs the account store as well: invalidating
// a lookup entry requires resolving the account id back to its number.
func NewTransactionServiceWithCache(ledger LedgerStore, accounts AccountStore, cache Cache) *TransactionService {
	return &TransactionService{ledger: ledger, accounts: accounts, cache: cache}
}

// SetWorkerPool enables asynchronous cache invalidation after mutations.
func (s *TransactionService) SetWorkerPool(pool *worker.Pool) {
	s.workerPool = pool
}

// Credit adds amount to the account. The amount check runs before any store
// access.
func (s *TransactionService) Credit(ctx context.Context, accountID string, amount float64) (*models.JournalEntry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	entry, err := s.ledger.Credit(ctx, accountID, amount)
	if err != nil {
		utils.LogError("TransactionService", fmt.Sprintf("credit %.2f to %s failed", amount, accountID), err)
		return nil, err
	}

	s.invalidateAccounts(ctx, fmt.Sprintf("credit-%d", entry.ID), accountID)
	utils.LogSuccess("TransactionService", "credited %.2f to account %s", amount, accountID)
	return entry, nil
}

// Debit subtracts amount if the balance suffices; a rejected debit leaves
// balance and journal untouched.
func (s *TransactionService) Debit(ctx context.Context, accountID string, amount float64) (*models.JournalEntry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	entry, err := s.ledger.Debit(ctx, accountID, amount)
	if err != nil {
		utils.LogError("TransactionService", fmt.Sprintf("debit %.2f from %s failed", amount, accountID), err)
		return nil, err
	}

	s.invalidateAccounts(ctx, fmt.Sprintf("debit-%d", entry.ID), accountID)
	utils.LogSuccess("TransactionService", "debited %.2f from account %s", amount, accountID)
	return entry, nil
}

// Transfer moves amount from the source account to the account holding
// toAccountNumber, writing both journal sides atomically with the balance
// changes. Transferring to one's own number is permitted and nets to zero.
func (s *TransactionService) Transfer(ctx context.Context, fromID, toAccountNumber string, amount float64) (*models.TransferResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	result, err := s.ledger.Transfer(ctx, fromID, toAccountNumber, amount)
	if err != nil {
		utils.LogError("TransactionService", fmt.Sprintf("transfer %.2f from %s to number %s failed", amount, fromID, toAccountNumber), err)
		return nil, err
	}

	s.invalidateAccounts(ctx, fmt.Sprintf("transfer-%d", result.Out.ID), fromID, result.In.AccountID)
	utils.LogSuccess("TransactionService", "transferred %.2f from %s to account number %s", amount, fromID, toAccountNumber)
	return result, nil
}

// History returns the account's journal oldest-first. Calling it twice with
// no intervening mutation yields identical sequences.
func (s *TransactionService) History(ctx context.Context, accountID string) ([]models.JournalEntry, error) {
	entries, err := s.ledger.ListByAccount(ctx, accountID)
	if err != nil {
		utils.LogError("TransactionService", fmt.Sprintf("history for %s failed", accountID), err)
		return nil, err
	}
	return entries, nil
}

// invalidateAccounts drops the cached balance and lookup entries of the given
// accounts after a committed mutation, through the worker pool when available,
// inline otherwise. The lookup entry embeds the balance, so it must go too.
func (s *TransactionService) invalidateAccounts(ctx context.Context, jobID string, accountIDs ...string) {
	if s.cache == nil {
		return
	}

	invalidate := func() error {
		keys := make([]string, 0, 2*len(accountIDs))
		for _, id := range accountIDs {
			keys = append(keys, cache.AccountBalanceKey(id))
			if s.accounts == nil {
				continue
			}
			account, err := s.accounts.GetByID(ctx, id)
			if err != nil {
				utils.LogWarning("Cache", "cannot resolve account %s for lookup invalidation: %v", id, err)
				continue
			}
			keys = append(keys, cache.AccountLookupKey(account.AccountNumber))
		}
		return s.cache.Delete(ctx, keys...)
	}

	if s.workerPool != nil {
		job := worker.Job{
			ID:   "cache-invalidate-" + jobID,
			Task: invalidate,
		}
		if err := s.workerPool.Submit(job); err == nil {
			return
		}
		utils.LogWarning("TransactionService", "worker pool full, invalidating cache inline")
	}

	if err := invalidate(); err != nil {
		utils.LogWarning("Cache", "failed to invalidate account keys: %v", err)
	}
}
