package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/Anuj670023/BANKING-SYSTEM/internal/cache"
	"github.com/Anuj670023/BANKING-SYSTEM/internal/models"
	"github.com/Anuj670023/BANKING-SYSTEM/internal/repository"
	"github.com/Anuj670023/BANKING-SYSTEM/internal/utils"
)

var (
	ErrBelowMinimumBalance = errors.New("initial balance below the minimum opening balance")
	ErrEmptySecret         = errors.New("password cannot be empty")
	ErrUnknownProfileField = errors.New("unknown profile field")
	ErrNumberExhausted     = errors.New("could not allocate a unique account number")
)

// MinOpeningBalance applies at registration only. Debits may legally take a
// balance below this floor afterwards; they only guard against going negative.
const MinOpeningBalance = 2000

const maxNumberAttempts = 10

// AccountStore is the registry's view of the ledger store.
type AccountStore interface {
	CreateWithCredential(ctx context.Context, account *models.Account, secretHash string) error
	GetByID(ctx context.Context, accountID string) (*models.Account, error)
	GetByNumber(ctx context.Context, accountNumber string) (*models.Account, error)
	UpdateContactField(ctx context.Context, accountID, field, value string) error
}

// CredentialStore covers the credential side: secrets and the active flag.
type CredentialStore interface {
	GetByAccountID(ctx context.Context, accountID string) (*models.Credential, error)
	UpdateSecret(ctx context.Context, accountID, secretHash string) error
	ToggleActive(ctx context.Context, accountID string) (bool, error)
}

type AccountService struct {
	accounts    AccountStore
	credentials CredentialStore
	cache       Cache
}

func NewAccountService(accounts AccountStore, credentials CredentialStore) *AccountService {
	return &AccountService{accounts: accounts, credentials: credentials}
}

func NewAccountServiceWithCache(accounts AccountStore, credentials CredentialStore, cache Cache) *AccountService {
	return &AccountService{accounts: accounts, credentials: credentials, cache: cache}
}

// generateAccountNumber draws a random 10-digit number. Uniqueness is not
// assumed from randomness: the insert's unique constraint is the arbiter and
// Register retries on a collision.
func generateAccountNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9_000_000_000))
	if err != nil {
		return "", fmt.Errorf("random account number: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+1_000_000_000), nil
}

// Register creates an account with its credential atomically and returns the
// stored account, including the allocated number. Only an account-number
// collision is retried; a duplicate email is a terminal input error.
func (s *AccountService) Register(ctx context.Context, req models.RegisterRequest) (*models.Account, error) {
	if req.InitialBalance < MinOpeningBalance {
		return nil, ErrBelowMinimumBalance
	}
	if req.Password == "" {
		return nil, ErrEmptySecret
	}

	secretHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		number, err := generateAccountNumber()
		if err != nil {
			return nil, err
		}

		account := &models.Account{
			AccountNumber: number,
			Name:          req.Name,
			DateOfBirth:   req.DateOfBirth,
			City:          req.City,
			ContactNumber: req.ContactNumber,
			Email:         req.Email,
			Address:       req.Address,
			Balance:       req.InitialBalance,
		}

		err = s.accounts.CreateWithCredential(ctx, account, string(secretHash))
		if errors.Is(err, repository.ErrDuplicateAccountNumber) {
			utils.LogWarning("AccountService", "account number collision on %s, attempt %d/%d", number, attempt, maxNumberAttempts)
			continue
		}
		if err != nil {
			return nil, err
		}

		utils.LogSuccess("AccountService", "account %s registered with number %s", account.ID, account.AccountNumber)
		return account, nil
	}

	return nil, ErrNumberExhausted
}

// Lookup resolves an account by its external number.
func (s *AccountService) Lookup(ctx context.Context, accountNumber string) (*models.Account, error) {
	if s.cache != nil {
		var cached models.Account
		key := cache.AccountLookupKey(accountNumber)
		err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			utils.LogDebug("Cache", "HIT lookup %s", accountNumber)
			return &cached, nil
		}
		if !errors.Is(err, redis.Nil) {
			utils.LogWarning("Cache", "lookup cache read failed for %s: %v", accountNumber, err)
		}
	}

	account, err := s.accounts.GetByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		key := cache.AccountLookupKey(accountNumber)
		if err := s.cache.SetJSON(ctx, key, account, cache.AccountLookupTTL); err != nil {
			utils.LogWarning("Cache", "failed to cache lookup %s: %v", accountNumber, err)
		}
	}
	return account, nil
}

// Get returns the account for an internal id. On a cache hit the cached
// balance replaces the loaded one; on a miss the loaded balance is cached for
// AccountBalanceTTL. Any other cache failure degrades to the DB value.
func (s *AccountService) Get(ctx context.Context, accountID string) (*models.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if s.cache == nil {
		return account, nil
	}

	key := cache.AccountBalanceKey(accountID)
	cached, cacheErr := s.cache.Get(ctx, key)
	switch {
	case cacheErr == nil:
		if balance, parseErr := strconv.ParseFloat(cached, 64); parseErr == nil {
			utils.LogDebug("Cache", "HIT balance %s", accountID)
			account.Balance = balance
		}
	case errors.Is(cacheErr, redis.Nil):
		if err := s.cache.Set(ctx, key, fmt.Sprintf("%.2f", account.Balance), cache.AccountBalanceTTL); err != nil {
			utils.LogWarning("Cache", "failed to cache balance for %s: %v", accountID, err)
		}
	default:
		utils.LogWarning("Cache", "balance cache read failed for %s: %v", accountID, cacheErr)
	}
	return account, nil
}

// ToggleActive flips the credential's active flag and returns the new state.
func (s *AccountService) ToggleActive(ctx context.Context, accountID string) (bool, error) {
	active, err := s.credentials.ToggleActive(ctx, accountID)
	if err != nil {
		return false, err
	}
	utils.LogInfo("AccountService", "account %s is_active=%t", accountID, active)
	return active, nil
}

// profileFields are the contact fields a holder may update.
var profileFields = map[string]bool{
	"email":          true,
	"contact_number": true,
	"address":        true,
}

// UpdateContactField updates one of email, contact_number or address. An
// email collision surfaces as a duplicate-key error.
func (s *AccountService) UpdateContactField(ctx context.Context, accountID, field, value string) error {
	if !profileFields[field] {
		return ErrUnknownProfileField
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	if err := s.accounts.UpdateContactField(ctx, accountID, field, value); err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx,
			cache.AccountLookupKey(account.AccountNumber),
			cache.AccountBalanceKey(accountID),
		)
	}

	utils.LogSuccess("AccountService", "account %s: %s updated", accountID, field)
	return nil
}
