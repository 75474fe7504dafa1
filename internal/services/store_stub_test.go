package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Anuj670023/BANKING-SYSTEM/internal/models"
	"github.com/Anuj670023/BANKING-SYSTEM/internal/repository"
)

// memStore is an in-memory ledger implementing AccountStore, CredentialStore
// and LedgerStore with the same invariants as the Postgres repositories:
// unique account numbers and emails, sufficiency checks against the current
// balance, and journal entries appended only with committed mutations.
type memStore struct {
	mu       sync.Mutex
	nextAcct int
	nextSeq  int64
	accounts map[string]*models.Account
	byNumber map[string]string
	byEmail  map[string]string
	creds    map[string]*models.Credential
	journal  map[string][]models.JournalEntry

	failWith         error // forces a storage failure on every call when set
	numberCollisions int   // remaining inserts rejected as number collisions
	calls            int   // total store accesses
	createCalls      int   // CreateWithCredential attempts
}

func newMemStore() *memStore {
	return &memStore{
		accounts: make(map[string]*models.Account),
		byNumber: make(map[string]string),
		byEmail:  make(map[string]string),
		creds:    make(map[string]*models.Credential),
		journal:  make(map[string][]models.JournalEntry),
	}
}

func (m *memStore) touch() error {
	m.calls++
	if m.failWith != nil {
		return fmt.Errorf("%w: %v", repository.ErrStorageUnavailable, m.failWith)
	}
	return nil
}

// seed creates an account directly, bypassing registration.
func (m *memStore) seed(number string, balance float64) *models.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextAcct++
	id := fmt.Sprintf("acct-%d", m.nextAcct)
	a := &models.Account{
		ID:            id,
		AccountNumber: number,
		Name:          "holder " + id,
		Email:         id + "@example.com",
		Balance:       balance,
		CreatedAt:     time.Now(),
	}
	m.accounts[id] = a
	m.byNumber[number] = id
	m.byEmail[a.Email] = id
	m.creds[id] = &models.Credential{AccountID: id, IsActive: true}
	cp := *a
	return &cp
}

func (m *memStore) CreateWithCredential(_ context.Context, account *models.Account, secretHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if err := m.touch(); err != nil {
		return err
	}
	if m.numberCollisions > 0 {
		m.numberCollisions--
		return repository.ErrDuplicateAccountNumber
	}
	if _, exists := m.byNumber[account.AccountNumber]; exists {
		return repository.ErrDuplicateAccountNumber
	}
	if _, exists := m.byEmail[account.Email]; exists {
		return repository.ErrDuplicateEmail
	}

	m.nextAcct++
	account.ID = fmt.Sprintf("acct-%d", m.nextAcct)
	account.CreatedAt = time.Now()

	cp := *account
	m.accounts[account.ID] = &cp
	m.byNumber[account.AccountNumber] = account.ID
	m.byEmail[account.Email] = account.ID
	m.creds[account.ID] = &models.Credential{
		AccountID:  account.ID,
		SecretHash: secretHash,
		IsActive:   true,
	}
	return nil
}

func (m *memStore) GetByID(_ context.Context, accountID string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(); err != nil {
		return nil, err
	}
	a, ok := m.accounts[accountID]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memStore) GetByNumber(_ context.Context, accountNumber string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(); err != nil {
		return nil, err
	}
	id, ok := m.byNumber[accountNumber]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	cp := *m.accounts[id]
	return &cp, nil
}

func (m *memStore) UpdateContactField(_ context.Context, accountID, field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(); err != nil {
		return err
	}
	a, ok := m.accounts[accountID]
	if !ok {
		return repository.ErrAccountNotFound
	}
	switch field {
	case "email":
		if owner, exists := m.byEmail[value]; exists && owner != accountID {
			return repository.ErrDuplicateEmail
		}
		delete(m.byEmail, a.Email)
		a.Email = value
		m.byEmail[value] = accountID
	case "contact_number":
		a.ContactNumber = value
	case "address":
		a.Address = value
	default:
		return fmt.Errorf("unknown contact field %q", field)
	}
	return nil
}

func (m *memStore) GetByAccountID(_ context.Context, accountID string) (*models.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(); err != nil {
		return nil, err
	}
	c, ok := m.creds[accountID]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memStore) UpdateSecret(_ context.Context, accountID, secretHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(); err != nil {
		return err
	}
	c, ok := m.creds[accountID]
	if !ok {
		return repository.ErrAccountNotFound
	}
	c.SecretHash = secretHash
	return nil
}

func (m *memStore) ToggleActive(_ context.Context, accountID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(); err != nil {
		return false, err
	}
	c, ok := m.creds[accountID]
	if !ok {
		return false, repository.ErrAccountNotFound
	}
	c.IsActive = !c.IsActive
	return c.IsActive, nil
}

func (m *memStore) appendEntry(accountID, kind string, amount float64) models.JournalEntry {
	m.nextSeq++
	e := models.JournalEntry{
		ID:        m.nextSeq,
		AccountID: accountID,
		Kind:      kind,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
	m.journal[accountID] = append(m.journal[accountID], e)
	return e
}

func (m *memStore) Credit(_ context.Context, accountID string, amount float64) (*models.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(); err != nil {
		return nil, err
	}
	a, ok := m.accounts[accountID]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	a.Balance += amount
	e := m.appendEntry(accountID, models.KindCredit, amount)
	return &e, nil
}

func (m *memStore) Debit(_ context.Context, accountID string, amount float64) (*models.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(); err != nil {
		return nil, err
	}
	a, ok := m.accounts[accountID]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	if a.Balance < amount {
		return nil, repository.ErrInsufficientFunds
	}
	a.Balance -= amount
	e := m.appendEntry(accountID, models.KindDebit, amount)
	return &e, nil
}

func (m *memStore) Transfer(_ context.Context, fromID, toAccountNumber string, amount float64) (*models.TransferResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(); err != nil {
		return nil, err
	}
	from, ok := m.accounts[fromID]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	if from.Balance < amount {
		return nil, repository.ErrInsufficientFunds
	}
	toID, ok := m.byNumber[toAccountNumber]
	if !ok {
		return nil, repository.ErrRecipientNotFound
	}
	to := m.accounts[toID]

	from.Balance -= amount
	to.Balance += amount

	result := &models.TransferResult{
		Out:         m.appendEntry(fromID, models.KindTransferOut, amount),
		In:          m.appendEntry(toID, models.KindTransferIn, amount),
		FromBalance: from.Balance,
		ToBalance:   to.Balance,
	}
	return result, nil
}

func (m *memStore) ListByAccount(_ context.Context, accountID string) ([]models.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(); err != nil {
		return nil, err
	}
	if _, ok := m.accounts[accountID]; !ok {
		return nil, repository.ErrAccountNotFound
	}
	entries := m.journal[accountID]
	out := make([]models.JournalEntry, len(entries))
	copy(out, entries)
	return out, nil
}
