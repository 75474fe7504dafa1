package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/Anuj670023/BANKING-SYSTEM/internal/cache"
	"github.com/Anuj670023/BANKING-SYSTEM/internal/models"
	"github.com/Anuj670023/BANKING-SYSTEM/internal/repository"
)

func registerReq(email string) models.RegisterRequest {
	return models.RegisterRequest{
		Name:           "Asha Verma",
		DateOfBirth:    "14-03-1992",
		City:           "Pune",
		ContactNumber:  "9876543210",
		Email:          email,
		Address:        "12 MG Road",
		InitialBalance: 2000,
		Password:       "s3cret-pass",
	}
}

func TestRegisterBelowMinimumBalance(t *testing.T) {
	store := newMemStore()
	svc := NewAccountService(store, store)

	req := registerReq("asha@example.com")
	req.InitialBalance = 1999.99
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, ErrBelowMinimumBalance) {
		t.Fatalf("want ErrBelowMinimumBalance, got %v", err)
	}
	if store.createCalls != 0 {
		t.Fatalf("store touched %d times before validation", store.createCalls)
	}
}

func TestRegisterEmptyPassword(t *testing.T) {
	store := newMemStore()
	svc := NewAccountService(store, store)

	req := registerReq("asha@example.com")
	req.Password = ""
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("want ErrEmptySecret, got %v", err)
	}
}

func TestRegisterCreatesAccountAndCredential(t *testing.T) {
	store := newMemStore()
	svc := NewAccountService(store, store)

	account, err := svc.Register(context.Background(), registerReq("asha@example.com"))
	if err != nil {
		t.Fatal(err)
	}

	if len(account.AccountNumber) != 10 {
		t.Fatalf("account number %q is not 10 digits", account.AccountNumber)
	}
	for _, c := range account.AccountNumber {
		if c < '0' || c > '9' {
			t.Fatalf("account number %q contains non-digit", account.AccountNumber)
		}
	}
	if account.Balance != 2000 {
		t.Fatalf("balance=%v want=2000", account.Balance)
	}

	cred, err := store.GetByAccountID(context.Background(), account.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !cred.IsActive {
		t.Fatal("new credential should be active")
	}
	if bcrypt.CompareHashAndPassword([]byte(cred.SecretHash), []byte("s3cret-pass")) != nil {
		t.Fatal("stored secret hash does not verify against the password")
	}
}

func TestRegisterDuplicateEmailIsTerminal(t *testing.T) {
	store := newMemStore()
	svc := NewAccountService(store, store)

	first, err := svc.Register(context.Background(), registerReq("asha@example.com"))
	if err != nil {
		t.Fatal(err)
	}

	createsBefore := store.createCalls
	_, err = svc.Register(context.Background(), registerReq("asha@example.com"))
	if !errors.Is(err, repository.ErrDuplicateEmail) || !errors.Is(err, repository.ErrDuplicateKey) {
		t.Fatalf("want duplicate email error, got %v", err)
	}
	// An email collision is not retried.
	if got := store.createCalls - createsBefore; got != 1 {
		t.Fatalf("create attempts=%d want=1", got)
	}

	// The first registration is unaffected.
	kept, err := svc.Lookup(context.Background(), first.AccountNumber)
	if err != nil {
		t.Fatal(err)
	}
	if kept.Balance != 2000 || kept.Email != "asha@example.com" {
		t.Fatalf("first account changed: %+v", kept)
	}
}

func TestRegisterRetriesNumberCollision(t *testing.T) {
	store := newMemStore()
	store.numberCollisions = 2
	svc := NewAccountService(store, store)

	account, err := svc.Register(context.Background(), registerReq("asha@example.com"))
	if err != nil {
		t.Fatal(err)
	}
	if account.AccountNumber == "" {
		t.Fatal("expected an allocated account number")
	}
	if store.createCalls != 3 {
		t.Fatalf("create attempts=%d want=3", store.createCalls)
	}
}

func TestRegisterNumberSpaceExhausted(t *testing.T) {
	store := newMemStore()
	store.numberCollisions = maxNumberAttempts
	svc := NewAccountService(store, store)

	if _, err := svc.Register(context.Background(), registerReq("asha@example.com")); !errors.Is(err, ErrNumberExhausted) {
		t.Fatalf("want ErrNumberExhausted, got %v", err)
	}
}

func TestLookupNotFound(t *testing.T) {
	store := newMemStore()
	svc := NewAccountService(store, store)

	if _, err := svc.Lookup(context.Background(), "0000000000"); !errors.Is(err, repository.ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}
}

func TestToggleActiveFlips(t *testing.T) {
	store := newMemStore()
	svc := NewAccountService(store, store)
	a := store.seed("1234567890", 2000)

	active, err := svc.ToggleActive(context.Background(), a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if active {
		t.Fatal("first toggle should deactivate")
	}
	active, err = svc.ToggleActive(context.Background(), a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !active {
		t.Fatal("second toggle should reactivate")
	}
}

func TestGetServesCachedBalance(t *testing.T) {
	store := newMemStore()
	c := newMemCache()
	svc := NewAccountServiceWithCache(store, store, c)
	a := store.seed("1234567890", 2000)

	if err := c.Set(context.Background(), cache.AccountBalanceKey(a.ID), "3500.00", 0); err != nil {
		t.Fatal(err)
	}

	got, err := svc.Get(context.Background(), a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Balance != 3500 {
		t.Fatalf("balance=%v want cached 3500", got.Balance)
	}
	if got.AccountNumber != a.AccountNumber {
		t.Fatalf("profile not loaded: %+v", got)
	}
}

func TestGetFillsBalanceCacheOnMiss(t *testing.T) {
	store := newMemStore()
	c := newMemCache()
	svc := NewAccountServiceWithCache(store, store, c)
	a := store.seed("1234567890", 2000)

	got, err := svc.Get(context.Background(), a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Balance != 2000 {
		t.Fatalf("balance=%v want=2000", got.Balance)
	}

	key := cache.AccountBalanceKey(a.ID)
	cached, err := c.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("balance not cached after miss: %v", err)
	}
	if cached != "2000.00" {
		t.Fatalf("cached=%q want=%q", cached, "2000.00")
	}

	// The next read serves the cached value even if the row moved underneath.
	store.accounts[a.ID].Balance = 5000
	got, err = svc.Get(context.Background(), a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Balance != 2000 {
		t.Fatalf("balance=%v want cached 2000", got.Balance)
	}
}

func TestUpdateContactField(t *testing.T) {
	store := newMemStore()
	svc := NewAccountService(store, store)
	a := store.seed("1234567890", 2000)
	b := store.seed("2222222222", 2000)

	if err := svc.UpdateContactField(context.Background(), a.ID, "city", "Mumbai"); !errors.Is(err, ErrUnknownProfileField) {
		t.Fatalf("want ErrUnknownProfileField, got %v", err)
	}

	if err := svc.UpdateContactField(context.Background(), a.ID, "address", "45 Lake View"); err != nil {
		t.Fatal(err)
	}
	got, err := store.GetByID(context.Background(), a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Address != "45 Lake View" {
		t.Fatalf("address=%q want=%q", got.Address, "45 Lake View")
	}

	// Taking another account's email collides.
	if err := svc.UpdateContactField(context.Background(), a.ID, "email", b.Email); !errors.Is(err, repository.ErrDuplicateKey) {
		t.Fatalf("want duplicate key error, got %v", err)
	}
}
