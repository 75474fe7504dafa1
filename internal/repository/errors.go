package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrRecipientNotFound = errors.New("recipient account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrDuplicateKey is the family error; the field-specific variants wrap it
	// so callers can match either level with errors.Is.
	ErrDuplicateKey           = errors.New("duplicate key")
	ErrDuplicateAccountNumber = fmt.Errorf("%w: account number", ErrDuplicateKey)
	ErrDuplicateEmail         = fmt.Errorf("%w: email", ErrDuplicateKey)

	// ErrStorageUnavailable wraps any unexpected driver failure. The enclosing
	// transaction is rolled back, so no partial effect is committed.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

const pgUniqueViolation = "23505"

// classifyUnique maps a Postgres unique violation to the field-specific
// duplicate error. Returns nil if err is not a unique violation.
func classifyUnique(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return nil
	}
	switch pgErr.ConstraintName {
	case "accounts_account_number_key":
		return ErrDuplicateAccountNumber
	case "accounts_email_key":
		return ErrDuplicateEmail
	}
	return ErrDuplicateKey
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
}
