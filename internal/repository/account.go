package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Anuj670023/BANKING-SYSTEM/internal/models"
	"github.com/Anuj670023/BANKING-SYSTEM/internal/utils"
)

type AccountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

// CreateWithCredential inserts the account row and its credential row in one
// transaction. The caller supplies the account number; a collision surfaces
// as ErrDuplicateAccountNumber so the caller can regenerate and retry. On
// success the generated id and created_at are written back into account.
func (r *AccountRepository) CreateWithCredential(ctx context.Context, account *models.Account, secretHash string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return storageErr("begin register", err)
	}
	defer tx.Rollback(ctx)

	account.ID = uuid.New().String()

	query := `
		INSERT INTO accounts (id, account_number, name, dob, city, contact_number, email, address, balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING created_at
	`
	err = tx.QueryRow(ctx, query,
		account.ID, account.AccountNumber, account.Name, account.DateOfBirth,
		account.City, account.ContactNumber, account.Email, account.Address,
		account.Balance,
	).Scan(&account.CreatedAt)
	if err != nil {
		if dup := classifyUnique(err); dup != nil {
			return dup
		}
		return storageErr("insert account", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO credentials (account_id, secret_hash, is_active) VALUES ($1, $2, TRUE)`,
		account.ID, secretHash,
	)
	if err != nil {
		return storageErr("insert credential", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return storageErr("commit register", err)
	}

	utils.LogDB("CREATE ACCOUNT", fmt.Sprintf("account %s registered (number %s)", account.ID, account.AccountNumber))
	return nil
}

const accountColumns = `id, account_number, name, dob, city, contact_number, email, address, balance, created_at`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var a models.Account
	err := row.Scan(
		&a.ID, &a.AccountNumber, &a.Name, &a.DateOfBirth,
		&a.City, &a.ContactNumber, &a.Email, &a.Address,
		&a.Balance, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, storageErr("scan account", err)
	}
	return &a, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, accountID string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return scanAccount(r.db.QueryRow(ctx, query, accountID))
}

func (r *AccountRepository) GetByNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1`
	return scanAccount(r.db.QueryRow(ctx, query, accountNumber))
}

// contactColumns whitelists the profile columns the update operation may touch.
var contactColumns = map[string]string{
	"email":          "email",
	"contact_number": "contact_number",
	"address":        "address",
}

// UpdateContactField updates one whitelisted profile column. The services
// layer validates the field name before calling here.
func (r *AccountRepository) UpdateContactField(ctx context.Context, accountID, field, value string) error {
	column, ok := contactColumns[field]
	if !ok {
		return fmt.Errorf("unknown contact field %q", field)
	}

	query := fmt.Sprintf(`UPDATE accounts SET %s = $1 WHERE id = $2`, column)
	result, err := r.db.Exec(ctx, query, value, accountID)
	if err != nil {
		if dup := classifyUnique(err); dup != nil {
			return dup
		}
		return storageErr("update contact field", err)
	}
	if result.RowsAffected() == 0 {
		return ErrAccountNotFound
	}

	utils.LogDB("UPDATE PROFILE", fmt.Sprintf("account %s: %s updated", accountID, field))
	return nil
}
