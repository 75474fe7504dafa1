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

type CredentialRepository struct {
	db *pgxpool.Pool
}

func NewCredentialRepository(db *pgxpool.Pool) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) GetByAccountID(ctx context.Context, accountID string) (*models.Credential, error) {
	query := `SELECT account_id, secret_hash, is_active FROM credentials WHERE account_id = $1`

	var c models.Credential
	err := r.db.QueryRow(ctx, query, accountID).Scan(&c.AccountID, &c.SecretHash, &c.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, storageErr("get credential", err)
	}
	return &c, nil
}

func (r *CredentialRepository) UpdateSecret(ctx context.Context, accountID, secretHash string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE credentials SET secret_hash = $1 WHERE account_id = $2`,
		secretHash, accountID,
	)
	if err != nil {
		return storageErr("update secret", err)
	}
	if result.RowsAffected() == 0 {
		return ErrAccountNotFound
	}

	utils.LogDB("UPDATE SECRET", fmt.Sprintf("account %s: secret changed", accountID))
	return nil
}

// ToggleActive flips the active flag and returns the new state.
func (r *CredentialRepository) ToggleActive(ctx context.Context, accountID string) (bool, error) {
	var active bool
	err := r.db.QueryRow(ctx,
		`UPDATE credentials SET is_active = NOT is_active WHERE account_id = $1 RETURNING is_active`,
		accountID,
	).Scan(&active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrAccountNotFound
		}
		return false, storageErr("toggle active", err)
	}

	utils.LogDB("TOGGLE ACTIVE", fmt.Sprintf("account %s: is_active=%t", accountID, active))
	return active, nil
}
