package repository

import (
	"context"
	"fmt"

	"github.com/kkkkikiki/lukitas/internal/model"
)

// AccountRepository handles Lukitas account data operations
type AccountRepository struct{}

// NewAccountRepository creates a new account repository
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{}
}

// ListAccounts returns every account, newest first
func (r *AccountRepository) ListAccounts(ctx context.Context, db DBExecutor) ([]model.Account, error) {
	query := `
		SELECT id, user_id, numero_cuenta, saldo, estado, campanas_id,
		       CAST(created_at AS TEXT) AS created_at
		FROM cuentas
		ORDER BY cuentas.created_at DESC
	`

	accounts := []model.Account{}
	if err := db.SelectContext(ctx, &accounts, query); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	return accounts, nil
}

// SetBalance overwrites the balance of an account. A missing account is not
// an error, matching update-by-filter on the hosted API.
func (r *AccountRepository) SetBalance(ctx context.Context, db DBExecutor, accountID int64, balance float64) error {
	query := db.Rebind(`UPDATE cuentas SET saldo = ? WHERE id = ?`)

	if _, err := db.ExecContext(ctx, query, balance, accountID); err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	return nil
}
